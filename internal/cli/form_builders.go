package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pitwall/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pitwallHuhTheme returns a custom huh theme using the Gruvbox palette.
func pitwallHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateOptionalClock accepts blank (unchanged), "-" (clear) or HH:MM.
func validateOptionalClock(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("want HH:MM, '-' to clear, or blank to keep")
	}
	return nil
}

func clockInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("HH:MM").
		Value(value).
		Validate(validateOptionalClock)
}

// dayOverlayForm collects the four day fields for one venue-local date.
func dayOverlayForm(date string, values *dayFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			clockInput(fmt.Sprintf("Breakfast on %s", date), &values.Breakfast),
			clockInput("Lunch", &values.Lunch),
			clockInput("Dinner", &values.Dinner),
			clockInput("Hotel departure", &values.Departure),
		),
	).WithTheme(pitwallHuhTheme()).WithShowHelp(false)
}
