package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pitwall/internal/countdown"
	"github.com/alexanderramin/pitwall/internal/domain"
)

// Duration renders a non-negative duration as the largest useful units,
// e.g. "1d 02h 15m", "2h 05m 30s", "19m 05s".
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	s := d - m*time.Minute

	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm", days, h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s/time.Second)
	}
	return fmt.Sprintf("%dm %02ds", m, s/time.Second)
}

// Clock renders an instant as a short local clock reading.
func Clock(t time.Time) string {
	return t.Format("Mon 15:04")
}

func sessionLine(prefix string, v *countdown.SessionView) string {
	line := fmt.Sprintf("%s %s  %s", prefix, Bold(v.Session.Label), Clock(v.LocalStart))
	if v.LocalEnd != nil {
		line += Dim(" – " + v.LocalEnd.Format("15:04"))
	}
	return line
}

func mealLines(day domain.DayOverlay, display *time.Location) []string {
	var lines []string
	add := func(label string, t *time.Time) {
		if t == nil {
			return
		}
		lines = append(lines, fmt.Sprintf("  %-15s %s", label, t.In(display).Format("15:04")))
	}
	add("Breakfast", day.Breakfast)
	add("Hotel departure", day.HotelDeparture)
	add("Lunch", day.Lunch)
	add("Dinner", day.Dinner)
	return lines
}

// FormatCountdown renders one countdown state for the terminal.
func FormatCountdown(state countdown.State, display *time.Location) string {
	var b strings.Builder
	b.WriteString(PhaseIndicator(state.Phase))
	b.WriteString("\n")

	switch state.Phase {
	case countdown.PhaseLive:
		b.WriteString(sessionLine("Now:", state.Current))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Ends in %s\n", StyleRed.Render(Duration(state.TimeRemaining)))
		if state.Next != nil {
			b.WriteString(sessionLine("Then:", state.Next))
			b.WriteString("\n")
		}
	case countdown.PhaseUpcoming, countdown.PhaseBetween:
		b.WriteString(sessionLine("Next:", state.Next))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Starts in %s\n", StyleGreen.Render(Duration(state.TimeRemaining)))
		if state.Last != nil {
			b.WriteString(Dim(fmt.Sprintf("Last: %s (%s)", state.Last.Session.Label, Clock(state.Last.LocalStart))))
			b.WriteString("\n")
		}
	case countdown.PhaseWeekendOver:
		if state.Last != nil {
			b.WriteString(sessionLine("Final session:", state.Last))
			b.WriteString("\n")
		}
		b.WriteString(Dim("See you at the next round.") + "\n")
	}

	if day := currentDay(state); day != nil {
		if lines := mealLines(*day, display); len(lines) > 0 {
			b.WriteString(Dim("Day plan:") + "\n")
			b.WriteString(strings.Join(lines, "\n"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// currentDay picks the overlay most relevant to the moment: the live
// session's day, otherwise the next session's.
func currentDay(state countdown.State) *domain.DayOverlay {
	switch {
	case state.Current != nil:
		return &state.Current.Overlay
	case state.Next != nil:
		return &state.Next.Overlay
	default:
		return nil
	}
}
