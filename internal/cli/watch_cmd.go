package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live countdown that updates every second",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch needs an interactive terminal; use 'countdown' instead")
			}

			p := tea.NewProgram(newWatchModel(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
