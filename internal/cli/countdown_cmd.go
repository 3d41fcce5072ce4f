package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pitwall/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCountdownCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Show the countdown to the next session",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("parsing --at: %w", err)
				}
				now = parsed
			}

			state, err := app.Dashboard.Countdown(context.Background(), now)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCountdown(state, app.display()))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Compute the countdown at this RFC3339 instant instead of now")

	return cmd
}
