package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pitwall/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Show the weekend schedule with day plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Dashboard.Sessions(context.Background())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(view, app.display()))
			return nil
		},
	}
}
