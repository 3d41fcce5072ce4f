package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/pitwall/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRollbackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <version>",
		Short: "Restore the schedule and configuration as of a past commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || version <= 0 {
				return fmt.Errorf("version must be a positive integer, got %q", args[0])
			}

			rec, err := app.History.Rollback(context.Background(), app.Operator, version)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCommit(rec))
			return nil
		},
	}
}
