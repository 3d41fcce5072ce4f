package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pitwall/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var before int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the change log, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			commits, err := app.History.List(context.Background(), limit, before)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(commits))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of commits to show")
	cmd.Flags().Int64Var(&before, "before", 0, "Only show commits older than this version")

	return cmd
}
