package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pitwall/internal/gateway"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	var remotePath string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fast-forward sync with a remote commit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := remotePath
			if path == "" {
				path = app.RemotePath
			}
			if path == "" {
				return fmt.Errorf("no sync remote configured; pass --remote or set remote_path")
			}

			remote, closeRemote, err := gateway.OpenRemote(path)
			if err != nil {
				return err
			}
			defer closeRemote()

			res, err := app.History.Sync(context.Background(), app.Operator, remote)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synced with %s: pulled %d, pushed %d\n",
				path, res.Pulled, res.Pushed)
			return nil
		},
	}

	cmd.Flags().StringVar(&remotePath, "remote", "", "Path to the remote commit log database")

	return cmd
}
