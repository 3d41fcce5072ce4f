package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/pitwall/internal/cli/formatter"
	"github.com/alexanderramin/pitwall/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var baseVersion int64
	var message string

	cmd := &cobra.Command{
		Use:   "import <weekend-file>",
		Short: "Import a weekend schedule from a JSON file or timetable PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var file *importer.WeekendFile
			var err error
			if strings.EqualFold(filepath.Ext(path), ".pdf") {
				file, err = importer.ExtractPDF(path)
			} else {
				file, err = importer.LoadWeekendFile(path)
			}
			if err != nil {
				return err
			}

			doc, err := importer.Convert(file)
			if err != nil {
				return err
			}

			if message == "" {
				message = fmt.Sprintf("import %s", filepath.Base(path))
			}
			replaced, rec, err := app.Schedules.Replace(
				context.Background(), app.Operator, doc, baseVersion, message)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %d sessions, schedule version %d\n",
				replaced.EventName, len(replaced.Sessions), replaced.Version)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCommit(rec))
			return nil
		},
	}

	cmd.Flags().Int64Var(&baseVersion, "base-version", 0, "Expected current schedule version (0 for first import)")
	cmd.Flags().StringVar(&message, "message", "", "Commit message for the change log")

	return cmd
}
