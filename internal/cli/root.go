package cli

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexanderramin/pitwall/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the wiring the commands need (display timezone, configured sync
// remote, HTTP handler for serve).
type App struct {
	Dashboard service.DashboardService
	Schedules service.ScheduleService
	Overlays  service.OverlayService
	History   service.HistoryService

	Display    *time.Location
	RemotePath string
	ListenAddr string
	Handler    http.Handler
	Logger     *slog.Logger

	// Operator is the acting identity for mutating commands. Set from the
	// persistent --operator flag, falling back to PITWALL_OPERATOR.
	Operator string

	IsInteractive func() bool
}

func (a *App) display() *time.Location {
	if a.Display == nil {
		return time.UTC
	}
	return a.Display
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "pitwall" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pitwall",
		Short: "Race weekend countdown and schedule manager",
	}

	root.PersistentFlags().StringVar(&app.Operator, "operator",
		os.Getenv("PITWALL_OPERATOR"), "Operator identity recorded on changes")

	root.AddCommand(
		newCountdownCmd(app),
		newScheduleCmd(app),
		newImportCmd(app),
		newConfigCmd(app),
		newHistoryCmd(app),
		newRollbackCmd(app),
		newSyncCmd(app),
		newWatchCmd(app),
		newServeCmd(app),
	)

	return root
}
