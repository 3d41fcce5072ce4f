package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/pitwall/internal/api"
	"github.com/alexanderramin/pitwall/internal/auth"
	"github.com/alexanderramin/pitwall/internal/cli"
	"github.com/alexanderramin/pitwall/internal/config"
	"github.com/alexanderramin/pitwall/internal/db"
	"github.com/alexanderramin/pitwall/internal/gateway"
	"github.com/alexanderramin/pitwall/internal/repository"
	"github.com/alexanderramin/pitwall/internal/service"
	"github.com/alexanderramin/pitwall/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is optional.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("PITWALL_CONFIG"))
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	display, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return fmt.Errorf("loading display timezone %q: %w", cfg.DisplayTimezone, err)
	}

	database, err := db.Open(cfg.CommitLogPath)
	if err != nil {
		return fmt.Errorf("opening commit log: %w", err)
	}
	defer database.Close()

	schedules := store.NewScheduleStore()
	overlays := store.NewOverlayStore()
	commits := repository.NewSQLiteCommitRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	gw := gateway.New(cfg.DataDir, schedules, overlays, commits, uow, logger)
	if err := gw.Recover(context.Background()); err != nil {
		return fmt.Errorf("recovering persisted state: %w", err)
	}

	gate := auth.NewAllowList(cfg.AllowedOperators)
	observer := service.NewLogUseCaseObserver(os.Stderr)

	app := &cli.App{
		Dashboard: service.NewDashboardService(schedules, overlays, display),
		Schedules: service.NewScheduleService(schedules, gw, gate, observer),
		Overlays:  service.NewOverlayService(schedules, overlays, gw, gate, observer),
		History:   service.NewHistoryService(gw, gate, observer),

		Display:    display,
		RemotePath: cfg.RemotePath,
		ListenAddr: cfg.ListenAddr,
		Logger:     logger,
	}

	app.Handler = api.NewRouter(api.NewServer(
		app.Dashboard, app.Schedules, app.Overlays, app.History, cfg.RemotePath), logger)

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
