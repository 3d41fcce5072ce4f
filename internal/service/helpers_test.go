package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pitwall/internal/auth"
	"github.com/alexanderramin/pitwall/internal/gateway"
	"github.com/alexanderramin/pitwall/internal/repository"
	"github.com/alexanderramin/pitwall/internal/store"
	"github.com/alexanderramin/pitwall/internal/testutil"
)

// env wires the stores and gateway the way cmd/pitwall does, over an
// in-memory commit log and a temp data dir.
type env struct {
	schedules *store.ScheduleStore
	overlays  *store.OverlayStore
	gw        *gateway.Gateway
}

func newEnv(t *testing.T) *env {
	t.Helper()
	database := testutil.NewTestDB(t)
	schedules := store.NewScheduleStore()
	overlays := store.NewOverlayStore()
	gw := gateway.New(t.TempDir(), schedules, overlays,
		repository.NewSQLiteCommitRepo(database), testutil.NewTestUoW(database),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, gw.Recover(context.Background()))
	return &env{schedules: schedules, overlays: overlays, gw: gw}
}

func openGate() auth.Gate { return auth.NewAllowList(nil) }

func closedGate() auth.Gate { return auth.NewAllowList([]string{"alex"}) }
