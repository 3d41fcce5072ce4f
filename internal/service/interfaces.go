package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pitwall/internal/countdown"
	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/gateway"
)

// DashboardService serves the read-only dashboard: the reconciled
// session list and the countdown state derived from it.
type DashboardService interface {
	Countdown(ctx context.Context, now time.Time) (countdown.State, error)
	Sessions(ctx context.Context) (domain.ReconciledView, error)
}

type ScheduleService interface {
	Current(ctx context.Context) (domain.ScheduleDocument, error)
	Replace(ctx context.Context, identity string, doc domain.ScheduleDocument, baseVersion int64, message string) (domain.ScheduleDocument, *domain.CommitRecord, error)
}

type OverlayService interface {
	Get(ctx context.Context) (domain.ConfigurationOverlay, error)
	ApplyPatch(ctx context.Context, identity string, patch domain.OverlayPatch, message string) (domain.ConfigurationOverlay, *domain.CommitRecord, error)
	ResetDay(ctx context.Context, identity string, date string) (domain.ConfigurationOverlay, *domain.CommitRecord, error)
}

type HistoryService interface {
	List(ctx context.Context, limit int, before int64) ([]*domain.CommitRecord, error)
	Rollback(ctx context.Context, identity string, version int64) (*domain.CommitRecord, error)
	Sync(ctx context.Context, identity string, remote gateway.Remote) (gateway.SyncResult, error)
}
