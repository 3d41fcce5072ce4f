package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pitwall/internal/auth"
	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/gateway"
)

type historyService struct {
	gw       *gateway.Gateway
	gate     auth.Gate
	observer UseCaseObserver
}

func NewHistoryService(gw *gateway.Gateway, gate auth.Gate, observers ...UseCaseObserver) HistoryService {
	return &historyService{
		gw:       gw,
		gate:     gate,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *historyService) List(ctx context.Context, limit int, before int64) ([]*domain.CommitRecord, error) {
	return s.gw.History(ctx, limit, before)
}

func (s *historyService) Rollback(ctx context.Context, identity string, version int64) (rec *domain.CommitRecord, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     "rollback",
			Operator: identity,
			Duration: time.Since(startedAt),
			Err:      err,
			Commit:   rec,
		})
	}()

	if !s.gate.Authorized(identity) {
		return nil, fmt.Errorf("operator %q: %w", identity, domain.ErrUnauthorized)
	}
	return s.gw.Rollback(ctx, version, identity)
}

func (s *historyService) Sync(ctx context.Context, identity string, remote gateway.Remote) (res gateway.SyncResult, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     "sync",
			Operator: identity,
			Duration: time.Since(startedAt),
			Err:      err,
			Pulled:   res.Pulled,
			Pushed:   res.Pushed,
		})
	}()

	if !s.gate.Authorized(identity) {
		return gateway.SyncResult{}, fmt.Errorf("operator %q: %w", identity, domain.ErrUnauthorized)
	}
	return s.gw.Sync(ctx, remote)
}
