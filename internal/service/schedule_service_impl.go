package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pitwall/internal/auth"
	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/gateway"
	"github.com/alexanderramin/pitwall/internal/store"
)

type scheduleService struct {
	schedules *store.ScheduleStore
	gw        *gateway.Gateway
	gate      auth.Gate
	observer  UseCaseObserver
}

func NewScheduleService(schedules *store.ScheduleStore, gw *gateway.Gateway, gate auth.Gate, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		schedules: schedules,
		gw:        gw,
		gate:      gate,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Current(ctx context.Context) (domain.ScheduleDocument, error) {
	return s.schedules.Load()
}

func (s *scheduleService) Replace(ctx context.Context, identity string, doc domain.ScheduleDocument, baseVersion int64, message string) (next domain.ScheduleDocument, rec *domain.CommitRecord, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     "replace-schedule",
			Operator: identity,
			Duration: time.Since(startedAt),
			Err:      err,
			Commit:   rec,
		})
	}()

	if !s.gate.Authorized(identity) {
		return domain.ScheduleDocument{}, nil, fmt.Errorf("operator %q: %w", identity, domain.ErrUnauthorized)
	}
	if message == "" {
		message = fmt.Sprintf("replace schedule: %s", doc.EventName)
	}
	return s.gw.ReplaceSchedule(ctx, doc, baseVersion, identity, message)
}
