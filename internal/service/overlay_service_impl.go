package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pitwall/internal/auth"
	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/gateway"
	"github.com/alexanderramin/pitwall/internal/store"
)

type overlayService struct {
	schedules *store.ScheduleStore
	overlays  *store.OverlayStore
	gw        *gateway.Gateway
	gate      auth.Gate
	observer  UseCaseObserver
}

func NewOverlayService(schedules *store.ScheduleStore, overlays *store.OverlayStore, gw *gateway.Gateway, gate auth.Gate, observers ...UseCaseObserver) OverlayService {
	return &overlayService{
		schedules: schedules,
		overlays:  overlays,
		gw:        gw,
		gate:      gate,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *overlayService) Get(ctx context.Context) (domain.ConfigurationOverlay, error) {
	return s.overlays.Load(), nil
}

func (s *overlayService) ApplyPatch(ctx context.Context, identity string, patch domain.OverlayPatch, message string) (next domain.ConfigurationOverlay, rec *domain.CommitRecord, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     "apply-overlay-patch",
			Operator: identity,
			Duration: time.Since(startedAt),
			Err:      err,
			Commit:   rec,
		})
	}()

	if !s.gate.Authorized(identity) {
		return domain.ConfigurationOverlay{}, nil, fmt.Errorf("operator %q: %w", identity, domain.ErrUnauthorized)
	}
	if message == "" {
		message = "update configuration"
	}
	return s.gw.CommitOverlayPatch(ctx, patch, identity, message)
}

// ResetDay commits the baseline day times for one date through the
// normal patch path, so a reset shows up in history like any other edit.
func (s *overlayService) ResetDay(ctx context.Context, identity string, date string) (next domain.ConfigurationOverlay, rec *domain.CommitRecord, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     "reset-overlay-day",
			Operator: identity,
			Duration: time.Since(startedAt),
			Err:      err,
			Commit:   rec,
		})
	}()

	if !s.gate.Authorized(identity) {
		return domain.ConfigurationOverlay{}, nil, fmt.Errorf("operator %q: %w", identity, domain.ErrUnauthorized)
	}

	loc := time.UTC
	if doc, loadErr := s.schedules.Load(); loadErr == nil {
		if venue, locErr := doc.VenueLocation(); locErr == nil {
			loc = venue
		}
	} else if !errors.Is(loadErr, domain.ErrNotFound) {
		return domain.ConfigurationOverlay{}, nil, loadErr
	}

	base, err := domain.DefaultDayOverlay(date, loc)
	if err != nil {
		return domain.ConfigurationOverlay{}, nil, err
	}
	patch := domain.OverlayPatch{Days: map[string]domain.DayPatch{
		date: {
			Breakfast:      domain.SetTo(*base.Breakfast),
			Lunch:          domain.SetTo(*base.Lunch),
			Dinner:         domain.SetTo(*base.Dinner),
			HotelDeparture: domain.SetTo(*base.HotelDeparture),
		},
	}}
	return s.gw.CommitOverlayPatch(ctx, patch, identity, fmt.Sprintf("reset %s to defaults", date))
}
