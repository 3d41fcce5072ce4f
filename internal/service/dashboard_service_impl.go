package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pitwall/internal/countdown"
	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/reconcile"
	"github.com/alexanderramin/pitwall/internal/store"
)

type dashboardService struct {
	schedules *store.ScheduleStore
	overlays  *store.OverlayStore
	display   *time.Location
}

// NewDashboardService serves countdown and session views in the given
// display timezone.
func NewDashboardService(schedules *store.ScheduleStore, overlays *store.OverlayStore, display *time.Location) DashboardService {
	if display == nil {
		display = time.UTC
	}
	return &dashboardService{schedules: schedules, overlays: overlays, display: display}
}

func (s *dashboardService) Sessions(ctx context.Context) (domain.ReconciledView, error) {
	doc, err := s.schedules.Load()
	if err != nil {
		return domain.ReconciledView{}, err
	}

	merged, err := overlayWithDefaults(doc, s.overlays.Load())
	if err != nil {
		return domain.ReconciledView{}, err
	}
	return reconcile.Reconcile(doc, merged)
}

func (s *dashboardService) Countdown(ctx context.Context, now time.Time) (countdown.State, error) {
	view, err := s.Sessions(ctx)
	if err != nil {
		return countdown.State{}, err
	}
	return countdown.Compute(view, now, s.display), nil
}

// overlayWithDefaults backfills every venue date the schedule touches
// with the baseline day times; stored overrides win field by field.
func overlayWithDefaults(doc domain.ScheduleDocument, overlay domain.ConfigurationOverlay) (domain.ConfigurationOverlay, error) {
	loc, err := doc.VenueLocation()
	if err != nil {
		return domain.ConfigurationOverlay{}, err
	}

	merged := overlay.Clone()
	for _, sess := range doc.Sessions {
		date := sess.VenueDate(loc)
		base, err := domain.DefaultDayOverlay(date, loc)
		if err != nil {
			return domain.ConfigurationOverlay{}, err
		}
		day := merged.Days[date]
		if day.Breakfast == nil {
			day.Breakfast = base.Breakfast
		}
		if day.Lunch == nil {
			day.Lunch = base.Lunch
		}
		if day.Dinner == nil {
			day.Dinner = base.Dinner
		}
		if day.HotelDeparture == nil {
			day.HotelDeparture = base.HotelDeparture
		}
		merged.Days[date] = day
	}
	return merged, nil
}
