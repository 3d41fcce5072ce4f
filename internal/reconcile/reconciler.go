// Package reconcile merges the immutable schedule document with the mutable
// configuration overlay into the single view the countdown engine consumes.
package reconcile

import (
	"sort"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// Reconcile is a pure function of its two inputs: no hidden state, no I/O.
// Sessions are grouped by venue-local calendar date and each carries the
// matching day overlay (all-unset if absent). Overlay dates without a
// session are retained in UnusedDays. Output ordering is deterministic:
// sessions by start, ties broken by id.
func Reconcile(doc domain.ScheduleDocument, overlay domain.ConfigurationOverlay) (domain.ReconciledView, error) {
	loc, err := doc.VenueLocation()
	if err != nil {
		return domain.ReconciledView{}, err
	}

	view := domain.ReconciledView{
		EventName:     doc.EventName,
		VenueTimezone: doc.VenueTimezone,
		Sessions:      make([]domain.ScheduledSession, 0, len(doc.Sessions)),
	}

	scheduledDates := make(map[string]bool, len(doc.Sessions))
	for _, s := range doc.Sessions {
		date := s.VenueDate(loc)
		scheduledDates[date] = true
		view.Sessions = append(view.Sessions, domain.ScheduledSession{
			Session:   s,
			VenueDate: date,
			Overlay:   overlay.Day(date).Clone(),
		})
	}

	sort.SliceStable(view.Sessions, func(i, j int) bool {
		a, b := view.Sessions[i], view.Sessions[j]
		if !a.Session.Start.Equal(b.Session.Start) {
			return a.Session.Start.Before(b.Session.Start)
		}
		return a.Session.ID < b.Session.ID
	})

	for date := range overlay.Days {
		if !scheduledDates[date] {
			view.UnusedDays = append(view.UnusedDays, date)
		}
	}
	sort.Strings(view.UnusedDays)

	return view, nil
}
