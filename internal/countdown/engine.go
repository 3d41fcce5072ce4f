// Package countdown computes the dashboard's countdown state from a
// reconciled view and the current instant. All comparisons happen in
// absolute time; conversion to the display timezone occurs only when
// building the returned state.
package countdown

import (
	"time"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// DefaultLiveDuration is how long a session without an explicit end is
// treated as live before the weekend moves on.
const DefaultLiveDuration = 2 * time.Hour

// Phase names the four countdown states.
type Phase string

const (
	PhaseUpcoming    Phase = "upcoming"
	PhaseLive        Phase = "live"
	PhaseBetween     Phase = "between"
	PhaseWeekendOver Phase = "weekend_over"
)

// SessionView is a session localized for display.
type SessionView struct {
	Session    domain.Session    `json:"session"`
	Overlay    domain.DayOverlay `json:"overlay"`
	VenueDate  string            `json:"venue_date"`
	LocalStart time.Time         `json:"local_start"`
	LocalEnd   *time.Time        `json:"local_end,omitempty"`
}

// State is the result of one countdown computation.
//
//   - Upcoming: Next is set, TimeRemaining counts to its start.
//   - Live: Current is set, TimeRemaining counts to its (effective) end;
//     Next is the following session when one exists.
//   - Between: Last and Next are set, TimeRemaining counts to Next's start.
//   - WeekendOver: Last is the final session; TimeRemaining is zero.
type State struct {
	Phase         Phase         `json:"phase"`
	Now           time.Time     `json:"now"`
	Current       *SessionView  `json:"current,omitempty"`
	Last          *SessionView  `json:"last,omitempty"`
	Next          *SessionView  `json:"next,omitempty"`
	TimeRemaining time.Duration `json:"time_remaining_ns"`
}

// effectiveEnd is the end used for live/over decisions: the explicit end,
// or start plus DefaultLiveDuration for point events.
func effectiveEnd(s domain.Session) time.Time {
	if s.End != nil {
		return *s.End
	}
	return s.Start.Add(DefaultLiveDuration)
}

func localize(s domain.ScheduledSession, display *time.Location) *SessionView {
	v := &SessionView{
		Session:    s.Session,
		Overlay:    s.Overlay,
		VenueDate:  s.VenueDate,
		LocalStart: s.Session.Start.In(display),
	}
	if s.Session.End != nil {
		end := s.Session.End.In(display)
		v.LocalEnd = &end
	}
	return v
}

// Compute derives the countdown state for now. The returned TimeRemaining
// is never negative. With overlapping windows (which Validate prevents,
// but defend anyway) the session with the earlier start wins.
func Compute(view domain.ReconciledView, now time.Time, display *time.Location) State {
	state := State{Phase: PhaseWeekendOver, Now: now.In(display)}
	if len(view.Sessions) == 0 {
		return state
	}

	sessions := view.Sessions

	// Live: first session (earliest start) whose [start, effective end)
	// window contains now.
	for i, s := range sessions {
		if !s.Session.Start.After(now) && now.Before(effectiveEnd(s.Session)) {
			state.Phase = PhaseLive
			state.Current = localize(s, display)
			state.TimeRemaining = effectiveEnd(s.Session).Sub(now)
			if i+1 < len(sessions) {
				state.Next = localize(sessions[i+1], display)
			}
			return state
		}
	}

	// Upcoming: now precedes the first start.
	if now.Before(sessions[0].Session.Start) {
		state.Phase = PhaseUpcoming
		state.Next = localize(sessions[0], display)
		state.TimeRemaining = sessions[0].Session.Start.Sub(now)
		return state
	}

	// Between: after some session's end, before the next start.
	for i := len(sessions) - 1; i >= 0; i-- {
		if !effectiveEnd(sessions[i].Session).After(now) {
			state.Last = localize(sessions[i], display)
			if i+1 < len(sessions) {
				state.Phase = PhaseBetween
				state.Next = localize(sessions[i+1], display)
				state.TimeRemaining = sessions[i+1].Session.Start.Sub(now)
				if state.TimeRemaining < 0 {
					state.TimeRemaining = 0
				}
			}
			return state
		}
	}

	return state
}
