package domain

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical format for venue-local calendar date keys.
const DateKeyLayout = "2006-01-02"

// Session is one scheduled race-weekend event. Start and End are absolute
// instants (UTC-anchored). End is nil for point events (track open, curfew).
type Session struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// VenueDate returns the session's calendar date key in the given venue timezone.
func (s Session) VenueDate(loc *time.Location) string {
	return s.Start.In(loc).Format(DateKeyLayout)
}

// ScheduleDocument is the immutable session list for one race weekend.
// It is replaced wholesale by ingestion, never patched in place. Version
// counts replacements and guards optimistic concurrency on Replace.
type ScheduleDocument struct {
	EventName     string    `json:"event_name"`
	VenueTimezone string    `json:"venue_timezone"`
	Sessions      []Session `json:"sessions"`
	Version       int64     `json:"version"`
}

// VenueLocation resolves the document's venue timezone.
func (d *ScheduleDocument) VenueLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(d.VenueTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading venue timezone %q: %w", d.VenueTimezone, err)
	}
	return loc, nil
}

// Validate checks the schedule invariant: sessions sorted by start,
// pairwise non-overlapping, each end after its start. A session without
// an end occupies a zero-width window. The first offending pair is named.
func (d *ScheduleDocument) Validate() error {
	if d.VenueTimezone == "" {
		return fmt.Errorf("%w: venue timezone is required", ErrInvalidSchedule)
	}
	if _, err := time.LoadLocation(d.VenueTimezone); err != nil {
		return fmt.Errorf("%w: unknown venue timezone %q", ErrInvalidSchedule, d.VenueTimezone)
	}

	seen := make(map[string]bool, len(d.Sessions))
	for i, s := range d.Sessions {
		if s.ID == "" {
			return fmt.Errorf("%w: session %d has no id", ErrInvalidSchedule, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate session id %q", ErrInvalidSchedule, s.ID)
		}
		seen[s.ID] = true
		if s.End != nil && !s.End.After(s.Start) {
			return fmt.Errorf("%w: session %q ends at or before its start", ErrInvalidSchedule, s.ID)
		}
	}

	for i := 1; i < len(d.Sessions); i++ {
		prev, cur := d.Sessions[i-1], d.Sessions[i]
		if cur.Start.Before(prev.Start) {
			return fmt.Errorf("%w: sessions %q and %q are out of order", ErrInvalidSchedule, prev.ID, cur.ID)
		}
		// [start, end) windows: a session starting exactly at the
		// previous end does not overlap.
		if prev.End != nil && prev.End.After(cur.Start) {
			return fmt.Errorf("%w: sessions %q and %q overlap", ErrInvalidSchedule, prev.ID, cur.ID)
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand to readers while writers mutate.
func (d *ScheduleDocument) Clone() ScheduleDocument {
	out := *d
	out.Sessions = make([]Session, len(d.Sessions))
	for i, s := range d.Sessions {
		out.Sessions[i] = s
		if s.End != nil {
			end := *s.End
			out.Sessions[i].End = &end
		}
	}
	return out
}
