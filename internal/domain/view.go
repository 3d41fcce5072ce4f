package domain

// ScheduledSession pairs a session with the overlay for its venue-local day.
type ScheduledSession struct {
	Session   Session    `json:"session"`
	VenueDate string     `json:"venue_date"`
	Overlay   DayOverlay `json:"overlay"`
}

// ReconciledView is the merged, derived structure the countdown engine
// consumes: every session carries its (possibly empty) day overlay, and
// overlay dates without a session are preserved, not discarded.
type ReconciledView struct {
	EventName     string             `json:"event_name"`
	VenueTimezone string             `json:"venue_timezone"`
	Sessions      []ScheduledSession `json:"sessions"`
	// UnusedDays lists overlay dates with no session, sorted ascending.
	// Operators may pre-configure days before sessions are confirmed.
	UnusedDays []string `json:"unused_days,omitempty"`
}
