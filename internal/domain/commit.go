package domain

import "time"

// CommitRecord is one immutable entry in the append-only change log.
// Version is the log's own strictly increasing sequence; ScheduleVersion
// and OverlayVersion capture the document counters after the change.
// Rollbacks are forward entries pointing backward via RollbackOf.
type CommitRecord struct {
	Version         int64     `json:"version"`
	ID              string    `json:"id"`
	CommittedAt     time.Time `json:"committed_at"`
	Author          string    `json:"author"`
	Message         string    `json:"message"`
	DiffSummary     string    `json:"diff_summary"`
	ScheduleVersion int64     `json:"schedule_version"`
	OverlayVersion  int64     `json:"overlay_version"`
	ScheduleHash    string    `json:"schedule_hash"`
	OverlayHash     string    `json:"overlay_hash"`
	RollbackOf      *int64    `json:"rollback_of,omitempty"`
}

// Touches reports whether the commit changed the named file
// ("schedule" or "overlay") per its diff summary.
func (c *CommitRecord) Touches(file string) bool {
	switch c.DiffSummary {
	case file, "schedule,overlay":
		return true
	default:
		return false
	}
}
