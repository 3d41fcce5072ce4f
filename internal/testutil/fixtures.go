package testutil

import (
	"time"

	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/google/uuid"
)

// MustParse parses an RFC3339 instant or panics. Test fixtures only.
func MustParse(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Session options
type SessionOption func(*domain.Session)

func WithEnd(end time.Time) SessionOption {
	return func(s *domain.Session) {
		s.End = &end
	}
}

func WithLabel(label string) SessionOption {
	return func(s *domain.Session) {
		s.Label = label
	}
}

// NewTestSession builds a session starting at the given instant.
func NewTestSession(id string, start time.Time, opts ...SessionOption) domain.Session {
	s := domain.Session{ID: id, Label: id, Start: start}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewTestSchedule builds a valid UTC-venue schedule document from sessions.
func NewTestSchedule(sessions ...domain.Session) domain.ScheduleDocument {
	return domain.ScheduleDocument{
		EventName:     "TEST GRAND PRIX",
		VenueTimezone: "UTC",
		Sessions:      sessions,
	}
}

// StandardWeekend is a three-session weekend: practice and qualifying on
// 2024-03-01/02, the race on 2024-03-03.
func StandardWeekend() domain.ScheduleDocument {
	return NewTestSchedule(
		NewTestSession("fp1", MustParse("2024-03-01T10:00:00Z"),
			WithLabel("Practice 1"), WithEnd(MustParse("2024-03-01T11:00:00Z"))),
		NewTestSession("quali", MustParse("2024-03-02T14:00:00Z"),
			WithLabel("Qualifying"), WithEnd(MustParse("2024-03-02T15:00:00Z"))),
		NewTestSession("race", MustParse("2024-03-03T15:00:00Z"),
			WithLabel("Race"), WithEnd(MustParse("2024-03-03T17:00:00Z"))),
	)
}

// Commit options
type CommitOption func(*domain.CommitRecord)

func WithAuthor(author string) CommitOption {
	return func(c *domain.CommitRecord) {
		c.Author = author
	}
}

func WithDiffSummary(summary string) CommitOption {
	return func(c *domain.CommitRecord) {
		c.DiffSummary = summary
	}
}

func WithRollbackOf(version int64) CommitOption {
	return func(c *domain.CommitRecord) {
		c.RollbackOf = &version
	}
}

// NewTestCommit builds a commit record at the given log version.
func NewTestCommit(version int64, opts ...CommitOption) *domain.CommitRecord {
	c := &domain.CommitRecord{
		Version:      version,
		ID:           uuid.New().String(),
		CommittedAt:  time.Now().UTC().Truncate(time.Second),
		Author:       "test-operator",
		Message:      "test commit",
		DiffSummary:  "overlay",
		ScheduleHash: "sha256:0",
		OverlayHash:  "sha256:0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
