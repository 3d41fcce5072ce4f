package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func TestScheduleDocument_Validate_Accepted(t *testing.T) {
	doc := ScheduleDocument{
		EventName:     "FORMULA 1 SINGAPORE GRAND PRIX",
		VenueTimezone: "Asia/Singapore",
		Sessions: []Session{
			{ID: "fp1", Label: "Practice 1", Start: ts("2024-03-01T10:00:00Z"), End: tsp("2024-03-01T11:00:00Z")},
			{ID: "quali", Label: "Qualifying", Start: ts("2024-03-02T14:00:00Z"), End: tsp("2024-03-02T15:00:00Z")},
			{ID: "race", Label: "Race", Start: ts("2024-03-03T15:00:00Z"), End: tsp("2024-03-03T17:00:00Z")},
		},
	}
	assert.NoError(t, doc.Validate())
}

func TestScheduleDocument_Validate_BackToBackSessionsAccepted(t *testing.T) {
	// [start, end) windows: a session starting at the previous end is legal.
	doc := ScheduleDocument{
		VenueTimezone: "UTC",
		Sessions: []Session{
			{ID: "a", Start: ts("2024-03-01T10:00:00Z"), End: tsp("2024-03-01T11:00:00Z")},
			{ID: "b", Start: ts("2024-03-01T11:00:00Z"), End: tsp("2024-03-01T12:00:00Z")},
		},
	}
	assert.NoError(t, doc.Validate())
}

func TestScheduleDocument_Validate_RejectsOverlap(t *testing.T) {
	doc := ScheduleDocument{
		VenueTimezone: "UTC",
		Sessions: []Session{
			{ID: "a", Start: ts("2024-03-01T10:00:00Z"), End: tsp("2024-03-01T11:30:00Z")},
			{ID: "b", Start: ts("2024-03-01T11:00:00Z"), End: tsp("2024-03-01T12:00:00Z")},
		},
	}
	err := doc.Validate()
	require.ErrorIs(t, err, ErrInvalidSchedule)
	assert.Contains(t, err.Error(), `"a"`)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestScheduleDocument_Validate_RejectsOutOfOrder(t *testing.T) {
	doc := ScheduleDocument{
		VenueTimezone: "UTC",
		Sessions: []Session{
			{ID: "b", Start: ts("2024-03-02T10:00:00Z")},
			{ID: "a", Start: ts("2024-03-01T10:00:00Z")},
		},
	}
	assert.ErrorIs(t, doc.Validate(), ErrInvalidSchedule)
}

func TestScheduleDocument_Validate_RejectsDuplicateID(t *testing.T) {
	doc := ScheduleDocument{
		VenueTimezone: "UTC",
		Sessions: []Session{
			{ID: "a", Start: ts("2024-03-01T10:00:00Z")},
			{ID: "a", Start: ts("2024-03-02T10:00:00Z")},
		},
	}
	assert.ErrorIs(t, doc.Validate(), ErrInvalidSchedule)
}

func TestScheduleDocument_Validate_RejectsEndBeforeStart(t *testing.T) {
	doc := ScheduleDocument{
		VenueTimezone: "UTC",
		Sessions: []Session{
			{ID: "a", Start: ts("2024-03-01T10:00:00Z"), End: tsp("2024-03-01T09:00:00Z")},
		},
	}
	assert.ErrorIs(t, doc.Validate(), ErrInvalidSchedule)
}

func TestScheduleDocument_Validate_RejectsUnknownTimezone(t *testing.T) {
	doc := ScheduleDocument{VenueTimezone: "Mars/Olympus_Mons"}
	assert.ErrorIs(t, doc.Validate(), ErrInvalidSchedule)
}

func TestScheduleDocument_Clone_IsDeep(t *testing.T) {
	doc := ScheduleDocument{
		VenueTimezone: "UTC",
		Sessions: []Session{
			{ID: "a", Start: ts("2024-03-01T10:00:00Z"), End: tsp("2024-03-01T11:00:00Z")},
		},
	}
	clone := doc.Clone()
	clone.Sessions[0].ID = "mutated"
	*clone.Sessions[0].End = ts("2030-01-01T00:00:00Z")

	assert.Equal(t, "a", doc.Sessions[0].ID)
	assert.Equal(t, ts("2024-03-01T11:00:00Z"), *doc.Sessions[0].End)
}

func TestSession_VenueDate_CrossesMidnight(t *testing.T) {
	sgt, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)

	// 23:30 UTC on March 1st is already March 2nd in Singapore (UTC+8).
	s := Session{ID: "fp2", Start: ts("2024-03-01T23:30:00Z")}
	assert.Equal(t, "2024-03-02", s.VenueDate(sgt))
	assert.Equal(t, "2024-03-01", s.VenueDate(time.UTC))
}

// TestScheduleDocument_Validate_RandomSessionSets generates random session
// sets and asserts Validate accepts exactly the sorted, non-overlapping ones.
func TestScheduleDocument_Validate_RandomSessionSets(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	base := ts("2024-03-01T00:00:00Z")

	for i := 0; i < 200; i++ {
		n := 2 + rng.Intn(5)
		sessions := make([]Session, n)
		cursor := base.Add(time.Duration(rng.Intn(12)) * time.Hour)
		for j := range sessions {
			start := cursor.Add(time.Duration(rng.Intn(6)) * time.Hour)
			end := start.Add(time.Duration(1+rng.Intn(3)) * time.Hour)
			sessions[j] = Session{ID: fmt.Sprintf("s%d", j), Start: start, End: &end}
			cursor = end
		}
		overlapping := rng.Intn(2) == 0
		if overlapping {
			// Pull one start back before its predecessor's end.
			k := 1 + rng.Intn(n-1)
			sessions[k].Start = sessions[k-1].End.Add(-time.Minute)
		}

		doc := ScheduleDocument{VenueTimezone: "UTC", Sessions: sessions}
		err := doc.Validate()
		if overlapping {
			assert.ErrorIs(t, err, ErrInvalidSchedule, "iteration %d", i)
		} else {
			assert.NoError(t, err, "iteration %d", i)
		}
	}
}
