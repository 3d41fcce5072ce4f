package reconcile

import (
	"testing"
	"time"

	"github.com/alexanderramin/pitwall/internal/domain"
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

func singaporeWeekend() domain.ScheduleDocument {
	end := func(s string) *time.Time { t := ts(s); return &t }
	return domain.ScheduleDocument{
		EventName:     "FORMULA 1 SINGAPORE GRAND PRIX",
		VenueTimezone: "Asia/Singapore",
		Sessions: []domain.Session{
			// 23:30 UTC Friday is Saturday 07:30 venue-local.
			{ID: "fp3", Label: "Practice 3", Start: ts("2024-03-01T23:30:00Z"), End: end("2024-03-02T00:30:00Z")},
			{ID: "quali", Label: "Qualifying", Start: ts("2024-03-02T13:00:00Z"), End: end("2024-03-02T14:00:00Z")},
			{ID: "race", Label: "Race", Start: ts("2024-03-03T12:00:00Z"), End: end("2024-03-03T14:00:00Z")},
		},
	}
}

func TestReconcile_AttachesOverlayByVenueDate(t *testing.T) {
	doc := singaporeWeekend()
	overlay := domain.EmptyOverlay()
	lunch := ts("2024-03-02T05:00:00Z")
	domain.OverlayPatch{Days: map[string]domain.DayPatch{
		"2024-03-02": {Lunch: domain.SetTo(lunch)},
	}}.Apply(&overlay)

	view, err := Reconcile(doc, overlay)
	require.NoError(t, err)
	require.Len(t, view.Sessions, 3)

	// fp3 starts Friday in UTC but belongs to Saturday at the venue,
	// so it picks up Saturday's overlay along with qualifying.
	assert.Equal(t, "2024-03-02", view.Sessions[0].VenueDate)
	require.NotNil(t, view.Sessions[0].Overlay.Lunch)
	assert.Equal(t, lunch, *view.Sessions[0].Overlay.Lunch)
	require.NotNil(t, view.Sessions[1].Overlay.Lunch)

	// Race day has no overlay: all-unset, not an error.
	assert.Equal(t, "2024-03-03", view.Sessions[2].VenueDate)
	assert.True(t, view.Sessions[2].Overlay.IsEmpty())
	assert.Empty(t, view.UnusedDays)
}

func TestReconcile_PreservesUnusedOverlayDays(t *testing.T) {
	doc := singaporeWeekend()
	overlay := domain.EmptyOverlay()
	domain.OverlayPatch{Days: map[string]domain.DayPatch{
		"2024-03-07": {Breakfast: domain.SetTo(ts("2024-03-06T23:00:00Z"))},
		"2024-03-05": {Breakfast: domain.SetTo(ts("2024-03-04T23:00:00Z"))},
	}}.Apply(&overlay)

	view, err := Reconcile(doc, overlay)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-05", "2024-03-07"}, view.UnusedDays)
}

func TestReconcile_DeterministicOrdering(t *testing.T) {
	doc := domain.ScheduleDocument{
		VenueTimezone: "UTC",
		Sessions: []domain.Session{
			// Same start instant: ties break by id lexicographically.
			{ID: "b-demo", Start: ts("2024-03-01T10:00:00Z")},
			{ID: "a-demo", Start: ts("2024-03-01T10:00:00Z")},
		},
	}
	overlay := domain.EmptyOverlay()

	first, err := Reconcile(doc, overlay)
	require.NoError(t, err)
	require.Len(t, first.Sessions, 2)
	assert.Equal(t, "a-demo", first.Sessions[0].Session.ID)

	for i := 0; i < 20; i++ {
		again, err := Reconcile(doc, overlay)
		require.NoError(t, err)
		assert.Equal(t, first, again, "reconcile must be deterministic across calls")
	}
}

func TestReconcile_DoesNotMutateInputs(t *testing.T) {
	doc := singaporeWeekend()
	overlay := domain.EmptyOverlay()
	lunch := ts("2024-03-02T05:00:00Z")
	domain.OverlayPatch{Days: map[string]domain.DayPatch{
		"2024-03-02": {Lunch: domain.SetTo(lunch)},
	}}.Apply(&overlay)

	view, err := Reconcile(doc, overlay)
	require.NoError(t, err)

	// Mutating the view must not leak back into the overlay.
	*view.Sessions[0].Overlay.Lunch = ts("2030-01-01T00:00:00Z")
	assert.Equal(t, lunch, *overlay.Days["2024-03-02"].Lunch)
}

func TestReconcile_RejectsUnknownVenueTimezone(t *testing.T) {
	doc := domain.ScheduleDocument{VenueTimezone: "Nowhere/Invalid"}
	_, err := Reconcile(doc, domain.EmptyOverlay())
	assert.Error(t, err)
}
