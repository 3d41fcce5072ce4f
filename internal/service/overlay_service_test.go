package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/testutil"
)

func TestOverlayService_ApplyPatch(t *testing.T) {
	e := newEnv(t)
	svc := NewOverlayService(e.schedules, e.overlays, e.gw, openGate())
	ctx := context.Background()

	lunch := testutil.MustParse("2024-03-02T13:00:00Z")
	patch := domain.OverlayPatch{Days: map[string]domain.DayPatch{
		"2024-03-02": {Lunch: domain.SetTo(lunch)},
	}}
	overlay, rec, err := svc.ApplyPatch(ctx, "alex", patch, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, overlay.Version)
	assert.Equal(t, "update configuration", rec.Message)
	require.NotNil(t, overlay.Days["2024-03-02"].Lunch)
	assert.Equal(t, lunch, *overlay.Days["2024-03-02"].Lunch)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, overlay, got)
}

func TestOverlayService_GateDeniesUnknownOperator(t *testing.T) {
	e := newEnv(t)
	svc := NewOverlayService(e.schedules, e.overlays, e.gw, closedGate())

	patch := domain.OverlayPatch{Days: map[string]domain.DayPatch{
		"2024-03-02": {Lunch: domain.SetTo(testutil.MustParse("2024-03-02T13:00:00Z"))},
	}}
	_, _, err := svc.ApplyPatch(context.Background(), "mallory", patch, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.EqualValues(t, 0, e.overlays.Version())
}

func TestOverlayService_ResetDayWritesDefaults(t *testing.T) {
	e := newEnv(t)
	svc := NewOverlayService(e.schedules, e.overlays, e.gw, openGate())
	ctx := context.Background()

	// Pre-existing override on a Saturday.
	patch := domain.OverlayPatch{Days: map[string]domain.DayPatch{
		"2024-03-02": {Breakfast: domain.SetTo(testutil.MustParse("2024-03-02T05:00:00Z"))},
	}}
	_, _, err := svc.ApplyPatch(ctx, "alex", patch, "")
	require.NoError(t, err)

	overlay, rec, err := svc.ResetDay(ctx, "alex", "2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, "reset 2024-03-02 to defaults", rec.Message)

	day := overlay.Days["2024-03-02"]
	require.NotNil(t, day.Breakfast)
	assert.Equal(t, testutil.MustParse("2024-03-02T08:00:00Z"), *day.Breakfast, "Saturday breakfast default")
	require.NotNil(t, day.HotelDeparture)
	assert.Equal(t, testutil.MustParse("2024-03-02T10:00:00Z"), *day.HotelDeparture)
	assert.EqualValues(t, 2, overlay.Version, "reset is a normal versioned edit")
}

func TestOverlayService_ResetDayUsesVenueTimezone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	doc := testutil.StandardWeekend()
	doc.VenueTimezone = "Asia/Singapore"
	_, _, err := e.gw.ReplaceSchedule(ctx, doc, 0, "alex", "import")
	require.NoError(t, err)

	svc := NewOverlayService(e.schedules, e.overlays, e.gw, openGate())
	overlay, _, err := svc.ResetDay(ctx, "alex", "2024-03-01")
	require.NoError(t, err)

	day := overlay.Days["2024-03-01"]
	require.NotNil(t, day.Breakfast)
	// 07:00 SGT on a Friday is 23:00 UTC the previous day.
	assert.Equal(t, testutil.MustParse("2024-02-29T23:00:00Z"), *day.Breakfast)
}
