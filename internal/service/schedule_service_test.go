package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/testutil"
)

func TestScheduleService_ReplaceCommits(t *testing.T) {
	e := newEnv(t)
	svc := NewScheduleService(e.schedules, e.gw, openGate())

	doc, rec, err := svc.Replace(context.Background(), "alex", testutil.StandardWeekend(), 0, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc.Version)
	assert.Equal(t, "alex", rec.Author)
	assert.Equal(t, "replace schedule: TEST GRAND PRIX", rec.Message, "default message carries the event")

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, doc, current)
}

func TestScheduleService_GateDeniesUnknownOperator(t *testing.T) {
	e := newEnv(t)
	svc := NewScheduleService(e.schedules, e.gw, closedGate())

	_, _, err := svc.Replace(context.Background(), "mallory", testutil.StandardWeekend(), 0, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.gw.Head(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound, "denied mutation touches nothing")
}

func TestScheduleService_StaleBaseVersion(t *testing.T) {
	e := newEnv(t)
	svc := NewScheduleService(e.schedules, e.gw, openGate())
	ctx := context.Background()

	_, _, err := svc.Replace(ctx, "alex", testutil.StandardWeekend(), 0, "")
	require.NoError(t, err)

	_, _, err = svc.Replace(ctx, "sam", testutil.StandardWeekend(), 0, "")
	assert.ErrorIs(t, err, domain.ErrStaleVersion)
}
