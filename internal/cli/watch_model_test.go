package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pitwall/internal/countdown"
	"github.com/alexanderramin/pitwall/internal/testutil"
)

func TestWatchModel_RendersLoadedState(t *testing.T) {
	app, _ := newTestApp(t)
	m := newWatchModel(app)

	assert.Contains(t, m.View(), "Loading")

	start := testutil.MustParse("2024-03-03T13:00:00Z")
	updated, _ := m.Update(countdownMsg{state: countdown.State{
		Phase: countdown.PhaseUpcoming,
		Next: &countdown.SessionView{
			Session:    testutil.NewTestSession("race", start),
			LocalStart: start,
		},
		TimeRemaining: 2 * time.Hour,
	}})

	view := updated.View()
	assert.Contains(t, view, "UPCOMING")
	assert.Contains(t, view, "2h 00m 00s")
	assert.Contains(t, view, "quit")
}

func TestWatchModel_TickSchedulesReload(t *testing.T) {
	app, _ := newTestApp(t)
	m := newWatchModel(app)

	_, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd, "tick reloads state and rearms the timer")
}

func TestWatchModel_QuitKey(t *testing.T) {
	app, _ := newTestApp(t)
	m := newWatchModel(app)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWatchCmd_RefusesNonInteractive(t *testing.T) {
	app, _ := newTestApp(t)
	app.IsInteractive = func() bool { return false }

	_, err := execute(t, app, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
