package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/pitwall/internal/cli/formatter"
	"github.com/alexanderramin/pitwall/internal/countdown"
)

type tickMsg time.Time

type countdownMsg struct {
	state countdown.State
	err   error
}

type watchKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// watchModel is the live countdown view: it recomputes the state every
// second and rerenders in place.
type watchModel struct {
	app   *App
	keys  watchKeyMap
	state countdown.State
	err   error
	ready bool
	width int
}

func newWatchModel(app *App) watchModel {
	return watchModel{app: app, keys: defaultWatchKeys()}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.loadState(), tickEverySecond())
}

func tickEverySecond() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) loadState() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		state, err := app.Dashboard.Countdown(context.Background(), time.Now())
		return countdownMsg{state: state, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadState(), tickEverySecond())

	case countdownMsg:
		m.state = msg.state
		m.err = msg.err
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadState()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	if !m.ready {
		return formatter.Dim("Loading…")
	}

	var content string
	if m.err != nil {
		content = formatter.StyleRed.Render(fmt.Sprintf("Error: %v", m.err))
	} else {
		content = strings.TrimRight(formatter.FormatCountdown(m.state, m.app.display()), "\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formatter.ColorDim).
		Padding(1, 2).
		Render(content)

	clock := formatter.Dim(time.Now().In(m.app.display()).Format("15:04:05 MST"))
	help := formatter.Dim(fmt.Sprintf("%s  %s",
		m.keys.Refresh.Help().Key+" "+m.keys.Refresh.Help().Desc,
		m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc))

	return box + "\n" + clock + "  " + help + "\n"
}
