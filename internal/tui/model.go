// Package tui runs the game in a terminal with bubbletea. It owns no game
// state: keys go to the app by name and each frame tick advances the app.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldstation/fieldstation/internal/app"
	"github.com/fieldstation/fieldstation/internal/screen"
	"github.com/fieldstation/fieldstation/internal/state"
)

type frameMsg time.Time

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B7355"))

// Model adapts an App to bubbletea.
type Model struct {
	app      *app.App
	keys     KeyMap
	interval time.Duration
	width    int
	height   int
}

// NewModel wraps a.
func NewModel(a *app.App) Model {
	return Model{
		app:      a,
		keys:     DefaultKeyMap,
		interval: a.Engine().Interval,
	}
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return m.frame()
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.app.Frame()
		if m.app.Quit() {
			return m, tea.Quit
		}
		return m, m.frame()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.app.View().Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		m.app.Dispatch(screen.Key(msg.String()))
		if m.app.Quit() {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the active screen, centred when the size is known.
func (m Model) View() string {
	out := m.app.Render()
	if m.app.State() == state.Playing {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.help())
	}
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, out)
	}
	return out
}

func (m Model) help() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " · "))
}

// Run blocks until the player quits.
func Run(a *app.App) error {
	_, err := tea.NewProgram(NewModel(a), tea.WithAltScreen()).Run()
	return err
}
