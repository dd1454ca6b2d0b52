// Package tui is the interactive terminal surface: a tabbed view over
// the dashboard, meditation player, breathing exercise, and habit
// grid.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haven-app/haven/internal/habits"
	"github.com/haven-app/haven/internal/meditation"
	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/mood"
	"github.com/haven-app/haven/internal/storage"
	"github.com/haven-app/haven/internal/tui/components/breathe"
	"github.com/haven-app/haven/internal/tui/components/dashboard"
	"github.com/haven-app/haven/internal/tui/components/player"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateMeditate
	StateBreathe
	StateHabits
)

// DefaultBreathingCycles is the target for a breathing session started
// from the TUI.
const DefaultBreathingCycles = 4

type Model struct {
	store          storage.Provider
	state          SessionState
	keys           KeyMap
	help           help.Model
	dashboardModel dashboard.Model
	breatheModel   breathe.Model
	playerModel    player.Model
	habitList      []models.Habit
	habitCursor    int
	trackCursor    int
	status         string
	quitting       bool
	width          int
	height         int

	// now backs habit-day resolution so a session left open across
	// midnight keeps toggling the current day.
	now func() time.Time
}

func NewModel(store storage.Provider, initial SessionState) Model {
	grid := habits.NewGrid(store)
	habitList, _ := grid.All()

	return Model{
		store:          store,
		state:          initial,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dashboardModel: dashboard.New(buildDashboardData(store)),
		breatheModel:   breathe.New(DefaultBreathingCycles),
		playerModel:    player.New(),
		habitList:      habitList,
		now:            time.Now,
	}
}

func buildDashboardData(store storage.Provider) dashboard.Data {
	data := dashboard.Data{}

	if settings, err := store.GetSettings(); err == nil {
		data.UserName = settings.UserName
	}

	moodLedger := mood.NewLedger(store)
	if window, err := moodLedger.RecentWindow(0); err == nil {
		data.MoodEntries = len(window)
		data.MoodAverage = mood.AverageValue(window)
		data.MoodTrend = mood.TrendDirection(window)
	}

	medLedger := meditation.NewLedger(store)
	if minutes, err := medLedger.TotalMinutes(); err == nil {
		data.TotalMinutes = minutes
	}
	if streak, err := medLedger.CurrentStreak(); err == nil {
		data.Streak = streak
	}

	grid := habits.NewGrid(store)
	if all, err := grid.All(); err == nil {
		week := grid.WeekDateKeys()
		for _, h := range all {
			data.Habits = append(data.Habits, dashboard.HabitProgress{
				Name: h.Name,
				Rate: habits.WeeklyCompletionRate(h, week),
			})
		}
	}

	return data
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateMeditate:
		keys = append(keys, m.keys.Enter, m.keys.Space)
	case StateBreathe:
		keys = append(keys, m.keys.Space, m.keys.Reset)
	case StateHabits:
		keys = append(keys, m.keys.Space)
	case StateDashboard:
		keys = append(keys, m.keys.Refresh)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	actions := []key.Binding{m.keys.Space, m.keys.Reset, m.keys.Refresh}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.breatheModel.Init(), m.playerModel.Init())
}

// Run starts the TUI at the given view and blocks until the user
// quits.
func Run(store storage.Provider, initial SessionState) error {
	p := tea.NewProgram(NewModel(store, initial), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
