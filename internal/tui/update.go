package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haven-app/haven/internal/habits"
	"github.com/haven-app/haven/internal/meditation"
	"github.com/haven-app/haven/internal/tui/components/breathe"
	"github.com/haven-app/haven/internal/tui/components/player"
)

const tabCount = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 4
		m.breatheModel.SetSize(msg.Width, contentHeight)
		m.playerModel.SetSize(msg.Width, contentHeight/2)
		m.dashboardModel.SetSize(msg.Width, contentHeight)
		m.help.Width = msg.Width
		return m, nil

	case breathe.TickMsg:
		var cmd tea.Cmd
		m.breatheModel, cmd = m.breatheModel.Update(msg)
		return m, cmd

	case player.TickMsg:
		var cmd tea.Cmd
		m.playerModel, cmd = m.playerModel.Update(msg)
		return m, cmd

	case player.FinishedMsg:
		// The track played to its natural end: record the session at
		// the track's declared length and refresh the derived stats.
		ledger := meditation.NewLedger(m.store)
		if _, err := ledger.RecordSession(msg.Track.ID, msg.Track.Duration, true); err != nil {
			m.status = fmt.Sprintf("Failed to record session: %v", err)
		} else {
			m.status = fmt.Sprintf("Recorded session: %s", msg.Track.Title)
			m.dashboardModel.SetData(buildDashboardData(m.store))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + tabCount - 1) % tabCount
			m.status = ""
			return m, nil
		}

		switch m.state {
		case StateDashboard:
			if key.Matches(msg, m.keys.Refresh) {
				m.dashboardModel.SetData(buildDashboardData(m.store))
				m.status = "Refreshed"
			}
		case StateMeditate:
			return m.updateMeditate(msg)
		case StateBreathe:
			var cmd tea.Cmd
			m.breatheModel, cmd = m.breatheModel.Update(msg)
			return m, cmd
		case StateHabits:
			return m.updateHabits(msg)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateMeditate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.trackCursor > 0 {
			m.trackCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.trackCursor < len(meditation.Tracks)-1 {
			m.trackCursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.playerModel.SetTrack(meditation.Tracks[m.trackCursor])
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.playerModel, cmd = m.playerModel.Update(msg)
	return m, cmd
}

func (m Model) updateHabits(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.habitCursor > 0 {
			m.habitCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.habitCursor < len(m.habitList)-1 {
			m.habitCursor++
		}
	case key.Matches(msg, m.keys.Space), key.Matches(msg, m.keys.Enter):
		if len(m.habitList) == 0 {
			return m, nil
		}
		grid := habits.NewGridWithClock(m.store, m.now)
		week := grid.WeekDateKeys()
		today := week[len(week)-1]
		updated, err := grid.ToggleDay(m.habitList[m.habitCursor].ID, today)
		if err != nil {
			m.status = fmt.Sprintf("Toggle failed: %v", err)
			return m, nil
		}
		m.habitList[m.habitCursor] = updated
		m.dashboardModel.SetData(buildDashboardData(m.store))
	}
	return m, nil
}
