package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haven-app/haven/internal/habits"
	"github.com/haven-app/haven/internal/meditation"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = docStyle.Render(m.dashboardModel.View())
	case StateMeditate:
		content = m.viewMeditate()
	case StateBreathe:
		content = m.breatheModel.View()
	case StateHabits:
		content = docStyle.Render(m.viewHabits())
	}

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Dashboard", "Meditate", "Breathe", "Habits"}
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewMeditate() string {
	var b strings.Builder
	for i, t := range meditation.Tracks {
		line := fmt.Sprintf("%s (%d:%02d)", t.Title, t.Duration/60, t.Duration%60)
		if i == m.trackCursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(mutedStyle.Render("  "+line) + "\n")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		docStyle.Render(b.String()),
		m.playerModel.View(),
	)
}

func (m Model) viewHabits() string {
	if len(m.habitList) == 0 {
		return mutedStyle.Render("No habits yet. Add one with 'haven habit add'.")
	}

	week := habits.NewGridWithClock(m.store, m.now).WeekDateKeys()
	today := week[len(week)-1]
	var b strings.Builder
	for i, h := range m.habitList {
		check := "[ ]"
		if h.DaysCompleted[today] {
			check = "[x]"
		}
		rate := habits.WeeklyCompletionRate(h, week)
		line := fmt.Sprintf("%s %-24s %3d%% this week", check, h.Name, rate)
		if i == m.habitCursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}
