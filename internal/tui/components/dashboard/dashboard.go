// Package dashboard renders the wellbeing summary view.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/haven-app/haven/internal/mood"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 0, 0, 0)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// HabitProgress is one habit's weekly completion for the bars.
type HabitProgress struct {
	Name string
	Rate int
}

// Data is everything the dashboard shows, assembled by the caller.
type Data struct {
	UserName     string
	MoodAverage  float64
	MoodTrend    mood.Trend
	MoodEntries  int
	TotalMinutes int
	Streak       int
	Habits       []HabitProgress
}

type Model struct {
	data   Data
	bar    progress.Model
	width  int
	height int
}

func New(data Data) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 24
	bar.ShowPercentage = false
	return Model{data: data, bar: bar}
}

func (m *Model) SetData(data Data) {
	m.data = data
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	var b strings.Builder

	greeting := "Welcome back"
	if m.data.UserName != "" {
		greeting = "Welcome back, " + m.data.UserName
	}
	b.WriteString(headingStyle.Render(greeting) + "\n")

	b.WriteString(headingStyle.Render("Mood") + "\n")
	if m.data.MoodEntries == 0 {
		b.WriteString(mutedStyle.Render("No check-ins yet.") + "\n")
	} else {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Average %.1f/5 over last %d check-in(s), trend %s",
			m.data.MoodAverage, m.data.MoodEntries, trendLabel(m.data.MoodTrend))) + "\n")
	}

	b.WriteString(headingStyle.Render("Meditation") + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d minute(s) total · %d day streak",
		m.data.TotalMinutes, m.data.Streak)) + "\n")

	b.WriteString(headingStyle.Render("Habits this week") + "\n")
	if len(m.data.Habits) == 0 {
		b.WriteString(mutedStyle.Render("No habits tracked yet.") + "\n")
	} else {
		for _, h := range m.data.Habits {
			b.WriteString(fmt.Sprintf("%-20s %s %3d%%\n",
				truncate(h.Name, 20), m.bar.ViewAs(float64(h.Rate)/100), h.Rate))
		}
	}

	return b.String()
}

func trendLabel(t mood.Trend) string {
	switch t {
	case mood.TrendUp:
		return "improving"
	case mood.TrendDown:
		return "declining"
	default:
		return "stable"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
