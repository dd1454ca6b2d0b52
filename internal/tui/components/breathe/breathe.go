// Package breathe renders the tick-driven 4-7-8 breathing exercise.
package breathe

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haven-app/haven/internal/sequencer"
)

var (
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(30).
			Align(lipgloss.Center)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0)
)

type Model struct {
	seq    *sequencer.Sequencer
	width  int
	height int
}

// New builds the breathing component. targetCycles of 0 runs until
// reset.
func New(targetCycles int) Model {
	return Model{seq: sequencer.NewBreathing(targetCycles)}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.seq.Tick()
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			switch m.seq.State() {
			case sequencer.StateIdle:
				m.seq.Start()
			case sequencer.StateRunning:
				m.seq.Pause()
			case sequencer.StatePaused:
				m.seq.Resume()
			}
		case "r":
			m.seq.Reset()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var content string

	switch m.seq.State() {
	case sequencer.StateIdle:
		content = lipgloss.JoinVertical(lipgloss.Center,
			phaseStyle.Render("4-7-8 Breathing"),
			hintStyle.Render("Inhale 4s, hold 7s, exhale 8s, rest 1s.\nPress space to begin."),
		)
	case sequencer.StateDone:
		content = lipgloss.JoinVertical(lipgloss.Center,
			phaseStyle.Render("Well done"),
			countStyle.Render(fmt.Sprintf("%d cycle(s) completed", m.seq.Cycles())),
			hintStyle.Render("Press r to go again."),
		)
	default:
		phase, remaining := m.seq.Current()
		label := phase.Name
		if m.seq.State() == sequencer.StatePaused {
			label += " (paused)"
		}
		content = lipgloss.JoinVertical(lipgloss.Center,
			phaseStyle.Render(label),
			countStyle.Render(fmt.Sprintf("%d", remaining)),
			hintStyle.Render(fmt.Sprintf("cycle %d · space pause · r reset", m.seq.Cycles()+1)),
		)
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
