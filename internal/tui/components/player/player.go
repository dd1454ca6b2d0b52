// Package player renders the tick-driven meditation playback view.
package player

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/sequencer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0)
)

// FinishedMsg is emitted once when the loaded track plays to its end.
type FinishedMsg struct {
	Track models.MeditationTrack
}

type Model struct {
	track    models.MeditationTrack
	player   *sequencer.Player
	progress progress.Model
	width    int
	height   int
}

func New() Model {
	return Model{progress: progress.New(progress.WithDefaultGradient())}
}

// SetTrack loads a track and leaves it paused at the start.
func (m *Model) SetTrack(track models.MeditationTrack) {
	m.track = track
	m.player = sequencer.NewPlayer(track.Duration)
}

// Loaded reports whether a track has been selected.
func (m Model) Loaded() bool {
	return m.player != nil
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := width - 8
	if w > 60 {
		w = 60
	}
	if w > 0 {
		m.progress.Width = w
	}
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
		if m.player != nil && m.player.Tick() {
			track := m.track
			return m, tea.Batch(tick(), func() tea.Msg {
				return FinishedMsg{Track: track}
			})
		}
		return m, tick()
	case tea.KeyMsg:
		if m.player == nil {
			return m, nil
		}
		switch msg.String() {
		case " ":
			switch m.player.State() {
			case sequencer.PlaybackPlaying:
				m.player.Pause()
			case sequencer.PlaybackPaused:
				m.player.Play()
			}
		case "r":
			m.player.Reset()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.player == nil {
		return hintStyle.Render("Pick a track and press enter.")
	}

	var status string
	switch m.player.State() {
	case sequencer.PlaybackPlaying:
		status = "playing"
	case sequencer.PlaybackPaused:
		status = "paused · press space"
	case sequencer.PlaybackEnded:
		status = "finished · session recorded · r to replay"
	}

	ratio := float64(m.player.Elapsed()) / float64(m.player.Duration())
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.track.Title),
		m.progress.ViewAs(ratio),
		timeStyle.Render(fmt.Sprintf("%s / %s", formatClock(m.player.Elapsed()), formatClock(m.player.Duration()))),
		hintStyle.Render(status),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
