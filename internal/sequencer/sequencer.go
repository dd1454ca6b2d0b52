// Package sequencer holds the tick-driven state machines behind the
// breathing exercise and the meditation player. Both are pure state:
// something else (the TUI's once-per-second tick, or a test loop)
// delivers ticks, always in order and never concurrently.
package sequencer

import (
	"fmt"

	"github.com/haven-app/haven/internal/constants"
)

// Phase is one step of a breathing cycle.
type Phase struct {
	Name    string
	Seconds int
}

// State is the run state of a Sequencer.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateDone    State = "done"
)

// Sequencer cycles through its phases one second at a time. Each tick
// decrements the remaining time of the current phase; at zero it
// advances to the next phase and resets that phase's duration.
// Returning to the first phase completes a cycle. If a target cycle
// count is set, reaching it is terminal until Reset.
type Sequencer struct {
	phases       []Phase
	idx          int
	remaining    int
	cycles       int
	targetCycles int
	state        State
}

// New builds a sequencer over the given phases. targetCycles of 0
// means run until reset.
func New(phases []Phase, targetCycles int) (*Sequencer, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("sequencer needs at least one phase")
	}
	for _, p := range phases {
		if p.Seconds <= 0 {
			return nil, fmt.Errorf("phase %q must have a positive duration", p.Name)
		}
	}
	return &Sequencer{phases: phases, targetCycles: targetCycles, state: StateIdle}, nil
}

// NewBreathing returns the 4-7-8 breathing sequencer.
func NewBreathing(targetCycles int) *Sequencer {
	s, _ := New([]Phase{
		{Name: "Inhale", Seconds: constants.BreathInhaleSec},
		{Name: "Hold", Seconds: constants.BreathHoldSec},
		{Name: "Exhale", Seconds: constants.BreathExhaleSec},
		{Name: "Rest", Seconds: constants.BreathRestSec},
	}, targetCycles)
	return s
}

// Start begins ticking from the first phase. Starting an already
// running or paused sequencer is a no-op.
func (s *Sequencer) Start() {
	if s.state == StateRunning || s.state == StatePaused {
		return
	}
	s.idx = 0
	s.remaining = s.phases[0].Seconds
	s.cycles = 0
	s.state = StateRunning
}

// Pause suspends tick handling without losing the remaining time.
func (s *Sequencer) Pause() {
	if s.state == StateRunning {
		s.state = StatePaused
	}
}

// Resume continues a paused sequencer.
func (s *Sequencer) Resume() {
	if s.state == StatePaused {
		s.state = StateRunning
	}
}

// Reset returns to the initial state with the cycle counter at zero.
// It is the only way out of StateDone.
func (s *Sequencer) Reset() {
	s.idx = 0
	s.remaining = 0
	s.cycles = 0
	s.state = StateIdle
}

// Tick consumes one second. Ticks are ignored unless running.
func (s *Sequencer) Tick() {
	if s.state != StateRunning {
		return
	}

	s.remaining--
	if s.remaining > 0 {
		return
	}

	s.idx = (s.idx + 1) % len(s.phases)
	if s.idx == 0 {
		s.cycles++
		if s.targetCycles > 0 && s.cycles >= s.targetCycles {
			s.state = StateDone
			s.remaining = 0
			return
		}
	}
	s.remaining = s.phases[s.idx].Seconds
}

// Current returns the active phase and its remaining seconds.
func (s *Sequencer) Current() (Phase, int) {
	return s.phases[s.idx], s.remaining
}

// Cycles returns the number of completed full cycles.
func (s *Sequencer) Cycles() int {
	return s.cycles
}

// State returns the current run state.
func (s *Sequencer) State() State {
	return s.state
}
