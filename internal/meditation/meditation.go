// Package meditation is the append-only ledger of meditation sessions
// and its derived totals and streaks.
package meditation

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/storage"
	"github.com/haven-app/haven/internal/utils"
)

// Tracks is the built-in guided meditation catalog.
var Tracks = []models.MeditationTrack{
	{ID: "calm-morning", Title: "Calm Morning", Duration: 300},
	{ID: "quick-reset", Title: "Quick Reset", Duration: 180},
	{ID: "deep-focus", Title: "Deep Focus", Duration: 600},
	{ID: "evening-unwind", Title: "Evening Unwind", Duration: 420},
	{ID: "sleep-journey", Title: "Sleep Journey", Duration: 900},
}

// TrackByID looks up a catalog track.
func TrackByID(id string) (models.MeditationTrack, error) {
	for _, t := range Tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.MeditationTrack{}, fmt.Errorf("unknown track: %q", id)
}

// Ledger records and reads meditation sessions through a storage
// Provider.
type Ledger struct {
	store storage.Provider
	now   func() time.Time
}

func NewLedger(store storage.Provider) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// NewLedgerWithClock is NewLedger with an injected clock for tests;
// streaks depend on what "today" is.
func NewLedgerWithClock(store storage.Provider, now func() time.Time) *Ledger {
	return &Ledger{store: store, now: now}
}

// RecordSession appends a session with a generated id and the current
// time. Duration is the track's declared length in seconds: callers
// record a session only when a track finishes naturally, never for
// paused or abandoned playback, so no partial-credit sessions exist.
func (l *Ledger) RecordSession(trackID string, duration int, completed bool) (models.MeditationSession, error) {
	if trackID == "" {
		return models.MeditationSession{}, fmt.Errorf("track id cannot be empty")
	}
	if duration <= 0 {
		return models.MeditationSession{}, fmt.Errorf("duration must be positive, got %d", duration)
	}

	session := models.MeditationSession{
		ID:        uuid.New().String(),
		Date:      l.now(),
		TrackID:   trackID,
		Duration:  duration,
		Completed: completed,
	}
	if err := l.store.AddMeditationSession(session); err != nil {
		return models.MeditationSession{}, err
	}
	return session, nil
}

// Sessions returns all recorded sessions, oldest first.
func (l *Ledger) Sessions() ([]models.MeditationSession, error) {
	return l.store.GetMeditationSessions()
}

// TotalMinutes sums the duration of completed sessions, converted to
// minutes and rounded to the nearest integer.
func (l *Ledger) TotalMinutes() (int, error) {
	sessions, err := l.store.GetMeditationSessions()
	if err != nil {
		return 0, err
	}

	totalSeconds := 0
	for _, s := range sessions {
		if s.Completed {
			totalSeconds += s.Duration
		}
	}
	return int(math.Round(float64(totalSeconds) / 60)), nil
}

// CurrentStreak counts consecutive calendar days with at least one
// completed session, ending today. A day counts if any completed
// session falls on it; if today has none the streak is 0. This is a
// calendar-day streak, not a rolling 24-hour window: sessions at 23:59
// and 00:01 land on different streak days, and a full day without a
// session breaks the streak no matter how few hours actually passed.
func (l *Ledger) CurrentStreak() (int, error) {
	sessions, err := l.store.GetMeditationSessions()
	if err != nil {
		return 0, err
	}

	days := make(map[string]bool)
	for _, s := range sessions {
		if s.Completed {
			days[utils.DateKey(s.Date)] = true
		}
	}

	today := l.now()
	if !days[utils.DateKey(today)] {
		return 0, nil
	}

	streak := 1
	for {
		prev := today.AddDate(0, 0, -streak)
		if !days[utils.DateKey(prev)] {
			break
		}
		streak++
	}
	return streak, nil
}
