// Package mood is the append-only ledger of mood check-ins and its
// derived chart views.
package mood

import (
	"math"
	"time"

	"github.com/haven-app/haven/internal/constants"
	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/storage"
)

// Trend is the direction of a mood window.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Ledger records and reads mood check-ins through a storage Provider.
type Ledger struct {
	store storage.Provider
	now   func() time.Time
}

func NewLedger(store storage.Provider) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// NewLedgerWithClock is NewLedger with an injected clock for tests.
func NewLedgerWithClock(store storage.Provider, now func() time.Time) *Ledger {
	return &Ledger{store: store, now: now}
}

// Record appends a check-in stamped with the current time and returns
// the created entry. The numeric value is always derived from the
// mood's rank; multiple check-ins per day are allowed and all kept.
func (l *Ledger) Record(m models.Mood) (models.MoodEntry, error) {
	value, err := m.Value()
	if err != nil {
		return models.MoodEntry{}, err
	}

	entry := models.MoodEntry{
		Date:  l.now(),
		Value: value,
		Mood:  m,
	}
	if err := l.store.AddMoodEntry(entry); err != nil {
		return models.MoodEntry{}, err
	}
	return entry, nil
}

// Entries returns all check-ins, oldest first.
func (l *Ledger) Entries() ([]models.MoodEntry, error) {
	return l.store.GetMoodEntries()
}

// RecentWindow returns the last n entries in chronological order. If n
// is not positive the default chart window is used.
func (l *Ledger) RecentWindow(n int) ([]models.MoodEntry, error) {
	if n <= 0 {
		n = constants.MoodWindowDays
	}
	entries, err := l.store.GetMoodEntries()
	if err != nil {
		return nil, err
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// AverageValue returns the arithmetic mean of the entries' values,
// rounded to one decimal. Empty input yields 0.
func AverageValue(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Value
	}
	return math.Round(float64(sum)/float64(len(entries))*10) / 10
}

// TrendDirection compares the oldest and newest values in the window.
// This is deliberately a two-point comparison rather than a fitted
// trend line; it reproduces the historical dashboard behavior.
func TrendDirection(entries []models.MoodEntry) Trend {
	if len(entries) < 2 {
		return TrendStable
	}
	first := entries[0].Value
	last := entries[len(entries)-1].Value
	switch {
	case last > first:
		return TrendUp
	case last < first:
		return TrendDown
	default:
		return TrendStable
	}
}
