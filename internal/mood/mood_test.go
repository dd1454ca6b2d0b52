package mood

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/storage"
)

func setupLedger(t *testing.T, now func() time.Time) *Ledger {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return NewLedgerWithClock(store, now)
}

func entriesWithValues(values ...int) []models.MoodEntry {
	entries := make([]models.MoodEntry, len(values))
	for i, v := range values {
		entries[i] = models.MoodEntry{Value: v}
	}
	return entries
}

func TestRecord(t *testing.T) {
	when := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	ledger := setupLedger(t, func() time.Time { return when })

	entry, err := ledger.Record(models.MoodGreat)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if entry.Value != 5 {
		t.Errorf("Record(great).Value = %d, want 5 (derived from rank)", entry.Value)
	}
	if !entry.Date.Equal(when) {
		t.Errorf("Record().Date = %v, want injected clock %v", entry.Date, when)
	}

	if _, err := ledger.Record(models.Mood("ecstatic")); err == nil {
		t.Error("Record(unknown mood) succeeded, want error")
	}

	// The rejected mood must not have been written.
	entries, err := ledger.Entries()
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestRecordAllowsMultiplePerDay(t *testing.T) {
	when := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	ledger := setupLedger(t, func() time.Time { return when })

	for _, m := range []models.Mood{models.MoodBad, models.MoodOkay, models.MoodGood} {
		if _, err := ledger.Record(m); err != nil {
			t.Fatalf("Record(%s) failed: %v", m, err)
		}
	}

	entries, err := ledger.Entries()
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3 (no same-day dedup)", len(entries))
	}
	want := []models.Mood{models.MoodBad, models.MoodOkay, models.MoodGood}
	for i, m := range want {
		if entries[i].Mood != m {
			t.Errorf("entries[%d].Mood = %s, want %s", i, entries[i].Mood, m)
		}
	}
}

func TestRecentWindow(t *testing.T) {
	ledger := setupLedger(t, time.Now)

	moods := []models.Mood{
		models.MoodAwful, models.MoodBad, models.MoodOkay, models.MoodGood,
		models.MoodGreat, models.MoodOkay, models.MoodGood, models.MoodBad,
		models.MoodOkay,
	}
	for _, m := range moods {
		if _, err := ledger.Record(m); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	t.Run("default window", func(t *testing.T) {
		window, err := ledger.RecentWindow(0)
		if err != nil {
			t.Fatalf("RecentWindow() failed: %v", err)
		}
		if len(window) != 7 {
			t.Fatalf("got %d entries, want default window of 7", len(window))
		}
		if window[0].Mood != models.MoodOkay {
			t.Errorf("window starts at %s, want okay (third entry)", window[0].Mood)
		}
	})

	t.Run("explicit window", func(t *testing.T) {
		window, err := ledger.RecentWindow(3)
		if err != nil {
			t.Fatalf("RecentWindow() failed: %v", err)
		}
		if len(window) != 3 {
			t.Fatalf("got %d entries, want 3", len(window))
		}
		if window[2].Mood != models.MoodOkay {
			t.Errorf("newest entry is %s, want okay", window[2].Mood)
		}
	})

	t.Run("window larger than history", func(t *testing.T) {
		window, err := ledger.RecentWindow(100)
		if err != nil {
			t.Fatalf("RecentWindow() failed: %v", err)
		}
		if len(window) != len(moods) {
			t.Errorf("got %d entries, want all %d", len(window), len(moods))
		}
	})
}

func TestAverageValue(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   float64
	}{
		{"typical week", []int{3, 4, 2, 5, 4, 3, 4}, 3.6},
		{"empty", nil, 0},
		{"single", []int{5}, 5},
		{"rounds to one decimal", []int{1, 2}, 1.5},
		{"repeating decimal", []int{1, 1, 2}, 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageValue(entriesWithValues(tt.values...)); got != tt.want {
				t.Errorf("AverageValue(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestTrendDirection(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   Trend
	}{
		{"improving", []int{2, 3, 4}, TrendUp},
		{"declining", []int{4, 1, 3}, TrendDown},
		{"flat endpoints", []int{3, 5, 1, 3}, TrendStable},
		{"middle ignored", []int{2, 1, 1, 5}, TrendUp},
		{"single entry", []int{4}, TrendStable},
		{"empty", nil, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendDirection(entriesWithValues(tt.values...)); got != tt.want {
				t.Errorf("TrendDirection(%v) = %s, want %s", tt.values, got, tt.want)
			}
		})
	}
}
