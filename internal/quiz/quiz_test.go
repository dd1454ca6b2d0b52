package quiz

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/storage"
)

func setupLedger(t *testing.T) *Ledger {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return NewLedgerWithClock(store, func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	})
}

func TestQuestions(t *testing.T) {
	if len(Questions) != 7 {
		t.Fatalf("len(Questions) = %d, want 7", len(Questions))
	}
	for i, q := range Questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options, want 4", i+1, len(q.Options))
		}
	}

	// The last two items are positively phrased, so their options run
	// from worst to best.
	if Questions[5].Options[0] != "Nearly every day" {
		t.Errorf("question 6 option 0 = %q, want reversed scale", Questions[5].Options[0])
	}
	if Questions[6].Options[3] != "Not at all" {
		t.Errorf("question 7 option 3 = %q, want reversed scale", Questions[6].Options[3])
	}
}

func TestRecordResult(t *testing.T) {
	t.Run("sums answer indices", func(t *testing.T) {
		ledger := setupLedger(t)

		result, err := ledger.RecordResult([]int{0, 1, 2, 3, 0, 1, 2})
		if err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
		if result.Score != 9 {
			t.Errorf("Score = %d, want 9", result.Score)
		}
		if result.MaxScore != 21 {
			t.Errorf("MaxScore = %d, want 21", result.MaxScore)
		}
	})

	t.Run("rejects wrong answer count", func(t *testing.T) {
		ledger := setupLedger(t)
		if _, err := ledger.RecordResult([]int{0, 1, 2}); err == nil {
			t.Error("RecordResult with 3 answers succeeded, want error")
		}
	})

	t.Run("rejects out-of-range answers", func(t *testing.T) {
		ledger := setupLedger(t)
		if _, err := ledger.RecordResult([]int{0, 1, 2, 3, 0, 1, 4}); err == nil {
			t.Error("RecordResult with answer 4 succeeded, want error")
		}
		if _, err := ledger.RecordResult([]int{0, 1, 2, 3, 0, 1, -1}); err == nil {
			t.Error("RecordResult with answer -1 succeeded, want error")
		}

		// Nothing may be written on validation failure.
		results, err := ledger.Results()
		if err != nil {
			t.Fatalf("Results() failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("got %d results after rejected runs, want 0", len(results))
		}
	})
}

func TestRiskCategory(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		maxScore int
		want     models.RiskCategory
	}{
		{"zero", 0, 21, models.RiskLow},
		{"boundary 25 percent", 5, 20, models.RiskLow},
		{"just above 25 percent", 6, 21, models.RiskMild},
		{"boundary 50 percent", 10, 20, models.RiskMild},
		{"moderate", 11, 21, models.RiskModerate},
		{"boundary 75 percent", 15, 20, models.RiskModerate},
		{"high", 16, 20, models.RiskHigh},
		{"maximum", 21, 21, models.RiskHigh},
		{"degenerate max score", 5, 0, models.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskCategory(tt.score, tt.maxScore); got != tt.want {
				t.Errorf("RiskCategory(%d, %d) = %s, want %s", tt.score, tt.maxScore, got, tt.want)
			}
		})
	}
}

func TestRiskDescription(t *testing.T) {
	for _, category := range []models.RiskCategory{models.RiskLow, models.RiskMild, models.RiskModerate, models.RiskHigh} {
		if RiskDescription(category) == "" {
			t.Errorf("RiskDescription(%s) is empty", category)
		}
	}
	if RiskDescription(models.RiskCategory("bogus")) != "" {
		t.Error("RiskDescription(bogus) is not empty")
	}
}
