package habits

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/storage"
)

func setupGrid(t *testing.T, now func() time.Time) *Grid {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return NewGridWithClock(store, now)
}

func TestAdd(t *testing.T) {
	grid := setupGrid(t, time.Now)

	habit, err := grid.Add("  Morning stretch  ")
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if habit.Name != "Morning stretch" {
		t.Errorf("Add() name = %q, want trimmed", habit.Name)
	}
	if habit.ID == "" {
		t.Error("Add() did not assign an id")
	}
	if habit.DaysCompleted == nil || len(habit.DaysCompleted) != 0 {
		t.Errorf("Add() DaysCompleted = %v, want empty map", habit.DaysCompleted)
	}

	if _, err := grid.Add("   "); err == nil {
		t.Error("Add(blank) succeeded, want error")
	}
}

func TestToggleDay(t *testing.T) {
	grid := setupGrid(t, time.Now)
	habit, err := grid.Add("Journal")
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	day := "2026-09-01"

	toggled, err := grid.ToggleDay(habit.ID, day)
	if err != nil {
		t.Fatalf("ToggleDay() failed: %v", err)
	}
	if !toggled.DaysCompleted[day] {
		t.Error("first toggle should mark the day done")
	}

	toggled, err = grid.ToggleDay(habit.ID, day)
	if err != nil {
		t.Fatalf("second ToggleDay() failed: %v", err)
	}
	if toggled.DaysCompleted[day] {
		t.Error("second toggle should unmark the day")
	}

	if _, err := grid.ToggleDay(habit.ID, "09/01/2026"); err == nil {
		t.Error("ToggleDay with bad date format succeeded, want error")
	}
	if _, err := grid.ToggleDay("missing", day); err == nil {
		t.Error("ToggleDay on unknown habit succeeded, want error")
	}
}

func TestRemoveIsPermanent(t *testing.T) {
	grid := setupGrid(t, time.Now)
	habit, err := grid.Add("Read")
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if _, err := grid.ToggleDay(habit.ID, "2026-09-01"); err != nil {
		t.Fatalf("ToggleDay() failed: %v", err)
	}

	if err := grid.Remove(habit.ID); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}

	if _, err := grid.Get(habit.ID); err == nil {
		t.Error("Get() after Remove() succeeded, want not found")
	}
	all, err := grid.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("All() = %v, want empty after remove", all)
	}

	if err := grid.Remove(habit.ID); err == nil {
		t.Error("second Remove() succeeded, want error")
	}
}

func TestWeekDateKeys(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	grid := setupGrid(t, func() time.Time { return now })

	week := grid.WeekDateKeys()
	if len(week) != 7 {
		t.Fatalf("got %d keys, want 7", len(week))
	}
	if week[0] != "2026-08-26" {
		t.Errorf("week[0] = %s, want 2026-08-26", week[0])
	}
	if week[6] != "2026-09-01" {
		t.Errorf("week[6] = %s, want 2026-09-01 (today last)", week[6])
	}
}

func TestWeeklyCompletionRate(t *testing.T) {
	week := []string{
		"2026-08-26", "2026-08-27", "2026-08-28", "2026-08-29",
		"2026-08-30", "2026-08-31", "2026-09-01",
	}

	tests := []struct {
		name string
		days map[string]bool
		want int
	}{
		{"three of seven", map[string]bool{
			"2026-08-26": true, "2026-08-28": true, "2026-09-01": true,
		}, 43},
		{"none", map[string]bool{}, 0},
		{"all", map[string]bool{
			"2026-08-26": true, "2026-08-27": true, "2026-08-28": true,
			"2026-08-29": true, "2026-08-30": true, "2026-08-31": true,
			"2026-09-01": true,
		}, 100},
		{"false entries do not count", map[string]bool{
			"2026-08-26": false, "2026-08-27": true,
		}, 14},
		{"days outside the window ignored", map[string]bool{
			"2026-08-01": true, "2026-08-02": true, "2026-09-01": true,
		}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habit := models.Habit{DaysCompleted: tt.days}
			if got := WeeklyCompletionRate(habit, week); got != tt.want {
				t.Errorf("WeeklyCompletionRate() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("empty window", func(t *testing.T) {
		if got := WeeklyCompletionRate(models.Habit{}, nil); got != 0 {
			t.Errorf("WeeklyCompletionRate(nil window) = %d, want 0", got)
		}
	})
}

func TestDailyCompletions(t *testing.T) {
	habits := []models.Habit{
		{Name: "a", DaysCompleted: map[string]bool{"2026-09-01": true, "2026-08-31": false}},
		{Name: "b", DaysCompleted: map[string]bool{"2026-09-01": false, "2026-08-30": true}},
	}

	completions := DailyCompletions(habits)
	if len(completions) != 3 {
		t.Fatalf("got %d days, want 3", len(completions))
	}

	// Ascending date order.
	want := []DailyCompletion{
		{DateKey: "2026-08-30", Percentage: 100},
		{DateKey: "2026-08-31", Percentage: 0},
		{DateKey: "2026-09-01", Percentage: 50},
	}
	for i, w := range want {
		if completions[i] != w {
			t.Errorf("completions[%d] = %+v, want %+v", i, completions[i], w)
		}
	}

	if got := DailyCompletions(nil); len(got) != 0 {
		t.Errorf("DailyCompletions(nil) = %v, want empty", got)
	}
}
