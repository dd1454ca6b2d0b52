// Package habits manages the per-habit per-day completion grid and
// its derived completion rates.
package habits

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haven-app/haven/internal/constants"
	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/storage"
	"github.com/haven-app/haven/internal/utils"
)

// DailyCompletion is the completion percentage across all habits on a
// single calendar day.
type DailyCompletion struct {
	DateKey    string
	Percentage int
}

// Grid manages habits through a storage Provider.
type Grid struct {
	store storage.Provider
	now   func() time.Time
}

func NewGrid(store storage.Provider) *Grid {
	return &Grid{store: store, now: time.Now}
}

// NewGridWithClock is NewGrid with an injected clock for tests.
func NewGridWithClock(store storage.Provider, now func() time.Time) *Grid {
	return &Grid{store: store, now: now}
}

// Add creates a habit with an empty completion map. Blank names are
// rejected before anything is written.
func (g *Grid) Add(name string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, fmt.Errorf("habit name cannot be empty")
	}

	habit := models.Habit{
		ID:            uuid.New().String(),
		Name:          name,
		DaysCompleted: map[string]bool{},
		CreatedAt:     g.now(),
	}
	if err := g.store.AddHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// All returns every habit in creation order.
func (g *Grid) All() ([]models.Habit, error) {
	return g.store.GetAllHabits()
}

// Get returns a single habit by id.
func (g *Grid) Get(id string) (models.Habit, error) {
	return g.store.GetHabit(id)
}

// ToggleDay flips a habit's completion boolean for one calendar day:
// absent reads as false, so the first toggle marks the day done.
func (g *Grid) ToggleDay(habitID, dateKey string) (models.Habit, error) {
	if !utils.ValidateDateKey(dateKey) {
		return models.Habit{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", dateKey)
	}

	habit, err := g.store.GetHabit(habitID)
	if err != nil {
		return models.Habit{}, err
	}

	if habit.DaysCompleted == nil {
		habit.DaysCompleted = map[string]bool{}
	}
	habit.DaysCompleted[dateKey] = !habit.DaysCompleted[dateKey]

	if err := g.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// Remove permanently deletes a habit and its entire completion
// history. There is no undo.
func (g *Grid) Remove(habitID string) error {
	return g.store.DeleteHabit(habitID)
}

// WeekDateKeys returns the last seven calendar-day keys ending today,
// oldest first.
func (g *Grid) WeekDateKeys() []string {
	return utils.LastNDateKeys(constants.HabitWeekDays, g.now())
}

// WeeklyCompletionRate returns the percentage of the supplied days the
// habit was completed, rounded to the nearest integer. Days without an
// entry in the completion map count as not completed, never as missing
// data.
func WeeklyCompletionRate(habit models.Habit, dateKeys []string) int {
	if len(dateKeys) == 0 {
		return 0
	}
	completed := 0
	for _, key := range dateKeys {
		if habit.DaysCompleted[key] {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(dateKeys)) * 100))
}

// DailyCompletions aggregates all habits into a per-day completion
// percentage: for each calendar day any habit has a boolean recorded
// on, the share of those recorded booleans that are true. Days appear
// in ascending date order.
func DailyCompletions(habits []models.Habit) []DailyCompletion {
	type tally struct {
		completed int
		total     int
	}
	byDay := make(map[string]*tally)

	for _, habit := range habits {
		for day, done := range habit.DaysCompleted {
			t, ok := byDay[day]
			if !ok {
				t = &tally{}
				byDay[day] = t
			}
			t.total++
			if done {
				t.completed++
			}
		}
	}

	completions := make([]DailyCompletion, 0, len(byDay))
	for day, t := range byDay {
		completions = append(completions, DailyCompletion{
			DateKey:    day,
			Percentage: int(math.Round(float64(t.completed) / float64(t.total) * 100)),
		})
	}
	sort.Slice(completions, func(i, j int) bool {
		return completions[i].DateKey < completions[j].DateKey
	})
	return completions
}
