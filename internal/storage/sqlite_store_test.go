package storage

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/haven-app/haven/internal/models"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "haven.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreInit(t *testing.T) {
	t.Run("init seeds default settings", func(t *testing.T) {
		store := setupSQLiteStore(t)

		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() failed: %v", err)
		}
		if !reflect.DeepEqual(settings, DefaultSettings()) {
			t.Errorf("GetSettings() = %+v, want defaults %+v", settings, DefaultSettings())
		}
	})

	t.Run("init is idempotent for settings", func(t *testing.T) {
		store := setupSQLiteStore(t)

		custom := models.Settings{SoundEnabled: false, NotificationsEnabled: false, Timezone: "UTC", UserName: "sam"}
		if err := store.SaveSettings(custom); err != nil {
			t.Fatalf("SaveSettings() failed: %v", err)
		}

		// Re-running Init must not clobber saved settings.
		if err := store.Init(); err != nil {
			t.Fatalf("second Init() failed: %v", err)
		}
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() failed: %v", err)
		}
		if !reflect.DeepEqual(settings, custom) {
			t.Errorf("GetSettings() = %+v, want %+v", settings, custom)
		}
	})

	t.Run("load without init fails", func(t *testing.T) {
		store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
		if err := store.Load(); err == nil {
			t.Error("Load() on missing file succeeded, want error")
		}
	})
}

func TestSQLiteStoreTableExists(t *testing.T) {
	store := setupSQLiteStore(t)

	exists, err := store.tableExists("mood_entries")
	if err != nil {
		t.Fatalf("tableExists() failed: %v", err)
	}
	if !exists {
		t.Error("tableExists(mood_entries) = false after Init, want true")
	}

	exists, err = store.tableExists("no_such_table")
	if err != nil {
		t.Fatalf("tableExists() failed: %v", err)
	}
	if exists {
		t.Error("tableExists(no_such_table) = true, want false")
	}
}

func TestSQLiteStoreMoodRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)

	when := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)
	moods := []models.Mood{models.MoodAwful, models.MoodGreat, models.MoodOkay}
	for i, m := range moods {
		entry := models.MoodEntry{Date: when.Add(time.Duration(i) * time.Hour), Value: i + 1, Mood: m}
		if err := store.AddMoodEntry(entry); err != nil {
			t.Fatalf("AddMoodEntry() failed: %v", err)
		}
	}

	entries, err := store.GetMoodEntries()
	if err != nil {
		t.Fatalf("GetMoodEntries() failed: %v", err)
	}
	if len(entries) != len(moods) {
		t.Fatalf("got %d entries, want %d", len(entries), len(moods))
	}
	for i, m := range moods {
		if entries[i].Mood != m {
			t.Errorf("entries[%d].Mood = %s, want %s (insertion order)", i, entries[i].Mood, m)
		}
	}
	if !entries[0].Date.Equal(when) {
		t.Errorf("date = %v, want %v", entries[0].Date, when)
	}
}

func TestSQLiteStoreHabitLifecycle(t *testing.T) {
	store := setupSQLiteStore(t)

	habit := models.Habit{
		ID:            "h1",
		Name:          "Evening walk",
		DaysCompleted: map[string]bool{"2026-08-31": true, "2026-09-01": false},
		CreatedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	got, err := store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit() failed: %v", err)
	}
	if !reflect.DeepEqual(got.DaysCompleted, habit.DaysCompleted) {
		t.Errorf("DaysCompleted = %v, want %v", got.DaysCompleted, habit.DaysCompleted)
	}

	got.DaysCompleted["2026-09-01"] = true
	if err := store.UpdateHabit(got); err != nil {
		t.Fatalf("UpdateHabit() failed: %v", err)
	}
	updated, _ := store.GetHabit("h1")
	if !updated.DaysCompleted["2026-09-01"] {
		t.Error("update not persisted")
	}

	if err := store.DeleteHabit("h1"); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}
	if _, err := store.GetHabit("h1"); err == nil {
		t.Error("GetHabit() after delete succeeded, want not found")
	}
	if err := store.DeleteHabit("h1"); err == nil {
		t.Error("second DeleteHabit() succeeded, want error")
	}
}

func TestSQLiteStoreCorruptDaysCompleted(t *testing.T) {
	store := setupSQLiteStore(t)

	_, err := store.db.Exec(`
		INSERT INTO habits (id, name, days_completed, created_at)
		VALUES ('bad', 'Corrupted', '{oops', ?)`,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("failed to insert corrupt row: %v", err)
	}

	habits, err := store.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits() failed: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("got %d habits, want 1", len(habits))
	}
	if len(habits[0].DaysCompleted) != 0 {
		t.Errorf("corrupt days_completed = %v, want empty map", habits[0].DaysCompleted)
	}
}

func TestSQLiteStoreSessionsAndResults(t *testing.T) {
	store := setupSQLiteStore(t)

	session := models.MeditationSession{
		ID:        "s1",
		Date:      time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC),
		TrackID:   "calm-morning",
		Duration:  300,
		Completed: true,
	}
	if err := store.AddMeditationSession(session); err != nil {
		t.Fatalf("AddMeditationSession() failed: %v", err)
	}
	sessions, err := store.GetMeditationSessions()
	if err != nil || len(sessions) != 1 {
		t.Fatalf("GetMeditationSessions() = %v, %v; want 1 session", sessions, err)
	}
	if !sessions[0].Completed || sessions[0].TrackID != "calm-morning" {
		t.Errorf("session = %+v, want completed calm-morning", sessions[0])
	}

	result := models.QuizResult{Score: 11, MaxScore: 21, Date: time.Now().UTC()}
	if err := store.AddQuizResult(result); err != nil {
		t.Fatalf("AddQuizResult() failed: %v", err)
	}
	results, err := store.GetQuizResults()
	if err != nil || len(results) != 1 {
		t.Fatalf("GetQuizResults() = %v, %v; want 1 result", results, err)
	}
	if results[0].Score != 11 || results[0].MaxScore != 21 {
		t.Errorf("result = %+v, want 11/21", results[0])
	}
}

func TestSQLiteStoreRemindersAndJournal(t *testing.T) {
	store := setupSQLiteStore(t)

	reminder := models.Reminder{ID: "r1", Time: "21:00", Text: "wind down", Enabled: true}
	if err := store.AddReminder(reminder); err != nil {
		t.Fatalf("AddReminder() failed: %v", err)
	}
	reminder.Enabled = false
	if err := store.UpdateReminder(reminder); err != nil {
		t.Fatalf("UpdateReminder() failed: %v", err)
	}
	reminders, _ := store.GetReminders()
	if len(reminders) != 1 || reminders[0].Enabled {
		t.Errorf("reminders = %+v, want one disabled reminder", reminders)
	}
	if err := store.DeleteReminder("r1"); err != nil {
		t.Fatalf("DeleteReminder() failed: %v", err)
	}
	if err := store.DeleteReminder("r1"); err == nil {
		t.Error("second DeleteReminder() succeeded, want error")
	}

	entry := models.JournalEntry{ID: "j1", Title: "Note", Content: "body", Date: time.Now().UTC()}
	if err := store.AddJournalEntry(entry); err != nil {
		t.Fatalf("AddJournalEntry() failed: %v", err)
	}
	got, err := store.GetJournalEntry("j1")
	if err != nil || got.Content != "body" {
		t.Errorf("GetJournalEntry() = %+v, %v", got, err)
	}
	if err := store.DeleteJournalEntry("j1"); err != nil {
		t.Fatalf("DeleteJournalEntry() failed: %v", err)
	}
}
