package storage

import (
	"errors"

	"github.com/haven-app/haven/internal/models"
)

// ErrNotFound is returned when a record with the requested id does not
// exist in its collection.
var ErrNotFound = errors.New("record not found")

// Provider is the persistence contract for all collections. Writes are
// synchronous: when a mutating method returns, an immediate read on
// the same Provider observes the new data.
//
// Concurrency note:
//   - A Provider is not safe for concurrent use by multiple goroutines
//     without external synchronization.
//   - Running multiple haven processes against the same data path at
//     the same time is not supported and may lose writes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Mood entries (append-only)
	AddMoodEntry(models.MoodEntry) error
	GetMoodEntries() ([]models.MoodEntry, error)

	// Meditation sessions (append-only)
	AddMeditationSession(models.MeditationSession) error
	GetMeditationSessions() ([]models.MeditationSession, error)

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Quiz results (append-only)
	AddQuizResult(models.QuizResult) error
	GetQuizResults() ([]models.QuizResult, error)

	// Journal entries
	AddJournalEntry(models.JournalEntry) error
	GetJournalEntry(id string) (models.JournalEntry, error)
	GetJournalEntries() ([]models.JournalEntry, error)
	DeleteJournalEntry(id string) error

	// Reminders
	AddReminder(models.Reminder) error
	GetReminders() ([]models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id string) error

	// Utils
	GetConfigPath() string
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() models.Settings {
	return models.Settings{
		SoundEnabled:         true,
		NotificationsEnabled: true,
		Timezone:             "Local",
	}
}
