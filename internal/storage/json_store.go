package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haven-app/haven/internal/constants"
	"github.com/haven-app/haven/internal/logger"
	"github.com/haven-app/haven/internal/models"
)

// JSONStore persists each collection as its own JSON file under a data
// directory. The file stems mirror the collection keys the data model
// was originally stored under, so a collection can be inspected or
// repaired with a text editor.
//
// A missing or malformed collection file reads as the empty
// collection; corruption in one collection never breaks reads of
// another, and list operations never surface a parse error.
type JSONStore struct {
	dir string

	settings           models.Settings
	moodEntries        []models.MoodEntry
	meditationSessions []models.MeditationSession
	habits             []models.Habit
	quizResults        []models.QuizResult
	journalEntries     []models.JournalEntry
	reminders          []models.Reminder

	loaded bool
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	settingsPath := s.collectionPath(constants.CollectionSettings)
	if _, err := os.Stat(settingsPath); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.dir)
	}

	s.settings = DefaultSettings()
	s.loaded = true
	return s.writeCollection(constants.CollectionSettings, s.settings)
}

func (s *JSONStore) Load() error {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'haven init' first")
	}

	s.settings = DefaultSettings()
	s.readCollection(constants.CollectionSettings, &s.settings)
	s.readCollection(constants.CollectionMoodEntries, &s.moodEntries)
	s.readCollection(constants.CollectionMeditationSessions, &s.meditationSessions)
	s.readCollection(constants.CollectionHabits, &s.habits)
	s.readCollection(constants.CollectionQuizResults, &s.quizResults)
	s.readCollection(constants.CollectionJournalEntries, &s.journalEntries)
	s.readCollection(constants.CollectionReminders, &s.reminders)

	s.loaded = true
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) collectionPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// readCollection fills v from the collection's file. Absent or
// unparseable files leave v at its zero value; the caller always gets
// a usable (possibly empty) collection.
func (s *JSONStore) readCollection(name string, v any) {
	data, err := os.ReadFile(s.collectionPath(name))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read collection, treating as empty", "collection", name, "error", err)
		}
		return
	}

	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("Malformed collection data, treating as empty", "collection", name, "error", err)
	}
}

func (s *JSONStore) writeCollection(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize collection %s: %w", name, err)
	}

	if err := os.WriteFile(s.collectionPath(name), data, 0600); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}

	return nil
}

func (s *JSONStore) ensureLoaded() error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Settings{}, err
	}
	return s.settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.settings = settings
	return s.writeCollection(constants.CollectionSettings, s.settings)
}

func (s *JSONStore) AddMoodEntry(entry models.MoodEntry) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.moodEntries = append(s.moodEntries, entry)
	return s.writeCollection(constants.CollectionMoodEntries, s.moodEntries)
}

func (s *JSONStore) GetMoodEntries() ([]models.MoodEntry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	entries := make([]models.MoodEntry, len(s.moodEntries))
	copy(entries, s.moodEntries)
	return entries, nil
}

func (s *JSONStore) AddMeditationSession(session models.MeditationSession) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.meditationSessions = append(s.meditationSessions, session)
	return s.writeCollection(constants.CollectionMeditationSessions, s.meditationSessions)
}

func (s *JSONStore) GetMeditationSessions() ([]models.MeditationSession, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	sessions := make([]models.MeditationSession, len(s.meditationSessions))
	copy(sessions, s.meditationSessions)
	return sessions, nil
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.habits = append(s.habits, habit)
	return s.writeCollection(constants.CollectionHabits, s.habits)
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Habit{}, err
	}
	for _, h := range s.habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for i, h := range s.habits {
		if h.ID == habit.ID {
			s.habits[i] = habit
			return s.writeCollection(constants.CollectionHabits, s.habits)
		}
	}
	return fmt.Errorf("habit %s: %w", habit.ID, ErrNotFound)
}

func (s *JSONStore) DeleteHabit(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	// Hard delete: the habit and its full completion history are gone
	// for good. There is deliberately no soft delete or undo here.
	kept := make([]models.Habit, 0, len(s.habits))
	found := false
	for _, h := range s.habits {
		if h.ID == id {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	if !found {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	s.habits = kept
	return s.writeCollection(constants.CollectionHabits, s.habits)
}

func (s *JSONStore) AddQuizResult(result models.QuizResult) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.quizResults = append(s.quizResults, result)
	return s.writeCollection(constants.CollectionQuizResults, s.quizResults)
}

func (s *JSONStore) GetQuizResults() ([]models.QuizResult, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	results := make([]models.QuizResult, len(s.quizResults))
	copy(results, s.quizResults)
	return results, nil
}

func (s *JSONStore) AddJournalEntry(entry models.JournalEntry) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.journalEntries = append(s.journalEntries, entry)
	return s.writeCollection(constants.CollectionJournalEntries, s.journalEntries)
}

func (s *JSONStore) GetJournalEntry(id string) (models.JournalEntry, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.JournalEntry{}, err
	}
	for _, e := range s.journalEntries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.JournalEntry{}, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
}

func (s *JSONStore) GetJournalEntries() ([]models.JournalEntry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	entries := make([]models.JournalEntry, len(s.journalEntries))
	copy(entries, s.journalEntries)
	return entries, nil
}

func (s *JSONStore) DeleteJournalEntry(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	kept := make([]models.JournalEntry, 0, len(s.journalEntries))
	found := false
	for _, e := range s.journalEntries {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}
	s.journalEntries = kept
	return s.writeCollection(constants.CollectionJournalEntries, s.journalEntries)
}

func (s *JSONStore) AddReminder(reminder models.Reminder) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.reminders = append(s.reminders, reminder)
	return s.writeCollection(constants.CollectionReminders, s.reminders)
}

func (s *JSONStore) GetReminders() ([]models.Reminder, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	reminders := make([]models.Reminder, len(s.reminders))
	copy(reminders, s.reminders)
	return reminders, nil
}

func (s *JSONStore) UpdateReminder(reminder models.Reminder) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for i, r := range s.reminders {
		if r.ID == reminder.ID {
			s.reminders[i] = reminder
			return s.writeCollection(constants.CollectionReminders, s.reminders)
		}
	}
	return fmt.Errorf("reminder %s: %w", reminder.ID, ErrNotFound)
}

func (s *JSONStore) DeleteReminder(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	kept := make([]models.Reminder, 0, len(s.reminders))
	found := false
	for _, r := range s.reminders {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}
	s.reminders = kept
	return s.writeCollection(constants.CollectionReminders, s.reminders)
}

func (s *JSONStore) GetConfigPath() string {
	return s.dir
}
