package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/haven-app/haven/internal/logger"
	"github.com/haven-app/haven/internal/models"
)

// SQLiteStore implements Provider on a single SQLite database file.
// Row order follows insertion order (autoincrement ids), matching the
// append-only semantics of the JSON store.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		sound_enabled INTEGER NOT NULL,
		notifications_enabled INTEGER NOT NULL,
		timezone TEXT NOT NULL,
		user_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS mood_entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		value INTEGER NOT NULL,
		mood TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS meditation_sessions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		date TEXT NOT NULL,
		track_id TEXT NOT NULL,
		duration INTEGER NOT NULL,
		completed INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS habits (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		days_completed TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_results (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		score INTEGER NOT NULL,
		max_score INTEGER NOT NULL,
		date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS journal_entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reminders (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		time TEXT NOT NULL,
		text TEXT NOT NULL,
		enabled INTEGER NOT NULL
	)`,
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	// Seed default settings on first init only.
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'haven init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// tableExists checks if a table exists in the SQLite database. The
// check is case-insensitive to match SQLite's behavior.
func (s *SQLiteStore) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`
		SELECT sound_enabled, notifications_enabled, timezone, user_name
		FROM settings WHERE id = 1`)

	var settings models.Settings
	var sound, notifications int
	if err := row.Scan(&sound, &notifications, &settings.Timezone, &settings.UserName); err != nil {
		return models.Settings{}, fmt.Errorf("settings not found: %w", err)
	}
	settings.SoundEnabled = sound != 0
	settings.NotificationsEnabled = notifications != 0
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, sound_enabled, notifications_enabled, timezone, user_name)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			sound_enabled = excluded.sound_enabled,
			notifications_enabled = excluded.notifications_enabled,
			timezone = excluded.timezone,
			user_name = excluded.user_name`,
		boolToInt(settings.SoundEnabled), boolToInt(settings.NotificationsEnabled),
		settings.Timezone, settings.UserName)
	return err
}

func (s *SQLiteStore) AddMoodEntry(entry models.MoodEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO mood_entries (date, value, mood) VALUES (?, ?, ?)`,
		entry.Date.Format(time.RFC3339), entry.Value, string(entry.Mood))
	return err
}

func (s *SQLiteStore) GetMoodEntries() ([]models.MoodEntry, error) {
	if exists, err := s.tableExists("mood_entries"); err != nil || !exists {
		return []models.MoodEntry{}, nil
	}

	rows, err := s.db.Query(`SELECT date, value, mood FROM mood_entries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		var e models.MoodEntry
		var date, mood string
		if err := rows.Scan(&date, &e.Value, &mood); err != nil {
			return nil, err
		}
		e.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mood entry date: %w", err)
		}
		e.Mood = models.Mood(mood)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) AddMeditationSession(session models.MeditationSession) error {
	_, err := s.db.Exec(`
		INSERT INTO meditation_sessions (id, date, track_id, duration, completed)
		VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.Date.Format(time.RFC3339), session.TrackID,
		session.Duration, boolToInt(session.Completed))
	return err
}

func (s *SQLiteStore) GetMeditationSessions() ([]models.MeditationSession, error) {
	if exists, err := s.tableExists("meditation_sessions"); err != nil || !exists {
		return []models.MeditationSession{}, nil
	}

	rows, err := s.db.Query(`
		SELECT id, date, track_id, duration, completed
		FROM meditation_sessions ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.MeditationSession
	for rows.Next() {
		var sess models.MeditationSession
		var date string
		var completed int
		if err := rows.Scan(&sess.ID, &date, &sess.TrackID, &sess.Duration, &completed); err != nil {
			return nil, err
		}
		sess.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse session date for %s: %w", sess.ID, err)
		}
		sess.Completed = completed != 0
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	days, err := encodeDaysCompleted(habit.DaysCompleted)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO habits (id, name, days_completed, created_at)
		VALUES (?, ?, ?, ?)`,
		habit.ID, habit.Name, days, habit.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, days_completed, created_at FROM habits WHERE id = ?`, id)

	habit, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return habit, err
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	if exists, err := s.tableExists("habits"); err != nil || !exists {
		return []models.Habit{}, nil
	}

	rows, err := s.db.Query(`SELECT id, name, days_completed, created_at FROM habits ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	days, err := encodeDaysCompleted(habit.DaysCompleted)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE habits SET name = ?, days_completed = ?, created_at = ? WHERE id = ?`,
		habit.Name, days, habit.CreatedAt.Format(time.RFC3339), habit.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("habit %s: %w", habit.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	// Hard delete, history included. No soft delete or undo.
	res, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) AddQuizResult(result models.QuizResult) error {
	_, err := s.db.Exec(`
		INSERT INTO quiz_results (score, max_score, date) VALUES (?, ?, ?)`,
		result.Score, result.MaxScore, result.Date.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetQuizResults() ([]models.QuizResult, error) {
	if exists, err := s.tableExists("quiz_results"); err != nil || !exists {
		return []models.QuizResult{}, nil
	}

	rows, err := s.db.Query(`SELECT score, max_score, date FROM quiz_results ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.QuizResult
	for rows.Next() {
		var r models.QuizResult
		var date string
		if err := rows.Scan(&r.Score, &r.MaxScore, &date); err != nil {
			return nil, err
		}
		r.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quiz result date: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) AddJournalEntry(entry models.JournalEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO journal_entries (id, title, content, date) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Title, entry.Content, entry.Date.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetJournalEntry(id string) (models.JournalEntry, error) {
	row := s.db.QueryRow(`SELECT id, title, content, date FROM journal_entries WHERE id = ?`, id)

	var e models.JournalEntry
	var date string
	err := row.Scan(&e.ID, &e.Title, &e.Content, &date)
	if err == sql.ErrNoRows {
		return models.JournalEntry{}, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.JournalEntry{}, err
	}
	e.Date, err = time.Parse(time.RFC3339, date)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to parse journal entry date: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) GetJournalEntries() ([]models.JournalEntry, error) {
	if exists, err := s.tableExists("journal_entries"); err != nil || !exists {
		return []models.JournalEntry{}, nil
	}

	rows, err := s.db.Query(`SELECT id, title, content, date FROM journal_entries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var date string
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &date); err != nil {
			return nil, err
		}
		e.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse journal entry date for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) DeleteJournalEntry(id string) error {
	res, err := s.db.Exec(`DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) AddReminder(reminder models.Reminder) error {
	_, err := s.db.Exec(`
		INSERT INTO reminders (id, time, text, enabled) VALUES (?, ?, ?, ?)`,
		reminder.ID, reminder.Time, reminder.Text, boolToInt(reminder.Enabled))
	return err
}

func (s *SQLiteStore) GetReminders() ([]models.Reminder, error) {
	if exists, err := s.tableExists("reminders"); err != nil || !exists {
		return []models.Reminder{}, nil
	}

	rows, err := s.db.Query(`SELECT id, time, text, enabled FROM reminders ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var r models.Reminder
		var enabled int
		if err := rows.Scan(&r.ID, &r.Time, &r.Text, &enabled); err != nil {
			return nil, err
		}
		r.Enabled = enabled != 0
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *SQLiteStore) UpdateReminder(reminder models.Reminder) error {
	res, err := s.db.Exec(`
		UPDATE reminders SET time = ?, text = ?, enabled = ? WHERE id = ?`,
		reminder.Time, reminder.Text, boolToInt(reminder.Enabled), reminder.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reminder %s: %w", reminder.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) DeleteReminder(id string) error {
	res, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var days, createdAt string

	if err := row.Scan(&h.ID, &h.Name, &days, &createdAt); err != nil {
		return models.Habit{}, err
	}

	h.DaysCompleted = decodeDaysCompleted(h.ID, days)

	var err error
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}

func encodeDaysCompleted(days map[string]bool) (string, error) {
	if days == nil {
		days = map[string]bool{}
	}
	data, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("failed to serialize days_completed: %w", err)
	}
	return string(data), nil
}

// decodeDaysCompleted never fails: a corrupt completion map reads as
// empty so one bad row cannot break the habit list.
func decodeDaysCompleted(habitID, data string) map[string]bool {
	days := map[string]bool{}
	if data == "" {
		return days
	}
	if err := json.Unmarshal([]byte(data), &days); err != nil {
		logger.Warn("Malformed days_completed, treating as empty", "habit", habitID, "error", err)
		return map[string]bool{}
	}
	return days
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
