package constants

const (
	AppName            = "haven"
	Version            = "v0.3.0"
	DefaultKeyringUser = "gemini-api-key"

	// DateFormat is the calendar-day key format used for habit grids
	// and streak computation (YYYY-MM-DD).
	DateFormat = "2006-01-02"

	// TimeFormat is the reminder time-of-day format (HH:MM).
	TimeFormat = "15:04"

	// MoodWindowDays is the default window for mood charts and trend.
	MoodWindowDays = 7

	// HabitWeekDays is the number of calendar days in the habit
	// completion window.
	HabitWeekDays = 7
)

// Collection names double as JSON store file stems and mirror the
// keys the data was historically stored under.
const (
	CollectionMoodEntries        = "moodEntries"
	CollectionMeditationSessions = "meditationSessions"
	CollectionHabits             = "habits"
	CollectionQuizResults        = "quizResults"
	CollectionJournalEntries     = "journalEntries"
	CollectionReminders          = "dailyReminders"
	CollectionSettings           = "settings"
)

// 4-7-8 breathing phase durations in seconds.
const (
	BreathInhaleSec = 4
	BreathHoldSec   = 7
	BreathExhaleSec = 8
	BreathRestSec   = 1
)
