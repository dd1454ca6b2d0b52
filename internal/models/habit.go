package models

import "time"

// Habit represents a recurring practice to track. DaysCompleted maps a
// calendar-day key (YYYY-MM-DD) to whether the habit was done that
// day; the map grows lazily and an absent key means not completed.
type Habit struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	DaysCompleted map[string]bool `json:"days_completed"`
	CreatedAt     time.Time       `json:"created_at"`
}
