package models

import "time"

// JournalEntry is a free-form dated note.
type JournalEntry struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// Reminder is a daily reminder at a fixed time of day.
type Reminder struct {
	ID      string `json:"id"`
	Time    string `json:"time"` // HH:MM format
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
}
