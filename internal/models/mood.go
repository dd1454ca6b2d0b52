package models

import (
	"fmt"
	"time"
)

// Mood is one of the five fixed check-in levels.
type Mood string

const (
	MoodAwful Mood = "awful"
	MoodBad   Mood = "bad"
	MoodOkay  Mood = "okay"
	MoodGood  Mood = "good"
	MoodGreat Mood = "great"
)

// moodValues ranks each mood 1..5, worst to best. Chart math and
// averages all derive from this mapping.
var moodValues = map[Mood]int{
	MoodAwful: 1,
	MoodBad:   2,
	MoodOkay:  3,
	MoodGood:  4,
	MoodGreat: 5,
}

// Value returns the mood's numeric rank.
func (m Mood) Value() (int, error) {
	v, ok := moodValues[m]
	if !ok {
		return 0, fmt.Errorf("unknown mood: %q", m)
	}
	return v, nil
}

// Moods returns the valid moods ordered worst to best.
func Moods() []Mood {
	return []Mood{MoodAwful, MoodBad, MoodOkay, MoodGood, MoodGreat}
}

// MoodEntry is a single mood check-in. Value always matches the
// mood's rank; it is stored alongside the label so historical entries
// keep their score even if the ranking ever changes.
type MoodEntry struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
	Mood  Mood      `json:"mood"`
}
