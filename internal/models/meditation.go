package models

import "time"

// MeditationSession is one completed or abandoned playback of a track.
// Duration is the track's declared length in seconds, not wall-clock
// listening time.
type MeditationSession struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	TrackID   string    `json:"track_id"`
	Duration  int       `json:"duration"`
	Completed bool      `json:"completed"`
}

// MeditationTrack is a catalog entry. Duration is in seconds.
type MeditationTrack struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}
