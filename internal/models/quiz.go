package models

import "time"

// QuizResult is one completed assessment run. Score is the sum of the
// per-question ordinal answers (0..3 each); MaxScore is the question
// count times three. Results are never mutated.
type QuizResult struct {
	Score    int       `json:"score"`
	MaxScore int       `json:"max_score"`
	Date     time.Time `json:"date"`
}

// RiskCategory buckets a quiz score by its percentage of MaxScore.
type RiskCategory string

const (
	RiskLow      RiskCategory = "Low"
	RiskMild     RiskCategory = "Mild"
	RiskModerate RiskCategory = "Moderate"
	RiskHigh     RiskCategory = "High"
)
