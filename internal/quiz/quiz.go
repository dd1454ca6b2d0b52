// Package quiz scores the mental-health self-assessment and keeps its
// history.
package quiz

import (
	"fmt"
	"time"

	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/storage"
)

// Question is one assessment item. Options are ordered by severity:
// picking index i contributes i points (0..3).
type Question struct {
	Text    string
	Options []string
}

const maxAnswerValue = 3

var defaultOptions = []string{
	"Not at all",
	"Several days",
	"More than half the days",
	"Nearly every day",
}

// reversedOptions is used for positively-phrased items so that a
// worse answer still scores higher.
var reversedOptions = []string{
	"Nearly every day",
	"More than half the days",
	"Several days",
	"Not at all",
}

// Questions is the fixed PHQ/GAD-style item list.
var Questions = []Question{
	{Text: "Over the past 2 weeks, how often have you felt down, depressed, or hopeless?", Options: defaultOptions},
	{Text: "Over the past 2 weeks, how often have you had little interest or pleasure in doing things?", Options: defaultOptions},
	{Text: "Over the past 2 weeks, how often have you had trouble falling or staying asleep, or sleeping too much?", Options: defaultOptions},
	{Text: "Over the past 2 weeks, how often have you felt tired or had little energy?", Options: defaultOptions},
	{Text: "Over the past 2 weeks, how often have you felt nervous, anxious, or on edge?", Options: defaultOptions},
	{Text: "Over the past 2 weeks, how often have you been able to stop or control worrying?", Options: reversedOptions},
	{Text: "Over the past 2 weeks, how often have you felt good about yourself?", Options: reversedOptions},
}

// Ledger records and reads assessment results through a storage
// Provider.
type Ledger struct {
	store storage.Provider
	now   func() time.Time
}

func NewLedger(store storage.Provider) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// NewLedgerWithClock is NewLedger with an injected clock for tests.
func NewLedgerWithClock(store storage.Provider, now func() time.Time) *Ledger {
	return &Ledger{store: store, now: now}
}

// RecordResult scores a completed run and appends it. Every question
// must be answered with an option index in 0..3; nothing is written
// otherwise.
func (l *Ledger) RecordResult(answers []int) (models.QuizResult, error) {
	if len(answers) != len(Questions) {
		return models.QuizResult{}, fmt.Errorf("expected %d answers, got %d", len(Questions), len(answers))
	}

	score := 0
	for i, a := range answers {
		if a < 0 || a > maxAnswerValue {
			return models.QuizResult{}, fmt.Errorf("answer %d out of range: %d", i+1, a)
		}
		score += a
	}

	result := models.QuizResult{
		Score:    score,
		MaxScore: len(answers) * maxAnswerValue,
		Date:     l.now(),
	}
	if err := l.store.AddQuizResult(result); err != nil {
		return models.QuizResult{}, err
	}
	return result, nil
}

// Results returns all recorded results, oldest first.
func (l *Ledger) Results() ([]models.QuizResult, error) {
	return l.store.GetQuizResults()
}

// RiskCategory buckets a score by its percentage of the maximum:
// at most 25% Low, at most 50% Mild, at most 75% Moderate, above that
// High. Upper bounds are inclusive, so a boundary score lands in the
// lower-risk bucket.
func RiskCategory(score, maxScore int) models.RiskCategory {
	if maxScore <= 0 {
		return models.RiskLow
	}
	percentage := float64(score) / float64(maxScore) * 100

	switch {
	case percentage <= 25:
		return models.RiskLow
	case percentage <= 50:
		return models.RiskMild
	case percentage <= 75:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}

// RiskDescription is the user-facing summary for a risk category.
func RiskDescription(category models.RiskCategory) string {
	switch category {
	case models.RiskLow:
		return "Your responses suggest you're currently experiencing low levels of distress."
	case models.RiskMild:
		return "Your responses suggest you may be experiencing mild levels of distress."
	case models.RiskModerate:
		return "Your responses suggest you may be experiencing moderate levels of distress."
	case models.RiskHigh:
		return "Your responses suggest you may be experiencing significant distress."
	default:
		return ""
	}
}
