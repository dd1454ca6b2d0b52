// Package notifier sends desktop notifications for daily reminders.
package notifier

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/haven-app/haven/internal/constants"
	"github.com/haven-app/haven/internal/models"
)

// notifyFunc is swapped out in tests.
var notifyFunc = beeep.Notify

type Notifier struct{}

func New() *Notifier {
	return &Notifier{}
}

// Notify sends a single desktop notification.
func (n *Notifier) Notify(title, body string) error {
	if err := notifyFunc(title, body, ""); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// Due returns the enabled reminders whose time of day has passed as of
// now. Disabled reminders and malformed times are skipped.
func Due(reminders []models.Reminder, now time.Time) []models.Reminder {
	nowMinutes := now.Hour()*60 + now.Minute()

	var due []models.Reminder
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		t, err := time.Parse(constants.TimeFormat, r.Time)
		if err != nil {
			continue
		}
		if t.Hour()*60+t.Minute() <= nowMinutes {
			due = append(due, r)
		}
	}
	return due
}

// NotifyDue sends a notification for every due reminder and returns
// how many were sent. A failure on one reminder does not stop the
// rest.
func (n *Notifier) NotifyDue(reminders []models.Reminder, now time.Time) (int, error) {
	var firstErr error
	sent := 0
	for _, r := range Due(reminders, now) {
		if err := n.Notify("haven reminder", r.Text); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent++
	}
	return sent, firstErr
}
