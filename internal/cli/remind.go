package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/notifier"
	"github.com/haven-app/haven/internal/utils"
)

type RemindCmd struct {
	Add    RemindAddCmd    `cmd:"" help:"Add a daily reminder."`
	List   RemindListCmd   `cmd:"" help:"List reminders."`
	Toggle RemindToggleCmd `cmd:"" help:"Enable or disable a reminder."`
	Delete RemindDeleteCmd `cmd:"" help:"Delete a reminder."`
	Due    RemindDueCmd    `cmd:"" help:"Send notifications for reminders that are due."`
}

type RemindAddCmd struct {
	Time string `arg:"" help:"Time of day in HH:MM (24-hour) format."`
	Text string `arg:"" help:"Reminder text."`
}

func (c *RemindAddCmd) Run(ctx *Context) error {
	if !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid time %q (expected HH:MM)", c.Time)
	}
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return fmt.Errorf("reminder text cannot be empty")
	}

	reminder := models.Reminder{
		ID:      uuid.New().String(),
		Time:    c.Time,
		Text:    text,
		Enabled: true,
	}
	if err := ctx.Store.AddReminder(reminder); err != nil {
		return err
	}

	fmt.Printf("Added reminder at %s: %s\n", reminder.Time, reminder.Text)
	return nil
}

type RemindListCmd struct{}

func (c *RemindListCmd) Run(ctx *Context) error {
	reminders, err := ctx.Store.GetReminders()
	if err != nil {
		return err
	}

	if len(reminders) == 0 {
		fmt.Println("No reminders set.")
		return nil
	}

	for _, r := range reminders {
		status := "on "
		if !r.Enabled {
			status = "off"
		}
		fmt.Printf("%s  [%s]  %s  %s\n", r.ID[:8], status, r.Time, r.Text)
	}
	return nil
}

type RemindToggleCmd struct {
	ID string `arg:"" help:"Reminder id (or unique prefix)."`
}

func (c *RemindToggleCmd) Run(ctx *Context) error {
	reminder, err := resolveReminder(ctx, c.ID)
	if err != nil {
		return err
	}

	reminder.Enabled = !reminder.Enabled
	if err := ctx.Store.UpdateReminder(reminder); err != nil {
		return err
	}

	state := "Enabled"
	if !reminder.Enabled {
		state = "Disabled"
	}
	fmt.Printf("%s reminder at %s: %s\n", state, reminder.Time, reminder.Text)
	return nil
}

type RemindDeleteCmd struct {
	ID string `arg:"" help:"Reminder id (or unique prefix) to delete."`
}

func (c *RemindDeleteCmd) Run(ctx *Context) error {
	reminder, err := resolveReminder(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteReminder(reminder.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted reminder at %s: %s\n", reminder.Time, reminder.Text)
	return nil
}

type RemindDueCmd struct {
	Quiet bool `help:"Print due reminders without sending notifications."`
}

func (c *RemindDueCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	reminders, err := ctx.Store.GetReminders()
	if err != nil {
		return err
	}

	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		now = time.Now()
	}
	due := notifier.Due(reminders, now)
	if len(due) == 0 {
		fmt.Println("Nothing due right now.")
		return nil
	}

	for _, r := range due {
		fmt.Printf("%s  %s\n", r.Time, r.Text)
	}

	if c.Quiet || !settings.NotificationsEnabled {
		return nil
	}

	sent, err := notifier.New().NotifyDue(reminders, now)
	if err != nil {
		return fmt.Errorf("sent %d notification(s), first failure: %w", sent, err)
	}
	return nil
}

func resolveReminder(ctx *Context, id string) (models.Reminder, error) {
	reminders, err := ctx.Store.GetReminders()
	if err != nil {
		return models.Reminder{}, err
	}

	var matches []models.Reminder
	for _, r := range reminders {
		if r.ID == id {
			return r, nil
		}
		if strings.HasPrefix(r.ID, id) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Reminder{}, fmt.Errorf("reminder %q not found", id)
	default:
		return models.Reminder{}, fmt.Errorf("reminder id %q is ambiguous (%d matches)", id, len(matches))
	}
}
