package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/haven-app/haven/internal/constants"
	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/mood"
)

type MoodCmd struct {
	Record MoodRecordCmd `cmd:"" help:"Record how you're feeling right now."`
	List   MoodListCmd   `cmd:"" help:"List recorded mood entries."`
	Stats  MoodStatsCmd  `cmd:"" help:"Show mood statistics for the recent window."`
}

type MoodRecordCmd struct {
	Mood string `arg:"" optional:"" help:"Mood to record (awful, bad, okay, good, great). Prompts if omitted."`
}

func (c *MoodRecordCmd) Run(ctx *Context) error {
	selected := models.Mood(strings.ToLower(strings.TrimSpace(c.Mood)))

	if selected == "" {
		var options []huh.Option[models.Mood]
		for _, m := range models.Moods() {
			options = append(options, huh.NewOption(string(m), m))
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[models.Mood]().
					Title("How are you feeling?").
					Options(options...).
					Value(&selected),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("mood form error: %w", err)
		}
	}

	ledger := mood.NewLedger(ctx.Store)
	entry, err := ledger.Record(selected)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded mood: %s (%d/5)\n", entry.Mood, entry.Value)
	return nil
}

type MoodListCmd struct{}

func (c *MoodListCmd) Run(ctx *Context) error {
	ledger := mood.NewLedger(ctx.Store)
	entries, err := ledger.Entries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No mood entries recorded yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-5s (%d/5)\n", e.Date.Format(constants.DateFormat), e.Mood, e.Value)
	}
	return nil
}

type MoodStatsCmd struct {
	Window int `help:"Number of recent entries to analyze." default:"7"`
}

func (c *MoodStatsCmd) Run(ctx *Context) error {
	ledger := mood.NewLedger(ctx.Store)

	window, err := ledger.RecentWindow(c.Window)
	if err != nil {
		return err
	}
	if len(window) == 0 {
		fmt.Println("No mood entries recorded yet.")
		return nil
	}

	fmt.Printf("Entries analyzed: %d\n", len(window))
	fmt.Printf("Average mood:     %.1f/5\n", mood.AverageValue(window))
	fmt.Printf("Trend:            %s\n", trendLabel(mood.TrendDirection(window)))
	return nil
}

func trendLabel(t mood.Trend) string {
	switch t {
	case mood.TrendUp:
		return "improving"
	case mood.TrendDown:
		return "declining"
	default:
		return "stable"
	}
}
