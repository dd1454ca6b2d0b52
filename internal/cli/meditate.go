package cli

import (
	"fmt"

	"github.com/haven-app/haven/internal/constants"
	"github.com/haven-app/haven/internal/meditation"
)

type MeditateCmd struct {
	List  MeditateListCmd  `cmd:"" help:"List the guided meditation catalog."`
	Log   MeditateLogCmd   `cmd:"" help:"Record a completed meditation session."`
	Stats MeditateStatsCmd `cmd:"" help:"Show total minutes and current streak."`
}

type MeditateListCmd struct{}

func (c *MeditateListCmd) Run(ctx *Context) error {
	fmt.Println("Available tracks:")
	for _, t := range meditation.Tracks {
		fmt.Printf("  %-16s %s (%d:%02d)\n", t.ID, t.Title, t.Duration/60, t.Duration%60)
	}
	return nil
}

type MeditateLogCmd struct {
	Track string `arg:"" help:"Track id from 'haven meditate list'."`
}

func (c *MeditateLogCmd) Run(ctx *Context) error {
	track, err := meditation.TrackByID(c.Track)
	if err != nil {
		return err
	}

	ledger := meditation.NewLedger(ctx.Store)
	session, err := ledger.RecordSession(track.ID, track.Duration, true)
	if err != nil {
		return err
	}

	fmt.Printf("Logged session: %s on %s\n", track.Title, session.Date.Format(constants.DateFormat))
	return nil
}

type MeditateStatsCmd struct{}

func (c *MeditateStatsCmd) Run(ctx *Context) error {
	ledger := meditation.NewLedger(ctx.Store)

	sessions, err := ledger.Sessions()
	if err != nil {
		return err
	}
	minutes, err := ledger.TotalMinutes()
	if err != nil {
		return err
	}
	streak, err := ledger.CurrentStreak()
	if err != nil {
		return err
	}

	completed := 0
	for _, s := range sessions {
		if s.Completed {
			completed++
		}
	}

	fmt.Printf("Sessions completed: %d\n", completed)
	fmt.Printf("Total minutes:      %d\n", minutes)
	fmt.Printf("Current streak:     %d day(s)\n", streak)
	return nil
}
