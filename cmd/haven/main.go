package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/haven-app/haven/internal/cli"
	"github.com/haven-app/haven/internal/config"
	"github.com/haven-app/haven/internal/constants"
	"github.com/haven-app/haven/internal/logger"
	"github.com/haven-app/haven/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Database file path, or a directory for JSON storage." type:"string" default:"${data_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize haven storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Mood     cli.MoodCmd     `cmd:"" help:"Record and review mood check-ins."`
	Meditate cli.MeditateCmd `cmd:"" help:"Guided meditation sessions and stats."`
	Habit    cli.HabitCmd    `cmd:"" help:"Track daily habits."`
	Quiz     cli.QuizCmd     `cmd:"" help:"Wellbeing self-assessment."`
	Journal  cli.JournalCmd  `cmd:"" help:"Private journal entries."`
	Remind   cli.RemindCmd   `cmd:"" help:"Daily reminders."`
	Chat     cli.ChatCmd     `cmd:"" help:"Talk to the supportive assistant."`
	Breathe  cli.BreatheCmd  `cmd:"" help:"Run the 4-7-8 breathing exercise."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	// Config is read before flag parsing so HAVEN_DATA_DIR can seed the
	// --data default.
	cfg := config.New()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal wellbeing companion: mood, meditation, habits, and more"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":   constants.Version,
			"data_path": filepath.Join(cfg.DataDir, "haven.db"),
		},
	)

	if err := logger.Init(logger.Config{
		Debug:   CLI.Debug,
		DataDir: filepath.Dir(expandHome(CLI.Data)),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// A path ending in .db selects SQLite; anything else is treated as
	// a directory of JSON collections.
	var store storage.Provider
	dataPath := expandHome(CLI.Data)
	if strings.HasSuffix(dataPath, ".db") {
		store = storage.NewSQLiteStore(dataPath)
	} else {
		store = storage.NewJSONStore(dataPath)
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	// Init handles its own loading.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
