package cli

import (
	"fmt"
	"strconv"

	"github.com/haven-app/haven/internal/keyring"
	"github.com/haven-app/haven/internal/utils"
)

type SettingsCmd struct {
	Show   SettingsShowCmd   `cmd:"" help:"Show current settings." default:"1"`
	Set    SettingsSetCmd    `cmd:"" help:"Change a setting."`
	Apikey SettingsApikeyCmd `cmd:"" help:"Manage the assistant API key."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	fmt.Printf("sound:         %t\n", settings.SoundEnabled)
	fmt.Printf("notifications: %t\n", settings.NotificationsEnabled)
	fmt.Printf("timezone:      %s\n", settings.Timezone)
	fmt.Printf("name:          %s\n", settings.UserName)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting to change: sound, notifications, timezone, name."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	switch c.Key {
	case "sound":
		v, err := strconv.ParseBool(c.Value)
		if err != nil {
			return fmt.Errorf("sound must be true or false, got %q", c.Value)
		}
		settings.SoundEnabled = v
	case "notifications":
		v, err := strconv.ParseBool(c.Value)
		if err != nil {
			return fmt.Errorf("notifications must be true or false, got %q", c.Value)
		}
		settings.NotificationsEnabled = v
	case "timezone":
		if !utils.ValidateTimezone(c.Value) {
			return fmt.Errorf("unknown timezone %q", c.Value)
		}
		settings.Timezone = c.Value
	case "name":
		settings.UserName = c.Value
	default:
		return fmt.Errorf("unknown setting %q (expected sound, notifications, timezone, or name)", c.Key)
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Printf("Updated %s\n", c.Key)
	return nil
}

type SettingsApikeyCmd struct {
	Set    ApikeySetCmd    `cmd:"" help:"Store the assistant API key in the OS keyring."`
	Delete ApikeyDeleteCmd `cmd:"" help:"Remove the assistant API key from the OS keyring."`
	Status ApikeyStatusCmd `cmd:"" help:"Check whether an API key is configured." default:"1"`
}

type ApikeySetCmd struct {
	Key string `arg:"" help:"API key to store."`
}

func (c *ApikeySetCmd) Run(ctx *Context) error {
	if err := keyring.SetAPIKey(c.Key); err != nil {
		return err
	}
	fmt.Println("API key stored in OS keyring.")
	return nil
}

type ApikeyDeleteCmd struct{}

func (c *ApikeyDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		return err
	}
	fmt.Println("API key removed from OS keyring.")
	return nil
}

type ApikeyStatusCmd struct{}

func (c *ApikeyStatusCmd) Run(ctx *Context) error {
	if _, err := keyring.GetAPIKey(); err == nil {
		fmt.Println("API key: configured (OS keyring)")
		return nil
	}
	if ctx.Config.GeminiAPIKey != "" {
		fmt.Println("API key: configured (environment)")
		return nil
	}
	fmt.Println("API key: not configured (chat will use offline replies)")
	return nil
}
