package models

// Settings represents application-wide settings
type Settings struct {
	SoundEnabled         bool   `json:"sound_enabled"`         // whether UI sound effects are enabled
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether desktop notifications are enabled
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
	UserName             string `json:"user_name"`             // display name used in greetings
}
