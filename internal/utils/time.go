package utils

import (
	"fmt"
	"time"

	"github.com/haven-app/haven/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// DateKey returns the calendar-day key (YYYY-MM-DD) for a time.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a calendar-day key back into a time at midnight
// local to the key (no timezone information is carried by the key).
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(constants.DateFormat, key)
}

// ValidateDateKey reports whether the string is a well-formed
// calendar-day key.
func ValidateDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// LastNDateKeys returns the n calendar-day keys ending at (and
// including) the day of now, oldest first.
func LastNDateKeys(n int, now time.Time) []string {
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, DateKey(now.AddDate(0, 0, -i)))
	}
	return keys
}

// ValidateTimeFormat checks if the string matches the reminder time
// format (HH:MM).
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
