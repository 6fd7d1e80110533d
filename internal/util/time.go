package util

import (
	"fmt"
	"strings"
	"time"
)

// ParseTimeString parses a clock time in 24-hour ("23:30") or 12-hour
// ("11:30PM") format, anchored to today in the local time zone.
func ParseTimeString(timeStr string) (time.Time, error) {
	return ParseTimeStringWithNow(timeStr, time.Now())
}

// ParseTimeStringWithNow is ParseTimeString with an injectable "now", used
// by the flag layer and its tests.
func ParseTimeStringWithNow(timeStr string, now time.Time) (time.Time, error) {
	timeStr = strings.TrimSpace(strings.ToUpper(timeStr))

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if t, err := time.Parse("15:04", timeStr); err == nil {
		return today.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
	}

	formats := []string{"3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}
	for _, format := range formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return today.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time format: %s\n\nValid formats:\n"+
		"• 24-hour format: HH:MM (e.g., '23:30', '09:45')\n"+
		"• 12-hour format: HH:MM[AM|PM] (e.g., '11:30PM', '9:45 AM')", timeStr)
}
