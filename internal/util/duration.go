// Package util holds small parsing helpers shared by the flag layer.
package util

import (
	"fmt"
	"strconv"
	"time"
)

// ParseDuration parses a run duration. A bare integer is taken as minutes;
// anything else must be a Go duration string like "2h30m".
func ParseDuration(input string) (time.Duration, error) {
	if minutes, err := strconv.Atoi(input); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", input)
	}
	return duration, nil
}
