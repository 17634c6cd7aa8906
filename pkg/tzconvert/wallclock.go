package tzconvert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/tztime/pkg/timezone"
)

// ErrTimeFormat is the kind of a *timezone.ValidationError for a time string
// that is not strict 24-hour HH:MM.
var ErrTimeFormat = errors.New("time is not in HH:MM format")

// WallClock is a time of day with no date or zone attached.
// Hour is 0-23 and Minute is 0-59.
type WallClock struct {
	Hour   int
	Minute int
}

// String renders the wall clock as "HH:MM".
func (w WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

// ParseWallClock parses a strict 24-hour "HH:MM" string.
// Surrounding whitespace is ignored. Seconds, dates, "24:00",
// single-digit hours and out-of-range fields are rejected.
//
// Examples:
//   - "09:05" -> 09:05
//   - " 23:59 " -> 23:59
//   - "9:05", "24:00", "12:60", "14:30:00" -> ErrTimeFormat
func ParseWallClock(s string) (WallClock, error) {
	trimmed := strings.TrimSpace(s)

	if len(trimmed) != 5 || trimmed[2] != ':' {
		return WallClock{}, timeFormatError(trimmed)
	}

	hour, ok := twoDigits(trimmed[0], trimmed[1])
	if !ok || hour > 23 {
		return WallClock{}, timeFormatError(trimmed)
	}
	minute, ok := twoDigits(trimmed[3], trimmed[4])
	if !ok || minute > 59 {
		return WallClock{}, timeFormatError(trimmed)
	}

	return WallClock{Hour: hour, Minute: minute}, nil
}

func twoDigits(hi, lo byte) (int, bool) {
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, false
	}
	return int(hi-'0')*10 + int(lo-'0'), true
}

func timeFormatError(input string) error {
	return &timezone.ValidationError{
		Kind:    ErrTimeFormat,
		Input:   input,
		Message: fmt.Sprintf("Invalid time format: '%s'. Expected HH:MM in 24-hour format (e.g., '14:30').", input),
	}
}
