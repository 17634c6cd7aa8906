package tzconvert

import (
	"fmt"
	"time"
)

// FormatUTCOffset formats an offset in seconds east of UTC as "+HH:MM" or "-HH:MM".
// Fractional-hour offsets are kept: 20700 (Asia/Kathmandu) -> "+05:45".
// A zero offset is "+00:00".
func FormatUTCOffset(offsetSeconds int) string {
	sign, hours, minutes := splitOffset(offsetSeconds)
	return fmt.Sprintf("%c%02d:%02d", sign, hours, minutes)
}

// FormatOffsetDiff formats a signed difference in seconds as "+H:MM" or "-H:MM".
// The sign is always present and the hour is not zero-padded:
// 20700 -> "+5:45", -10800 -> "-3:00", 0 -> "+0:00", 45000 -> "+12:30".
func FormatOffsetDiff(diffSeconds int) string {
	sign, hours, minutes := splitOffset(diffSeconds)
	return fmt.Sprintf("%c%d:%02d", sign, hours, minutes)
}

func splitOffset(seconds int) (sign rune, hours, minutes int) {
	sign = '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return sign, seconds / 3600, (seconds % 3600) / 60
}

// offsetOf returns t's offset from UTC in seconds, in t's own location.
func offsetOf(t time.Time) int {
	_, off := t.Zone()
	return off
}

// isDST reports whether t's offset differs from the offset its location uses
// at noon on January 1st of the same year.
//
// This is a heuristic. It assumes January is standard time, which is wrong
// for zones whose daylight saving season spans the northern winter
// (Australia/Sydney, Pacific/Auckland, America/Santiago): there the result is
// inverted. Zones without daylight saving always report false.
func isDST(t time.Time) bool {
	jan := time.Date(t.Year(), time.January, 1, 12, 0, 0, 0, t.Location())
	return offsetOf(t) != offsetOf(jan)
}
