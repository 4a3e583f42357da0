// Package dateutil is the single source of UTC-day arithmetic for the
// scheduling path. Scheduling decisions are pinned to UTC day boundaries
// regardless of the local time zone, so nothing else in the engine is allowed
// to do its own day math.
package dateutil

import "time"

// StartOfUTCDay returns midnight UTC of the day containing t.
func StartOfUTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfUTCDay returns the last instant of the UTC day containing t.
func EndOfUTCDay(t time.Time) time.Time {
	return StartOfUTCDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// UTCDayDifference returns the number of whole UTC days from a to b.
// Negative when b's UTC day precedes a's.
func UTCDayDifference(a, b time.Time) int {
	diff := StartOfUTCDay(b).Sub(StartOfUTCDay(a))
	return int(diff.Hours() / 24)
}

// SameUTCDay reports whether a and b fall on the same UTC day.
func SameUTCDay(a, b time.Time) bool {
	return UTCDayDifference(a, b) == 0
}

// DaysLate returns how many whole UTC days now is past due, or 0 when the
// review is on time or early.
func DaysLate(due, now time.Time) int {
	d := UTCDayDifference(due, now)
	if d < 0 {
		return 0
	}
	return d
}
