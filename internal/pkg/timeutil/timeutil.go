package timeutil

import (
	"fmt"
	"time"
)

// DurationMinutes returns the whole minutes between start and end, truncated.
// Callers pass full timestamps; day-boundary resolution happens before this
// point, so end is expected to be at or after start. A negative span clamps
// to zero.
func DurationMinutes(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// FormatMinutes renders a minute total as "H:MM". The hours component is
// unbounded ("25:00" is a valid 25-hour shift). Returns nil for zero or
// negative totals so templates can show a blank cell.
func FormatMinutes(minutes int) *string {
	if minutes <= 0 {
		return nil
	}
	s := fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
	return &s
}

// IsOvernight reports whether a clock-in/clock-out pair spans midnight:
// a clock-out time-of-day at or before the clock-in time-of-day wraps to
// the next calendar day. Equal times are a full 24-hour wraparound, not a
// zero-length shift.
func IsOvernight(clockIn, clockOut time.Time) bool {
	return TimeOfDay(clockOut) <= TimeOfDay(clockIn)
}

// TimeOfDay returns the duration since midnight of t's own calendar day.
func TimeOfDay(t time.Time) time.Duration {
	return t.Sub(DateOf(t))
}

// DateOf truncates t to midnight of its calendar day, keeping the location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OnDate stamps the time-of-day carried by tod onto the given calendar day.
// Correction times arrive as "HH:MM" with no date and inherit the record's.
func OnDate(date time.Time, tod time.Duration) time.Time {
	return DateOf(date).Add(tod)
}
