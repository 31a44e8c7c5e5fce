package attendance

import (
	"time"

	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/timeutil"
)

// SumBreakMinutes totals the closed breaks of a record. An interval missing
// either bound contributes nothing; an open break is simply not counted yet.
func SumBreakMinutes(breaks []BreakInterval) int {
	total := 0
	for _, b := range breaks {
		if b.EndedAt == nil {
			continue
		}
		total += timeutil.DurationMinutes(b.StartedAt, *b.EndedAt)
	}
	return total
}

// WorkMinutes is the clock-in/out span minus break time, floored at zero.
// Returns 0 while either punch is missing.
func WorkMinutes(clockIn, clockOut *time.Time, breakMinutes int) int {
	if clockIn == nil || clockOut == nil {
		return 0
	}
	minutes := timeutil.DurationMinutes(*clockIn, *clockOut) - breakMinutes
	if minutes < 0 {
		return 0
	}
	return minutes
}

// IsOvernight reports whether the record's shift spans midnight, per the
// time-of-day wraparound rule. False while either punch is missing.
func (r Record) IsOvernight() bool {
	if r.ClockIn == nil || r.ClockOut == nil {
		return false
	}
	return timeutil.IsOvernight(*r.ClockIn, *r.ClockOut)
}
