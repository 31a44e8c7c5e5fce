package correction

import (
	"fmt"
	"time"

	"github.com/shiftdesk/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/timeutil"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/validator"
)

// ResolvedBreak is a proposed break with both bounds anchored to absolute
// timestamps.
type ResolvedBreak struct {
	Start time.Time
	End   time.Time
}

// Resolved carries a submission's times stamped onto the target record's
// calendar date, ready to persist.
type Resolved struct {
	ClockIn  *time.Time
	ClockOut *time.Time
	Note     string
	Breaks   []ResolvedBreak
}

// Resolve anchors a validated submission's time-of-day values onto the
// record's date and checks the cross-field ordering rules. The record's
// original overnight-ness decides the day boundary handling:
//
//   - not overnight: clock-in must be strictly before clock-out; every break
//     bound sits on the record's date and an inverted pair is an error.
//   - overnight: the requested clock-out always lands on the following
//     calendar day, any clock pair is accepted, and a break bound whose
//     time-of-day falls before the clock-in's time-of-day is logically past
//     midnight, so it shifts forward one day before any comparison.
//
// All rules are evaluated eagerly; the returned error is a
// validator.ValidationErrors listing every violation. Blank and one-sided
// pairs are assumed to be handled by SubmitRequest.Validate and are skipped.
func Resolve(rec attendance.Record, req SubmitRequest) (Resolved, error) {
	var errs validator.ValidationErrors

	overnight := rec.IsOvernight()
	date := timeutil.DateOf(rec.Date)

	var inTod, outTod time.Duration
	var hasIn, hasOut bool
	if req.ClockIn != nil && *req.ClockIn != "" {
		inTod, hasIn = validator.IsValidClockTime(*req.ClockIn)
	}
	if req.ClockOut != nil && *req.ClockOut != "" {
		outTod, hasOut = validator.IsValidClockTime(*req.ClockOut)
	}

	if hasIn && hasOut && !overnight && inTod >= outTod {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_time",
			Message: "clock-in must be before clock-out",
		})
	}

	resolved := Resolved{Note: req.Note}
	if hasIn {
		t := timeutil.OnDate(date, inTod)
		resolved.ClockIn = &t
	}
	if hasOut {
		t := timeutil.OnDate(date, outTod)
		if overnight {
			t = t.AddDate(0, 0, 1)
		}
		resolved.ClockOut = &t
	}

	for i, pair := range req.Breaks {
		if pair.blank() {
			continue
		}
		if pair.Start == nil || *pair.Start == "" || pair.End == nil || *pair.End == "" {
			continue
		}
		startTod, okStart := validator.IsValidClockTime(*pair.Start)
		endTod, okEnd := validator.IsValidClockTime(*pair.End)
		if !okStart || !okEnd {
			continue
		}

		start := timeutil.OnDate(date, startTod)
		end := timeutil.OnDate(date, endTod)

		if overnight && hasIn {
			// A bound numerically earlier than clock-in belongs to the
			// portion of the shift after midnight.
			if startTod < inTod {
				start = start.AddDate(0, 0, 1)
			}
			if endTod < inTod {
				end = end.AddDate(0, 0, 1)
			}
		}

		if end.Before(start) || end.Equal(start) {
			if overnight {
				// A legitimately overnight break wraps to the next day.
				end = end.AddDate(0, 0, 1)
			} else {
				errs = append(errs, validator.ValidationError{
					Field:   fmt.Sprintf("breaks[%d]", i),
					Message: "break start must be before break end",
				})
				continue
			}
		}

		if resolved.ClockIn != nil && start.Before(*resolved.ClockIn) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("breaks[%d]", i),
				Message: "break must not start before clock-in",
			})
		}
		if resolved.ClockOut != nil && end.After(*resolved.ClockOut) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("breaks[%d]", i),
				Message: "break must not end after clock-out",
			})
		}

		resolved.Breaks = append(resolved.Breaks, ResolvedBreak{Start: start, End: end})
	}

	if len(errs) > 0 {
		return Resolved{}, errs
	}

	return resolved, nil
}
