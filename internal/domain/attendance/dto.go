package attendance

import (
	"strings"
	"time"

	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/timeutil"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type BreakResponse struct {
	ID        string  `json:"id"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at,omitempty"`
}

type AttendanceResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	UserName  *string         `json:"user_name,omitempty"`
	Date      string          `json:"date"`
	Status    string          `json:"status"`
	ClockIn   *string         `json:"clock_in,omitempty"`
	ClockOut  *string         `json:"clock_out,omitempty"`
	Note      *string         `json:"note,omitempty"`
	Overnight bool            `json:"overnight"`
	Breaks    []BreakResponse `json:"breaks"`
	BreakTime *string         `json:"break_time,omitempty"`
	WorkTime  *string         `json:"work_time,omitempty"`
}

// DisplayState tells views whether a record is editable or frozen behind a
// pending correction, replacing scattered "has pending request" checks.
type DisplayState struct {
	Kind    DisplayKind              `json:"kind"`
	Pending *PendingCorrectionValues `json:"pending,omitempty"`
}

type DisplayKind string

const (
	DisplayEditable        DisplayKind = "editable"
	DisplayPendingApproval DisplayKind = "pending_approval"
)

// PendingCorrectionValues carries the requested replacement values of a
// pending correction so detail views can render them in place.
type PendingCorrectionValues struct {
	CorrectionID string       `json:"correction_id"`
	ClockIn      *string      `json:"clock_in,omitempty"`
	ClockOut     *string      `json:"clock_out,omitempty"`
	Note         string       `json:"note"`
	Breaks       [][2]*string `json:"breaks"`
}

type DetailResponse struct {
	Attendance AttendanceResponse `json:"attendance"`
	Display    DisplayState       `json:"display"`
}

// StatusResponse backs the punch screen: current state plus which punch
// buttons apply.
type StatusResponse struct {
	Status        string              `json:"status"`
	Record        *AttendanceResponse `json:"record,omitempty"`
	CanClockIn    bool                `json:"can_clock_in"`
	CanClockOut   bool                `json:"can_clock_out"`
	CanBreakStart bool                `json:"can_break_start"`
	CanBreakEnd   bool                `json:"can_break_end"`
}

type MyAttendanceFilter struct {
	Month *string `json:"month,omitempty"` // YYYY-MM

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 31 // Default: a full month of records
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Month != nil && *f.Month != "" {
		if _, valid := validator.IsValidMonth(*f.Month); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	UserName  *string `json:"user_name,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // date, user_name, clock_in, clock_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && *f.Status != "" {
		if !Status(*f.Status).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: off_duty, working, on_break, finished",
			})
		}
	}

	for field, value := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "user_name", "clock_in", "clock_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, user_name, clock_in, clock_out, status",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	Records    []AttendanceResponse `json:"records"`
}

// MapToResponse converts a Record plus its breaks to the wire shape,
// computing break and work totals on the way out.
func MapToResponse(rec Record, breaks []BreakInterval) AttendanceResponse {
	breakMinutes := SumBreakMinutes(breaks)

	breakResponses := make([]BreakResponse, 0, len(breaks))
	for _, b := range breaks {
		breakResponses = append(breakResponses, BreakResponse{
			ID:        b.ID,
			StartedAt: b.StartedAt.Format("15:04"),
			EndedAt:   clockTimePtr(b.EndedAt),
		})
	}

	return AttendanceResponse{
		ID:        rec.ID,
		UserID:    rec.UserID,
		UserName:  rec.UserName,
		Date:      rec.Date.Format("2006-01-02"),
		Status:    string(rec.Status),
		ClockIn:   clockTimePtr(rec.ClockIn),
		ClockOut:  clockTimePtr(rec.ClockOut),
		Note:      rec.Note,
		Overnight: rec.IsOvernight(),
		Breaks:    breakResponses,
		BreakTime: timeutil.FormatMinutes(breakMinutes),
		WorkTime:  timeutil.FormatMinutes(WorkMinutes(rec.ClockIn, rec.ClockOut, breakMinutes)),
	}
}

func clockTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04")
	return &formatted
}
