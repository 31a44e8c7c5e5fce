package correction

import (
	"fmt"
	"time"

	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// CORRECTION DTOs
// ========================================

// BreakPairInput is one proposed break as a paired (start, end) value.
// Pairs are submitted in order; a fully blank pair is treated as "not
// submitted" so trailing empty form rows are harmless.
type BreakPairInput struct {
	Start *string `json:"start"` // HH:MM
	End   *string `json:"end"`   // HH:MM
}

func (p BreakPairInput) blank() bool {
	return (p.Start == nil || *p.Start == "") && (p.End == nil || *p.End == "")
}

type SubmitRequest struct {
	AttendanceID string           `json:"attendance_id"`
	ClockIn      *string          `json:"clock_in"`  // HH:MM
	ClockOut     *string          `json:"clock_out"` // HH:MM
	Note         string           `json:"note"`
	Breaks       []BreakPairInput `json:"breaks"`
}

// Validate checks field shapes eagerly so a submission surfaces every
// problem at once. Cross-field ordering rules need the target record's
// overnight-ness and live in Resolve.
func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required",
		})
	} else if !validator.MaxLen(r.Note, 500) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if r.ClockIn != nil && *r.ClockIn != "" {
		if _, ok := validator.IsValidClockTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be in HH:MM format",
			})
		}
	}
	if r.ClockOut != nil && *r.ClockOut != "" {
		if _, ok := validator.IsValidClockTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be in HH:MM format",
			})
		}
	}

	for i, pair := range r.Breaks {
		if pair.blank() {
			continue
		}
		if pair.Start == nil || *pair.Start == "" || pair.End == nil || *pair.End == "" {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("breaks[%d]", i),
				Message: "break requires both a start and an end time",
			})
			continue
		}
		if _, ok := validator.IsValidClockTime(*pair.Start); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("breaks[%d].start", i),
				Message: "break start must be in HH:MM format",
			})
		}
		if _, ok := validator.IsValidClockTime(*pair.End); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("breaks[%d].end", i),
				Message: "break end must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakPairResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CorrectionResponse struct {
	ID           string              `json:"id"`
	AttendanceID string              `json:"attendance_id"`
	UserID       *string             `json:"user_id,omitempty"`
	UserName     *string             `json:"user_name,omitempty"`
	Date         *string             `json:"date,omitempty"`
	ClockIn      *string             `json:"clock_in,omitempty"`
	ClockOut     *string             `json:"clock_out,omitempty"`
	Note         string              `json:"note"`
	Status       string              `json:"status"`
	ApprovedAt   *string             `json:"approved_at,omitempty"`
	Breaks       []BreakPairResponse `json:"breaks"`
	CreatedAt    string              `json:"created_at"`
}

type PendingFilter struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PendingFilter) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListCorrectionResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Corrections []CorrectionResponse `json:"corrections"`
}

// MapToResponse converts a CorrectionRequest to the wire shape.
func MapToResponse(corr CorrectionRequest) CorrectionResponse {
	breaks := make([]BreakPairResponse, 0, len(corr.Breaks))
	for _, b := range corr.Breaks {
		if b.StartedAt == nil || b.EndedAt == nil {
			continue
		}
		breaks = append(breaks, BreakPairResponse{
			Start: b.StartedAt.Format("15:04"),
			End:   b.EndedAt.Format("15:04"),
		})
	}

	var date *string
	if corr.Date != nil {
		formatted := corr.Date.Format("2006-01-02")
		date = &formatted
	}

	return CorrectionResponse{
		ID:           corr.ID,
		AttendanceID: corr.AttendanceID,
		UserID:       corr.UserID,
		UserName:     corr.UserName,
		Date:         date,
		ClockIn:      clockTimePtr(corr.RequestedClockIn),
		ClockOut:     clockTimePtr(corr.RequestedClockOut),
		Note:         corr.RequestedNote,
		Status:       string(corr.Status),
		ApprovedAt:   timestampPtr(corr.ApprovedAt),
		Breaks:       breaks,
		CreatedAt:    corr.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func clockTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04")
	return &formatted
}

func timestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}
