package correction

import (
	"time"
)

// Status of a correction request. Requests never revert to pending and are
// never deleted.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// CorrectionRequest is a user-submitted replacement for an attendance
// record's punches, awaiting admin approval. Requested times are absolute
// timestamps resolved onto the record's date at submission time; overnight
// clock-outs already sit on the following day.
type CorrectionRequest struct {
	ID                string
	AttendanceID      string
	RequestedClockIn  *time.Time
	RequestedClockOut *time.Time
	RequestedNote     string
	Status            Status
	ApprovedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Breaks []BreakCorrection

	// DTO
	UserID   *string
	UserName *string
	Date     *time.Time
}

// BreakCorrection mirrors a BreakInterval for the proposed state. Submission
// validation rejects one-sided pairs, so persisted rows carry both bounds;
// the nullable types are kept so approval can skip anything malformed.
type BreakCorrection struct {
	ID           string
	CorrectionID string
	StartedAt    *time.Time
	EndedAt      *time.Time
}
