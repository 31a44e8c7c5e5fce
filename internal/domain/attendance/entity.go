package attendance

import (
	"time"
)

// Record is one attendance record per (user, calendar date). Punch times are
// absolute timestamps; Date is the working day the record belongs to, which
// for an overnight shift is the day the shift started.
type Record struct {
	ID        string
	UserID    string
	Date      time.Time
	ClockIn   *time.Time
	ClockOut  *time.Time
	Status    Status
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserName *string
}

// BreakInterval is a break taken within a Record. EndedAt stays nil while the
// break is open; at most one break per record is open at a time.
type BreakInterval struct {
	ID           string
	AttendanceID string
	StartedAt    time.Time
	EndedAt      *time.Time
	CreatedAt    time.Time
}
