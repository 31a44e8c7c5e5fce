package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Records
// are unique per (user, date); the store enforces that with a unique index,
// which doubles as the backstop for concurrent clock-in races.
type AttendanceRepository interface {
	// Create inserts a new record. A (user, date) collision returns
	// ErrInconsistentState.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record, joined with the owning user's name.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByUserAndDate retrieves the record for a specific working day.
	// Returns (nil, nil) when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// Update persists punch times, status and note of an existing record.
	Update(ctx context.Context, record Record) error

	// ListByUser retrieves one user's records with filters and pagination.
	ListByUser(ctx context.Context, userID string, filter MyAttendanceFilter) ([]Record, int64, error)

	// List retrieves records across users with filters and pagination.
	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)
}

// BreakRepository defines data access for break intervals.
type BreakRepository interface {
	Create(ctx context.Context, brk BreakInterval) (BreakInterval, error)

	// Update closes or adjusts an existing break.
	Update(ctx context.Context, brk BreakInterval) error

	// ListByAttendance returns a record's breaks ordered by start time.
	ListByAttendance(ctx context.Context, attendanceID string) ([]BreakInterval, error)

	// GetOpenByAttendance returns the open break with the latest start, or
	// (nil, nil) when every break is closed.
	GetOpenByAttendance(ctx context.Context, attendanceID string) (*BreakInterval, error)

	// DeleteByAttendance removes all breaks owned by a record. Used by
	// correction approval, inside the reconciliation transaction.
	DeleteByAttendance(ctx context.Context, attendanceID string) error
}
