package attendance

import (
	"context"
	"time"
)

// AttendanceService covers the punch actions and attendance reads. Punch
// actions always stamp the injected clock's "now"; the acting user comes
// from the request context's token claims.
type AttendanceService interface {
	ClockIn(ctx context.Context) (AttendanceResponse, error)
	ClockOut(ctx context.Context) (AttendanceResponse, error)
	BreakStart(ctx context.Context) (AttendanceResponse, error)
	BreakEnd(ctx context.Context) (AttendanceResponse, error)

	// ResolveActiveRecord returns the record the next punch should affect:
	// today's record if any, else yesterday's still-open overnight record,
	// else nil.
	ResolveActiveRecord(ctx context.Context, userID string, now time.Time) (*Record, error)

	// GetStatus resolves the active record and the punch actions it allows.
	GetStatus(ctx context.Context) (StatusResponse, error)

	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetAttendance(ctx context.Context, id string) (DetailResponse, error)
}
