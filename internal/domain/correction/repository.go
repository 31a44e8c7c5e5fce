package correction

import (
	"context"
)

// CorrectionRepository defines data access for correction requests and
// their break pairs.
type CorrectionRepository interface {
	// Create inserts a correction request together with its break pairs.
	Create(ctx context.Context, corr CorrectionRequest) (CorrectionRequest, error)

	// GetByID retrieves a request with its break pairs and owner details.
	GetByID(ctx context.Context, id string) (CorrectionRequest, error)

	// GetPendingByAttendance returns the pending request for a record, or
	// (nil, nil) when none exists. At most one can be pending per record.
	GetPendingByAttendance(ctx context.Context, attendanceID string) (*CorrectionRequest, error)

	// Update persists status and approval timestamp.
	Update(ctx context.Context, corr CorrectionRequest) error

	// ListPending retrieves pending requests across users, newest first.
	ListPending(ctx context.Context, filter PendingFilter) ([]CorrectionRequest, int64, error)
}
