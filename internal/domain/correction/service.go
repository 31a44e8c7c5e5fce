package correction

import (
	"context"
)

// CorrectionService covers correction submission by users and approval by
// administrators. Approval merges the requested values into the owning
// attendance record and replaces its break rows in one transaction.
type CorrectionService interface {
	Submit(ctx context.Context, req SubmitRequest) (CorrectionResponse, error)
	Approve(ctx context.Context, id string) (CorrectionResponse, error)
	Get(ctx context.Context, id string) (CorrectionResponse, error)
	ListPending(ctx context.Context, filter PendingFilter) (ListCorrectionResponse, error)
}
