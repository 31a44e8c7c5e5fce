package correction

import "errors"

// Correction domain errors
var (
	ErrPendingExists        = errors.New("a correction request is already pending for this record")
	ErrAlreadyProcessed     = errors.New("correction request has already been processed")
	ErrReconciliationFailed = errors.New("failed to apply the correction request")
	ErrCorrectionNotFound   = errors.New("correction request not found")
)
