package response

import (
	"errors"
	"net/http"

	"github.com/shiftdesk/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/correction"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/user"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Administrator privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out")
	case errors.Is(err, attendance.ErrPreviousDayUnfinished):
		Conflict(w, "Previous day's shift is still open")
	case errors.Is(err, attendance.ErrInvalidPunchState):
		Conflict(w, "Action not allowed in the current state")
	case errors.Is(err, attendance.ErrNotOnBreak):
		Conflict(w, "Not currently on break")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "No open break to end")
	case errors.Is(err, attendance.ErrNoActiveRecord):
		NotFound(w, "No active attendance record")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInconsistentState):
		Conflict(w, "Attendance record is in an inconsistent state")

	// Correction domain errors
	case errors.Is(err, correction.ErrPendingExists):
		Conflict(w, "A correction request is already pending for this record")
	case errors.Is(err, correction.ErrAlreadyProcessed):
		Conflict(w, "Correction request already processed")
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Correction request not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
