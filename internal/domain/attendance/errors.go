package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyClockedIn      = errors.New("you have already clocked in today")
	ErrAlreadyClockedOut     = errors.New("you have already clocked out")
	ErrNoActiveRecord        = errors.New("no active attendance record")
	ErrInvalidPunchState     = errors.New("action not allowed in the current punch state")
	ErrNotOnBreak            = errors.New("you are not on break")
	ErrNoOpenBreak           = errors.New("no open break found")
	ErrPreviousDayUnfinished = errors.New("previous day's shift is still unfinished")
	ErrInconsistentState     = errors.New("attendance record is in an unexpected state")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
