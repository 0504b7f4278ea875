package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadySettled     = errors.New("attendance record already settled")
	ErrMissingExitTime    = errors.New("attendance record has no exit time")
	ErrRangeTooLong       = errors.New("generation range exceeds 90 days")
)
