package attendance

import "errors"

var (
	ErrAttendanceExists = errors.New("attendance already recorded for this date")
	ErrFutureDate       = errors.New("attendance cannot be recorded for a future date")
	ErrUnauthorized     = errors.New("unauthorized to record attendance for this employee")
)
