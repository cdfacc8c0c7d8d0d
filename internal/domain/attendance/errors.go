package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound         = errors.New("attendance record not found")
	ErrAttendanceExists           = errors.New("attendance record already exists for this shift")
	ErrAttendanceAlreadyProcessed = errors.New("attendance has already been approved or rejected")
	ErrClockOutBeforeClockIn      = errors.New("clock-out must be after clock-in")
	ErrAttendanceAccessDenied     = errors.New("no access to this attendance record")
)
