package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrShiftConflict      = errors.New("user already has a shift during this time")
	ErrInvalidTimeRange   = errors.New("start time must be before end time")
	ErrShiftAccessDenied  = errors.New("no access to this shift")
	ErrAssigneeNotFound   = errors.New("assigned user not found")
	ErrAssigneeWrongOrg   = errors.New("user does not belong to the same company")
)
