package roster

import "errors"

var (
	ErrRosterNotFound         = errors.New("roster not found")
	ErrRosterAlreadyPublished = errors.New("roster is already published")
	ErrInvalidDateRange       = errors.New("start date must be before end date")
)
