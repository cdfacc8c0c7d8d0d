package user

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserInactive     = errors.New("user account is inactive")
	ErrUserHasNoCompany = errors.New("user does not belong to a company")
	ErrUserHasNoRate    = errors.New("user has no hourly rate configured")
	ErrForbidden        = errors.New("insufficient permissions for this action")
)
