package payroll

import "errors"

var (
	ErrPayrollNotFound      = errors.New("payroll record not found")
	ErrPayrollAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollAlreadyPaid   = errors.New("payroll record already paid, cannot modify")
	ErrCannotDeletePaid     = errors.New("cannot delete paid payroll record")
	ErrInvalidStatus        = errors.New("invalid payroll status")
	ErrPayrollAccessDenied  = errors.New("no access to this payroll record")
)
