package response

import (
	"errors"
	"net/http"

	"github.com/rosterly/rosterly-backend-go/internal/domain/attendance"
	"github.com/rosterly/rosterly-backend-go/internal/domain/auth"
	"github.com/rosterly/rosterly-backend-go/internal/domain/company"
	"github.com/rosterly/rosterly-backend-go/internal/domain/payroll"
	"github.com/rosterly/rosterly-backend-go/internal/domain/roster"
	"github.com/rosterly/rosterly-backend-go/internal/domain/shift"
	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
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
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is deactivated")

	// User domain errors
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		BadRequest(w, "User account is inactive", nil)
	case errors.Is(err, user.ErrUserHasNoCompany):
		BadRequest(w, "User does not belong to a company", nil)
	case errors.Is(err, user.ErrUserHasNoRate):
		BadRequest(w, "User has no hourly rate configured", nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Roster domain errors
	case errors.Is(err, roster.ErrRosterNotFound):
		NotFound(w, "Roster not found")
	case errors.Is(err, roster.ErrRosterAlreadyPublished):
		BadRequest(w, "Already published", nil)
	case errors.Is(err, roster.ErrInvalidDateRange):
		BadRequest(w, "Start date must be before end date", nil)

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftConflict):
		Conflict(w, "Shift conflict")
	case errors.Is(err, shift.ErrInvalidTimeRange):
		BadRequest(w, "Start time must be before end time", nil)
	case errors.Is(err, shift.ErrShiftAccessDenied):
		Forbidden(w, "No access to this shift")
	case errors.Is(err, shift.ErrAssigneeNotFound):
		NotFound(w, "Assigned user not found")
	case errors.Is(err, shift.ErrAssigneeWrongOrg):
		BadRequest(w, "User does not belong to the same company", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		BadRequest(w, "Attendance already recorded for this shift", nil)
	case errors.Is(err, attendance.ErrAttendanceAlreadyProcessed):
		Conflict(w, "Attendance already processed")
	case errors.Is(err, attendance.ErrClockOutBeforeClockIn):
		BadRequest(w, "Clock-out must be after clock-in", nil)
	case errors.Is(err, attendance.ErrAttendanceAccessDenied):
		Forbidden(w, "No access to this attendance record")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollAlreadyPaid):
		BadRequest(w, "Payroll record already paid", nil)
	case errors.Is(err, payroll.ErrCannotDeletePaid):
		BadRequest(w, "Cannot delete a paid payroll record", nil)
	case errors.Is(err, payroll.ErrInvalidStatus):
		BadRequest(w, "Invalid payroll status", nil)
	case errors.Is(err, payroll.ErrPayrollAccessDenied):
		Forbidden(w, "No access to this payroll record")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
