package attendance

import (
	"time"

	"github.com/rosterly/rosterly-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var validStatuses = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
}

// ClockInRequest creates the attendance record for a shift.
type ClockInRequest struct {
	ShiftID       string           `json:"shift_id"`
	UserID        string           `json:"user_id"`
	ClockIn       string           `json:"clock_in"`
	ClockOut      *string          `json:"clock_out"`
	BreakDuration *decimal.Decimal `json:"break_duration"`
	Notes         *string          `json:"notes"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	clockIn, clockInOK := validator.IsValidDateTime(r.ClockIn)
	if !clockInOK {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be a valid ISO8601 timestamp",
		})
	}

	if r.ClockOut != nil {
		clockOut, ok := validator.IsValidDateTime(*r.ClockOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be a valid ISO8601 timestamp",
			})
		} else if clockInOK && !clockIn.Before(clockOut) {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be after clock_in",
			})
		}
	}

	if r.BreakDuration != nil && r.BreakDuration.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration",
			Message: "break_duration must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest covers clock-out and edits. A status change is
// restricted to callers holding approval authority.
type UpdateAttendanceRequest struct {
	ID            string           `json:"-"`
	ClockOut      *string          `json:"clock_out"`
	BreakDuration *decimal.Decimal `json:"break_duration"`
	Notes         *string          `json:"notes"`
	Status        *string          `json:"status"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be a valid ISO8601 timestamp",
			})
		}
	}

	if r.BreakDuration != nil && r.BreakDuration.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration",
			Message: "break_duration must not be negative",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	UserID    *string
	ShiftID   *string
	Status    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

type AttendanceResponse struct {
	ID            string           `json:"id"`
	ShiftID       string           `json:"shift_id"`
	ShiftTitle    *string          `json:"shift_title,omitempty"`
	UserID        string           `json:"user_id"`
	UserName      *string          `json:"user_name,omitempty"`
	ClockIn       time.Time        `json:"clock_in"`
	ClockOut      *time.Time       `json:"clock_out,omitempty"`
	BreakDuration decimal.Decimal  `json:"break_duration"`
	TotalHours    *decimal.Decimal `json:"total_hours,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Status        string           `json:"status"`
	ApprovedBy    *string          `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time       `json:"approved_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
