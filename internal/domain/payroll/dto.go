package payroll

import (
	"time"

	"github.com/rosterly/rosterly-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var validStatuses = []string{
	string(StatusDraft),
	string(StatusPendingApproval),
	string(StatusApproved),
	string(StatusPaid),
}

// CreatePayrollRequest creates a record with explicit hours. Pay amounts
// are always computed server side from the stored hourly rate.
type CreatePayrollRequest struct {
	UserID        string           `json:"user_id"`
	PeriodStart   string           `json:"period_start"`
	PeriodEnd     string           `json:"period_end"`
	RegularHours  decimal.Decimal  `json:"regular_hours"`
	OvertimeHours decimal.Decimal  `json:"overtime_hours"`
	Bonuses       *decimal.Decimal `json:"bonuses"`
	Deductions    *decimal.Decimal `json:"deductions"`
	Notes         *string          `json:"notes"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be a valid date in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be a valid date in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		})
	}

	if !validator.IsNonNegative(r.RegularHours) {
		errs = append(errs, validator.ValidationError{
			Field:   "regular_hours",
			Message: "regular_hours must not be negative",
		})
	}

	if !validator.IsNonNegative(r.OvertimeHours) {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must not be negative",
		})
	}

	if r.Bonuses != nil && r.Bonuses.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "bonuses",
			Message: "bonuses must not be negative",
		})
	}

	if r.Deductions != nil && r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deductions",
			Message: "deductions must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// GeneratePayrollRequest derives hours from approved attendance in the
// period instead of taking them from the caller.
type GeneratePayrollRequest struct {
	UserID      string `json:"user_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be a valid date in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be a valid date in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdatePayrollRequest edits an unpaid record. Hours, bonuses and
// deductions trigger a recompute; status moves the lifecycle.
type UpdatePayrollRequest struct {
	ID            string           `json:"-"`
	RegularHours  *decimal.Decimal `json:"regular_hours"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours"`
	Bonuses       *decimal.Decimal `json:"bonuses"`
	Deductions    *decimal.Decimal `json:"deductions"`
	Notes         *string          `json:"notes"`
	Status        *string          `json:"status"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RegularHours != nil && r.RegularHours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "regular_hours",
			Message: "regular_hours must not be negative",
		})
	}

	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must not be negative",
		})
	}

	if r.Bonuses != nil && r.Bonuses.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "bonuses",
			Message: "bonuses must not be negative",
		})
	}

	if r.Deductions != nil && r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deductions",
			Message: "deductions must not be negative",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of draft, pending_approval, approved, paid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HasPayChanges reports whether the request touches any field that feeds
// the pay computation.
func (r *UpdatePayrollRequest) HasPayChanges() bool {
	return r.RegularHours != nil || r.OvertimeHours != nil ||
		r.Bonuses != nil || r.Deductions != nil
}

type PayrollFilter struct {
	UserID      *string
	Status      *string
	PeriodStart *string
	PeriodEnd   *string
	Page        int
	Limit       int
}

type PayrollResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	UserName      *string         `json:"user_name,omitempty"`
	UserEmail     *string         `json:"user_email,omitempty"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	RegularPay    decimal.Decimal `json:"regular_pay"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	Bonuses       decimal.Decimal `json:"bonuses"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetPay        decimal.Decimal `json:"net_pay"`
	Notes         *string         `json:"notes,omitempty"`
	Status        string          `json:"status"`
	ApprovedBy    *string         `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ListPayrollResponse struct {
	Data       []PayrollResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
