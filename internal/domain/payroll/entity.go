package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusPaid            Status = "paid"
)

// Payroll is a computed pay record for a worker over a period. The pay
// figures always satisfy net_pay = regular_pay + overtime_pay + bonuses -
// deductions; every mutation that touches hours, bonuses or deductions
// recomputes them through Compute.
type Payroll struct {
	ID            string
	UserID        string
	CompanyID     string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	HourlyRate    decimal.Decimal
	RegularPay    decimal.Decimal
	OvertimePay   decimal.Decimal
	Bonuses       decimal.Decimal
	Deductions    decimal.Decimal
	NetPay        decimal.Decimal
	Notes         *string
	Status        Status
	ApprovedBy    *string
	ApprovedAt    *time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	UserName  *string
	UserEmail *string
}
