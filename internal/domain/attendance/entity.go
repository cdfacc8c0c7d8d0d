package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Attendance reconciles a shift against real worked time. Exactly one
// record exists per shift; TotalHours is derived and only present once
// the worker has clocked out.
type Attendance struct {
	ID            string
	ShiftID       string
	UserID        string
	ClockIn       time.Time
	ClockOut      *time.Time
	BreakDuration decimal.Decimal
	TotalHours    *decimal.Decimal
	Notes         *string
	Status        Status
	ApprovedBy    *string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	UserName   *string
	ShiftTitle *string
}

var secondsPerHour = decimal.NewFromInt(3600)

// ComputeTotalHours derives billable hours from a clock pair and a break.
// The elapsed time is converted through whole seconds so the result stays
// exact in decimal; no binary floating point is involved.
func ComputeTotalHours(clockIn, clockOut time.Time, breakDuration decimal.Decimal) decimal.Decimal {
	elapsedSeconds := decimal.NewFromInt(int64(clockOut.Sub(clockIn) / time.Second))
	return elapsedSeconds.Div(secondsPerHour).Sub(breakDuration)
}
