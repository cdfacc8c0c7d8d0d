package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access methods for attendance records.
// The attendances.shift_id column carries a UNIQUE constraint; Create maps
// a violation to ErrAttendanceExists so concurrent double clock-ins cannot
// both commit.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByShiftID(ctx context.Context, shiftID string) (Attendance, error)
	List(ctx context.Context, companyID string, filter AttendanceFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, att Attendance) (Attendance, error)
	// SumApprovedHours totals total_hours over approved records for the
	// user whose clock_in falls within [periodStart, periodEnd].
	SumApprovedHours(ctx context.Context, userID string, periodStart, periodEnd time.Time) (decimal.Decimal, error)
	Delete(ctx context.Context, id string) error
}

type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Approve(ctx context.Context, id string) (AttendanceResponse, error)
	Reject(ctx context.Context, id string) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}
