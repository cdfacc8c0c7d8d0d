package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/attendance"
	"github.com/rosterly/rosterly-backend-go/internal/domain/company"
	"github.com/rosterly/rosterly-backend-go/internal/domain/payroll"
	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollRepo struct {
	record payroll.Payroll
}

func (f *fakePayrollRepo) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	return p, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string, companyID string) (payroll.Payroll, error) {
	if id != f.record.ID || companyID != f.record.CompanyID {
		return payroll.Payroll{}, pgx.ErrNoRows
	}
	return f.record, nil
}

func (f *fakePayrollRepo) List(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	return nil, 0, nil
}

func (f *fakePayrollRepo) Update(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	f.record = p
	return p, nil
}

func (f *fakePayrollRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

type stubAttendanceRepo struct{}

func (stubAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (stubAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, pgx.ErrNoRows
}

func (stubAttendanceRepo) GetByShiftID(ctx context.Context, shiftID string) (attendance.Attendance, error) {
	return attendance.Attendance{}, pgx.ErrNoRows
}

func (stubAttendanceRepo) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (stubAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (stubAttendanceRepo) SumApprovedHours(ctx context.Context, userID string, periodStart, periodEnd time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (stubAttendanceRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type stubUserRepo struct{}

func (stubUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

type stubCompanyRepo struct{}

func (stubCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	return company.Company{}, pgx.ErrNoRows
}

func contextWithClaims(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func pendingRecord() payroll.Payroll {
	return payroll.Payroll{
		ID:            "p-1",
		UserID:        "u-2",
		CompanyID:     "c-1",
		PeriodStart:   time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC),
		RegularHours:  decimal.RequireFromString("40"),
		OvertimeHours: decimal.Zero,
		HourlyRate:    decimal.RequireFromString("12.50"),
		RegularPay:    decimal.RequireFromString("500"),
		OvertimePay:   decimal.Zero,
		Bonuses:       decimal.Zero,
		Deductions:    decimal.Zero,
		NetPay:        decimal.RequireFromString("500"),
		Status:        payroll.StatusPendingApproval,
	}
}

func TestUpdateStatusTransitionsStampLifecycleFields(t *testing.T) {
	ctx := contextWithClaims(t, map[string]interface{}{
		"user_id":    "u-9",
		"role":       "admin",
		"company_id": "c-1",
	})

	t.Run("approved via update carries the approver stamp", func(t *testing.T) {
		repo := &fakePayrollRepo{record: pendingRecord()}
		svc := NewPayrollService(repo, stubAttendanceRepo{}, stubUserRepo{}, stubCompanyRepo{})

		status := string(payroll.StatusApproved)
		got, err := svc.Update(ctx, payroll.UpdatePayrollRequest{ID: "p-1", Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "approved", got.Status)
		require.NotNil(t, got.ApprovedBy)
		assert.Equal(t, "u-9", *got.ApprovedBy)
		assert.NotNil(t, got.ApprovedAt)
	})

	t.Run("paid via update stamps paid_at", func(t *testing.T) {
		repo := &fakePayrollRepo{record: pendingRecord()}
		svc := NewPayrollService(repo, stubAttendanceRepo{}, stubUserRepo{}, stubCompanyRepo{})

		status := string(payroll.StatusPaid)
		got, err := svc.Update(ctx, payroll.UpdatePayrollRequest{ID: "p-1", Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "paid", got.Status)
		assert.NotNil(t, got.PaidAt)
	})

	t.Run("paid record rejects further status changes", func(t *testing.T) {
		record := pendingRecord()
		record.Status = payroll.StatusPaid
		now := time.Now().UTC()
		record.PaidAt = &now
		repo := &fakePayrollRepo{record: record}
		svc := NewPayrollService(repo, stubAttendanceRepo{}, stubUserRepo{}, stubCompanyRepo{})

		status := string(payroll.StatusApproved)
		_, err := svc.Update(ctx, payroll.UpdatePayrollRequest{ID: "p-1", Status: &status})
		assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyPaid)
	})
}
