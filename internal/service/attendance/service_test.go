package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/attendance"
	"github.com/rosterly/rosterly-backend-go/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	record attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if id != f.record.ID {
		return attendance.Attendance{}, pgx.ErrNoRows
	}
	return f.record, nil
}

func (f *fakeAttendanceRepo) GetByShiftID(ctx context.Context, shiftID string) (attendance.Attendance, error) {
	return attendance.Attendance{}, pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.record = att
	return att, nil
}

func (f *fakeAttendanceRepo) SumApprovedHours(ctx context.Context, userID string, periodStart, periodEnd time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeShiftRepo struct {
	shift shift.Shift
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	return s, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	if id != f.shift.ID || companyID != f.shift.CompanyID {
		return shift.Shift{}, pgx.ErrNoRows
	}
	return f.shift, nil
}

func (f *fakeShiftRepo) List(ctx context.Context, companyID string, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	return nil, 0, nil
}

func (f *fakeShiftRepo) ListActiveByAssignee(ctx context.Context, userID string) ([]shift.Shift, error) {
	return nil, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	return s, nil
}

func (f *fakeShiftRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

func contextWithClaims(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestUpdateStatusStampsApprover(t *testing.T) {
	clockIn := time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(8 * time.Hour)

	newService := func() (attendance.AttendanceService, *fakeAttendanceRepo) {
		attRepo := &fakeAttendanceRepo{record: attendance.Attendance{
			ID:            "a-1",
			ShiftID:       "s-1",
			UserID:        "u-2",
			ClockIn:       clockIn,
			ClockOut:      &clockOut,
			BreakDuration: decimal.Zero,
			Status:        attendance.StatusPending,
		}}
		shiftRepo := &fakeShiftRepo{shift: shift.Shift{ID: "s-1", CompanyID: "c-1"}}
		return NewAttendanceService(nil, attRepo, shiftRepo), attRepo
	}

	ctx := contextWithClaims(t, map[string]interface{}{
		"user_id":    "u-1",
		"role":       "manager",
		"company_id": "c-1",
	})

	t.Run("approved via update carries the approver stamp", func(t *testing.T) {
		svc, _ := newService()
		status := string(attendance.StatusApproved)

		got, err := svc.Update(ctx, attendance.UpdateAttendanceRequest{ID: "a-1", Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "approved", got.Status)
		require.NotNil(t, got.ApprovedBy)
		assert.Equal(t, "u-1", *got.ApprovedBy)
		assert.NotNil(t, got.ApprovedAt)
	})

	t.Run("rejected via update stays unstamped", func(t *testing.T) {
		svc, _ := newService()
		status := string(attendance.StatusRejected)

		got, err := svc.Update(ctx, attendance.UpdateAttendanceRequest{ID: "a-1", Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "rejected", got.Status)
		assert.Nil(t, got.ApprovedBy)
		assert.Nil(t, got.ApprovedAt)
	})
}

func TestApproveStampsApprover(t *testing.T) {
	clockIn := time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(8 * time.Hour)

	attRepo := &fakeAttendanceRepo{record: attendance.Attendance{
		ID:            "a-1",
		ShiftID:       "s-1",
		UserID:        "u-2",
		ClockIn:       clockIn,
		ClockOut:      &clockOut,
		BreakDuration: decimal.Zero,
		Status:        attendance.StatusPending,
	}}
	shiftRepo := &fakeShiftRepo{shift: shift.Shift{ID: "s-1", CompanyID: "c-1"}}
	svc := NewAttendanceService(nil, attRepo, shiftRepo)

	ctx := contextWithClaims(t, map[string]interface{}{
		"user_id":    "u-1",
		"role":       "manager",
		"company_id": "c-1",
	})

	got, err := svc.Approve(ctx, "a-1")
	require.NoError(t, err)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, "u-1", *got.ApprovedBy)

	// A processed record does not move again.
	_, err = svc.Reject(ctx, "a-1")
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyProcessed)
}
