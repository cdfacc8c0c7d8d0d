package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/rosterly/rosterly-backend-go/internal/domain/attendance"
	"github.com/rosterly/rosterly-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepositoryOnePerShift(t *testing.T) {
	db := testDatabase(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := seedCompany(t, db)
	userID := seedUser(t, db, companyID, "worker@example.com", "employee")
	rosterID := seedRoster(t, db, companyID)
	shiftID := seedShift(t, db, rosterID, &userID,
		time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 18, 17, 0, 0, 0, time.UTC),
	)

	repo := postgresql.NewAttendanceRepository(db)

	created, err := repo.Create(ctx, attendance.Attendance{
		ShiftID:       shiftID,
		UserID:        userID,
		ClockIn:       time.Date(2024, 3, 18, 9, 2, 0, 0, time.UTC),
		BreakDuration: decimal.Zero,
		Status:        attendance.StatusPending,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// The unique constraint on shift_id rejects a second record even
	// when the first has not been processed yet.
	_, err = repo.Create(ctx, attendance.Attendance{
		ShiftID:       shiftID,
		UserID:        userID,
		ClockIn:       time.Date(2024, 3, 18, 9, 5, 0, 0, time.UTC),
		BreakDuration: decimal.Zero,
		Status:        attendance.StatusPending,
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)
}

func TestAttendanceRepositorySumApprovedHours(t *testing.T) {
	db := testDatabase(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := seedCompany(t, db)
	userID := seedUser(t, db, companyID, "worker@example.com", "employee")
	rosterID := seedRoster(t, db, companyID)
	repo := postgresql.NewAttendanceRepository(db)

	seedRecord := func(day int, hours string, status attendance.Status) {
		start := time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC)
		end := start.Add(8 * time.Hour)
		shiftID := seedShift(t, db, rosterID, &userID, start, end)

		total := decimal.RequireFromString(hours)
		att := attendance.Attendance{
			ShiftID:       shiftID,
			UserID:        userID,
			ClockIn:       start,
			ClockOut:      &end,
			BreakDuration: decimal.Zero,
			TotalHours:    &total,
			Status:        status,
		}
		_, err := repo.Create(ctx, att)
		require.NoError(t, err)
	}

	seedRecord(18, "8", attendance.StatusApproved)
	seedRecord(19, "7.5", attendance.StatusApproved)
	seedRecord(20, "8", attendance.StatusPending)  // not approved, excluded
	seedRecord(25, "8", attendance.StatusApproved) // outside the period

	total, err := repo.SumApprovedHours(ctx, userID,
		time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("15.5")), "got %s", total)
}
