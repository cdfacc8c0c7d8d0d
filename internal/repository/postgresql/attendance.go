package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterly/rosterly-backend-go/internal/domain/attendance"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, shift_id, user_id, clock_in, clock_out, break_duration,
	total_hours, notes, status, approved_by, approved_at, created_at, updated_at`

func scanAttendance(row interface{ Scan(dest ...any) error }) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.ShiftID,
		&a.UserID,
		&a.ClockIn,
		&a.ClockOut,
		&a.BreakDuration,
		&a.TotalHours,
		&a.Notes,
		&a.Status,
		&a.ApprovedBy,
		&a.ApprovedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository. The UNIQUE
// constraint on shift_id is the final arbiter of the one-record-per-
// shift rule; a violation surfaces as ErrAttendanceExists.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if att.ID == "" {
		att.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendances (id, shift_id, user_id, clock_in, clock_out,
								 break_duration, total_hours, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		att.ID,
		att.ShiftID,
		att.UserID,
		att.ClockIn,
		att.ClockOut,
		att.BreakDuration,
		att.TotalHours,
		att.Notes,
		att.Status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, err
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.shift_id, a.user_id, a.clock_in, a.clock_out, a.break_duration,
			   a.total_hours, a.notes, a.status, a.approved_by, a.approved_at,
			   a.created_at, a.updated_at,
			   u.first_name || ' ' || u.last_name, s.title
		FROM attendances a
		INNER JOIN shifts s ON a.shift_id = s.id
		INNER JOIN users u ON a.user_id = u.id
		WHERE a.id = $1
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.ShiftID,
		&a.UserID,
		&a.ClockIn,
		&a.ClockOut,
		&a.BreakDuration,
		&a.TotalHours,
		&a.Notes,
		&a.Status,
		&a.ApprovedBy,
		&a.ApprovedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.UserName,
		&a.ShiftTitle,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	return a, nil
}

// GetByShiftID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByShiftID(ctx context.Context, shiftID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE shift_id = $1`

	return scanAttendance(q.QueryRow(ctx, query, shiftID))
}

// List implements attendance.AttendanceRepository. Records are scoped to
// the company through the shift's roster.
func (r *attendanceRepositoryImpl) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"r.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.ShiftID != nil {
		conditions = append(conditions, fmt.Sprintf("a.shift_id = $%d", argIdx))
		args = append(args, *filter.ShiftID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.clock_in::date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.clock_in::date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM attendances a
		INNER JOIN shifts s ON a.shift_id = s.id
		INNER JOIN rosters r ON s.roster_id = r.id
		WHERE %s
	`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.shift_id, a.user_id, a.clock_in, a.clock_out, a.break_duration,
			   a.total_hours, a.notes, a.status, a.approved_by, a.approved_at,
			   a.created_at, a.updated_at,
			   u.first_name || ' ' || u.last_name, s.title
		FROM attendances a
		INNER JOIN shifts s ON a.shift_id = s.id
		INNER JOIN rosters r ON s.roster_id = r.id
		INNER JOIN users u ON a.user_id = u.id
		WHERE %s
		ORDER BY a.clock_in DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID,
			&a.ShiftID,
			&a.UserID,
			&a.ClockIn,
			&a.ClockOut,
			&a.BreakDuration,
			&a.TotalHours,
			&a.Notes,
			&a.Status,
			&a.ApprovedBy,
			&a.ApprovedAt,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.UserName,
			&a.ShiftTitle,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_out = $1, break_duration = $2, total_hours = $3, notes = $4,
			status = $5, approved_by = $6, approved_at = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.ClockOut,
		att.BreakDuration,
		att.TotalHours,
		att.Notes,
		att.Status,
		att.ApprovedBy,
		att.ApprovedAt,
		att.ID,
	))
	if err != nil {
		return attendance.Attendance{}, err
	}

	updated.UserName = att.UserName
	updated.ShiftTitle = att.ShiftTitle

	return updated, nil
}

// SumApprovedHours implements attendance.AttendanceRepository. The end
// date is inclusive; any clock-in on that calendar day counts.
func (r *attendanceRepositoryImpl) SumApprovedHours(ctx context.Context, userID string, periodStart, periodEnd time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_hours), 0)
		FROM attendances
		WHERE user_id = $1
		  AND status = 'approved'
		  AND total_hours IS NOT NULL
		  AND clock_in >= $2
		  AND clock_in < ($3::date + INTERVAL '1 day')
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, userID, periodStart, periodEnd).Scan(&total); err != nil {
		return decimal.Decimal{}, err
	}

	return total, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
