package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/shift"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftJoinedColumns = `
	s.id, s.roster_id, s.title, s.description, s.location, s.notes,
	s.start_time, s.end_time, s.status, s.assigned_user_id,
	s.created_at, s.updated_at,
	u.first_name || ' ' || u.last_name, r.title, r.company_id
`

func scanJoinedShift(row interface{ Scan(dest ...any) error }) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID,
		&s.RosterID,
		&s.Title,
		&s.Description,
		&s.Location,
		&s.Notes,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&s.AssignedUserID,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.AssignedUserName,
		&s.RosterTitle,
		&s.CompanyID,
	)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	if newShift.ID == "" {
		newShift.ID = uuid.New().String()
	}

	query := `
		INSERT INTO shifts (id, roster_id, title, description, location, notes,
							start_time, end_time, status, assigned_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, roster_id, title, description, location, notes,
				  start_time, end_time, status, assigned_user_id, created_at, updated_at
	`

	var created shift.Shift
	err := q.QueryRow(ctx, query,
		newShift.ID,
		newShift.RosterID,
		newShift.Title,
		newShift.Description,
		newShift.Location,
		newShift.Notes,
		newShift.StartTime,
		newShift.EndTime,
		newShift.Status,
		newShift.AssignedUserID,
	).Scan(
		&created.ID,
		&created.RosterID,
		&created.Title,
		&created.Description,
		&created.Location,
		&created.Notes,
		&created.StartTime,
		&created.EndTime,
		&created.Status,
		&created.AssignedUserID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	return created, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftJoinedColumns + `
		FROM shifts s
		INNER JOIN rosters r ON s.roster_id = r.id
		LEFT JOIN users u ON s.assigned_user_id = u.id
		WHERE s.id = $1 AND r.company_id = $2
	`

	return scanJoinedShift(q.QueryRow(ctx, query, id, companyID))
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, companyID string, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"r.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.RosterID != nil {
		conditions = append(conditions, fmt.Sprintf("s.roster_id = $%d", argIdx))
		args = append(args, *filter.RosterID)
		argIdx++
	}
	if filter.AssignedUserID != nil {
		conditions = append(conditions, fmt.Sprintf("s.assigned_user_id = $%d", argIdx))
		args = append(args, *filter.AssignedUserID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("s.start_time::date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("s.start_time::date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM shifts s
		INNER JOIN rosters r ON s.roster_id = r.id
		WHERE %s
	`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts s
		INNER JOIN rosters r ON s.roster_id = r.id
		LEFT JOIN users u ON s.assigned_user_id = u.id
		WHERE %s
		ORDER BY s.start_time
		LIMIT $%d OFFSET $%d
	`, shiftJoinedColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanJoinedShift(rows)
		if err != nil {
			return nil, 0, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

// ListActiveByAssignee implements shift.ShiftRepository. Canceled shifts
// never block a new booking so they are filtered here.
func (r *shiftRepositoryImpl) ListActiveByAssignee(ctx context.Context, userID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	// Concurrent schedule writes for the same assignee serialize on the
	// user row; without the lock two transactions could both read a
	// conflict-free schedule and both commit overlapping shifts.
	if _, err := q.Exec(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, roster_id, title, description, location, notes,
			   start_time, end_time, status, assigned_user_id, created_at, updated_at
		FROM shifts
		WHERE assigned_user_id = $1 AND status != 'canceled'
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		err := rows.Scan(
			&s.ID,
			&s.RosterID,
			&s.Title,
			&s.Description,
			&s.Location,
			&s.Notes,
			&s.StartTime,
			&s.EndTime,
			&s.Status,
			&s.AssignedUserID,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET title = $1, description = $2, location = $3, notes = $4,
			start_time = $5, end_time = $6, status = $7, assigned_user_id = $8,
			updated_at = NOW()
		WHERE id = $9
		  AND EXISTS (SELECT 1 FROM rosters WHERE id = shifts.roster_id AND company_id = $10)
		RETURNING id, roster_id, title, description, location, notes,
				  start_time, end_time, status, assigned_user_id, created_at, updated_at
	`

	var updated shift.Shift
	err := q.QueryRow(ctx, query,
		s.Title,
		s.Description,
		s.Location,
		s.Notes,
		s.StartTime,
		s.EndTime,
		s.Status,
		s.AssignedUserID,
		s.ID,
		s.CompanyID,
	).Scan(
		&updated.ID,
		&updated.RosterID,
		&updated.Title,
		&updated.Description,
		&updated.Location,
		&updated.Notes,
		&updated.StartTime,
		&updated.EndTime,
		&updated.Status,
		&updated.AssignedUserID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	updated.CompanyID = s.CompanyID
	updated.RosterTitle = s.RosterTitle

	return updated, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shifts
		WHERE id = $1
		  AND EXISTS (SELECT 1 FROM rosters WHERE id = shifts.roster_id AND company_id = $2)
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
