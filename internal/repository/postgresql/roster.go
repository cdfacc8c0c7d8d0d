package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/roster"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/database"
)

type rosterRepositoryImpl struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) roster.RosterRepository {
	return &rosterRepositoryImpl{db: db}
}

const rosterColumns = `id, title, description, start_date, end_date, is_published, company_id, created_at, updated_at`

func scanRoster(row interface{ Scan(dest ...any) error }) (roster.Roster, error) {
	var r roster.Roster
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.StartDate,
		&r.EndDate,
		&r.IsPublished,
		&r.CompanyID,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// Create implements roster.RosterRepository.
func (r *rosterRepositoryImpl) Create(ctx context.Context, newRoster roster.Roster) (roster.Roster, error) {
	q := GetQuerier(ctx, r.db)

	if newRoster.ID == "" {
		newRoster.ID = uuid.New().String()
	}

	query := `
		INSERT INTO rosters (id, title, description, start_date, end_date, is_published, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + rosterColumns

	return scanRoster(q.QueryRow(ctx, query,
		newRoster.ID,
		newRoster.Title,
		newRoster.Description,
		newRoster.StartDate,
		newRoster.EndDate,
		newRoster.IsPublished,
		newRoster.CompanyID,
	))
}

// GetByID implements roster.RosterRepository.
func (r *rosterRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (roster.Roster, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rosterColumns + ` FROM rosters WHERE id = $1 AND company_id = $2`

	return scanRoster(q.QueryRow(ctx, query, id, companyID))
}

// List implements roster.RosterRepository.
func (r *rosterRepositoryImpl) List(ctx context.Context, companyID string, filter roster.RosterFilter) ([]roster.Roster, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("start_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("end_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.IsPublished != nil {
		conditions = append(conditions, fmt.Sprintf("is_published = $%d", argIdx))
		args = append(args, *filter.IsPublished)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM rosters WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM rosters WHERE %s ORDER BY start_date DESC LIMIT $%d OFFSET $%d",
		rosterColumns, whereClause, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rosters []roster.Roster
	for rows.Next() {
		ro, err := scanRoster(rows)
		if err != nil {
			return nil, 0, err
		}
		rosters = append(rosters, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return rosters, total, nil
}

// Update implements roster.RosterRepository.
func (r *rosterRepositoryImpl) Update(ctx context.Context, ro roster.Roster) (roster.Roster, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE rosters
		SET title = $1, description = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6
		RETURNING ` + rosterColumns

	return scanRoster(q.QueryRow(ctx, query,
		ro.Title,
		ro.Description,
		ro.StartDate,
		ro.EndDate,
		ro.ID,
		ro.CompanyID,
	))
}

// MarkPublished implements roster.RosterRepository. The guard on
// is_published makes the transition one-way even under concurrent
// publishes; a roster that is already published matches no row and the
// caller sees pgx.ErrNoRows.
func (r *rosterRepositoryImpl) MarkPublished(ctx context.Context, id string, companyID string) (roster.Roster, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE rosters
		SET is_published = TRUE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND is_published = FALSE
		RETURNING ` + rosterColumns

	return scanRoster(q.QueryRow(ctx, query, id, companyID))
}

// Delete implements roster.RosterRepository.
func (r *rosterRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM rosters WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
