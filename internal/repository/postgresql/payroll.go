package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterly/rosterly-backend-go/internal/domain/payroll"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollJoinedColumns = `
	p.id, p.user_id, p.company_id, p.period_start, p.period_end,
	p.regular_hours, p.overtime_hours, p.hourly_rate,
	p.regular_pay, p.overtime_pay, p.bonuses, p.deductions, p.net_pay,
	p.notes, p.status, p.approved_by, p.approved_at, p.paid_at,
	p.created_at, p.updated_at,
	u.first_name || ' ' || u.last_name, u.email
`

func scanJoinedPayroll(row interface{ Scan(dest ...any) error }) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.CompanyID,
		&p.PeriodStart,
		&p.PeriodEnd,
		&p.RegularHours,
		&p.OvertimeHours,
		&p.HourlyRate,
		&p.RegularPay,
		&p.OvertimePay,
		&p.Bonuses,
		&p.Deductions,
		&p.NetPay,
		&p.Notes,
		&p.Status,
		&p.ApprovedBy,
		&p.ApprovedAt,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.UserName,
		&p.UserEmail,
	)
	return p, err
}

// Create implements payroll.PayrollRepository. The UNIQUE constraint on
// (user_id, period_start, period_end) rejects a second record for the
// same worker and period; the violation surfaces as
// ErrPayrollAlreadyExists.
func (r *payrollRepositoryImpl) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO payrolls (id, user_id, company_id, period_start, period_end,
							  regular_hours, overtime_hours, hourly_rate,
							  regular_pay, overtime_pay, bonuses, deductions, net_pay,
							  notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, user_id, company_id, period_start, period_end,
				  regular_hours, overtime_hours, hourly_rate,
				  regular_pay, overtime_pay, bonuses, deductions, net_pay,
				  notes, status, approved_by, approved_at, paid_at,
				  created_at, updated_at
	`

	var created payroll.Payroll
	err := q.QueryRow(ctx, query,
		p.ID,
		p.UserID,
		p.CompanyID,
		p.PeriodStart,
		p.PeriodEnd,
		p.RegularHours,
		p.OvertimeHours,
		p.HourlyRate,
		p.RegularPay,
		p.OvertimePay,
		p.Bonuses,
		p.Deductions,
		p.NetPay,
		p.Notes,
		p.Status,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.CompanyID,
		&created.PeriodStart,
		&created.PeriodEnd,
		&created.RegularHours,
		&created.OvertimeHours,
		&created.HourlyRate,
		&created.RegularPay,
		&created.OvertimePay,
		&created.Bonuses,
		&created.Deductions,
		&created.NetPay,
		&created.Notes,
		&created.Status,
		&created.ApprovedBy,
		&created.ApprovedAt,
		&created.PaidAt,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.Payroll{}, err
	}

	return created, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollJoinedColumns + `
		FROM payrolls p
		INNER JOIN users u ON p.user_id = u.id
		WHERE p.id = $1 AND p.company_id = $2
	`

	return scanJoinedPayroll(q.QueryRow(ctx, query, id, companyID))
}

// List implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) List(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"p.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("p.user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.PeriodStart != nil {
		conditions = append(conditions, fmt.Sprintf("p.period_start >= $%d", argIdx))
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil {
		conditions = append(conditions, fmt.Sprintf("p.period_end <= $%d", argIdx))
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payrolls p WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM payrolls p
		INNER JOIN users u ON p.user_id = u.id
		WHERE %s
		ORDER BY p.period_start DESC, p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, payrollJoinedColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []payroll.Payroll
	for rows.Next() {
		p, err := scanJoinedPayroll(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Update(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET regular_hours = $1, overtime_hours = $2,
			regular_pay = $3, overtime_pay = $4, bonuses = $5, deductions = $6,
			net_pay = $7, notes = $8, status = $9,
			approved_by = $10, approved_at = $11, paid_at = $12, updated_at = NOW()
		WHERE id = $13 AND company_id = $14
		RETURNING id, user_id, company_id, period_start, period_end,
				  regular_hours, overtime_hours, hourly_rate,
				  regular_pay, overtime_pay, bonuses, deductions, net_pay,
				  notes, status, approved_by, approved_at, paid_at,
				  created_at, updated_at
	`

	var updated payroll.Payroll
	err := q.QueryRow(ctx, query,
		p.RegularHours,
		p.OvertimeHours,
		p.RegularPay,
		p.OvertimePay,
		p.Bonuses,
		p.Deductions,
		p.NetPay,
		p.Notes,
		p.Status,
		p.ApprovedBy,
		p.ApprovedAt,
		p.PaidAt,
		p.ID,
		p.CompanyID,
	).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.CompanyID,
		&updated.PeriodStart,
		&updated.PeriodEnd,
		&updated.RegularHours,
		&updated.OvertimeHours,
		&updated.HourlyRate,
		&updated.RegularPay,
		&updated.OvertimePay,
		&updated.Bonuses,
		&updated.Deductions,
		&updated.NetPay,
		&updated.Notes,
		&updated.Status,
		&updated.ApprovedBy,
		&updated.ApprovedAt,
		&updated.PaidAt,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		return payroll.Payroll{}, err
	}

	updated.UserName = p.UserName
	updated.UserEmail = p.UserEmail

	return updated, nil
}

// Delete implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payrolls WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
