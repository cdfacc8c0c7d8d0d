package postgresql

import (
	"context"

	"github.com/rosterly/rosterly-backend-go/internal/domain/company"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, timezone, overtime_multiplier,
			   weekly_hours_threshold, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Timezone,
		&c.OvertimeMultiplier,
		&c.WeeklyHoursThreshold,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}

	return c, nil
}
