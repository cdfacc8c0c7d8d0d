package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/roster"
	"github.com/rosterly/rosterly-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterRepositoryPublish(t *testing.T) {
	db := testDatabase(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := seedCompany(t, db)
	repo := postgresql.NewRosterRepository(db)

	created, err := repo.Create(ctx, roster.Roster{
		Title:     "Week 13",
		StartDate: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		CompanyID: companyID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.IsPublished)

	published, err := repo.MarkPublished(ctx, created.ID, companyID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	// Second publish matches no row because the guard on is_published
	// already fired.
	_, err = repo.MarkPublished(ctx, created.ID, companyID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestRosterRepositoryCompanyScoping(t *testing.T) {
	db := testDatabase(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := seedCompany(t, db)
	otherCompanyID := seedCompany(t, db)
	rosterID := seedRoster(t, db, companyID)
	repo := postgresql.NewRosterRepository(db)

	found, err := repo.GetByID(ctx, rosterID, companyID)
	require.NoError(t, err)
	assert.Equal(t, rosterID, found.ID)

	_, err = repo.GetByID(ctx, rosterID, otherCompanyID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	err = repo.Delete(ctx, rosterID, otherCompanyID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	err = repo.Delete(ctx, rosterID, companyID)
	assert.NoError(t, err)
}
