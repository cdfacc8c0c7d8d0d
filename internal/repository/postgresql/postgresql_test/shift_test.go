package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftRepositoryListActiveByAssignee(t *testing.T) {
	db := testDatabase(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := seedCompany(t, db)
	userID := seedUser(t, db, companyID, "worker@example.com", "employee")
	rosterID := seedRoster(t, db, companyID)

	day := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	active := seedShift(t, db, rosterID, &userID, day.Add(9*time.Hour), day.Add(17*time.Hour))
	canceled := seedShift(t, db, rosterID, &userID, day.Add(18*time.Hour), day.Add(20*time.Hour))
	seedShift(t, db, rosterID, nil, day.Add(9*time.Hour), day.Add(17*time.Hour))

	_, err := db.Exec(ctx, `UPDATE shifts SET status = 'canceled' WHERE id = $1`, canceled)
	require.NoError(t, err)

	repo := postgresql.NewShiftRepository(db)

	// The conflict check always runs on a transaction querier; the query
	// locks the assignee's user row on the way in.
	err = postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		shifts, err := repo.ListActiveByAssignee(txCtx, userID)
		require.NoError(t, err)
		require.Len(t, shifts, 1)
		assert.Equal(t, active, shifts[0].ID)
		return nil
	})
	require.NoError(t, err)
}
