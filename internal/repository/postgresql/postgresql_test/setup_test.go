package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	dbOnce sync.Once
	dbConn *database.DB
	dbErr  error
)

// testDatabase returns a shared pool against the database named by
// TEST_DATABASE_URL. Tests that need a real database skip when the
// variable is unset.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	dbOnce.Do(func() {
		dbConn, dbErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, dbErr, "failed to connect to test database")

	return dbConn
}

func truncateAll(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	// Order follows foreign keys, children first.
	tables := []string{
		"payrolls",
		"attendances",
		"shifts",
		"rosters",
		"users",
		"companies",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

func seedCompany(t *testing.T, db *database.DB) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(context.Background(), `
		INSERT INTO companies (id, name, overtime_multiplier, weekly_hours_threshold)
		VALUES ($1, $2, 1.5, 40)
	`, id, "Test Care Agency")
	require.NoError(t, err)

	return id
}

func seedUser(t *testing.T, db *database.DB, companyID, email, role string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(context.Background(), `
		INSERT INTO users (id, email, password_hash, first_name, last_name,
						   role, hourly_rate, company_id, is_active)
		VALUES ($1, $2, 'x', 'Test', 'Worker', $3, 12.50, $4, TRUE)
	`, id, email, role, companyID)
	require.NoError(t, err)

	return id
}

func seedRoster(t *testing.T, db *database.DB, companyID string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(context.Background(), `
		INSERT INTO rosters (id, title, start_date, end_date, is_published, company_id)
		VALUES ($1, 'Week 12', '2024-03-18', '2024-03-24', FALSE, $2)
	`, id, companyID)
	require.NoError(t, err)

	return id
}

func seedShift(t *testing.T, db *database.DB, rosterID string, userID *string, start, end time.Time) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(context.Background(), `
		INSERT INTO shifts (id, roster_id, title, start_time, end_time, status, assigned_user_id)
		VALUES ($1, $2, 'Morning visit', $3, $4, 'scheduled', $5)
	`, id, rosterID, start, end, userID)
	require.NoError(t, err)

	return id
}
