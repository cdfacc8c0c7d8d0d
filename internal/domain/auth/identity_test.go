package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithClaims(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestIdentityFromContext(t *testing.T) {
	t.Run("full claims", func(t *testing.T) {
		ctx := contextWithClaims(t, map[string]interface{}{
			"user_id":    "u-1",
			"email":      "manager@example.com",
			"role":       "manager",
			"company_id": "c-1",
		})

		identity, err := IdentityFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "u-1", identity.UserID)
		assert.Equal(t, "manager@example.com", identity.Email)
		assert.Equal(t, user.RoleManager, identity.Role)
		assert.Equal(t, "c-1", identity.CompanyID)
	})

	t.Run("company is optional", func(t *testing.T) {
		ctx := contextWithClaims(t, map[string]interface{}{
			"user_id": "u-2",
			"role":    "admin",
		})

		identity, err := IdentityFromContext(ctx)
		require.NoError(t, err)
		assert.Empty(t, identity.CompanyID)
	})

	t.Run("missing user_id", func(t *testing.T) {
		ctx := contextWithClaims(t, map[string]interface{}{
			"role": "admin",
		})

		_, err := IdentityFromContext(ctx)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing role", func(t *testing.T) {
		ctx := contextWithClaims(t, map[string]interface{}{
			"user_id": "u-3",
		})

		_, err := IdentityFromContext(ctx)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no token on context", func(t *testing.T) {
		_, err := IdentityFromContext(context.Background())
		assert.Error(t, err)
	})
}

func TestIdentityCan(t *testing.T) {
	manager := Identity{UserID: "u-1", Role: user.RoleManager}
	employee := Identity{UserID: "u-2", Role: user.RoleEmployee}

	assert.True(t, manager.Can(user.PermissionRosterPublish))
	assert.False(t, employee.Can(user.PermissionRosterPublish))
	assert.True(t, employee.Can(user.PermissionAttendanceCreate))
}
