package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key", "1h")

	companyID := "c-1"
	token, expiresAt, err := svc.GenerateAccessToken("u-1", "worker@example.com", &companyID, user.RoleEmployee)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "worker@example.com", claims["email"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, "c-1", claims["company_id"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessTokenWithoutCompany(t *testing.T) {
	svc := NewJWTService("test-secret-key", "1h")

	token, _, err := svc.GenerateAccessToken("u-2", "admin@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	_, hasCompany := claims["company_id"]
	assert.False(t, hasCompany)
}

func TestGenerateAccessTokenBadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret-key", "soon")

	_, _, err := svc.GenerateAccessToken("u-1", "worker@example.com", nil, user.RoleEmployee)
	assert.Error(t, err)
}
