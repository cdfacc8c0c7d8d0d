package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
)

// Identity is the caller extracted from the verified JWT claims.
type Identity struct {
	UserID    string
	Email     string
	Role      user.Role
	CompanyID string
}

// IdentityFromContext extracts the authenticated caller from the request
// context. CompanyID may be empty for users not attached to a company.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Identity{}, ErrInvalidToken
	}

	identity := Identity{
		UserID: userID,
		Role:   user.Role(roleStr),
	}
	identity.Email, _ = claims["email"].(string)
	identity.CompanyID, _ = claims["company_id"].(string)

	return identity, nil
}

// Can reports whether the caller's role grants the permission.
func (i Identity) Can(permission user.Permission) bool {
	return user.HasPermission(i.Role, permission)
}
