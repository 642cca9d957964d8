package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Roles       []domain.Role
	// IsSystem is set for callers authenticated with the API key
	IsSystem bool
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.Role) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// IsAdmin checks if user may act on any owner's or center's behalf
func (u *UserContext) IsAdmin() bool {
	return u.HasRole(domain.RoleAdmin)
}

// RolesAsStrings returns roles as a slice of strings
func (u *UserContext) RolesAsStrings() []string {
	result := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		result[i] = string(role)
	}
	return result
}
