package ports

import (
	"context"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// RegisterInput carries the sanitized registration payload.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Email    string
}

// UpdateProfileInput carries optional profile changes. Nil fields are left untouched.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// AuthResult is returned by operations that mint a token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	CreateAdmin(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
}
