package ports

import (
	"context"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// UserRepository defines the narrow persistence surface the auth core depends on.
// Create returns domain.ErrUserExists when the username unique constraint fires.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
