package ports

import (
	"context"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// CategoryCache remembers category ids already known to exist.
// Categories are never deleted, so only positive answers are cached.
type CategoryCache interface {
	Exists(ctx context.Context, id string) (bool, error)
	Mark(ctx context.Context, id string) error
}
