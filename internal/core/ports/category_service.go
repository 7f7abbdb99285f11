package ports

import (
	"context"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// CreateCategoryInput carries the sanitized category payload.
type CreateCategoryInput struct {
	Name        string
	Description string
}

type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	NameTaken(ctx context.Context, name string) (bool, error)
}
