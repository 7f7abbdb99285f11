package ports

import (
	"context"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// FeedbackRepository defines persistence operations for feedback entries.
type FeedbackRepository interface {
	// List returns feedback newest first. An empty categoryID lists everything.
	List(ctx context.Context, categoryID string) ([]*domain.Feedback, error)
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	FindByID(ctx context.Context, id string) (*domain.Feedback, error)
	Delete(ctx context.Context, id string) error
	MarkReviewed(ctx context.Context, id string) (*domain.Feedback, error)
}
