package ports

import (
	"context"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// CreateFeedbackInput carries the sanitized feedback payload.
type CreateFeedbackInput struct {
	Text       string
	CategoryID string
	Reviewed   bool
}

type FeedbackService interface {
	List(ctx context.Context, categoryID string) ([]*domain.Feedback, error)
	Create(ctx context.Context, in CreateFeedbackInput) (*domain.Feedback, error)
	Delete(ctx context.Context, id string) error
	MarkReviewed(ctx context.Context, id string) (*domain.Feedback, error)
}
