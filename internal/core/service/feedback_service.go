package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/core/ports"
)

const msgFeedbackNotFound = "Feedback not found"

// FeedbackService files and moderates anonymous feedback.
type FeedbackService struct {
	repo   ports.FeedbackRepository
	logger zerolog.Logger
}

func NewFeedbackService(repo ports.FeedbackRepository, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, logger: logger}
}

// List returns feedback with its category populated, optionally narrowed to one category.
func (s *FeedbackService) List(ctx context.Context, categoryID string) ([]*domain.Feedback, error) {
	items, err := s.repo.List(ctx, categoryID)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("list feedback: %w", err))
	}
	return items, nil
}

// Create stores a new entry. Feedback is always anonymous.
func (s *FeedbackService) Create(ctx context.Context, in ports.CreateFeedbackInput) (*domain.Feedback, error) {
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Feedback{
		Text:       in.Text,
		CategoryID: in.CategoryID,
		Reviewed:   in.Reviewed,
		Anonymous:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("create feedback: %w", err))
	}

	s.logger.Info().Str("feedback_id", created.ID).Str("category_id", created.CategoryID).Msg("feedback created")
	return created, nil
}

func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.notFoundOr(err, "delete feedback")
	}
	return nil
}

func (s *FeedbackService) MarkReviewed(ctx context.Context, id string) (*domain.Feedback, error) {
	updated, err := s.repo.MarkReviewed(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "mark feedback reviewed")
	}
	return updated, nil
}

func (s *FeedbackService) notFoundOr(err error, op string) error {
	if errors.Is(err, domain.ErrFeedbackNotFound) {
		return domain.NotFound(msgFeedbackNotFound)
	}
	return domain.Internal(fmt.Errorf("%s: %w", op, err))
}
