package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/core/ports"
	"github.com/feedback-portal/portal-api/internal/pkg/metrics"
)

// CategoryService manages feedback categories. Existence checks go through the
// cache first; a cache failure falls back to the store.
type CategoryService struct {
	repo   ports.CategoryRepository
	cache  ports.CategoryCache
	logger zerolog.Logger
}

// NewCategoryService creates a CategoryService. cache may be nil.
func NewCategoryService(repo ports.CategoryRepository, cache ports.CategoryCache, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, cache: cache, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("list categories: %w", err))
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Category{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			return nil, domain.Validation(domain.Issue{Field: "name", Message: fmt.Sprintf("Category %s already exists", in.Name)})
		}
		return nil, domain.Internal(fmt.Errorf("create category: %w", err))
	}

	s.mark(ctx, created.ID)
	return created, nil
}

// Exists reports whether a category with id exists.
func (s *CategoryService) Exists(ctx context.Context, id string) (bool, error) {
	if s.cache != nil {
		hit, err := s.cache.Exists(ctx, id)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("category_id", id).Msg("category cache lookup failed")
		case hit:
			metrics.CategoryCacheTotal.WithLabelValues("hit").Inc()
			return true, nil
		default:
			metrics.CategoryCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find category: %w", err)
	}

	s.mark(ctx, id)
	return true, nil
}

func (s *CategoryService) NameTaken(ctx context.Context, name string) (bool, error) {
	return s.repo.ExistsByName(ctx, name)
}

func (s *CategoryService) mark(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Mark(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("category_id", id).Msg("category cache write failed")
	}
}
