package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/core/ports"
)

type stubCategoryRepo struct {
	mu      sync.Mutex
	items   map[string]*domain.Category
	lookups int
	err     error
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{items: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) List(context.Context) ([]*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Category, 0, len(r.items))
	for _, c := range r.items {
		clone := *c
		out = append(out, &clone)
	}
	return out, r.err
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name == c.Name {
			return nil, domain.ErrCategoryExists
		}
	}
	clone := *c
	clone.ID = "cat-" + strconv.Itoa(len(r.items)+1)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type stubCategoryCache struct {
	mu    sync.Mutex
	known map[string]bool
	err   error
}

func (c *stubCategoryCache) Exists(_ context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	return c.known[id], nil
}

func (c *stubCategoryCache) Mark(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.known[id] = true
	return nil
}

func TestCategoryService_Create(t *testing.T) {
	repo := newStubCategoryRepo()
	cache := &stubCategoryCache{known: map[string]bool{}}
	svc := NewCategoryService(repo, cache, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreateCategoryInput{Name: "Leadership"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" || created.Name != "Leadership" {
		t.Fatalf("unexpected category: %+v", created)
	}
	if !cache.known[created.ID] {
		t.Fatalf("new category should be cached")
	}

	_, err = svc.Create(ctx, ports.CreateCategoryInput{Name: "Leadership"})
	de := expectKind(t, err, domain.KindValidation)
	if de.Issues[0].Field != "name" || de.Issues[0].Message != "Category Leadership already exists" {
		t.Fatalf("unexpected issues: %+v", de.Issues)
	}
}

func TestCategoryService_Exists_UsesCache(t *testing.T) {
	repo := newStubCategoryRepo()
	created, _ := repo.Create(context.Background(), &domain.Category{Name: "Growth"})
	cache := &stubCategoryCache{known: map[string]bool{}}
	svc := NewCategoryService(repo, cache, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := svc.Exists(ctx, created.ID)
		if err != nil || !ok {
			t.Fatalf("expected category to exist, got %v (%v)", ok, err)
		}
	}
	if repo.lookups != 1 {
		t.Fatalf("expected a single store lookup, got %d", repo.lookups)
	}

	ok, err := svc.Exists(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("expected missing category, got %v (%v)", ok, err)
	}
	if cache.known["missing"] {
		t.Fatalf("negative answers must not be cached")
	}
}

func TestCategoryService_Exists_CacheFailureFallsBackToStore(t *testing.T) {
	repo := newStubCategoryRepo()
	created, _ := repo.Create(context.Background(), &domain.Category{Name: "Growth"})
	svc := NewCategoryService(repo, &stubCategoryCache{err: errors.New("redis down")}, zerolog.Nop())

	ok, err := svc.Exists(context.Background(), created.ID)
	if err != nil || !ok {
		t.Fatalf("expected store fallback, got %v (%v)", ok, err)
	}
}

func TestCategoryService_Exists_StoreFailure(t *testing.T) {
	repo := newStubCategoryRepo()
	repo.err = errors.New("mongo down")
	svc := NewCategoryService(repo, nil, zerolog.Nop())

	if _, err := svc.Exists(context.Background(), "cat-1"); err == nil {
		t.Fatalf("expected store error to surface")
	}
}

func TestCategoryService_NameTaken(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo, nil, zerolog.Nop())
	ctx := context.Background()

	_, _ = svc.Create(ctx, ports.CreateCategoryInput{Name: "Work Environment"})

	if taken, _ := svc.NameTaken(ctx, "Work Environment"); !taken {
		t.Fatalf("expected name to be taken")
	}
	if taken, _ := svc.NameTaken(ctx, "Benefits"); taken {
		t.Fatalf("expected name to be free")
	}
}
