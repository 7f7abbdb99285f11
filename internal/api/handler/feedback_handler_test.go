package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/core/ports"
)

type stubFeedbackService struct {
	listFn   func(ctx context.Context, categoryID string) ([]*domain.Feedback, error)
	createFn func(ctx context.Context, in ports.CreateFeedbackInput) (*domain.Feedback, error)
	deleteFn func(ctx context.Context, id string) error
	reviewFn func(ctx context.Context, id string) (*domain.Feedback, error)
}

func (s *stubFeedbackService) List(ctx context.Context, categoryID string) ([]*domain.Feedback, error) {
	return s.listFn(ctx, categoryID)
}

func (s *stubFeedbackService) Create(ctx context.Context, in ports.CreateFeedbackInput) (*domain.Feedback, error) {
	return s.createFn(ctx, in)
}

func (s *stubFeedbackService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubFeedbackService) MarkReviewed(ctx context.Context, id string) (*domain.Feedback, error) {
	return s.reviewFn(ctx, id)
}

func TestFeedbackHandler_ListFiltersByQuery(t *testing.T) {
	stub := &stubFeedbackService{
		listFn: func(_ context.Context, categoryID string) ([]*domain.Feedback, error) {
			if categoryID != "cat-1" {
				t.Fatalf("unexpected filter: %q", categoryID)
			}
			return []*domain.Feedback{{ID: "f1", Text: "More plants", CategoryID: "cat-1"}}, nil
		},
	}

	c, rec := newJSONContext(http.MethodGet, "/feedback?category=cat-1", "")
	if err := NewFeedbackHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	items := decodeEnvelope(t, rec)["data"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["feedback"] != "More plants" {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestFeedbackHandler_Create(t *testing.T) {
	stub := &stubFeedbackService{
		createFn: func(_ context.Context, in ports.CreateFeedbackInput) (*domain.Feedback, error) {
			if in.Text != "Better 1:1s" || in.CategoryID != "cat-2" || !in.Reviewed {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Feedback{ID: "f2", Text: in.Text, CategoryID: in.CategoryID, Anonymous: true}, nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/feedback", `{"feedback":"Better 1:1s","category":"cat-2","reviewed":true}`)
	if err := NewFeedbackHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Feedback created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestFeedbackHandler_DeleteAndReview(t *testing.T) {
	stub := &stubFeedbackService{
		deleteFn: func(_ context.Context, id string) error {
			if id != "f1" {
				return domain.NotFound("Feedback not found")
			}
			return nil
		},
		reviewFn: func(_ context.Context, id string) (*domain.Feedback, error) {
			return &domain.Feedback{ID: id, Reviewed: true}, nil
		},
	}
	handler := NewFeedbackHandler(stub)

	c, rec := newJSONContext(http.MethodDelete, "/feedback/f1", "")
	c.SetParamNames("id")
	c.SetParamValues("f1")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Feedback deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}

	c, _ = newJSONContext(http.MethodDelete, "/feedback/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := handler.Delete(c); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	c, rec = newJSONContext(http.MethodPatch, "/feedback/f1/reviewed", "")
	c.SetParamNames("id")
	c.SetParamValues("f1")
	if err := handler.MarkReviewed(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["reviewed"] != true {
		t.Fatalf("expected reviewed entry, got %v", data)
	}
}
