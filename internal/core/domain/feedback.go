package domain

import (
	"errors"
	"time"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

// Feedback is a single (anonymous by default) submission filed under a category.
type Feedback struct {
	ID         string    `json:"id"`
	Text       string    `json:"feedback"`
	CategoryID string    `json:"category_id"`
	Category   *Category `json:"category,omitempty"`
	Reviewed   bool      `json:"reviewed"`
	Anonymous  bool      `json:"anonymous"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
