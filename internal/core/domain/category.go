package domain

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

// Category groups feedback entries under a named topic.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RequiredCategories are seeded on first start.
var RequiredCategories = []Category{
	{Name: "Work Environment", Description: "Feedback related to workspace, facilities, and work atmosphere"},
	{Name: "Leadership", Description: "Feedback related to management, decision-making, and team leadership"},
	{Name: "Growth", Description: "Feedback related to learning opportunities, career development, and skill advancement"},
}
