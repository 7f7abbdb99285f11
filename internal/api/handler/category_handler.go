package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedback-portal/portal-api/internal/api/response"
	"github.com/feedback-portal/portal-api/internal/core/ports"
)

type CategoryHandler struct {
	categoryService ports.CategoryService
}

func NewCategoryHandler(categoryService ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// List returns every category.
//
// @Summary      List categories
// @Tags         category
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.Category}
// @Router       /category [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "Successful", categories)
}

// Create adds a category. Admin only.
//
// @Summary      Create a category
// @Tags         category
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  response.Envelope{data=domain.Category}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      401   {object}  response.ErrorEnvelope
// @Failure      403   {object}  response.ErrorEnvelope
// @Router       /category [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), ports.CreateCategoryInput(req))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusCreated, "Category created successfully", category)
}
