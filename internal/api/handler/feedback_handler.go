package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedback-portal/portal-api/internal/api/response"
	"github.com/feedback-portal/portal-api/internal/core/ports"
)

type FeedbackHandler struct {
	feedbackService ports.FeedbackService
}

func NewFeedbackHandler(feedbackService ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

type createFeedbackRequest struct {
	Feedback string `json:"feedback"`
	Category string `json:"category"`
	Reviewed bool   `json:"reviewed"`
}

// List returns feedback, optionally filtered by category.
//
// @Summary      List feedback
// @Tags         feedback
// @Produce      json
// @Param        category  query     string  false  "Category ID"
// @Success      200       {object}  response.Envelope{data=[]domain.Feedback}
// @Router       /feedback [get]
func (h *FeedbackHandler) List(c echo.Context) error {
	items, err := h.feedbackService.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "Successful", items)
}

// Create files anonymous feedback.
//
// @Summary      Submit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      createFeedbackRequest  true  "Feedback"
// @Success      201   {object}  response.Envelope{data=domain.Feedback}
// @Failure      400   {object}  response.ErrorEnvelope
// @Router       /feedback [post]
func (h *FeedbackHandler) Create(c echo.Context) error {
	var req createFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	feedback, err := h.feedbackService.Create(c.Request().Context(), ports.CreateFeedbackInput{
		Text:       req.Feedback,
		CategoryID: req.Category,
		Reviewed:   req.Reviewed,
	})
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusCreated, "Feedback created successfully", feedback)
}

// Delete removes a feedback entry. Admin only.
//
// @Summary      Delete feedback
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Feedback ID"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c echo.Context) error {
	if err := h.feedbackService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "Feedback deleted successfully", nil)
}

// MarkReviewed flags a feedback entry as reviewed. Admin only.
//
// @Summary      Mark feedback as reviewed
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Feedback ID"
// @Success      200  {object}  response.Envelope{data=domain.Feedback}
// @Failure      403  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /feedback/{id}/reviewed [patch]
func (h *FeedbackHandler) MarkReviewed(c echo.Context) error {
	feedback, err := h.feedbackService.MarkReviewed(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "Feedback marked as reviewed", feedback)
}
