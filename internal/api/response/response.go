// Package response holds the JSON envelopes every endpoint answers with.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// Envelope is the success shape: {status: true, statusCode, message, data}.
type Envelope struct {
	Status     bool   `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// ErrorEnvelope is the failure shape. Details is only set for validation errors,
// where it is always an array, even when empty.
type ErrorEnvelope struct {
	Status     bool            `json:"status"`
	StatusCode int             `json:"statusCode"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Details    *[]domain.Issue `json:"details,omitempty"`
}

// Success writes a success envelope with the given status code.
func Success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{
		Status:     true,
		StatusCode: code,
		Message:    message,
		Data:       data,
	})
}

// StatusCode is the fixed HTTP status of an error kind.
func StatusCode(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Failure builds the error envelope for e. Internal causes never reach the caller.
func Failure(e *domain.Error) ErrorEnvelope {
	env := ErrorEnvelope{
		StatusCode: StatusCode(e.Kind),
		Error:      e.Kind.Name(),
		Message:    e.Message,
	}
	if e.Kind == domain.KindValidation {
		issues := e.Issues
		if issues == nil {
			issues = []domain.Issue{}
		}
		env.Details = &issues
	}
	if e.Kind == domain.KindInternal {
		env.Message = domain.Internal(nil).Message
	}
	return env
}
