package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/feedback-portal/portal-api/internal/api/response"
	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/pkg/metrics"
)

// NewHTTPErrorHandler returns the single place errors become responses:
//   - typed domain errors keep their kind, status and message.
//   - echo's own errors (unknown route, bad bind) are folded into a kind.
//   - anything else is an InternalError, logged here and rendered generically.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		de := resolveError(err)
		if de.Kind == domain.KindInternal {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}

		metrics.ErrorResponsesTotal.WithLabelValues(de.Kind.Name()).Inc()
		for _, issue := range de.Issues {
			metrics.ValidationIssuesTotal.WithLabelValues(issue.Field).Inc()
		}

		env := response.Failure(de)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(env.StatusCode)
			return
		}
		_ = c.JSON(env.StatusCode, env)
	}
}

func resolveError(err error) *domain.Error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}

	// Echo's own errors (router misses, bind failures, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return domain.NotFound("Route not found")
		case http.StatusBadRequest, http.StatusUnsupportedMediaType:
			return domain.Validation(domain.Issue{Field: "body", Message: msg})
		case http.StatusRequestEntityTooLarge:
			return domain.Validation(domain.Issue{Field: "body", Message: "Request body is too large"})
		case http.StatusUnauthorized:
			return domain.Unauthorized(msg)
		case http.StatusForbidden:
			return domain.Forbidden(msg)
		}
	}

	return domain.Internal(err)
}
