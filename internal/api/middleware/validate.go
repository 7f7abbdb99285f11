package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/feedback-portal/portal-api/internal/api/validation"
	"github.com/feedback-portal/portal-api/internal/core/domain"
)

const maxBodyBytes = 1 << 20

func notObject() error {
	return domain.Validation(domain.Issue{Field: "body", Message: "Request body must be a JSON object"})
}

// Validate decodes the JSON body, runs schema against it and, on success,
// replaces the request body with the sanitized document so handlers bind the
// trimmed values. An empty body is validated as an empty object.
func Validate(schema *validation.Schema) Stage {
	return func(c echo.Context) error {
		req := c.Request()

		var raw []byte
		if req.Body != nil {
			b, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes+1))
			if err != nil {
				return domain.Internal(fmt.Errorf("read request body: %w", err))
			}
			if len(b) > maxBodyBytes {
				return domain.Validation(domain.Issue{Field: "body", Message: "Request body is too large"})
			}
			raw = b
		}

		body := map[string]any{}
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil || body == nil {
				return notObject()
			}
		}

		sanitized, err := schema.Validate(req.Context(), body)
		if err != nil {
			return err
		}

		encoded, err := json.Marshal(sanitized)
		if err != nil {
			return domain.Internal(fmt.Errorf("encode sanitized body: %w", err))
		}
		req.Body = io.NopCloser(bytes.NewReader(encoded))
		req.ContentLength = int64(len(encoded))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return nil
	}
}
