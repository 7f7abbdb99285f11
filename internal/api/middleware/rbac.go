package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// RequireRole enforces that the authenticated caller holds role. Without claims
// the request was never authenticated, which is an UnauthorizedError rather than
// a ForbiddenError.
func RequireRole(role domain.Role) Stage {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return domain.Unauthorized(authRequiredMsg)
		}
		if claims.Role != role {
			return domain.Forbidden(roleLabel(role) + " access required")
		}
		return nil
	}
}

func roleLabel(role domain.Role) string {
	r := string(role)
	if r == "" {
		return r
	}
	return strings.ToUpper(r[:1]) + r[1:]
}
