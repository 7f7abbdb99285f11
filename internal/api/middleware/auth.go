package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/core/ports"
)

const (
	claimsKey       = "claims"
	authRequiredMsg = "Authentication required"
)

// Authenticate extracts the bearer token, verifies it and attaches the claims to
// the context. A missing header, a non-bearer scheme and a token the verifier
// rejects all end in an UnauthorizedError.
func Authenticate(verifier ports.TokenVerifier) Stage {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domain.Unauthorized(authRequiredMsg)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return domain.Unauthorized(authRequiredMsg)
		}

		claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Set(claimsKey, claims)
		return nil
	}
}

// ClaimsFrom returns the claims attached by Authenticate.
func ClaimsFrom(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}
