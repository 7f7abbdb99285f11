package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/feedback-portal/portal-api/internal/api/middleware"
	"github.com/feedback-portal/portal-api/internal/core/domain"
)

// currentClaims returns the claims injected by the Authenticate stage. A route
// wired without that stage has no caller identity, which is reported as 401.
func currentClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, domain.Unauthorized("Authentication required")
	}
	return claims, nil
}
