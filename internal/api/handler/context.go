package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digiloka/marketplace-api/internal/api/middleware"
	"github.com/digiloka/marketplace-api/internal/core/domain"
)

// ctxClaims extracts the claims bundle injected by the Auth middleware and
// fast-fails before any service call: a missing or subject-less bundle means
// the middleware did not run (or the token is structurally unusable).
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if claims == nil || claims.Subject == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
