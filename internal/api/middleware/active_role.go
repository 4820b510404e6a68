package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

// RequireActiveRole rejects requests whose session is not currently
// operating under one of the allowed roles. Holding a role is not enough;
// the client must have switched to it.
func RequireActiveRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsKey).(*domain.Claims)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[claims.ActiveRole]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
