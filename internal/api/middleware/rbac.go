package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
)

// RequireAction gates a route on the central role-to-action table. Routes
// never name roles directly; the policy lives in one place and is tested as a
// whole.
func RequireAction(action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFromContext(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if err := domain.Authorize(user.Role, action); err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
