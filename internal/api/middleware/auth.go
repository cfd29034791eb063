package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/One-Orco/quickrent-backend/internal/api/metrics"
	"github.com/One-Orco/quickrent-backend/internal/core/domain"
)

// userContextKey is where the Auth middleware stores the resolved user.
const userContextKey = "auth_user"

// Authenticator verifies a bearer token and resolves it to a persisted user.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*domain.User, error)
}

// Auth extracts the bearer token, authenticates it, and injects the resolved
// user into the request context. Authentication failures are a uniform 401;
// the distinction between bad signature, expiry, and unknown subject stays in
// the service's debug logs. Other errors pass through untouched.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthenticated) {
					// Not an auth failure: let the error handler map it.
					return err
				}
				metrics.AuthFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the user injected by Auth, or nil when the
// middleware did not run.
func UserFromContext(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// SetUser injects a user into the Echo context. Exported for handler tests.
func SetUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}
