package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/One-Orco/quickrent-backend/internal/api/middleware"
	"github.com/One-Orco/quickrent-backend/internal/core/domain"
)

// ctxUser extracts the user resolved by the Auth middleware and fast-fails
// with 401 when it is absent; presence proves the middleware ran.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFromContext(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
