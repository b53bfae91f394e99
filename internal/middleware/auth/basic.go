package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nstepanov-hw/shop-api/internal/models"
	"github.com/nstepanov-hw/shop-api/internal/users"
)

const requesterKey = "requester"

// RequireBasicAuth validates basic credentials against the user service and
// stores the authenticated user in the echo context.
func RequireBasicAuth(svc *users.Service) echo.MiddlewareFunc {
	return middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		user, err := svc.Authenticate(c.Request().Context(), username, password)
		if err != nil {
			if errors.Is(err, users.ErrUnauthorized) {
				return false, nil
			}
			return false, err
		}
		c.Set(requesterKey, user)
		return true, nil
	})
}

// AdminOnly rejects authenticated requesters without the admin role. Must
// run after RequireBasicAuth.
func AdminOnly(svc *users.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := Requester(c)
			if _, err := svc.AuthorizeAdmin(user); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}

// Requester returns the authenticated user stored by RequireBasicAuth.
func Requester(c echo.Context) *models.User {
	if u, ok := c.Get(requesterKey).(*models.User); ok {
		return u
	}
	return nil
}
