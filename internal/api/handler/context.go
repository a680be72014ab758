package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

// ctxActor extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both user id and role
// must be present, their absence means the middleware never ran.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(string)
	if userID == 0 || role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{UserID: userID, Role: domain.Role(role)}, nil
}

// ctxToken returns the bearer token the Auth middleware validated.
func ctxToken(c echo.Context) (string, error) {
	token, _ := c.Get("token").(string)
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return token, nil
}
