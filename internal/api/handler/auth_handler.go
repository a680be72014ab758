package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cabrix/dispatch-api/internal/api/metrics"
	"github.com/cabrix/dispatch-api/internal/core/access"
	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
	"github.com/cabrix/dispatch-api/internal/core/session"
)

type AuthHandler struct {
	authService    ports.AuthService
	operatorDomain string
}

func NewAuthHandler(authService ports.AuthService, operatorDomain string) *AuthHandler {
	return &AuthHandler{authService: authService, operatorDomain: operatorDomain}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
	// Home is the dashboard the client should land on for this identity.
	Home string `json:"home"`
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	sess := session.New(h.operatorDomain)
	sess.Login(user, token)

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		User:        user,
		Home:        access.HomeFor(sess),
	})
}

// Logout revokes the caller's bearer token server-side.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204  "session revoked"
// @Failure      401  {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
