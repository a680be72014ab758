package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/cabrix/dispatch-api/internal/core/ports"
)

// Auth validates the bearer JWT, confirms the token is still registered in
// the server-side session store, and injects the identity claims into the
// request context. A token whose signature verifies but which has been
// revoked by logout is rejected.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			live, err := sessions.Exists(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}
			if !live {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			userID, _ := claims["sub"].(float64)
			platformAdmin, _ := claims["platform_admin"].(bool)

			c.Set("token", parts[1])
			c.Set("user_id", int64(userID))
			c.Set("email", claims["email"])
			c.Set("role", claims["role"])
			c.Set("platform_admin", platformAdmin)

			return next(c)
		}
	}
}
