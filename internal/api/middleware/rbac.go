package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cabrix/dispatch-api/internal/core/access"
	"github.com/cabrix/dispatch-api/internal/core/domain"
)

// ctxSession adapts the claims injected by Auth to the guard's view of a
// session. Requests reaching RBAC have already authenticated, so the state is
// never initializing or anonymous.
type ctxSession struct {
	c echo.Context
}

func (s ctxSession) IsAuthenticated() bool {
	return true
}

func (s ctxSession) Identity() *domain.User {
	id, _ := s.c.Get("user_id").(int64)
	role, _ := s.c.Get("role").(string)
	if id == 0 || role == "" {
		return nil
	}
	return &domain.User{ID: id, Role: domain.Role(role)}
}

func (s ctxSession) IsPlatformAdmin() bool {
	v, _ := s.c.Get("platform_admin").(bool)
	return v
}

// forbiddenResponse tells the client where its role belongs instead.
type forbiddenResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// RBAC enforces role-based access through the guard. A caller whose role is
// not allowed receives 403 along with the destination its role is routed to.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := access.Decide(access.StateAuthenticated, ctxSession{c}, allowedRoles...)
			if d.Kind != access.Render {
				return c.JSON(http.StatusForbidden, forbiddenResponse{Error: "forbidden", Redirect: d.Target})
			}
			return next(c)
		}
	}
}

// PlatformAdmin applies the secondary check on admin-only surfaces: role
// admin is necessary but not sufficient, the account must belong to the
// operator domain.
func PlatformAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := access.DecideAdminEntry(access.StateAuthenticated, ctxSession{c})
			if d.Kind != access.Render {
				return c.JSON(http.StatusForbidden, forbiddenResponse{Error: "forbidden", Redirect: d.Target})
			}
			return next(c)
		}
	}
}
