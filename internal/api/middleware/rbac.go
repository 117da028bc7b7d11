package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentdesk/property-system/internal/core/access"
)

// RBAC enforces role-based access control.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RBACFor enforces access for a resource according to the screen access
// policy. Routes guarded this way stay in lockstep with the console menu.
func RBACFor(screen access.Screen) echo.MiddlewareFunc {
	entry, ok := access.Lookup(screen)
	if !ok {
		return RBAC() // unknown screen: deny everyone
	}
	return RBAC(entry.AllowedRoles...)
}
