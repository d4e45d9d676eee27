package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// RoleChecker answers whether a user holds a role.  Satisfied by
// repository.RoleRepo; tests substitute a stub.
type RoleChecker interface {
	HasRole(ctx context.Context, userID uint64, role string) (bool, error)
}

// RequireRole returns a middleware that enforces that the authenticated
// user holds the named role in the user_roles table.  It assumes JWTAuth
// already placed the user id in the context under "user_id".  The role is
// looked up per request — not read from token claims — so revoking a role
// takes effect immediately.  Missing identity is treated as 401, a
// missing role as 403.
func RequireRole(roles RoleChecker, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := contextUserID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
			defer cancel()
			has, err := roles.HasRole(ctx, uid, role)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "role check failed"})
			}
			if !has {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// contextUserID extracts the user id placed in context by JWTAuth.  JWT
// numeric claims decode as float64; string subjects are parsed as base-10.
func contextUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case uint64:
		return v, true
	case int:
		return uint64(v), true
	case int64:
		return uint64(v), true
	case float64:
		return uint64(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
