package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/policy"
)

// Require applies a route-level role gate. Anonymous callers get
// ErrUnauthenticated, callers without an accepted role ErrForbidden.
func Require(rule policy.Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := rule.Allow(domain.PrincipalFromContext(c.Request().Context())); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireRoles is Require for a plain role set.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	return Require(policy.Rule{Roles: roles})
}
