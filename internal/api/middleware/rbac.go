package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bookbuddy/library-api/internal/api/handler"
	"github.com/bookbuddy/library-api/internal/api/metrics"
	"github.com/bookbuddy/library-api/internal/core/domain"
)

// RequireRole gates a route on an exact role. It must run after RequireAuth;
// a missing identity rejects the request rather than defaulting to permit.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := handler.CurrentUser(c)
			if user == nil || user.Role != role {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
