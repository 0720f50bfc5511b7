package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bookbuddy/library-api/internal/core/domain"
)

// userContextKey is the single echo context key the auth middleware stores
// the resolved identity under; at most one identity exists per request.
const userContextKey = "user"

// SetCurrentUser attaches the authenticated user to the request context.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the identity attached by the auth middleware, or nil
// when the request is unauthenticated.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}
