package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookbuddy/library-api/internal/api/handler"
	"github.com/bookbuddy/library-api/internal/api/metrics"
	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
)

// RequireAuth extracts the bearer access token, verifies it, resolves the
// subject user and attaches it to the request context. Verification failures
// are reported distinctly: missing header, expired token and anything else
// each map to their own sentinel.
func RequireAuth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return err
			}

			userID, err := auth.VerifyAccessToken(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.AuthRejectionsTotal.WithLabelValues("token_expired").Inc()
				} else {
					metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				}
				return err
			}

			user, err := auth.UserByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Token subject deleted since issuance.
					return domain.ErrInvalidToken
				}
				return err
			}

			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", domain.ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrUnauthenticated
	}
	return parts[1], nil
}
