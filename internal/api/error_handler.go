package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookbuddy/library-api/internal/api/handler"
	"github.com/bookbuddy/library-api/internal/core/domain"
)

// errorResponse is the canonical failure envelope: {"success":false,...}.
// Validation failures carry every violated constraint in Errors; all other
// failures carry a single Error message. Detail is populated outside
// production only.
type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Detail  string   `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders aggregated validation failures with all violated fields.
//   - Maps known domain errors to their stable HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the
//     client in production.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *handler.ValidationErrors
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, errorResponse{Success: false, Errors: ve.Fields})
			return
		}

		code, msg, unexpected := resolveError(err, log, c)
		resp := errorResponse{Success: false, Error: msg}
		if unexpected && !production {
			resp.Detail = err.Error()
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, bool) {
	// Echo's own errors (bind failures, 404 from router, 429 from limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), false
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, err.Error(), false
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error(), false
	case errors.Is(err, domain.ErrSelfDemotion),
		errors.Is(err, domain.ErrSelfDeletion),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrDuplicateISBN):
		return http.StatusBadRequest, err.Error(), false
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, err.Error(), false
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", true
}
