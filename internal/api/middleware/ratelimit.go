package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookbuddy/library-api/internal/api/metrics"
)

// WindowCounter counts requests per client within a fixed time window.
type WindowCounter interface {
	Incr(ctx context.Context, scope, clientKey string, window time.Duration) (int64, error)
}

// LimitConfig describes one rate-limit scope.
type LimitConfig struct {
	Scope   string
	Limit   int64
	Window  time.Duration
	Message string
}

// Default limits mirror the admin console's operating assumptions: a general
// cap on the whole API, a tight cap on credential endpoints, and a per-hour
// cap on anonymous likes.
var (
	APILimit = LimitConfig{
		Scope:   "api",
		Limit:   100,
		Window:  15 * time.Minute,
		Message: "Too many requests from this IP, please try again later.",
	}
	AuthLimit = LimitConfig{
		Scope:   "auth",
		Limit:   5,
		Window:  15 * time.Minute,
		Message: "Too many authentication attempts, please try again later.",
	}
	LikeLimit = LimitConfig{
		Scope:   "like",
		Limit:   10,
		Window:  time.Hour,
		Message: "Too many like requests, please try again later.",
	}
)

// RateLimit enforces a fixed-window per-IP limit backed by the counter. A
// counter failure lets the request through; the limiter protects against
// brute force, it is not an availability dependency.
func RateLimit(counter WindowCounter, cfg LimitConfig, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			n, err := counter.Incr(c.Request().Context(), cfg.Scope, c.RealIP(), cfg.Window)
			if err != nil {
				logger.Warn().Err(err).Str("scope", cfg.Scope).Msg("rate limit counter unavailable")
				return next(c)
			}

			if n > cfg.Limit {
				metrics.RateLimitRejectionsTotal.WithLabelValues(cfg.Scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, cfg.Message)
			}
			return next(c)
		}
	}
}
