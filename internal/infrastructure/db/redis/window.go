package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowCounter implements fixed-window request counting for rate limiting.
// Key format: ratelimit:<scope>:<client>. The first hit in a window sets the
// TTL; the count resets when the key expires.
type WindowCounter struct {
	client *redis.Client
}

// NewWindowCounter creates a WindowCounter wrapping the given Redis client.
func NewWindowCounter(client *redis.Client) *WindowCounter {
	return &WindowCounter{client: client}
}

// Incr increments the counter for scope+clientKey and returns the count
// within the current window.
func (w *WindowCounter) Incr(ctx context.Context, scope, clientKey string, window time.Duration) (int64, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, clientKey)

	pipe := w.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit incr: %w", err)
	}

	return incr.Val(), nil
}
