package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter enforces a fixed-window counter per key. The first hit in a
// window creates the counter and sets its expiry; once the counter passes
// the limit the key is throttled until the window rolls over.
type RateLimiter struct {
	client RedisClient
	limit  int64
	window time.Duration
}

func NewRateLimiter(client RedisClient, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: int64(limit), window: window}
}

// Allow records one attempt for key and reports whether it is within the
// limit. A nil client disables limiting entirely.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if r == nil || r.client == nil || r.limit <= 0 {
		return true, nil
	}
	n, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, r.window); err != nil {
			return false, err
		}
	}
	return n <= r.limit, nil
}

// ClaimKey namespaces claim-attempt counters per user.
func ClaimKey(userID string) string {
	return fmt.Sprintf("ratelimit:claim:%s", userID)
}
