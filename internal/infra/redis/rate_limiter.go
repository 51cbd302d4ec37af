package redis

import (
	"context"
	"fmt"
	"time"

	"telegram-robux-store/internal/domain/ports/repository"
)

var _ repository.RateLimiter = (*RateLimiter)(nil)

type RateLimiter struct {
	client RedisClient
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow admits at most limit events per window for the key. With limit=1 and
// a window equal to the minimum inter-event interval this yields the
// "drop events arriving too soon" spacing the policy chain needs.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window); err != nil {
			return false, err
		}
	}

	if count > int64(limit) {
		return false, nil
	}
	return true, nil
}

func UserEventKey(userID int64) string {
	return fmt.Sprintf("rate_limit:%d", userID)
}
