// File: internal/policy/ratelimit.go
package policy

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/domain/ports/repository"
	"telegram-robux-store/internal/infra/redis"
)

var _ Policy = (*RateLimitPolicy)(nil)

// RateLimitPolicy enforces a minimum inter-event spacing per user and drops
// violators silently. This is backpressure against double-taps, not a
// security control, so limiter errors fail open.
type RateLimitPolicy struct {
	limiter  repository.RateLimiter
	interval time.Duration
	log      *zerolog.Logger
}

func NewRateLimitPolicy(limiter repository.RateLimiter, interval time.Duration, logger *zerolog.Logger) *RateLimitPolicy {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	compLog := logger.With().Str("component", "RateLimitPolicy").Logger()
	return &RateLimitPolicy{limiter: limiter, interval: interval, log: &compLog}
}

func (p *RateLimitPolicy) Name() string { return "rate_limit" }

func (p *RateLimitPolicy) Check(ctx context.Context, ev model.Event) Decision {
	allowed, err := p.limiter.Allow(ctx, redis.UserEventKey(ev.UserID), 1, p.interval)
	if err != nil {
		p.log.Warn().Err(err).Int64("tg_id", ev.UserID).Msg("rate limit check failed, failing open")
		return allow
	}
	if !allowed {
		return Decision{Allow: false}
	}
	return allow
}
