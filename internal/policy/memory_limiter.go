// File: internal/policy/memory_limiter.go
package policy

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"telegram-robux-store/internal/domain/ports/repository"
)

var _ repository.RateLimiter = (*MemoryLimiter)(nil)

// MemoryLimiter is the process-local fallback limiter used when Redis is not
// configured. Entries expire shortly after the window so the cache stays
// bounded.
type MemoryLimiter struct {
	cache *gocache.Cache
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{cache: gocache.New(time.Minute, time.Minute)}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := m.cache.IncrementInt64(key, 1)
	if err != nil {
		// First hit inside the window.
		m.cache.Set(key, int64(1), window)
		return limit >= 1, nil
	}
	return n <= int64(limit), nil
}
