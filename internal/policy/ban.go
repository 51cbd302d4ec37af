// File: internal/policy/ban.go
package policy

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/domain/ports/repository"
)

var _ Policy = (*BanPolicy)(nil)

// BanPolicy drops every event from a banned user, silently. Ban flags are
// cached with a TTL; a stale "not banned" entry can let a freshly banned
// user through for up to the TTL, an accepted staleness window. Lookup
// errors fail open so a store outage never locks everyone out.
type BanPolicy struct {
	repo  repository.BanRepository
	cache *gocache.Cache
	log   *zerolog.Logger
}

func NewBanPolicy(repo repository.BanRepository, ttl time.Duration, logger *zerolog.Logger) *BanPolicy {
	if ttl <= 0 {
		ttl = time.Minute
	}
	compLog := logger.With().Str("component", "BanPolicy").Logger()
	return &BanPolicy{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
		log:   &compLog,
	}
}

func (p *BanPolicy) Name() string { return "ban" }

func (p *BanPolicy) Check(ctx context.Context, ev model.Event) Decision {
	key := strconv.FormatInt(ev.UserID, 10)
	if v, ok := p.cache.Get(key); ok {
		if v.(bool) {
			return Decision{Allow: false}
		}
		return allow
	}

	banned, err := p.repo.IsBanned(ctx, ev.UserID)
	if err != nil {
		p.log.Warn().Err(err).Int64("tg_id", ev.UserID).Msg("ban lookup failed, failing open")
		banned = false
	}
	p.cache.SetDefault(key, banned)

	if banned {
		return Decision{Allow: false}
	}
	return allow
}
