// File: internal/policy/maintenance.go
package policy

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"telegram-robux-store/internal/domain/model"
)

// SettingsFetcher is the slice of the backend client this policy needs.
type SettingsFetcher interface {
	PublicSettings(ctx context.Context) (*model.PublicSettings, error)
}

var _ Policy = (*MaintenancePolicy)(nil)

const maintenanceNotice = "⚠️ Технические работы\n\nБот временно недоступен. Мы уже работаем над улучшениями! Пожалуйста, загляните позже."

// MaintenancePolicy suppresses events while the store-wide maintenance flag
// is set, replying with a fixed notice. Bypass identities always pass. The
// flag is a TTL-cached snapshot; a fetch error fails open.
type MaintenancePolicy struct {
	fetcher SettingsFetcher
	bypass  map[int64]struct{}
	cache   *gocache.Cache
	log     *zerolog.Logger
}

const snapshotKey = "maintenance"

func NewMaintenancePolicy(fetcher SettingsFetcher, bypassIDs []int64, ttl time.Duration, logger *zerolog.Logger) *MaintenancePolicy {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	bypass := make(map[int64]struct{}, len(bypassIDs))
	for _, id := range bypassIDs {
		bypass[id] = struct{}{}
	}
	compLog := logger.With().Str("component", "MaintenancePolicy").Logger()
	return &MaintenancePolicy{
		fetcher: fetcher,
		bypass:  bypass,
		cache:   gocache.New(ttl, 2*ttl),
		log:     &compLog,
	}
}

func (p *MaintenancePolicy) Name() string { return "maintenance" }

func (p *MaintenancePolicy) Check(ctx context.Context, ev model.Event) Decision {
	if _, ok := p.bypass[ev.UserID]; ok {
		return allow
	}
	if !p.active(ctx) {
		return allow
	}
	if ev.Kind == model.KindCallback {
		return Decision{Allow: false, Notice: "⚠️ Технические работы", Alert: true}
	}
	return Decision{Allow: false, Notice: maintenanceNotice}
}

func (p *MaintenancePolicy) active(ctx context.Context) bool {
	if v, ok := p.cache.Get(snapshotKey); ok {
		return v.(bool)
	}
	settings, err := p.fetcher.PublicSettings(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("settings fetch failed, failing open")
		return false
	}
	p.cache.SetDefault(snapshotKey, settings.Maintenance)
	return settings.Maintenance
}
