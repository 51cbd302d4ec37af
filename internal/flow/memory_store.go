// File: internal/flow/memory_store.go
package flow

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"telegram-robux-store/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*MemoryStore)(nil)

// MemoryStore keeps flow sessions in process memory with a TTL. A restart
// loses in-flight flows, which is acceptable: the user just starts over.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MemoryStore{cache: gocache.New(ttl, ttl)}
}

func key(tgID int64) string { return strconv.FormatInt(tgID, 10) }

func (m *MemoryStore) Set(_ context.Context, tgID int64, s *repository.FlowSession) error {
	m.cache.SetDefault(key(tgID), s)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, tgID int64) (*repository.FlowSession, error) {
	v, ok := m.cache.Get(key(tgID))
	if !ok {
		return nil, nil
	}
	return v.(*repository.FlowSession), nil
}

func (m *MemoryStore) Clear(_ context.Context, tgID int64) error {
	m.cache.Delete(key(tgID))
	return nil
}
