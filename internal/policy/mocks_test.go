//go:build !integration

// File: internal/policy/mocks_test.go
package policy

import (
	"context"
	"sync"
	"time"

	"telegram-robux-store/internal/domain/model"
)

// memBanRepo is a small in-memory ban store used by unit tests.
type memBanRepo struct {
	mu      sync.Mutex
	banned  map[int64]bool
	err     error
	lookups int
}

func newMemBanRepo() *memBanRepo {
	return &memBanRepo{banned: make(map[int64]bool)}
}

func (m *memBanRepo) IsBanned(_ context.Context, tgID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.err != nil {
		return false, m.err
	}
	return m.banned[tgID], nil
}

func (m *memBanRepo) lookupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

// fakeSettings serves a fixed public settings blob.
type fakeSettings struct {
	mu          sync.Mutex
	maintenance bool
	err         error
	fetches     int
}

func (f *fakeSettings) PublicSettings(context.Context) (*model.PublicSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return &model.PublicSettings{Maintenance: f.maintenance}, nil
}

func (f *fakeSettings) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// fakeLimiter returns scripted verdicts.
type fakeLimiter struct {
	allowed bool
	err     error
	lastKey string
}

func (f *fakeLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.lastKey = key
	return f.allowed, f.err
}

func message(userID int64) model.Event {
	return model.Event{Kind: model.KindMessage, UserID: userID, ChatID: userID, Text: "hi"}
}

func callback(userID int64) model.Event {
	return model.Event{Kind: model.KindCallback, UserID: userID, ChatID: userID, Data: "menu:balance", CallbackID: "cb1"}
}
