package repository

import (
	"context"
	"time"
)

// SettingsRepository reads the bot's own credentials from the shared
// relational store. The schema belongs to the web application.
type SettingsRepository interface {
	BotToken(ctx context.Context) (string, error)
}

// BanRepository reads per-user ban flags from the shared relational store.
type BanRepository interface {
	IsBanned(ctx context.Context, tgID int64) (bool, error)
}

// RateLimiter gates events to at most one per window per key.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
