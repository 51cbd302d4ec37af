package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-robux-store/internal/domain/ports/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// ErrBotTokenMissing means the shared settings row has no token configured.
// Nothing can run without it, so the caller treats this as fatal.
var ErrBotTokenMissing = errors.New("telegramBotToken is not configured in settings table")

// SettingsRepo reads the web application's settings table. The quoted
// camelCase columns match the schema the web side owns.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

func (r *SettingsRepo) BotToken(ctx context.Context) (string, error) {
	const q = `SELECT "telegramBotToken" FROM "settings" WHERE id = 1;`
	var token *string
	if err := r.pool.QueryRow(ctx, q).Scan(&token); err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrBotTokenMissing
		}
		return "", err
	}
	if token == nil || *token == "" {
		return "", ErrBotTokenMissing
	}
	return *token, nil
}
