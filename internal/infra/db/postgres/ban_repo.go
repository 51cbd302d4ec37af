package postgres

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-robux-store/internal/domain/ports/repository"
)

var _ repository.BanRepository = (*BanRepo)(nil)

// BanRepo reads per-user ban flags from the shared users table. User ids are
// stored as text on the web side.
type BanRepo struct {
	pool *pgxpool.Pool
}

func NewBanRepo(pool *pgxpool.Pool) *BanRepo {
	return &BanRepo{pool: pool}
}

func (r *BanRepo) IsBanned(ctx context.Context, tgID int64) (bool, error) {
	const q = `SELECT "isBanned" FROM users WHERE id = $1;`
	var banned bool
	err := r.pool.QueryRow(ctx, q, strconv.FormatInt(tgID, 10)).Scan(&banned)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Unknown to the web side yet; certainly not banned.
			return false, nil
		}
		return false, err
	}
	return banned, nil
}
