package postgres

import (
	"context"
	"errors"

	"github.com/flintapp/flint/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

// Upsert relies on the (from_user_id, to_user_id) primary key: the
// ON CONFLICT clause makes the overwrite atomic per pair, so there is
// no read-modify-write window.
func (r *SwipeRepo) Upsert(ctx context.Context, swipe *domain.Swipe) error {
	query := `
		INSERT INTO swipes (from_user_id, to_user_id, action, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (from_user_id, to_user_id)
		DO UPDATE SET action = EXCLUDED.action, updated_at = now()
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		swipe.FromUserID, swipe.ToUserID, swipe.Action,
	).Scan(&swipe.CreatedAt, &swipe.UpdatedAt)
}

func (r *SwipeRepo) Get(ctx context.Context, fromUserID, toUserID int64) (*domain.Swipe, error) {
	query := `
		SELECT from_user_id, to_user_id, action, created_at, updated_at
		FROM swipes
		WHERE from_user_id = $1 AND to_user_id = $2`

	var s domain.Swipe
	err := r.pool.QueryRow(ctx, query, fromUserID, toUserID).Scan(
		&s.FromUserID, &s.ToUserID, &s.Action, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SwipeRepo) CountPositiveReceived(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM swipes
		WHERE to_user_id = $1 AND action IN ('like', 'superlike')`

	var count int64
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
