package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/flintapp/flint/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// Ensure inserts the canonical pair if absent and returns the row
// either way. The UNIQUE constraint on (user1_id, user2_id) is what
// closes the race between two simultaneous reciprocal swipes: both may
// attempt the insert, exactly one row ends up existing, and both calls
// read it back.
func (r *MatchRepo) Ensure(ctx context.Context, userA, userB int64) (*domain.Match, error) {
	u1, u2 := domain.CanonicalPair(userA, userB)

	insert := `
		INSERT INTO matches (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, insert, u1, u2); err != nil {
		return nil, fmt.Errorf("inserting match: %w", err)
	}

	query := `
		SELECT id, user1_id, user2_id, created_at
		FROM matches
		WHERE user1_id = $1 AND user2_id = $2`

	var m domain.Match
	err := r.pool.QueryRow(ctx, query, u1, u2).Scan(&m.ID, &m.User1ID, &m.User2ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("reading match back: %w", err)
	}
	return &m, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	query := `
		SELECT id, user1_id, user2_id, created_at
		FROM matches
		WHERE id = $1`

	var m domain.Match
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.User1ID, &m.User2ID, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MatchRepo) ListByUser(ctx context.Context, userID int64) ([]domain.MatchSummary, error) {
	query := `
		SELECT m.id,
			CASE WHEN m.user1_id = $1 THEN m.user2_id ELSE m.user1_id END AS other_user_id,
			p.display_name,
			m.created_at
		FROM matches m
		JOIN profiles p
			ON p.user_id = CASE WHEN m.user1_id = $1 THEN m.user2_id ELSE m.user1_id END
		WHERE m.user1_id = $1 OR m.user2_id = $1
		ORDER BY m.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.MatchSummary
	for rows.Next() {
		var s domain.MatchSummary
		if err := rows.Scan(&s.MatchID, &s.OtherUserID, &s.DisplayName, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
