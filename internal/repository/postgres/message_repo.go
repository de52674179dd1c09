package postgres

import (
	"context"

	"github.com/flintapp/flint/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (match_id, sender_id, content, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		msg.MatchID, msg.SenderID, msg.Content, msg.ImageURL,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *MessageRepo) ListByMatch(ctx context.Context, matchID int64) ([]domain.Message, error) {
	query := `
		SELECT id, match_id, sender_id, content, image_url, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.MatchID, &msg.SenderID, &msg.Content, &msg.ImageURL, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
