package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies the schema at startup. Statements are idempotent so
// restarts are safe.
//
// Two constraints carry the concurrency guarantees the services rely on:
//   - swipes PK (from_user_id, to_user_id) makes the upsert in
//     SwipeRepo atomic per pair (last write wins, no history).
//   - matches UNIQUE (user1_id, user2_id) with the user1 < user2 check
//     makes match creation insert-if-absent at the storage layer, so
//     two racing reciprocal swipes cannot create two rows.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(id),
			display_name TEXT NOT NULL,
			age INT,
			gender TEXT,
			short_bio TEXT,
			interests TEXT,
			music TEXT,
			languages TEXT,
			location_lat DOUBLE PRECISION,
			location_lng DOUBLE PRECISION,
			distance_km INT,
			min_age_pref INT NOT NULL DEFAULT 18,
			max_age_pref INT NOT NULL DEFAULT 99,
			interested_in_gender TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS profile_photos (
			id BIGSERIAL PRIMARY KEY,
			profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			image_url TEXT NOT NULL,
			sort_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS swipes (
			from_user_id BIGINT NOT NULL REFERENCES users(id),
			to_user_id BIGINT NOT NULL REFERENCES users(id),
			action TEXT NOT NULL CHECK (action IN ('like', 'dislike', 'superlike')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (from_user_id, to_user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			user1_id BIGINT NOT NULL REFERENCES users(id),
			user2_id BIGINT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user1_id, user2_id),
			CHECK (user1_id < user2_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			match_id BIGINT NOT NULL REFERENCES matches(id),
			sender_id BIGINT NOT NULL REFERENCES users(id),
			content TEXT,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK (content IS NOT NULL OR image_url IS NOT NULL)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_swipes_to_action ON swipes (to_user_id, action)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_match_created ON messages (match_id, created_at, id)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
