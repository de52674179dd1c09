package postgres

import (
	"context"
	"errors"

	"github.com/flintapp/flint/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

func (r *PhotoRepo) Add(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO profile_photos (profile_id, image_url, sort_order, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.pool.QueryRow(ctx, query,
		photo.ProfileID, photo.ImageURL, photo.SortOrder, photo.CreatedAt,
	).Scan(&photo.ID)
}

func (r *PhotoRepo) ListByProfile(ctx context.Context, profileID int64) ([]domain.Photo, error) {
	query := `
		SELECT id, profile_id, image_url, sort_order, created_at
		FROM profile_photos
		WHERE profile_id = $1
		ORDER BY sort_order ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.ProfileID, &p.ImageURL, &p.SortOrder, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *PhotoRepo) GetOwned(ctx context.Context, photoID, userID int64) (*domain.Photo, error) {
	query := `
		SELECT pp.id, pp.profile_id, pp.image_url, pp.sort_order, pp.created_at
		FROM profile_photos pp
		JOIN profiles p ON pp.profile_id = p.id
		WHERE pp.id = $1 AND p.user_id = $2`

	var photo domain.Photo
	err := r.pool.QueryRow(ctx, query, photoID, userID).Scan(
		&photo.ID, &photo.ProfileID, &photo.ImageURL, &photo.SortOrder, &photo.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepo) Delete(ctx context.Context, photoID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profile_photos WHERE id = $1`, photoID)
	return err
}
