package postgres

import (
	"context"
	"errors"

	"github.com/flintapp/flint/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `id, user_id, display_name, age, gender, short_bio, interests, music, languages,
	location_lat, location_lng, distance_km, min_age_pref, max_age_pref, interested_in_gender,
	created_at, updated_at`

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, display_name, age, gender, short_bio, interests, music, languages,
			location_lat, location_lng, distance_km, min_age_pref, max_age_pref, interested_in_gender,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	return r.pool.QueryRow(ctx, query,
		profile.UserID, profile.DisplayName, profile.Age, profile.Gender, profile.ShortBio,
		profile.Interests, profile.Music, profile.Languages,
		profile.LocationLat, profile.LocationLng, profile.DistanceKM,
		profile.MinAgePref, profile.MaxAgePref, profile.InterestedInGender,
		profile.CreatedAt, profile.UpdatedAt,
	).Scan(&profile.ID)
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)

	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles SET
			display_name = $1, age = $2, gender = $3, short_bio = $4,
			interests = $5, music = $6, languages = $7,
			location_lat = $8, location_lng = $9, distance_km = $10,
			min_age_pref = $11, max_age_pref = $12, interested_in_gender = $13,
			updated_at = $14
		WHERE id = $15`

	_, err := r.pool.Exec(ctx, query,
		profile.DisplayName, profile.Age, profile.Gender, profile.ShortBio,
		profile.Interests, profile.Music, profile.Languages,
		profile.LocationLat, profile.LocationLng, profile.DistanceKM,
		profile.MinAgePref, profile.MaxAgePref, profile.InterestedInGender,
		profile.UpdatedAt, profile.ID,
	)
	return err
}

// FindCandidates applies every filter the store can answer: active
// account, not the requester, age inside the requester's window (or
// unset), gender compatible (either side unset passes), and no prior
// swipe by the requester toward the candidate. Distance is filtered by
// the caller because coordinates may be missing on either side.
func (r *ProfileRepo) FindCandidates(ctx context.Context, requester *domain.Profile, limit int) ([]domain.Profile, error) {
	query := `
		SELECT p.id, p.user_id, p.display_name, p.age, p.gender, p.short_bio, p.interests, p.music, p.languages,
			p.location_lat, p.location_lng, p.distance_km, p.min_age_pref, p.max_age_pref, p.interested_in_gender,
			p.created_at, p.updated_at
		FROM profiles p
		JOIN users u ON p.user_id = u.id
		WHERE p.user_id != $1
			AND u.is_active = TRUE
			AND (p.age IS NULL OR p.age BETWEEN $2 AND $3)
			AND ($4::text IS NULL OR p.gender IS NULL OR p.gender = $4)
			AND NOT EXISTS (
				SELECT 1 FROM swipes s
				WHERE s.from_user_id = $1 AND s.to_user_id = p.user_id
			)
		LIMIT $5`

	rows, err := r.pool.Query(ctx, query,
		requester.UserID, requester.MinAgePref, requester.MaxAgePref,
		requester.InterestedInGender, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Age, &p.Gender, &p.ShortBio,
		&p.Interests, &p.Music, &p.Languages,
		&p.LocationLat, &p.LocationLng, &p.DistanceKM,
		&p.MinAgePref, &p.MaxAgePref, &p.InterestedInGender,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
