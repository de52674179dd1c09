package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flintapp/flint/internal/domain"
	"github.com/flintapp/flint/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrPhotoNotFound   = errors.New("photo not found")
)

type ProfileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	photoRepo   repository.PhotoRepository
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, photoRepo repository.PhotoRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		photoRepo:   photoRepo,
	}
}

type ProfileResponse struct {
	Profile *domain.Profile `json:"profile"`
	Photos  []domain.Photo  `json:"photos"`
}

// UpdateProfileInput carries a partial update: nil fields keep their
// current value. None of the fields can be unset once written.
type UpdateProfileInput struct {
	DisplayName        *string  `json:"display_name,omitempty"`
	ShortBio           *string  `json:"short_bio,omitempty"`
	Age                *int     `json:"age,omitempty"`
	Gender             *string  `json:"gender,omitempty"`
	Interests          *string  `json:"interests,omitempty"`
	Music              *string  `json:"music,omitempty"`
	Languages          *string  `json:"languages,omitempty"`
	LocationLat        *float64 `json:"location_lat,omitempty"`
	LocationLng        *float64 `json:"location_lng,omitempty"`
	DistanceKM         *int     `json:"distance_km,omitempty"`
	MinAgePref         *int     `json:"min_age_pref,omitempty"`
	MaxAgePref         *int     `json:"max_age_pref,omitempty"`
	InterestedInGender *string  `json:"interested_in_gender,omitempty"`
}

func (s *ProfileService) Me(ctx context.Context, userID int64) (*ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	photos, err := s.photoRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []domain.Photo{}
	}

	return &ProfileResponse{Profile: profile, Photos: photos}, nil
}

func (s *ProfileService) UpdateMe(ctx context.Context, userID int64, input UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if input.DisplayName != nil {
		profile.DisplayName = *input.DisplayName
	}
	if input.ShortBio != nil {
		profile.ShortBio = input.ShortBio
	}
	if input.Age != nil {
		profile.Age = input.Age
	}
	if input.Gender != nil {
		profile.Gender = input.Gender
	}
	if input.Interests != nil {
		profile.Interests = input.Interests
	}
	if input.Music != nil {
		profile.Music = input.Music
	}
	if input.Languages != nil {
		profile.Languages = input.Languages
	}
	if input.LocationLat != nil {
		profile.LocationLat = input.LocationLat
	}
	if input.LocationLng != nil {
		profile.LocationLng = input.LocationLng
	}
	if input.DistanceKM != nil {
		profile.DistanceKM = input.DistanceKM
	}
	if input.MinAgePref != nil {
		profile.MinAgePref = *input.MinAgePref
	}
	if input.MaxAgePref != nil {
		profile.MaxAgePref = *input.MaxAgePref
	}
	if input.InterestedInGender != nil {
		profile.InterestedInGender = input.InterestedInGender
	}
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return profile, nil
}

func (s *ProfileService) AddPhoto(ctx context.Context, userID int64, imageURL string, sortOrder int) (*domain.Photo, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	photo := &domain.Photo{
		ProfileID: profile.ID,
		ImageURL:  imageURL,
		SortOrder: sortOrder,
		CreatedAt: time.Now(),
	}
	if err := s.photoRepo.Add(ctx, photo); err != nil {
		return nil, fmt.Errorf("adding photo: %w", err)
	}
	return photo, nil
}

func (s *ProfileService) DeletePhoto(ctx context.Context, userID, photoID int64) error {
	photo, err := s.photoRepo.GetOwned(ctx, photoID, userID)
	if err != nil {
		return err
	}
	if photo == nil {
		return ErrPhotoNotFound
	}
	return s.photoRepo.Delete(ctx, photoID)
}

// Deactivate soft-disables the account. The profile row stays; the
// user simply stops showing up as a candidate.
func (s *ProfileService) Deactivate(ctx context.Context, userID int64) error {
	return s.userRepo.Deactivate(ctx, userID)
}
