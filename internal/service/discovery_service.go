package service

import (
	"context"

	"github.com/flintapp/flint/internal/domain"
	"github.com/flintapp/flint/internal/repository"
	"github.com/flintapp/flint/pkg/geo"
)

// candidateBatchSize bounds how many store matches one pull considers
// before distance filtering.
const candidateBatchSize = 50

type DiscoveryService struct {
	profileRepo repository.ProfileRepository
	photoRepo   repository.PhotoRepository
}

func NewDiscoveryService(profileRepo repository.ProfileRepository, photoRepo repository.PhotoRepository) *DiscoveryService {
	return &DiscoveryService{
		profileRepo: profileRepo,
		photoRepo:   photoRepo,
	}
}

type CandidateResponse struct {
	Profile *domain.Profile `json:"profile"`
	Photos  []domain.Photo  `json:"photos"`
}

// NextCandidate returns the next undecided profile for the requester,
// or a nil profile when the pool is exhausted. Exhaustion is a normal
// terminal state, not an error.
//
// The store answers the age, gender, activity and already-swiped
// filters; distance is applied here because a candidate with missing
// coordinates must pass ("unknown" never filters anyone out). Purely a
// read: concurrent pulls by the same requester may see the same
// candidate, nothing is reserved.
func (s *DiscoveryService) NextCandidate(ctx context.Context, userID int64) (*CandidateResponse, error) {
	requester, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrProfileNotFound
	}

	candidates, err := s.profileRepo.FindCandidates(ctx, requester, candidateBatchSize)
	if err != nil {
		return nil, err
	}

	filterByDistance := requester.LocationLat != nil && requester.LocationLng != nil && requester.DistanceKM != nil

	for i := range candidates {
		candidate := &candidates[i]

		if filterByDistance {
			d := geo.DistanceKM(requester.LocationLat, requester.LocationLng, candidate.LocationLat, candidate.LocationLng)
			if d != nil && *d > float64(*requester.DistanceKM) {
				continue
			}
		}

		photos, err := s.photoRepo.ListByProfile(ctx, candidate.ID)
		if err != nil {
			return nil, err
		}
		if photos == nil {
			photos = []domain.Photo{}
		}
		return &CandidateResponse{Profile: candidate, Photos: photos}, nil
	}

	return &CandidateResponse{Profile: nil, Photos: []domain.Photo{}}, nil
}
