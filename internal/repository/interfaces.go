package repository

import (
	"context"

	"github.com/flintapp/flint/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Deactivate(ctx context.Context, id int64) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// FindCandidates returns up to limit active profiles matching the
	// requester's age and gender preferences, excluding the requester
	// and anyone the requester already swiped on. Order is whatever the
	// store returns; distance filtering happens in the service.
	FindCandidates(ctx context.Context, requester *domain.Profile, limit int) ([]domain.Profile, error)
}

type PhotoRepository interface {
	Add(ctx context.Context, photo *domain.Photo) error
	ListByProfile(ctx context.Context, profileID int64) ([]domain.Photo, error)
	// GetOwned resolves a photo only if it belongs to the given user's
	// profile. Returns nil when the photo does not exist or is someone
	// else's.
	GetOwned(ctx context.Context, photoID, userID int64) (*domain.Photo, error)
	Delete(ctx context.Context, photoID int64) error
}

type SwipeRepository interface {
	// Upsert writes the decision for (FromUserID, ToUserID), atomically
	// overwriting any prior decision for that pair.
	Upsert(ctx context.Context, swipe *domain.Swipe) error
	// Get returns the decision from one user to another, or nil if none
	// was ever recorded.
	Get(ctx context.Context, fromUserID, toUserID int64) (*domain.Swipe, error)
	// CountPositiveReceived counts distinct users whose current decision
	// toward userID is like or superlike.
	CountPositiveReceived(ctx context.Context, userID int64) (int64, error)
}

type MatchRepository interface {
	// Ensure creates the match for the unordered pair if it does not
	// exist and returns it either way. Dedup is enforced by a storage
	// uniqueness constraint on the canonical pair, not by check-then-insert.
	Ensure(ctx context.Context, userA, userB int64) (*domain.Match, error)
	GetByID(ctx context.Context, id int64) (*domain.Match, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.MatchSummary, error)
}

type MessageRepository interface {
	// Create persists the message and fills in the server-assigned ID
	// and creation timestamp.
	Create(ctx context.Context, msg *domain.Message) error
	// ListByMatch returns the match's full history ordered by creation
	// time ascending, message ID as tie-break.
	ListByMatch(ctx context.Context, matchID int64) ([]domain.Message, error)
}
