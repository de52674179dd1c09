package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/flintapp/flint/internal/cache"
	"github.com/flintapp/flint/internal/domain"
	"github.com/flintapp/flint/internal/logger"
	"github.com/flintapp/flint/internal/repository"
)

var (
	ErrInvalidAction = errors.New("action must be like, dislike or superlike")
	ErrSelfSwipe     = errors.New("cannot swipe on yourself")
)

type SwipeService struct {
	swipeRepo repository.SwipeRepository
	matchRepo repository.MatchRepository
	cache     *cache.RedisCache
}

func NewSwipeService(swipeRepo repository.SwipeRepository, matchRepo repository.MatchRepository, cache *cache.RedisCache) *SwipeService {
	return &SwipeService{
		swipeRepo: swipeRepo,
		matchRepo: matchRepo,
		cache:     cache,
	}
}

// Record writes the actor's decision about the target and reports
// whether it completed a mutual match.
//
// The decision write is last-write-wins per (actor, target), atomic at
// the storage layer. Reciprocity is only checked for positive actions:
// if the target's current decision toward the actor is also positive,
// the match is ensured. Ensure is idempotent, so whichever of two
// racing reciprocal swipes loses the insert still reads back the same
// single match row.
func (s *SwipeService) Record(ctx context.Context, actorID, targetID int64, action domain.SwipeAction) (bool, error) {
	if !action.Valid() {
		return false, ErrInvalidAction
	}
	if actorID == targetID {
		return false, ErrSelfSwipe
	}

	// Prior decision only feeds the cached liked-you counter; the
	// upsert itself never depends on it.
	prior, err := s.swipeRepo.Get(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}

	swipe := &domain.Swipe{
		FromUserID: actorID,
		ToUserID:   targetID,
		Action:     action,
	}
	if err := s.swipeRepo.Upsert(ctx, swipe); err != nil {
		return false, fmt.Errorf("recording swipe: %w", err)
	}

	s.adjustLikeCount(ctx, targetID, prior, action)

	if !action.Positive() {
		return false, nil
	}

	reciprocal, err := s.swipeRepo.Get(ctx, targetID, actorID)
	if err != nil {
		return false, err
	}
	if reciprocal == nil || !reciprocal.Action.Positive() {
		return false, nil
	}

	if _, err := s.matchRepo.Ensure(ctx, actorID, targetID); err != nil {
		return false, fmt.Errorf("ensuring match: %w", err)
	}
	return true, nil
}

// LikedYouCount returns how many users currently have a positive
// decision toward userID. Cache-first with a 1h TTL; a miss falls back
// to the store and repopulates the cache.
func (s *SwipeService) LikedYouCount(ctx context.Context, userID int64) (int64, error) {
	if count, ok, err := s.cache.GetLikeCount(ctx, userID); err == nil && ok {
		return count, nil
	} else if err != nil {
		logger.Warn("like count cache read failed", "user_id", userID, "err", err)
	}

	count, err := s.swipeRepo.CountPositiveReceived(ctx, userID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.SetLikeCount(ctx, userID, count); err != nil {
		logger.Warn("like count cache write failed", "user_id", userID, "err", err)
	}

	return count, nil
}

// adjustLikeCount keeps the cached counter in step with the decision
// transition. Cache errors are logged and ignored; the TTL plus the
// DB fallback in LikedYouCount heal any drift.
func (s *SwipeService) adjustLikeCount(ctx context.Context, targetID int64, prior *domain.Swipe, action domain.SwipeAction) {
	wasPositive := prior != nil && prior.Action.Positive()
	isPositive := action.Positive()

	var delta int64
	switch {
	case !wasPositive && isPositive:
		delta = 1
	case wasPositive && !isPositive:
		delta = -1
	default:
		return
	}

	if err := s.cache.IncrLikeCount(ctx, targetID, delta); err != nil {
		logger.Warn("like count cache update failed", "user_id", targetID, "err", err)
	}
}
