package service_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintapp/flint/internal/cache"
	"github.com/flintapp/flint/internal/domain"
	"github.com/flintapp/flint/internal/service"
)

func newSwipeService(t *testing.T, store *memStore) (*service.SwipeService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr())
	return service.NewSwipeService(store.SwipeRepo(), store.MatchRepo(), c), mr
}

func TestRecordRejectsInvalidAction(t *testing.T) {
	store := newMemStore()
	svc, _ := newSwipeService(t, store)

	_, err := svc.Record(context.Background(), 1, 2, "poke")
	assert.ErrorIs(t, err, service.ErrInvalidAction)
}

func TestRecordRejectsSelfSwipe(t *testing.T) {
	store := newMemStore()
	svc, _ := newSwipeService(t, store)

	_, err := svc.Record(context.Background(), 7, 7, domain.SwipeLike)
	assert.ErrorIs(t, err, service.ErrSelfSwipe)
}

func TestRecordLikeWithoutReciprocal(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, _ := newSwipeService(t, store)

	a := seedUser(store, "a", ptr(28), nil)
	b := seedUser(store, "b", ptr(25), nil)

	matched, err := svc.Record(ctx, a, b, domain.SwipeLike)
	require.NoError(t, err)
	assert.False(t, matched)

	swipe, err := store.SwipeRepo().Get(ctx, a, b)
	require.NoError(t, err)
	require.NotNil(t, swipe)
	assert.Equal(t, domain.SwipeLike, swipe.Action)
}

func TestRecordReciprocalLikeCreatesOneMatch(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, _ := newSwipeService(t, store)

	a := seedUser(store, "a", ptr(28), nil)
	b := seedUser(store, "b", ptr(25), nil)

	matched, err := svc.Record(ctx, a, b, domain.SwipeLike)
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = svc.Record(ctx, b, a, domain.SwipeLike)
	require.NoError(t, err)
	assert.True(t, matched)

	matchesA, err := store.MatchRepo().ListByUser(ctx, a)
	require.NoError(t, err)
	require.Len(t, matchesA, 1)
	assert.Equal(t, b, matchesA[0].OtherUserID)

	// Re-liking an already matched user must not mint a second match.
	matched, err = svc.Record(ctx, a, b, domain.SwipeSuperlike)
	require.NoError(t, err)
	assert.True(t, matched)

	matchesA, err = store.MatchRepo().ListByUser(ctx, a)
	require.NoError(t, err)
	assert.Len(t, matchesA, 1)
}

func TestRecordDislikeNeverMatches(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, _ := newSwipeService(t, store)

	a := seedUser(store, "a", ptr(28), nil)
	b := seedUser(store, "b", ptr(25), nil)

	_, err := svc.Record(ctx, b, a, domain.SwipeLike)
	require.NoError(t, err)

	matched, err := svc.Record(ctx, a, b, domain.SwipeDislike)
	require.NoError(t, err)
	assert.False(t, matched)

	matchesA, err := store.MatchRepo().ListByUser(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, matchesA)
}

func TestRecordLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, _ := newSwipeService(t, store)

	a := seedUser(store, "a", ptr(28), nil)
	b := seedUser(store, "b", ptr(25), nil)

	_, err := svc.Record(ctx, a, b, domain.SwipeLike)
	require.NoError(t, err)
	_, err = svc.Record(ctx, a, b, domain.SwipeDislike)
	require.NoError(t, err)

	swipe, err := store.SwipeRepo().Get(ctx, a, b)
	require.NoError(t, err)
	require.NotNil(t, swipe)
	assert.Equal(t, domain.SwipeDislike, swipe.Action)
	assert.True(t, swipe.UpdatedAt.After(swipe.CreatedAt))

	// Target likes back, but a's standing decision is now negative.
	matched, err := svc.Record(ctx, b, a, domain.SwipeLike)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestSuperlikeCountsAsPositive(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, _ := newSwipeService(t, store)

	a := seedUser(store, "a", ptr(28), nil)
	b := seedUser(store, "b", ptr(25), nil)

	_, err := svc.Record(ctx, a, b, domain.SwipeSuperlike)
	require.NoError(t, err)

	matched, err := svc.Record(ctx, b, a, domain.SwipeLike)
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestLikedYouCountFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, mr := newSwipeService(t, store)

	a := seedUser(store, "a", ptr(28), nil)
	b := seedUser(store, "b", ptr(25), nil)
	c := seedUser(store, "c", ptr(26), nil)

	_, err := svc.Record(ctx, b, a, domain.SwipeLike)
	require.NoError(t, err)
	_, err = svc.Record(ctx, c, a, domain.SwipeSuperlike)
	require.NoError(t, err)

	// Nothing cached yet (increments skip a missing key), so the first
	// read counts from the store and seeds the cache.
	require.False(t, mr.Exists("likes:count:"+itoa(a)))

	count, err := svc.LikedYouCount(ctx, a)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.True(t, mr.Exists("likes:count:"+itoa(a)))

	// A withdrawn like decrements the now-live counter.
	_, err = svc.Record(ctx, c, a, domain.SwipeDislike)
	require.NoError(t, err)

	count, err = svc.LikedYouCount(ctx, a)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestLikedYouCountServedFromCache(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, mr := newSwipeService(t, store)

	a := seedUser(store, "a", ptr(28), nil)

	require.NoError(t, mr.Set("likes:count:"+itoa(a), "9"))

	// The store has zero positive swipes; a cache hit short-circuits it.
	count, err := svc.LikedYouCount(ctx, a)
	require.NoError(t, err)
	assert.EqualValues(t, 9, count)
}

func TestLikedYouCountSurvivesCacheOutage(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc, mr := newSwipeService(t, store)

	a := seedUser(store, "a", ptr(28), nil)
	b := seedUser(store, "b", ptr(25), nil)

	_, err := svc.Record(ctx, b, a, domain.SwipeLike)
	require.NoError(t, err)

	mr.SetError("redis is down")
	defer mr.SetError("")

	count, err := svc.LikedYouCount(ctx, a)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
