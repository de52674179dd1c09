package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(mr.Addr()), mr
}

func TestGetLikeCountMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, ok, err := c.GetLikeCount(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetThenGetLikeCount(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.SetLikeCount(ctx, 1, 5))

	count, ok, err := c.GetLikeCount(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 5, count)

	ttl := mr.TTL(c.KeyForLikeCount(1))
	assert.Equal(t, time.Hour, ttl)
}

func TestIncrLikeCount(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	// Missing key is left alone; a blind increment would cache a value
	// unrelated to the database.
	require.NoError(t, c.IncrLikeCount(ctx, 1, 1))
	assert.False(t, mr.Exists(c.KeyForLikeCount(1)))

	require.NoError(t, c.SetLikeCount(ctx, 1, 5))
	require.NoError(t, c.IncrLikeCount(ctx, 1, 1))
	require.NoError(t, c.IncrLikeCount(ctx, 1, -2))

	count, ok, err := c.GetLikeCount(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 4, count)
}

func TestGetLikeCountRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.SetLikeCount(ctx, 1, 5))
	mr.FastForward(30 * time.Minute)

	_, ok, err := c.GetLikeCount(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Hour, mr.TTL(c.KeyForLikeCount(1)))
}

func TestGetLikeCountExpired(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.SetLikeCount(ctx, 1, 5))
	mr.FastForward(2 * time.Hour)

	_, ok, err := c.GetLikeCount(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
