package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// likeCountTTL bounds how long a cached liked-you count can drift from
// the database before the next read repopulates it.
const likeCountTTL = time.Hour

// RedisCache fronts the liked-you counters. The database stays the
// source of truth; everything here is best-effort.
type RedisCache struct {
	Client *redis.Client
}

func New(addr string) *RedisCache {
	return &RedisCache{Client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// KeyForLikeCount generates the key for a user's liked-you counter.
func (c *RedisCache) KeyForLikeCount(userID int64) string {
	return fmt.Sprintf("likes:count:%d", userID)
}

// GetLikeCount returns the cached counter. The second return value is
// false on a cache miss. TTL is refreshed on access.
func (c *RedisCache) GetLikeCount(ctx context.Context, userID int64) (int64, bool, error) {
	key := c.KeyForLikeCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	_ = c.Client.Expire(ctx, key, likeCountTTL).Err()
	return n, true, nil
}

// SetLikeCount stores the counter with a fresh TTL.
func (c *RedisCache) SetLikeCount(ctx context.Context, userID, count int64) error {
	return c.Client.Set(ctx, c.KeyForLikeCount(userID), count, likeCountTTL).Err()
}

// IncrLikeCount bumps the counter by delta (+1 on a new like, -1 when a
// like is withdrawn) and refreshes the TTL. A missing key is left
// missing: seeding it here would cache a count unrelated to the
// database, so the next GetLikeCount miss repopulates from the store.
func (c *RedisCache) IncrLikeCount(ctx context.Context, userID int64, delta int64) error {
	key := c.KeyForLikeCount(userID)
	exists, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}
	if err := c.Client.IncrBy(ctx, key, delta).Err(); err != nil {
		return err
	}
	return c.Client.Expire(ctx, key, likeCountTTL).Err()
}
