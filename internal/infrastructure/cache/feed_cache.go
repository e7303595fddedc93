// Package cache keeps the public blog feed in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-blog/internal/application"
)

const feedKey = "blogs:feed:public"

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// FeedCache stores the rendered public feed as JSON with a TTL. Blog
// mutations drop it.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl}
}

func (c *FeedCache) Get(ctx context.Context) ([]application.BlogView, bool, error) {
	var feed []application.BlogView
	ok, err := getJSON(ctx, c.rdb, feedKey, &feed)
	return feed, ok, err
}

func (c *FeedCache) Set(ctx context.Context, feed []application.BlogView) error {
	return setJSON(ctx, c.rdb, feedKey, feed, c.ttl)
}

func (c *FeedCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, feedKey).Err()
}

func setJSON(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

func getJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
	res, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

var _ application.FeedCache = (*FeedCache)(nil)
