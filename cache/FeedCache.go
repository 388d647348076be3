package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/M-Saad-saif/saadiXsocial-CodeAlpha/models"
)

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// FeedCache keeps assembled feeds in Redis keyed per user. Entries expire
// after a short TTL and are dropped eagerly by writes that change feed
// contents, so a miss is always safe and a hit is at most TTL stale.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl}
}

func feedKey(userID primitive.ObjectID) string {
	return "feed:" + userID.Hex()
}

// Get returns the cached feed for a user, or ok=false on miss or any
// Redis/decode failure.
func (c *FeedCache) Get(ctx context.Context, userID primitive.ObjectID) ([]models.FeedPost, bool) {
	raw, err := c.rdb.Get(ctx, feedKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var feed []models.FeedPost
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, false
	}
	return feed, true
}

// Set stores the assembled feed. Failures are ignored; the cache is an
// optimization, not a source of truth.
func (c *FeedCache) Set(ctx context.Context, userID primitive.ObjectID, feed []models.FeedPost) {
	raw, err := json.Marshal(feed)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, feedKey(userID), raw, c.ttl)
}

// Invalidate drops the cached feeds of the given users.
func (c *FeedCache) Invalidate(ctx context.Context, userIDs ...primitive.ObjectID) {
	if len(userIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, feedKey(id))
	}
	c.rdb.Del(ctx, keys...)
}
