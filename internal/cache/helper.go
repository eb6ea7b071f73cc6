package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"selam/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	UserKeyPrefix = "user:%s"
	PostKeyPrefix = "post:%s"
)

const (
	UserTTL = 5 * time.Minute
	PostTTL = 1 * time.Minute
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID string) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// Cache is a JSON cache over Redis. A nil *Cache, or one without a client,
// misses every lookup and drops every write.
type Cache struct {
	client *redis.Client
}

// New wraps client. client may be nil.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled reports whether a Redis client backs the cache.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Client returns the underlying Redis client, possibly nil.
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	ctx, span := observability.StartRedisSpan(ctx, "get")
	s, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		observability.EndSpan(span, nil)
		return false, nil
	}
	observability.EndSpan(span, err)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ctx, span := observability.StartRedisSpan(ctx, "set")
	err = c.client.Set(ctx, key, b, ttl).Err()
	observability.EndSpan(span, err)
	return err
}

// Invalidate removes keys, best-effort.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	ctx, span := observability.StartRedisSpan(ctx, "del")
	err := c.client.Del(ctx, keys...).Err()
	observability.EndSpan(span, err)
}

// Aside tries Redis first. On a miss it calls fetch, which fills dest and
// reports whether there was anything to cache, then stores dest with ttl.
// Cache failures never fail the read.
func (c *Cache) Aside(ctx context.Context, kind, key string, dest any, ttl time.Duration, fetch func() (bool, error)) (bool, error) {
	found, err := c.GetJSON(ctx, key, dest)
	if err == nil && found {
		observability.CacheLookups.WithLabelValues(kind, "hit").Inc()
		return true, nil
	}
	observability.CacheLookups.WithLabelValues(kind, "miss").Inc()

	ok, err := fetch()
	if err != nil || !ok {
		return ok, err
	}

	_ = c.SetJSON(ctx, key, dest, ttl)
	return true, nil
}
