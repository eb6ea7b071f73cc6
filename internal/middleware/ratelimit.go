package middleware

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"selam/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what a route does when the counter store is unreachable.
type FailPolicy int

const (
	FailOpen FailPolicy = iota
	FailClosed
)

var errNoLimiterStore = errors.New("rate limit store not configured")

// Window is a fixed-window counter after one hit.
type Window struct {
	Limit     int
	Count     int64
	Remaining int
	ResetIn   time.Duration
}

// Allowed reports whether the hit fit within the limit.
func (w Window) Allowed() bool { return w.Count <= int64(w.Limit) }

// limiterExempt reports whether the active profile skips redis counting.
// Development and test runs usually have no redis.
func limiterExempt() bool {
	switch os.Getenv("APP_ENV") {
	case "", "development", "test":
		return true
	}
	return false
}

// Hit counts one request by id against resource. INCR and PTTL travel in one
// pipeline; the expiry is only set on a counter that has none, so the window
// is fixed from the first hit.
func Hit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (Window, error) {
	w := Window{Limit: limit, Remaining: limit}
	if limiterExempt() {
		return w, nil
	}
	if rdb == nil {
		return w, errNoLimiterStore
	}

	key := "rl:" + resource + ":" + id
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		ttl = p.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		observability.RedisErrorRate.WithLabelValues("ratelimit").Inc()
		return w, err
	}

	w.Count = incr.Val()
	w.ResetIn = ttl.Val()
	if w.ResetIn < 0 {
		if err := rdb.PExpire(ctx, key, window).Err(); err != nil {
			observability.RedisErrorRate.WithLabelValues("ratelimit").Inc()
			return w, err
		}
		w.ResetIn = window
	}
	w.Remaining = max(limit-int(w.Count), 0)
	return w, nil
}

// RateLimit limits a route to limit requests per window per client IP and
// lets requests through when redis is down.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy is RateLimit with an explicit store failure policy.
// name keys the counter; the request path is used when it is omitted.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		w, err := Hit(c.UserContext(), rdb, resource, "ip:"+c.IP(), limit, window)
		if err != nil {
			if policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable",
					"resource", resource, "error", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(w.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(w.Remaining))
		if !w.Allowed() {
			secs := int((w.ResetIn + time.Second - 1) / time.Second)
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			Logger.InfoContext(c.UserContext(), "rate limited",
				"resource", resource, "count", w.Count)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
