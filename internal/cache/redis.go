// Package cache holds the optional Redis connection and the JSON cache-aside
// helpers built on it.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"selam/internal/middleware"
	"selam/internal/observability"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// errorCounter feeds RedisErrorRate. A miss (redis.Nil) is not an error.
type errorCounter struct{}

func (errorCounter) DialHook(next redis.DialHook) redis.DialHook { return next }

func (errorCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		countError(cmd.Name(), err)
		return err
	}
}

func (errorCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		countError("pipeline", err)
		return err
	}
}

func countError(op string, err error) {
	if err != nil && !errors.Is(err, redis.Nil) {
		observability.RedisErrorRate.WithLabelValues(op).Inc()
	}
}

// options accepts either host:port or a redis:// / rediss:// URL.
func options(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{Addr: addr}, nil
}

// Connect returns a client for addr, or nil when addr is empty, malformed or
// not answering. Callers treat nil as "no cache".
func Connect(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	opts, err := options(addr)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "bad redis address, cache disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opts)
	client.AddHook(errorCounter{})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "redis not answering, cache disabled",
			"addr", opts.Addr, "error", err)
		_ = client.Close()
		return nil
	}
	middleware.Logger.InfoContext(ctx, "redis connected", "addr", opts.Addr)
	return client
}
