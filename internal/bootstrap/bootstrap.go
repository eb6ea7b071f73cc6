// Package bootstrap selects the storage backend once at startup and wires the
// runtime dependencies the server and the seeder share.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"selam/internal/cache"
	"selam/internal/config"
	"selam/internal/database"
	"selam/internal/middleware"
	"selam/internal/models"
	"selam/internal/repository"
	"selam/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo fills an empty store with gofakeit demo data.
	SeedDemo bool
}

// Runtime is the set of long-lived dependencies built at startup.
type Runtime struct {
	// Store is the selected backend wrapped with instrumentation and, when
	// redis is reachable, the read cache.
	Store repository.Storage
	// Backend is the resolved backend name; never "auto".
	Backend string
	DB      *gorm.DB
	Redis   *redis.Client
}

// constructor hooks, replaced in tests.
var (
	connectPostgres = database.Connect
	openSQLite      = database.OpenSQLite
	connectRedis    = cache.Connect
)

// InitRuntime resolves cfg.StorageBackend, opens the backend and redis, and
// optionally seeds demo data.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	backend, db, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var store repository.Storage
	if db != nil {
		store = repository.NewGormStorage(db)
	} else {
		store = repository.NewMemoryStorage()
	}
	store = repository.Instrument(store, backend)

	rdb := connectRedis(ctx, cfg.RedisURL)
	store = repository.WithCache(store, cache.New(rdb))

	rt := &Runtime{Store: store, Backend: backend, DB: db, Redis: rdb}
	middleware.Logger.InfoContext(ctx, "storage backend selected",
		"requested", cfg.StorageBackend,
		"backend", backend,
		"cache", rdb != nil,
	)

	if opts.SeedDemo {
		if err := seedIfEmpty(ctx, store); err != nil {
			_ = rt.Close()
			return nil, err
		}
	}
	return rt, nil
}

// openBackend returns the resolved backend name and, for durable backends,
// the open connection.
func openBackend(ctx context.Context, cfg *config.Config) (string, *gorm.DB, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := connectPostgres(ctx, cfg)
		if err != nil {
			return "", nil, fmt.Errorf("database connection failed: %w", err)
		}
		return repository.BackendPostgres, db, nil

	case config.BackendSQLite:
		db, err := openSQLite(cfg.SQLitePath)
		if err != nil {
			return "", nil, fmt.Errorf("sqlite open failed: %w", err)
		}
		return repository.BackendSQLite, db, nil

	case config.BackendMemory:
		return repository.BackendMemory, nil, nil

	case config.BackendAuto, "":
		if !cfg.HasDatabase() {
			middleware.Logger.InfoContext(ctx, "no database configured, using in-memory storage")
			return repository.BackendMemory, nil, nil
		}
		db, err := connectPostgres(ctx, cfg)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "database unreachable, falling back to in-memory storage",
				"error", err)
			return repository.BackendMemory, nil, nil
		}
		return repository.BackendPostgres, db, nil
	}
	return "", nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func seedIfEmpty(ctx context.Context, store repository.Storage) error {
	posts, err := store.GetPosts(ctx, models.PostFilter{Limit: 1})
	if err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	}
	if len(posts) > 0 {
		middleware.Logger.InfoContext(ctx, "store already has data, skipping demo seed")
		return nil
	}
	if _, err := seed.NewSeeder(store, 0).Run(ctx, seed.DefaultOptions); err != nil {
		return fmt.Errorf("demo seed failed: %w", err)
	}
	return nil
}

// Close releases the database pool and the redis client.
func (r *Runtime) Close() error {
	var errs []error
	if r.DB != nil {
		if err := database.Close(r.DB); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
