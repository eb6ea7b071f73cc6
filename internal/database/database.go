// Package database opens the durable gorm backends (postgres and sqlite) and
// owns their schema.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"selam/internal/config"
	"selam/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         newQueryLogger(middleware.Logger, 200*time.Millisecond),
		TranslateError: true,
	}
}

// Connect opens the postgres database described by cfg, migrates it outside
// production and applies the pool settings.
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Ping(ctx, db); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "postgres connected", "host", cfg.DBHost, "db", cfg.DBName)

	if !cfg.IsProduction() {
		if err := Migrate(db); err != nil {
			closeQuietly(db)
			return nil, err
		}
		middleware.Logger.InfoContext(ctx, "schema migrated")
	}

	if err := configurePool(db, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens the sqlite database at dsn with foreign keys enforced and
// migrates it. SQLite allows a single writer, so the pool holds one connection.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
	}
	if err := Migrate(db); err != nil {
		closeQuietly(db)
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for every persistent model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping checks the underlying connection within a 5s budget.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeQuietly(db *gorm.DB) {
	if err := Close(db); err != nil {
		middleware.Logger.Warn("error closing database", slog.String("error", err.Error()))
	}
}

func configurePool(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMinutes) * time.Minute)
	return nil
}
