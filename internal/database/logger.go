package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// queryLogger routes gorm's logging into slog. Only failed and slow
// statements are logged unless the level is raised to Info.
type queryLogger struct {
	log   *slog.Logger
	level logger.LogLevel
	slow  time.Duration
}

func newQueryLogger(l *slog.Logger, slow time.Duration) *queryLogger {
	return &queryLogger{log: l.With("component", "gorm"), level: logger.Warn, slow: slow}
}

func (q *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *q
	cp.level = level
	return &cp
}

func (q *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	q.printf(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (q *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	q.printf(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (q *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	q.printf(ctx, logger.Error, slog.LevelError, msg, args)
}

func (q *queryLogger) printf(ctx context.Context, min logger.LogLevel, lvl slog.Level, msg string, args []any) {
	if q.level >= min {
		q.log.Log(ctx, lvl, fmt.Sprintf(msg, args...))
	}
}

// Trace is called after every statement.
func (q *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if q.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var lvl slog.Level
	var msg string
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && q.level >= logger.Error:
		lvl, msg = slog.LevelError, "query failed"
	case q.slow > 0 && elapsed > q.slow && q.level >= logger.Warn:
		lvl, msg = slog.LevelWarn, "slow query"
	case q.level >= logger.Info:
		lvl, msg = slog.LevelInfo, "query"
	default:
		return
	}

	sql, rows := fc()
	attrs := []any{"sql", sql, "rows", rows, "elapsed", elapsed}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	q.log.Log(ctx, lvl, msg, attrs...)
}
