// Package middleware provides the fiber middleware and the process-wide
// structured logger shared by every layer.
package middleware

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger is the process-wide structured logger. Records logged with a
// context pick up the request, actor and trace ids stored in it.
var Logger = slog.New(newContextHandler(os.Stdout, os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL")))

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
	TraceIDKey   contextKey = "trace_id"
)

var contextAttrs = []contextKey{RequestIDKey, UserIDKey, TraceIDKey}

// contextHandler copies the contextAttrs found in the record's context onto
// the record.
type contextHandler struct {
	slog.Handler
}

// newContextHandler logs JSON in production and text elsewhere.
func newContextHandler(w io.Writer, env, level string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if env == "production" {
		return &contextHandler{slog.NewJSONHandler(w, opts)}
	}
	return &contextHandler{slog.NewTextHandler(w, opts)}
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, k := range contextAttrs {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			r.AddAttrs(slog.String(string(k), v))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{h.Handler.WithGroup(name)}
}

// WithUserID returns ctx carrying the acting user for log records.
func WithUserID(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, UserIDKey, userID)
}

// SetActor records the acting user on the request so the request log line
// and every log record below the handler carry it.
func SetActor(c *fiber.Ctx, userID string) {
	if userID == "" {
		return
	}
	c.Locals("userID", userID)
	c.SetUserContext(WithUserID(c.UserContext(), userID))
}

// ContextMiddleware copies the request and trace ids set by the requestid
// and tracing middleware into the request context.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		for local, key := range map[string]contextKey{"requestid": RequestIDKey, "traceID": TraceIDKey} {
			if v, ok := c.Locals(local).(string); ok && v != "" {
				ctx = context.WithValue(ctx, key, v)
			}
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger logs one line per request once the handler chain is done.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			"status", c.Response().StatusCode(),
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
			"latency", time.Since(start),
			"user_agent", c.Get(fiber.HeaderUserAgent),
		}
		if err != nil {
			Logger.ErrorContext(c.UserContext(), "request failed", append(attrs, "error", err.Error())...)
			return err
		}
		Logger.InfoContext(c.UserContext(), "request processed", attrs...)
		return nil
	}
}
