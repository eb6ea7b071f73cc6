// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"selam/internal/config"
	"selam/internal/middleware"
	"selam/internal/models"
	"selam/internal/repository"
	"selam/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

// Server holds the dependencies shared by every handler.
type Server struct {
	config         *config.Config
	store          repository.Storage
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	app            *fiber.App

	users       *service.UserService
	posts       *service.PostService
	reactions   *service.ReactionService
	comments    *service.CommentService
	communities *service.CommunityService
}

// NewServer builds a Server over an already selected storage backend.
// redisClient may be nil; rate limiting then fails open and readiness
// reports redis as unavailable.
func NewServer(cfg *config.Config, store repository.Storage, redisClient *redis.Client) *Server {
	return &Server{
		config:         cfg,
		store:          store,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("selam-api"),
		users:          service.NewUserService(store),
		posts:          service.NewPostService(store, cfg.PostsDefaultLimit),
		reactions:      service.NewReactionService(store),
		comments:       service.NewCommentService(store),
		communities:    service.NewCommunityService(store),
	}
}

// NewApp returns a fiber app with the middleware chain and every route mounted.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Selam API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, fe)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Tracing runs before the context middleware so the trace id reaches logs.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS must run before the limiter so short-circuited responses still
	// carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Selam API Metrics",
	}))

	api := app.Group("/api")

	auth := api.Group("/auth")
	// Account creation refuses traffic it cannot count.
	auth.Post("/signup", middleware.RateLimitWithPolicy(s.redis, 5, 10*time.Minute, middleware.FailClosed, "signup"), s.Signup)
	auth.Post("/signin", middleware.RateLimit(s.redis, 20, 10*time.Minute, "signin"), s.Signin)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", middleware.RateLimit(s.redis, 30, time.Minute, "create_post"), s.CreatePost)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)

	dua := api.Group("/dua-requests")
	dua.Get("/", s.GetDuaRequests)
	dua.Post("/", middleware.RateLimit(s.redis, 30, time.Minute, "create_dua_request"), s.CreateDuaRequest)

	likes := api.Group("/likes")
	likes.Post("/", s.ToggleLike)
	likes.Get("/:userId", s.GetUserLike)

	bookmarks := api.Group("/bookmarks")
	bookmarks.Post("/", s.ToggleBookmark)
	bookmarks.Get("/:userId", s.GetUserBookmark)

	comments := api.Group("/comments")
	comments.Get("/post/:id", s.GetPostComments)
	comments.Get("/dua/:id", s.GetDuaRequestComments)
	comments.Post("/", middleware.RateLimit(s.redis, 60, time.Minute, "create_comment"), s.CreateComment)

	communities := api.Group("/communities")
	communities.Get("/", s.GetCommunities)
	communities.Post("/", s.CreateCommunity)
	communities.Post("/:id/join", s.JoinCommunity)

	events := api.Group("/events")
	events.Get("/", s.GetEvents)
	events.Post("/", s.CreateEvent)
	events.Post("/:id/attend", s.AttendEvent)

	users := api.Group("/users")
	users.Get("/:id", s.GetUser)
	users.Put("/:id", s.UpdateUser)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck pings the storage backend and, when configured, redis.
// Redis is optional here: without it the cache and rate limiter are off but
// the API still serves.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	storageStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		middleware.Logger.WarnContext(ctx, "storage ping failed", "error", err)
		storageStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			middleware.Logger.WarnContext(ctx, "redis ping failed", "error", err)
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if storageStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"storage": storageStatus,
			"redis":   redisStatus,
		},
		"time": time.Now(),
	})
}

// Start listens on the configured port until Shutdown is called.
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("server starting", "port", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown stops accepting requests and waits for in-flight ones. Closing the
// storage and redis connections belongs to whoever opened them.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app == nil {
		return nil
	}
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		middleware.Logger.ErrorContext(ctx, "error shutting down HTTP server", "error", err)
		return err
	}
	middleware.Logger.Info("server shutdown complete")
	return nil
}
