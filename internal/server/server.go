// Package server contains the HTTP handlers for the application's routes.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	groupRepo      repository.GroupRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	followRepo     repository.FollowRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	srv := NewServerWithDeps(cfg, db, redisClient)
	srv.promMiddleware = middleware.InitMetrics("quill-api")
	return srv, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
// The Prometheus collector is only registered by NewServer; registering it per
// test instance would collide in the default registry.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		userRepo:    repository.NewUserRepository(db),
		groupRepo:   repository.NewGroupRepository(db),
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		followRepo:  repository.NewFollowRepository(db),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
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
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded post images
	app.Static("/media", s.config.MediaRoot)

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public listings
	app.Get("/", s.Index)
	app.Get("/group/:slug", s.GroupPosts)

	// Post creation (login required)
	app.Get("/create", s.RequireLogin(), s.NewPost)
	app.Post("/create", s.RequireLogin(), middleware.RateLimit(
		s.redis, 5, time.Minute, "create_post"), s.CreatePost)

	// Feed of followed authors
	app.Get("/follow", s.RequireLogin(), s.FollowIndex)

	// Define specific /profile/:username/:action routes BEFORE the generic
	// profile route
	app.Get("/profile/:username/follow", s.RequireLogin(), s.ProfileFollow)
	app.Get("/profile/:username/unfollow", s.RequireLogin(), s.ProfileUnfollow)
	app.Get("/profile/:username", s.Profile)

	// Post detail, edit and comments; specific routes before the generic /:id
	app.Get("/posts/:id/edit", s.RequireLogin(), s.EditPostForm)
	app.Post("/posts/:id/edit", s.RequireLogin(), s.EditPost)
	app.Post("/posts/:id/comment", s.RequireLogin(), middleware.RateLimit(
		s.redis, 15, time.Minute, "add_comment"), s.AddComment)
	app.Get("/posts/:id", s.PostDetail)

	// Unknown routes get the standard not-found response
	app.Use(s.NotFound)
}

// NotFound handles requests to unknown routes.
func (s *Server) NotFound(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusNotFound,
		models.NewNotFoundError("Page", c.Path()))
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// The app degrades gracefully without Redis (cache-aside falls through to
	// the database), so Redis does not gate readiness.
	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server-held resources (database and Redis connections).
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
