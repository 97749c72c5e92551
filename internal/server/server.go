// Package server contains the HTTP handlers for the content hub API.
package server

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"aihub/internal/cache"
	"aihub/internal/config"
	"aihub/internal/database"
	"aihub/internal/middleware"
	"aihub/internal/models"
	"aihub/internal/observability"
	"aihub/internal/repository"
	"aihub/internal/service"
	"aihub/internal/storage"

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
	store          storage.Store
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	contentService *service.ContentService
	commentService *service.CommentService
	likeService    *service.LikeService
	authService    *service.AuthService
	uploadService  *service.UploadService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	store, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage setup failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), store)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; list caching and rate limiting are then skipped.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.Store) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if store == nil {
		return nil, fmt.Errorf("storage is required")
	}

	lists := cache.NewListCache(redisClient, time.Duration(cfg.ListCacheTTLSeconds)*time.Second)

	content := service.NewContentService(
		repository.NewNewsRepository(db),
		repository.NewVideoRepository(db),
		repository.NewImageRepository(db),
		repository.NewCommunityPostRepository(db),
		lists,
	)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		store:          store,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		contentService: content,
		commentService: service.NewCommentService(repository.NewCommentRepository(db), lists),
		likeService:    service.NewLikeService(repository.NewLikeRepository(db), lists),
		authService:    service.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret),
		uploadService:  service.NewUploadService(content, store, uploadLimit(cfg)),
	}, nil
}

func uploadLimit(cfg *config.Config) int64 {
	return int64(cfg.UploadMaxSizeMB) * 1024 * 1024
}

// NewApp builds the Fiber application with the server's error handler and
// a body limit large enough for uploads plus form fields.
func (s *Server) NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   "AI Hub API",
		BodyLimit: int(uploadLimit(s.config)) + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, fe)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "path", c.Path(), "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Bearer tokens are optional; a valid one identifies the viewer.
	app.Use(middleware.OptionalAuth)
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New(helmet.Config{
		// Uploaded media is embedded by the front-end from another origin.
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        300,
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

	if local, ok := s.store.(*storage.LocalStore); ok {
		app.Static("/uploads", filepath.Join(local.Root(), "uploads"), fiber.Static{
			MaxAge: 3600,
		})
	}

	api := app.Group("/api")
	api.Get("/", s.HealthCheck)

	login := middleware.RateLimit(s.redis, 10, 5*time.Minute, "login")
	api.Post("/auth/login", login, s.Login)
	api.Post("/login", login, s.Login)

	news := api.Group("/news")
	news.Get("/", s.GetNews)
	news.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_news"), s.CreateNews)

	videos := api.Group("/videos")
	videos.Get("/", s.GetVideos)
	videos.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_video"), s.CreateVideo)

	images := api.Group("/images")
	images.Get("/", s.GetImages)
	images.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_image"), s.CreateImage)

	community := api.Group("/community")
	community.Get("/", s.GetPosts)
	community.Post("/", middleware.RateLimit(s.redis, 5, time.Minute, "create_post"), s.CreatePost)

	comments := api.Group("/comments")
	comments.Get("/", s.GetComments)
	comments.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateComment)

	api.Post("/likes", middleware.RateLimit(s.redis, 60, time.Minute, "toggle_like"), s.ToggleLike)

	api.Post("/upload", middleware.RateLimit(s.redis, 5, time.Minute, "upload"), s.Upload)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports unhealthy when the database is unreachable. Redis
// only degrades caching, so its absence is reported without failing.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus != "healthy" {
		overallStatus = "degraded"
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

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app := s.NewApp()
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

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
