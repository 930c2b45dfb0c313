// Package server contains the HTTP handlers and route wiring of the forum API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "forum/docs" // swagger docs
	"forum/internal/auth"
	"forum/internal/cache"
	"forum/internal/config"
	"forum/internal/database"
	"forum/internal/featureflags"
	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/repository"
	"forum/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Auth endpoint limits per client IP, applied when auth_rate_limit is on.
const (
	registerLimit  = 5
	registerWindow = 10 * time.Minute
	loginLimit     = 10
	loginWindow    = 5 * time.Minute
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Set
	tokens         *auth.TokenService
	userService    *service.UserService
	groupService   *service.GroupService
	postService    *service.PostService
	commentService *service.CommentService
}

// NewServer wires repositories, services and routes over already-opened
// connections. redisClient may be nil; Redis-backed features are then off.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("forum-api"),
		featureFlags:   featureflags.Parse(cfg.FeatureFlags),
		tokens:         tokens,
	}

	var groupCache *cache.GroupList
	if server.redisEnabled(featureflags.GroupCache) {
		groupCache = cache.NewGroupList(redisClient)
	}

	server.userService = service.NewUserService(userRepo, auth.NewPasswordHasher(cfg.BcryptCost), tokens)
	server.groupService = service.NewGroupService(groupRepo, groupCache)
	server.postService = service.NewPostService(postRepo, groupRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo, groupRepo)

	server.app = server.newApp()
	middleware.Logger.Info("server configured", slog.Any("feature_flags", server.featureFlags.Snapshot()))
	return server, nil
}

// redisEnabled reports whether a Redis-backed feature can run.
func (s *Server) redisEnabled(flag string) bool {
	return s.redis != nil && s.featureFlags.Enabled(flag)
}

// App exposes the Fiber application, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Forum API",
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler converts anything a handler returns into the JSON error body.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Message: fiberErr.Message})
	}
	status := models.StatusOf(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	}
	return models.RespondWithError(c, status, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// Browsers refuse credentialed responses for a wildcard origin.
	origins := s.config.AllowedOrigins
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	session := middleware.Session(s.tokens)

	api := app.Group("/api")
	api.Post("/register", s.authRateLimit("register", registerLimit, registerWindow), s.Register)
	api.Post("/login", s.authRateLimit("login", loginLimit, loginWindow), s.Login)
	api.Get("/profile", session, s.Profile)
	api.Post("/logout", s.Logout)

	groups := app.Group("/community/groups")
	groups.Get("/", s.ListGroups)
	groups.Post("/", session, s.CreateGroup)
	groups.Post("/:groupId/join", session, s.JoinGroup)

	groups.Get("/:groupId/posts", s.ListPosts)
	groups.Post("/:groupId/posts", session, s.CreatePost)
	groups.Put("/:groupId/posts/:postId", session, s.UpdatePost)
	groups.Delete("/:groupId/posts/:postId", session, s.DeletePost)

	groups.Post("/:groupId/posts/:postId/comments", session, s.CreateComment)
	groups.Put("/:groupId/posts/:postId/comments/:commentId", session, s.UpdateComment)
	groups.Delete("/:groupId/posts/:postId/comments/:commentId", session, s.DeleteComment)
}

// authRateLimit throttles an auth endpoint when Redis and the flag allow it.
func (s *Server) authRateLimit(resource string, limit int, window time.Duration) fiber.Handler {
	if !s.redisEnabled(featureflags.AuthRateLimit) {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return middleware.RateLimit(s.redis, limit, window, resource)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck pings the database and, when configured, Redis.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start listens on the configured port until Shutdown.
func (s *Server) Start() error {
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
