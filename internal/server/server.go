// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"quill/internal/auth"
	"quill/internal/bootstrap"
	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
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
	issuer         *auth.Issuer
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	userService    *service.UserService
	postService    *service.PostService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient), nil
}

// The Prometheus middleware registers its collectors in the default registry,
// so it must be created exactly once per process even when several Server
// instances exist (as in tests).
var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

func prometheusMiddleware() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New("quill-api")
	})
	return promMW
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prometheusMiddleware(),
		issuer:         auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		userRepo:       userRepo,
		postRepo:       postRepo,
		userService:    service.NewUserService(userRepo),
		postService:    service.NewPostService(postRepo),
	}

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Account routes. GET /register lists registered accounts (safe fields
	// only) alongside the registration endpoint.
	app.Post("/register", s.Register)
	app.Get("/register", s.GetUsers)
	app.Post("/login", s.Login)
	app.Post("/logout", s.AuthRequired(), s.Logout)

	// Post routes: reads are public, mutations require an admin token.
	posts := app.Group("/post")
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.AuthRequired(), s.CreatePost)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.AuthRequired(), s.UpdatePost)
	posts.Delete("/:id", s.AuthRequired(), s.DeletePost)
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

	// Redis is optional: without it only logout revocation degrades.
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

// AuthRequired returns middleware that verifies the bearer token and stores
// the resulting identity in locals. Revoked tokens are rejected when Redis
// is available.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("Authorization required"))
		}

		claims, err := s.issuer.Verify(tokenString)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		if cache.IsTokenRevoked(c.Context(), s.redis, claims.JTI) {
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("Token has been revoked"))
		}

		c.Locals("identity", claims.Identity)
		c.Locals("claims", claims)
		c.Locals("userID", claims.UserID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, claims.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalIdentity extracts an identity from the Authorization header if a
// valid token is present, otherwise returns Anonymous. Used by public routes
// whose response depends on who is asking.
func (s *Server) optionalIdentity(c *fiber.Ctx) auth.Identity {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return auth.Anonymous
	}
	claims, err := s.issuer.Verify(tokenString)
	if err != nil {
		return auth.Anonymous
	}
	if cache.IsTokenRevoked(c.Context(), s.redis, claims.JTI) {
		return auth.Anonymous
	}
	return claims.Identity
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.ErrorContext(ctx, "error closing sql DB", "error", cerr)
		}
	}
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.ErrorContext(ctx, "error closing redis", "error", rerr)
		}
	}
	return nil
}
