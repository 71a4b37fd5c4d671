// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"kindred/internal/cache"
	"kindred/internal/config"
	"kindred/internal/database"
	"kindred/internal/email"
	"kindred/internal/featureflags"
	"kindred/internal/middleware"
	"kindred/internal/models"
	"kindred/internal/payments"
	"kindred/internal/repository"
	"kindred/internal/service"
	"kindred/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo        repository.UserRepository
	interactionRepo repository.InteractionRepository
	messageRepo     repository.MessageRepository
	profileRepo     repository.ProfileRepository
	photoRepo       repository.PhotoRepository

	featureFlags *featureflags.Manager

	authService         *service.AuthService
	matchService        *service.MatchService
	messageService      *service.MessageService
	profileService      *service.ProfileService
	photoService        *service.PhotoService
	subscriptionService *service.SubscriptionService
	adminService        *service.AdminService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var mailer email.Mailer = email.LogMailer{}
	if cfg.ResendAPIKey != "" {
		mailer = email.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppURL)
	}

	var store storage.PhotoStore
	if cfg.S3Bucket != "" {
		store, err = storage.NewS3PhotoStore(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL)
		if err != nil {
			return nil, fmt.Errorf("photo storage init failed: %w", err)
		}
	}

	gateway := payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	return NewServerWithDeps(cfg, db, redisClient, mailer, store, gateway)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and the
// external integrations.
func NewServerWithDeps(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	mailer email.Mailer,
	store storage.PhotoStore,
	gateway payments.Gateway,
) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	prom := middleware.InitMetrics("kindred-api")

	server := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  prom,
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
		messageRepo:     messageRepo,
		profileRepo:     profileRepo,
		photoRepo:       photoRepo,
		featureFlags:    featureflags.NewManager(cfg.FeatureFlags),
	}

	server.authService = service.NewAuthService(userRepo, tokenRepo, mailer)
	server.matchService = service.NewMatchService(interactionRepo, userRepo)
	server.messageService = service.NewMessageService(messageRepo, userRepo, server.matchService)
	server.profileService = service.NewProfileService(profileRepo, interactionRepo)
	if store != nil {
		server.photoService = service.NewPhotoService(photoRepo, store)
	}
	server.subscriptionService = service.NewSubscriptionService(
		subscriptionRepo, userRepo, gateway, cfg.StripePremiumPrice, cfg.AppURL)
	server.adminService = service.NewAdminService(statsRepo, userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry tracing spans per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Kindred Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Post("/verify-email", s.VerifyEmail)
	auth.Post("/forgot-password", s.ForgotPassword)
	auth.Post("/reset-password", s.ResetPassword)

	// Stripe webhook must stay public; it authenticates via signature.
	api.Post("/subscription/webhook", s.SubscriptionWebhook)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	protected.Post("/auth/resend-verification", s.ResendVerification)
	protected.Get("/feature-flags", s.GetFeatureFlags)

	// Profile routes
	profile := protected.Group("/profile")
	profile.Post("/", s.CreateProfile)
	profile.Get("/", s.GetMyProfile)
	profile.Put("/", s.UpdateProfile)

	// Discovery feed
	protected.Get("/discover", s.Discover)

	// Photo routes
	photos := protected.Group("/photos")
	photos.Post("/upload-url", s.RequestPhotoUpload)
	photos.Post("/", s.AddPhoto)
	photos.Get("/", s.GetMyPhotos)
	photos.Delete("/:id", s.DeletePhoto)

	// Match routes
	matches := protected.Group("/matches")
	matches.Post("/", s.SubmitDecision)
	matches.Get("/", s.GetMatches)

	// Message routes; specific routes before the generic /:userId pair
	messages := protected.Group("/messages")
	messages.Get("/conversations", s.GetConversations)
	messages.Get("/unread", s.GetUnreadCount)
	messages.Post("/:userId", s.SendMessage)
	messages.Get("/:userId", s.GetMessages)

	// Subscription routes
	subscription := protected.Group("/subscription")
	subscription.Get("/status", s.SubscriptionStatus)
	subscription.Post("/checkout", s.SubscriptionCheckout)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/stats", s.AdminStats)
	admin.Get("/users", s.AdminListUsers)
	admin.Post("/users/:id/ban", s.AdminBanUser)
	admin.Post("/users/:id/unban", s.AdminUnbanUser)
	admin.Post("/users/:id/role", s.AdminSetRole)
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

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The cache is optional; readiness degrades but does not fail on it.
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

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !user.IsAdmin() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Kindred API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
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
