package routes

import (
	"net/http"
	"time"

	"contact-keeper/internal/config"
	"contact-keeper/internal/delivery/http/handler"
	"contact-keeper/internal/infrastructure/database/postgres"
	"contact-keeper/internal/logger"
	"contact-keeper/internal/mailer"
	"contact-keeper/internal/middleware"
	"contact-keeper/internal/storage"
	"contact-keeper/internal/usecase/auth"
	"contact-keeper/internal/usecase/contact"
	"contact-keeper/pkg/token"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, mail mailer.Mailer, avatars storage.ObjectStorage) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/api/healthchecker", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Service is running"})
	})
	router.GET("/api/dbhealthchecker", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Database is configured correctly",
		})
	})

	tokens := token.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessExpiryMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshExpiryMinutes)*time.Minute,
	)

	userRepository := postgres.NewUserRepository(db)
	authService := auth.NewService(userRepository, tokens, mail, avatars)
	authHandler := handler.NewAuthHandler(authService)

	contactRepository := postgres.NewContactRepository(db)
	contactService := contact.NewService(contactRepository)
	contactHandler := handler.NewContactHandler(contactService)

	// The fixed-window limiter is a single shared instance for the process
	// lifetime, passed by reference into the middleware.
	authLimiter := middleware.NewFixedWindowLimiter(
		cfg.RateLimit.AuthMaxRequests,
		time.Duration(cfg.RateLimit.AuthWindowSeconds)*time.Second,
	)
	requireAuth := middleware.AuthMiddleware(tokens, userRepository)

	authGroup := router.Group("/auth")
	authGroup.Use(middleware.FixedWindowMiddleware(authLimiter))
	{
		authHandler.RegisterRoutes(authGroup)

		protected := authGroup.Group("")
		protected.Use(requireAuth)
		{
			authHandler.RegisterProtectedRoutes(protected)
			if avatars != nil {
				authHandler.RegisterAvatarRoute(protected)
			}
		}
	}

	contactGroup := router.Group("/contact")
	contactGroup.Use(requireAuth)
	{
		contactHandler.RegisterRoutes(contactGroup)
	}

	logger.Info("All routes initialized")
	return router
}
