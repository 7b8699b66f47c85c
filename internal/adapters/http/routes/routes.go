package routes

import (
	"tradelink-backend/internal/adapters/http/handlers"
	"tradelink-backend/internal/adapters/http/middleware"
	"tradelink-backend/internal/adapters/persistence/repositories"
	"tradelink-backend/internal/config"
	"tradelink-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto the app
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	// Repositories
	applicationRepo := repositories.NewApplicationRepository(db)

	// Services
	notifier := services.NewNotificationService(cfg.Webhook.URL, logger)
	mailer := services.NewMailerService(cfg.SMTP, logger)
	intakeService := services.NewIntakeService(applicationRepo, notifier, mailer,
		cfg.Intake.MaxPerWindow, cfg.Intake.WindowHours, logger)
	reviewService := services.NewReviewService(applicationRepo, mailer, logger)
	authService := services.NewAuthService(cfg, logger)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	intakeHandler := handlers.NewIntakeHandler(intakeService)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	adminHandler := handlers.NewAdminHandler(reviewService)

	// Root and health endpoints
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")

	// Public intake endpoint
	api.Post("/applications", middleware.IntakeRateLimiter(), intakeHandler.Submit)

	// Admin auth endpoints
	auth := api.Group("/admin/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/setup", authHandler.Setup)

	// Admin review endpoints (session required)
	admin := api.Group("/admin", middleware.AdminAuth(cfg))
	admin.Get("/applications", adminHandler.List)
	admin.Post("/applications/bulk-status", adminHandler.BulkUpdateStatus)
	admin.Get("/applications/:id", adminHandler.GetByID)
	admin.Patch("/applications/:id", adminHandler.Update)
	admin.Delete("/applications/:id", adminHandler.Delete)
	admin.Post("/email", adminHandler.SendEmail)
}
