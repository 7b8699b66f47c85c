package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"tradelink-backend/internal/adapters/http/middleware"
	"tradelink-backend/internal/adapters/http/routes"
	"tradelink-backend/internal/adapters/persistence/models"
	"tradelink-backend/internal/adapters/persistence/repositories"
	"tradelink-backend/internal/config"
	"tradelink-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title TradeLink API
// @version 1.0
// @description Trade application intake and review API
// @contact.name API Support
// @contact.email support@tradelink.dev

// @host api.tradelink.dev
// @BasePath /api/v1
// @schemes https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Structured logger for services
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Start Cron Service for the daily review digest (08:30 daily)
	applicationRepo := repositories.NewApplicationRepository(db)
	notifier := services.NewNotificationService(cfg.Webhook.URL, logger)
	cronService := services.NewCronService(applicationRepo, notifier, logger)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "TradeLink API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, logger)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// newLogger builds the service logger for the current mode
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProd() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
