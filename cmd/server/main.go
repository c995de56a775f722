package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"loanconv-backoffice/internal/adapters/http/middleware"
	"loanconv-backoffice/internal/adapters/http/routes"
	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/config"
	"loanconv-backoffice/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title LoanConv Back Office API
// @version 1.0
// @description Loan product catalog, application workflow and disbursement ledger API

// @contact.name API Support
// @contact.email support@loanconv.local

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

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

	// Seed permissions, roles, admin account and configuration defaults
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Purge dead token-revocation records hourly
	authService := services.NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewInvalidatedTokenRepository(db),
		cfg,
	)
	cleanupService := services.NewTokenCleanupService(authService)
	if err := cleanupService.Start(); err != nil {
		log.Fatalf("❌ Failed to start token cleanup: %v", err)
	}
	defer cleanupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "LoanConv Back Office API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
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
