package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"touragency/internal/adapters/http/middleware"
	"touragency/internal/adapters/http/routes"
	"touragency/internal/adapters/persistence/models"
	"touragency/internal/adapters/persistence/repositories"
	"touragency/internal/adapters/registry"
	"touragency/internal/config"
	"touragency/internal/core/services"
	"touragency/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"

	_ "touragency/docs" // Swagger docs
)

// @title Tourist Agency API
// @version 1.0
// @description Tour booking backend with JWT authentication and refresh-token rotation.

// @contact.name API Support
// @contact.email support@touragency.example.com

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Token signing configuration is validated before anything listens
	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	if err != nil {
		log.Fatalf("Failed to configure token issuer: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Seed development data
	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("Warning: failed to seed database: %v", err)
		}
	}

	// Refresh-token registry: Redis when configured, otherwise in-memory.
	// The in-memory registry loses outstanding refresh tokens on restart,
	// which forces clients back through login.
	refreshTTL := time.Duration(cfg.JWT.RefreshTokenDays) * 24 * time.Hour
	var tokens registry.TokenRegistry
	if cfg.Redis.Addr != "" {
		rdb, err := config.ConnectRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		tokens = registry.NewRedis(rdb, refreshTTL)
		log.Printf("Refresh-token registry: redis (%s)", cfg.Redis.Addr)
	} else {
		tokens = registry.NewMemory(refreshTTL)
		log.Println("Refresh-token registry: in-memory (tokens do not survive restarts)")
	}

	// Nightly maintenance sweeps
	maintenance := services.NewMaintenanceService(tokens, repositories.NewTourRepository(db))
	maintenance.Start()
	defer maintenance.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Tourist Agency API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, issuer, tokens)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
