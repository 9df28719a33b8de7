package routes

import (
	"time"

	"touragency/internal/adapters/http/handlers"
	"touragency/internal/adapters/http/middleware"
	"touragency/internal/adapters/persistence/repositories"
	"touragency/internal/adapters/registry"
	"touragency/internal/core/services"
	"touragency/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, issuer *jwt.Issuer, tokens registry.TokenRegistry) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	destinationRepo := repositories.NewDestinationRepository(db)
	guideRepo := repositories.NewGuideRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	tourRepo := repositories.NewTourRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokens, issuer)
	bookingService := services.NewBookingService(bookingRepo, tourRepo, customerRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	destinationHandler := handlers.NewDestinationHandler(destinationRepo)
	guideHandler := handlers.NewGuideHandler(guideRepo)
	customerHandler := handlers.NewCustomerHandler(customerRepo)
	tourHandler := handlers.NewTourHandler(tourRepo)
	bookingHandler := handlers.NewBookingHandler(bookingRepo, bookingService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Auth routes. Token responses are never cacheable.
	authRoutes := api.Group("/auth", middleware.NoStore())
	setupAuthRoutes(authRoutes, authHandler, issuer)

	// Entity routes (authenticated)
	protected := api.Group("", middleware.Protected(issuer), middleware.PrivateCache(time.Minute))
	setupEntityRoutes(protected, "/destinations", destinationHandler.List, destinationHandler.Get,
		destinationHandler.Create, destinationHandler.Update, destinationHandler.Delete)
	setupEntityRoutes(protected, "/guides", guideHandler.List, guideHandler.Get,
		guideHandler.Create, guideHandler.Update, guideHandler.Delete)
	setupEntityRoutes(protected, "/customers", customerHandler.List, customerHandler.Get,
		customerHandler.Create, customerHandler.Update, customerHandler.Delete)
	setupEntityRoutes(protected, "/tours", tourHandler.List, tourHandler.Get,
		tourHandler.Create, tourHandler.Update, tourHandler.Delete)
	setupEntityRoutes(protected, "/bookings", bookingHandler.List, bookingHandler.Get,
		bookingHandler.Create, bookingHandler.Update, bookingHandler.Delete)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, issuer *jwt.Issuer) {
	// Public routes, rate limited per IP
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.Refresh)

	// Protected routes
	router.Get("/me", middleware.Protected(issuer), handler.Me)
	router.Get("/users", middleware.Protected(issuer), middleware.AdminOnly(), handler.Users)
}

// setupEntityRoutes registers the uniform CRUD route set under prefix
func setupEntityRoutes(router fiber.Router, prefix string, list, get, create, update, del fiber.Handler) {
	group := router.Group(prefix)
	group.Get("/", list)
	group.Get("/:id", get)
	group.Post("/", create)
	group.Put("/:id", update)
	group.Delete("/:id", del)
}
