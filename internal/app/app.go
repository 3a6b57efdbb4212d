// Package app assembles the HTTP application from its dependencies.
package app

import (
	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/handlers"
	"marketplace/internal/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Dependencies are the resources the application is built from. Redis and
// Publisher are optional.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher services.EventPublisher
	// DisableRequestLog turns off the per-request access log.
	DisableRequestLog bool
}

// Server is the HTTP application together with the services that run
// outside of requests.
type Server struct {
	App        *fiber.App
	Auth       *services.AuthService
	Deliveries *services.DeliveryService
}

// New wires repositories, services and handlers into a Fiber app.
func New(deps Dependencies) *Server {
	cfg := deps.Config

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	deliveryRepo := repositories.NewGORMDeliveryRepository(deps.DB)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, deps.Publisher, cfg.OrdersStatusBySeller)
	deliveryService := services.NewDeliveryService(deliveryRepo)

	// --- Initialize Handlers ---
	validate := validation.New()
	limiter := middleware.RateLimit(deps.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow)
	healthHandler := handlers.NewHealthHandler(func() error { return database.Ping(deps.DB) })
	authHandler := handlers.NewAuthHandler(authService, validate, limiter)
	productHandler := handlers.NewProductHandler(productService, validate)
	orderHandler := handlers.NewOrderHandler(orderService, validate, cfg.OrdersListRequiresAdmin)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:      "marketplace",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	if !deps.DisableRequestLog {
		app.Use(logger.New()) // Request logger
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// --- Routes ---
	healthHandler.RegisterRoutes(app)

	auth := middleware.AuthRequired(authService)
	api := app.Group("/api")
	authHandler.RegisterRoutes(api, auth)
	productHandler.RegisterRoutes(api, auth)
	orderHandler.RegisterRoutes(api, auth)
	deliveryHandler.RegisterRoutes(api, auth)

	app.Use(handlers.NotFound)

	return &Server{
		App:        app,
		Auth:       authService,
		Deliveries: deliveryService,
	}
}
