package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kopipos/internal/config"
	"kopipos/internal/handlers"
	"kopipos/internal/middleware"
	"kopipos/internal/models"
	"kopipos/internal/repositories"
	"kopipos/internal/services"
	"kopipos/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ ---
	// Order events are best effort; a missing broker must not keep the
	// registers from ringing up sales.
	var mqClient *rabbitmq.Client
	mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	app, authService, err := NewApp(cfg, db, mqClient)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	seedAdmin(cfg, authService)

	// --- Start RabbitMQ consumer ---
	if mqClient != nil {
		if consumerErr := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			log.Printf("Received order event %s: %s", msg.RoutingKey, string(msg.Body))
			return nil
		}); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// NewApp wires repositories, services, handlers and middleware into a Fiber
// app. Tests call it with an in-memory database and a nil broker client.
func NewApp(cfg config.Config, db *gorm.DB, mqClient *rabbitmq.Client) (*fiber.App, *services.AuthService, error) {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	paymentRepo := repositories.NewGORMPaymentMethodRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reportRepo := repositories.NewGORMReportRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	productService := services.NewProductService(productRepo, categoryRepo)
	customerService := services.NewCustomerService(customerRepo)
	paymentService := services.NewPaymentMethodService(paymentRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, customerRepo, paymentRepo, mqClient)
	reportService := services.NewReportService(reportRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	paymentHandler := handlers.NewPaymentMethodHandler(paymentService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reportHandler := handlers.NewReportHandler(reportService)

	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(middleware.Prometheus())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Public authentication routes
	authHandler.RegisterRoutes(apiV1)

	// Routes for any authenticated user
	protected := apiV1.Group("", middleware.AuthRequired(authService))

	// Report routes must be registered before the order routes so that
	// /orders/history is matched ahead of /orders/:id.
	reportHandler.RegisterRoutes(protected, middleware.AdminRequired())

	productHandler.RegisterRoutes(protected)
	customerHandler.RegisterRoutes(protected)
	paymentHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)

	return app, authService, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.PaymentMethod{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// seedAdmin creates the configured admin account on first start. Skipped
// when no admin password is configured or the account already exists.
func seedAdmin(cfg config.Config, authService *services.AuthService) {
	if cfg.AdminPassword == "" {
		return
	}
	admin := models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     models.RoleAdmin,
	}
	if err := authService.RegisterUser(&admin); err != nil {
		log.Printf("Admin seed skipped: %v", err)
		return
	}
	log.Printf("Seeded admin account %s", admin.Username)
}
