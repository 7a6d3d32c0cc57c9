package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"credops/internal/config"
	"credops/internal/handlers"
	"credops/internal/middleware"
	"credops/internal/models"
	"credops/internal/repositories"
	"credops/internal/services"
	"credops/pkg/rabbitmq"
	"credops/pkg/storage"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the user repository relies on.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Operation{}, &models.Sequence{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- File storage ---
	store, err := storage.NewLocalStore(storage.Config{
		Dir:          cfg.UploadDir,
		MaxBytes:     cfg.MaxUploadBytes,
		PublicPrefix: "/uploads",
	})
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// The service runs fine without a broker; events are simply skipped.
	var mqClient *rabbitmq.Client
	mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("RabbitMQ unavailable, continuing without events: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	operationRepo := repositories.NewGORMOperationRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	operationService := services.NewOperationService(operationRepo, mqClient)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	operationHandler := handlers.NewOperationHandler(operationService, store)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxUploadBytes) + 1<<20,
	})
	app.Use(logger.New()) // Request logger

	// Uploaded documents are served back from the public path.
	app.Static("/uploads", store.Dir())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Registration and login are public.
	authHandler.RegisterRoutes(apiV1)

	// Everything else requires a valid session token.
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	operationHandler.RegisterRoutes(protected)

	// --- Operation event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for operation events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received %s event (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeOperationEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
