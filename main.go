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

	"github.com/Siddique-web/EchoPlay/internal/config"
	"github.com/Siddique-web/EchoPlay/internal/handlers"
	"github.com/Siddique-web/EchoPlay/internal/middleware"
	"github.com/Siddique-web/EchoPlay/internal/models"
	"github.com/Siddique-web/EchoPlay/internal/repositories"
	"github.com/Siddique-web/EchoPlay/internal/services"
	"github.com/Siddique-web/EchoPlay/internal/storage"
	"github.com/Siddique-web/EchoPlay/pkg/rabbitmq"
)

// NewApp wires repositories, services and handlers into a Fiber app.
// mqClient may be nil; media events are then skipped.
func NewApp(cfg *config.Config, db *gorm.DB, mqClient *rabbitmq.Client) (*fiber.App, *services.AuthService, error) {
	// --- Initialize Asset Store ---
	// The upload directory is created here, explicitly, so a broken
	// storage path fails startup instead of the first upload.
	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, nil, err
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	videoRepo := repositories.NewGORMVideoRepository(db)
	musicRepo := repositories.NewGORMMusicRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo, store)
	mediaService := services.NewMediaService(videoRepo, musicRepo, store, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	api := app.Group("/api")

	// Public auth routes
	authHandler.RegisterRoutes(api)

	// --- Health Check Endpoint ---
	// Registered before the guard groups so it stays public.
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "API is running",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authenticated routes
	authenticated := api.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(authenticated)
	mediaHandler.RegisterReadRoutes(authenticated)

	// Admin-only ingestion and deletion routes
	admin := api.Group("", middleware.AdminRequired(authService))
	mediaHandler.RegisterAdminRoutes(admin)

	// --- Static Asset Serving ---
	app.Static("/uploads", store.Dir())

	return app, authService, nil
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Initialize Database (GORM) ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Video{}, &models.Music{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client ---
	// The catalog works without a broker; downstream consumers just
	// miss the ingestion events.
	var mqClient *rabbitmq.Client
	mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, media events disabled: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close()

		// --- Start RabbitMQ Consumer in a Goroutine ---
		// Audit log of catalog changes. A dedicated worker process would
		// replace this handler with real downstream processing.
		go func() {
			log.Println("Starting RabbitMQ consumer for media events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received media event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeMediaEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Build the App ---
	app, authService, err := NewApp(cfg, db, mqClient)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	// --- Admin Bootstrap ---
	if err := authService.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
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
