package main

import (
	"os"
	"os/signal"
	"sync"
	"time"

	"attendance/config"
	"attendance/identity"
	"attendance/services/attendance/delivery"
	"attendance/services/attendance/repository"
	"attendance/services/attendance/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	app.Use(recover.New())

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz" || c.Path() == "/metrics"
		},
	}))

	if err := config.EnsureDatabase(); err != nil {
		log.Fatalf("Failed to ensure database: %v", err)
		return
	}

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	provider, err := identity.NewLocalProvider(db)
	if err != nil {
		log.Fatalf("Failed to init identity provider: %v", err)
		return
	}

	if err := config.SeedAdmin(db, provider); err != nil {
		log.Errorf("Failed to seed admin: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Usecases
	timeout := 10 * time.Second
	authUC := usecase.NewAuthUseCase(userRepo, provider, timeout)
	submissionUC := usecase.NewSubmissionUseCase(eventRepo, timeout)
	adjudicationUC := usecase.NewAdjudicationUseCase(eventRepo, timeout)
	reportUC := usecase.NewReportUseCase(eventRepo, userRepo, timeout)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, timeout)

	// Deliveries
	delivery.NewAuthDelivery(app, authUC)
	delivery.NewEventDelivery(app, submissionUC, provider, userRepo)
	delivery.NewRequestDelivery(app, adjudicationUC, provider, userRepo)
	delivery.NewReportDelivery(app, reportUC, provider, userRepo)
	delivery.NewNotificationDelivery(app, notificationUC, provider, userRepo)

	app.Get("/metrics", adaptor.HTTPHandler(config.MetricsHandler()))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"db":     false,
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
			"db":     true,
		})
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}
