package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"sinifplanim/config"
	"sinifplanim/domain"
	"sinifplanim/services/planner/delivery"
	"sinifplanim/services/planner/repository"
	"sinifplanim/services/planner/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const usecaseTimeout = 10 * time.Second

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using process environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	gormDB, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	ctx := context.Background()
	pool, err := config.BootPool(ctx)
	if err != nil {
		log.Fatalf("Failed to boot pgx pool: %v", err)
		return
	}
	defer pool.Close()

	var blob domain.BlobStore
	if os.Getenv("BLOB_BACKEND") == "redis" {
		redisClient := config.BootRedis()
		if !config.RedisHealthy(ctx, redisClient) {
			log.Fatal("BLOB_BACKEND=redis but redis is not reachable")
			return
		}
		blob = repository.NewRedisBlobRepository(redisClient)
		log.Info("Blob store backed by redis")
	} else {
		blob = repository.NewBlobRepository(pool)
		log.Info("Blob store backed by postgres")
	}

	config.StartMetricsServer()

	// Repos and usecases
	recordUC := usecase.NewDailyRecordUseCase(blob, usecaseTimeout)
	rosterUC := usecase.NewRosterUseCase(repository.NewRosterRepository(pool), recordUC, usecaseTimeout)
	notifUC := usecase.NewNotificationUseCase(repository.NewNotificationRepository(pool), usecaseTimeout)
	noteUC := usecase.NewNoteUseCase(repository.NewNoteRepository(pool), usecaseTimeout)
	scheduleUC := usecase.NewScheduleUseCase(blob, usecaseTimeout)
	authUC := usecase.NewAuthUseCase(repository.NewAuthRepository(gormDB), usecaseTimeout)

	// Delivery
	delivery.NewAuthDelivery(app, authUC)
	delivery.NewDailyRecordDelivery(app, recordUC)
	delivery.NewRosterDelivery(app, rosterUC)
	delivery.NewNotificationDelivery(app, notifUC)
	delivery.NewNoteDelivery(app, noteUC)
	delivery.NewScheduleDelivery(app, scheduleUC)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
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
