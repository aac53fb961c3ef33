package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ci-research/learninghub-service/internal/cache"
	"github.com/ci-research/learninghub-service/internal/cloudsync"
	"github.com/ci-research/learninghub-service/internal/config"
	"github.com/ci-research/learninghub-service/internal/events"
	"github.com/ci-research/learninghub-service/internal/handlers"
	"github.com/ci-research/learninghub-service/internal/observability"
	"github.com/ci-research/learninghub-service/internal/repositories/sqlite"
	"github.com/ci-research/learninghub-service/internal/services"
	"github.com/ci-research/learninghub-service/internal/store"
	"github.com/ci-research/learninghub-service/internal/utils"
	"github.com/ci-research/learninghub-service/internal/validator"
	"github.com/ci-research/learninghub-service/pkg"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize Sentry (if configured)
	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Environment, version)
	if err != nil {
		log.Printf("Warning: Failed to initialize Sentry: %v", err)
	}
	defer flushSentry()

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize snapshot repository
	snapshotRepo, err := sqlite.NewSnapshotRepository(db)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot repository: %v", err)
	}

	// Initialize event bus, with an optional Kafka mirror
	var bus *events.Bus
	if len(cfg.KafkaBrokers) > 0 {
		mirror, err := events.NewKafkaMirror(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Printf("Warning: Failed to initialize Kafka mirror: %v", err)
			bus = events.NewBus(slogLogger, nil)
		} else {
			bus = events.NewBus(slogLogger, mirror)
		}
	} else {
		bus = events.NewBus(slogLogger, nil)
	}

	// Initialize the in-memory store, seeding when no snapshot exists
	st := store.New(context.Background(), snapshotRepo, bus, slogLogger)

	// Initialize cloud sync and start the change-driven push runner
	syncer := cloudsync.NewSyncer(cfg.CloudURL, cfg.SyncMinBusy, slogLogger)
	runner := cloudsync.NewRunner(bus, syncer, slogLogger)

	runnerCtx, cancelRunner := context.WithCancel(context.Background())
	defer cancelRunner()
	if err := runner.Start(runnerCtx); err != nil {
		log.Fatalf("Failed to start sync runner: %v", err)
	}

	// One pull at startup so a shared cloud state wins over the local copy
	if syncer.Enabled() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := syncer.Pull(ctx, st); err != nil {
				slogLogger.Warn("startup pull failed, using local state", "error", err)
			}
		}()
	}

	// Initialize validator
	v := validator.New()

	// Initialize services
	cacheHelper := cache.NewCacheHelper(redisClient, "learninghub")
	serviceManager := services.NewServiceManager(st, cacheHelper, slogLogger, v)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, st, syncer, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "sync_enabled", syncer.Enabled())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cancelRunner()

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if err := bus.Close(); err != nil {
		log.Printf("Failed to close event bus: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
