package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/aimalabs/meeting-review/pkg/validator"

	"github.com/aimalabs/meeting-review/internal/adapter/handler"
	"github.com/aimalabs/meeting-review/internal/adapter/repository"
	"github.com/aimalabs/meeting-review/internal/infrastructure/cache"
	"github.com/aimalabs/meeting-review/internal/infrastructure/database"
	"github.com/aimalabs/meeting-review/internal/infrastructure/external/assemblyai"
	"github.com/aimalabs/meeting-review/internal/infrastructure/storage"
	"github.com/aimalabs/meeting-review/internal/usecase/analysis"
	"github.com/aimalabs/meeting-review/internal/usecase/review"
	pkgai "github.com/aimalabs/meeting-review/pkg/ai"
	"github.com/aimalabs/meeting-review/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize summary cache. A dead Redis downgrades to the in-process
	// cache instead of blocking startup.
	log.Println("📦 Connecting to Redis...")
	var summaryCache repository.SummaryCache
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory summary cache", zap.Error(err))
		summaryCache = cache.NewMemorySummaryCache(cfg.Redis.SummaryTTL)
	} else {
		defer redisClient.Close()
		summaryCache = cache.NewRedisSummaryCache(redisClient, cfg.Redis.SummaryTTL)
	}

	// Initialize object storage for recordings and minutes reports
	log.Println("🗄️  Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	summaryRepo := repository.NewCachedSummaryRepository(
		repository.NewSummaryRepository(db),
		summaryCache,
		logger,
	)

	// Initialize the analysis pipeline
	log.Println("🤖 Initializing analysis pipeline...")
	transcriber := assemblyai.NewClient(&cfg.Assembly, logger)
	llmClient := pkgai.NewLLMClient(&cfg.LLM)
	analysisService := analysis.NewService(minioClient, transcriber, llmClient, summaryRepo, cfg.Storage.PresignExpiry, logger)

	// Initialize the review session core
	log.Println("📋 Initializing review session...")
	store := review.NewMeetingStore()
	workflow := review.NewWorkflow(store, analysisService, summaryRepo, cfg.Review.ProgressTick, logger)
	projector := review.NewCalendarProjector(store, summaryRepo, cfg.Review.EventColor, cfg.Review.PersistTimeout, logger)

	// Initialize review handler
	log.Println("🚀 Initializing review handler...")
	reviewHandler := handler.NewReview(store, workflow, projector, minioClient, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, reviewHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
