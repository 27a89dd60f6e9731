package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"movie-catalog/cmd"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/scheduler"
	"movie-catalog/internal/wire"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/database"
	"movie-catalog/pkg/storage"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("env", config.App.Env),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run migrations
	if config.Database.Migrate {
		if err := database.Migrate(config.Database, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Cache: redis when configured, process memory otherwise
	var appCache cache.Cache
	if config.Redis.Addr != "" {
		appCache, err = cache.NewRedisCache(ctx, config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory cache")
		appCache = cache.NewMemoryCache()
	}
	defer appCache.Close()

	// File storage
	var files storage.Storage
	switch config.Storage.Driver {
	case "s3":
		files, err = storage.NewS3Storage(ctx, config.Storage)
	default:
		files, err = storage.NewLocalStorage(config.Storage.PublicDir)
	}
	if err != nil {
		logger.Fatal("Failed to init storage", zap.Error(err), zap.String("driver", config.Storage.Driver))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, appCache, files, config, logger)
	go app.Hub.Run(ctx)

	// Scheduled jobs
	if config.Cron.Enabled {
		jobs, err := scheduler.New(config.Cron, files, repos.Movie, logger)
		if err != nil {
			logger.Fatal("Failed to schedule jobs", zap.Error(err))
		}
		jobs.Start()
		defer jobs.Stop(context.Background())
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
