package main

import (
	"log"

	"moviematrix/cmd"
	"moviematrix/internal/data/repository"
	"moviematrix/internal/wire"
	"moviematrix/pkg/cache"
	"moviematrix/pkg/database"
	"moviematrix/pkg/omdb"
	"moviematrix/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to Redis for the metadata cache. The app runs without it.
	redisClient, err := cache.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, metadata lookups will not be cached", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info("Redis connected successfully")
	}

	// OMDb metadata client
	meta := omdb.NewClient(omdb.ClientConfig{
		BaseURL:  config.OMDb.BaseURL,
		APIKey:   config.OMDb.APIKey,
		Timeout:  config.OMDb.Timeout,
		CacheTTL: config.OMDb.CacheTTL,
		Redis:    redisClient,
		Logger:   logger,
	})

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, meta, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
