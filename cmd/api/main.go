package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"spadmin/internal/api"
	"spadmin/internal/config"
	"spadmin/internal/database"
	"spadmin/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logg := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logg.Fatal("failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		// Search degrades without the text index; keep serving.
		logg.Error("failed to ensure indexes: %v", err)
	}
	cancel()

	// Initialize API server
	server := api.New(cfg, logg, db)

	// Start server
	logg.Info("starting API server on port %s", cfg.APIPort)
	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		logg.Fatal("failed to start server: %v", err)
	}
}
