package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"spadmin/internal/config"
	"spadmin/internal/database"
	"spadmin/internal/logger"
	"spadmin/internal/worker"
)

// Consumes catalog events from Kafka and records them as an audit trail.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logg := logger.New(cfg.LogLevel)

	if cfg.KafkaBrokers == "" {
		logg.Fatal("KAFKA_BROKERS must be set for the worker")
	}

	db, err := database.New(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logg.Fatal("failed to connect to database: %v", err)
	}
	defer db.Close(context.Background())

	// Initialize worker
	w := worker.New(cfg, logg, db.DB)

	// Start worker
	logg.Info("starting worker...")
	go w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down worker...")
	w.Stop()
}
