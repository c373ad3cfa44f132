package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"spadmin/internal/config"
	"spadmin/internal/database"
	"spadmin/internal/importer"
	"spadmin/internal/logger"
)

// Continuously watches the frontend's data.json and re-imports on change.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logg := logger.New(cfg.LogLevel)

	collectionName := importer.DefaultCollection
	if len(os.Args) > 1 {
		collectionName = os.Args[1]
	}
	logg.Info("target collection: %s", collectionName)

	db, err := database.New(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logg.Fatal("failed to connect to database: %v", err)
	}
	defer db.Close(context.Background())

	im := importer.New(db.DB, logg)
	watcher := importer.NewWatcher(im, logg)

	// Initial import before watching
	logg.Info("performing initial import...")
	if _, err := im.AutoImport(context.Background(), collectionName); err != nil {
		logg.Fatal("initial import failed: %v", err)
	}

	if err := watcher.Start(collectionName); err != nil {
		logg.Fatal("failed to start watcher: %v", err)
	}
	logg.Info("auto-sync is active; press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("stopping auto-sync...")
	watcher.StopAll()
}
