package main

import (
	"context"
	"log"
	"os"

	"spadmin/internal/config"
	"spadmin/internal/database"
	"spadmin/internal/importer"
	"spadmin/internal/logger"
)

// One-off import: finds the frontend's data.json and loads it into the
// target collection, replacing existing contents.
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

	result, err := im.AutoImport(context.Background(), collectionName)
	if err != nil {
		logg.Fatal("auto-import failed: %v", err)
	}

	logg.Info("import completed: %d documents in collection %s",
		result.DocumentCount, result.CollectionName)
}
