package main

import (
	"context"
	"log"

	"spadmin/internal/config"
	"spadmin/internal/database"
	"spadmin/internal/events"
	"spadmin/internal/logger"
	"spadmin/internal/seeder"
)

// Reconciles the products collection against the frontend's data.json:
// upsert by legacyId, prune seed records removed from the source.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logg := logger.New(cfg.LogLevel)

	db, err := database.New(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logg.Fatal("failed to connect to database: %v", err)
	}
	defer db.Close(context.Background())

	ctx := context.Background()

	if err := db.EnsureIndexes(ctx); err != nil {
		logg.Error("failed to ensure indexes: %v", err)
	}

	s := seeder.New(db.Products(), logg)

	result, err := s.Seed(ctx)
	if err != nil {
		logg.Fatal("failed to seed products: %v", err)
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logg)
	publisher.Publish(ctx, events.Event{
		Type: events.TypeSeedCompleted,
		Data: map[string]interface{}{
			"upserted": result.Upserted,
			"modified": result.Modified,
			"total":    result.Total,
		},
	})
	publisher.Close()

	logg.Info("seed completed: %d upserts, %d modified, %d total products",
		result.Upserted, result.Modified, result.Total)
}
