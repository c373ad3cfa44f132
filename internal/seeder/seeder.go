package seeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"spadmin/internal/logger"
	"spadmin/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultSeedPaths are the locations probed, in order, for the frontend
// project's data.json when seeding products.
var DefaultSeedPaths = []string{
	"../Security-Plus-Website/src/data.json",
	"./Security-Plus-Website/src/data.json",
	"./public/data.json",
	"./src/data.json",
}

var (
	ErrSeedSourceNotFound = errors.New("unable to locate data.json; ensure the frontend project is available")
	ErrInvalidFormat      = errors.New("invalid data.json format: categories object not found")
)

// Seeder reconciles the products collection against the frontend's
// categories/products JSON: upsert by legacyId, then prune seed-tagged
// records whose legacyId no longer appears in the source.
type Seeder struct {
	products *mongo.Collection
	logger   *logger.Logger
	paths    []string
}

func New(products *mongo.Collection, log *logger.Logger) *Seeder {
	return NewWithPaths(products, log, DefaultSeedPaths)
}

func NewWithPaths(products *mongo.Collection, log *logger.Logger, paths []string) *Seeder {
	return &Seeder{products: products, logger: log, paths: paths}
}

type Result struct {
	Upserted int64 `json:"upserted"`
	Modified int64 `json:"modified"`
	Total    int64 `json:"total"`
}

// Seed runs the full reconciliation pass. Re-running with unchanged source
// data upserts nothing new and deletes nothing: legacyId stability makes the
// pass idempotent.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	dataPath, err := resolveDataPath(s.paths)
	if err != nil {
		return nil, err
	}
	s.logger.Info("loading data from %s", dataPath)

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dataPath, err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", dataPath, err)
	}

	categories, ok := parsed["categories"].(map[string]interface{})
	if !ok {
		return nil, ErrInvalidFormat
	}

	docs := flattenCategories(categories)
	if len(docs) == 0 {
		s.logger.Warn("no products found to import")
		return &Result{}, nil
	}
	s.logger.Info("preparing to sync %d products", len(docs))

	ops, legacyIDs := buildUpsertOps(docs)

	res, err := s.products.BulkWrite(ctx, ops, options.BulkWrite().SetOrdered(false))
	if err != nil {
		// Unordered writes: individual failures do not abort siblings.
		var bwe mongo.BulkWriteException
		if !errors.As(err, &bwe) {
			return nil, fmt.Errorf("failed to bulk upsert products: %w", err)
		}
		s.logger.Warn("%d seed upserts failed", len(bwe.WriteErrors))
	}
	if res == nil {
		res = &mongo.BulkWriteResult{}
	}

	if len(legacyIDs) > 0 {
		deleted, err := s.products.DeleteMany(ctx, pruneFilter(legacyIDs))
		if err != nil {
			return nil, fmt.Errorf("failed to prune stale seed products: %w", err)
		}
		if deleted.DeletedCount > 0 {
			s.logger.Info("pruned %d stale seed products", deleted.DeletedCount)
		}
	}

	total, err := s.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	s.logger.Info("seed completed: %d upserts, %d modified, %d total products",
		res.UpsertedCount, res.ModifiedCount, total)

	return &Result{
		Upserted: res.UpsertedCount,
		Modified: res.ModifiedCount,
		Total:    total,
	}, nil
}

// buildUpsertOps turns normalized seed documents into one upsert-by-legacyId
// write model apiece and collects the legacyIds the prune pass must keep.
// Re-running with the same documents targets the same filters, which is what
// makes the reconciliation idempotent.
func buildUpsertOps(docs []bson.M) ([]mongo.WriteModel, []string) {
	legacyIDs := make([]string, 0, len(docs))
	ops := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		legacyID, _ := doc["legacyId"].(string)
		if legacyID != "" {
			legacyIDs = append(legacyIDs, legacyID)
		}
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"legacyId": legacyID}).
			SetUpdate(bson.M{"$set": doc}).
			SetUpsert(true))
	}
	return ops, legacyIDs
}

// pruneFilter matches seed-owned records whose legacyId no longer appears in
// the source. Manually created products carry no seed source tag and are
// never matched.
func pruneFilter(legacyIDs []string) bson.M {
	return bson.M{
		"source":   models.SourceSeed,
		"legacyId": bson.M{"$nin": legacyIDs},
	}
}

func resolveDataPath(paths []string) (string, error) {
	for _, candidate := range paths {
		fullPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath, nil
		}
	}
	return "", ErrSeedSourceNotFound
}

// flattenCategories walks categories in sorted key order and normalizes every
// product into its seed document. The per-category index feeds the legacyId
// fallback, so ordering within a category must stay stable.
func flattenCategories(categories map[string]interface{}) []bson.M {
	keys := make([]string, 0, len(categories))
	for key := range categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var docs []bson.M
	for _, key := range keys {
		category, ok := categories[key].(map[string]interface{})
		if !ok {
			continue
		}

		name := asString(category["name"])
		if name == "" {
			name = key
		}

		items, ok := category["products"].([]interface{})
		if !ok {
			continue
		}

		for index, item := range items {
			product, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			docs = append(docs, normalizeSeedProduct(product, key, name, index))
		}
	}
	return docs
}
