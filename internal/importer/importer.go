package importer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spadmin/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const batchSize = 100

// Importer loads the frontend's data.json into a target collection, wholesale
// replacing its contents. It also keeps the per-process registry of schemas
// inferred for each collection name.
type Importer struct {
	db     *mongo.Database
	logger *logger.Logger
	paths  []string

	mu      sync.Mutex
	schemas map[string]Schema
}

func New(db *mongo.Database, log *logger.Logger) *Importer {
	return NewWithPaths(db, log, DefaultSourcePaths)
}

func NewWithPaths(db *mongo.Database, log *logger.Logger, paths []string) *Importer {
	return &Importer{
		db:      db,
		logger:  log,
		paths:   paths,
		schemas: make(map[string]Schema),
	}
}

type Result struct {
	Success        bool   `json:"success"`
	CollectionName string `json:"collectionName"`
	DocumentCount  int    `json:"documentCount"`
	Schema         Schema `json:"schema"`
}

// AutoImport locates data.json, infers a schema from its first record, and
// replaces the target collection's contents with the converted documents,
// inserting sequentially in batches of 100. A batch failure aborts the run;
// already-inserted batches are not rolled back.
func (im *Importer) AutoImport(ctx context.Context, collectionName string) (*Result, error) {
	if collectionName == "" {
		collectionName = DefaultCollection
	}

	data, sourcePath, err := FindSourceData(im.paths)
	if err != nil {
		return nil, err
	}
	im.logger.Info("data loaded from %s", sourcePath)

	records := toRecords(data)

	schema := Schema{}
	if len(records) > 0 {
		schema = InferSchema(records[0])
	}
	im.registerSchema(collectionName, schema)

	docs := ConvertToDocuments(records)
	im.logger.Info("converting %d documents for collection %s", len(docs), collectionName)

	coll := im.db.Collection(collectionName)
	if err := coll.Drop(ctx); err != nil {
		// Absence of the collection is not an error.
		im.logger.Debug("drop before import: %v", err)
	}

	inserted := 0
	for i, batch := range splitBatches(docs, batchSize) {
		res, err := coll.InsertMany(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to insert batch %d: %w", i+1, err)
		}
		inserted += len(res.InsertedIDs)
		im.logger.Info("inserted batch %d: %d documents", i+1, len(res.InsertedIDs))
	}

	im.logger.Info("imported %d documents into %s", inserted, collectionName)

	return &Result{
		Success:        true,
		CollectionName: collectionName,
		DocumentCount:  inserted,
		Schema:         schema,
	}, nil
}

// splitBatches cuts docs into sequential batches of at most size documents.
func splitBatches(docs []interface{}, size int) [][]interface{} {
	var batches [][]interface{}
	for start := 0; start < len(docs); start += size {
		end := start + size
		if end > len(docs) {
			end = len(docs)
		}
		batches = append(batches, docs[start:end])
	}
	return batches
}

// registerSchema records the schema inferred for a collection this process
// lifetime. A reappearing collection name with a differently-shaped sample
// replaces the previous entry: last schema wins.
func (im *Importer) registerSchema(collectionName string, schema Schema) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if prev, ok := im.schemas[collectionName]; ok && !prev.Equal(schema) {
		im.logger.Warn("schema for collection %s changed shape; replacing registered schema", collectionName)
	}
	im.schemas[collectionName] = schema
}

// RegisteredSchema returns the schema recorded for a collection name, if any.
func (im *Importer) RegisteredSchema(collectionName string) (Schema, bool) {
	im.mu.Lock()
	defer im.mu.Unlock()

	schema, ok := im.schemas[collectionName]
	return schema, ok
}

type CollectionStats struct {
	CollectionName string    `json:"collectionName"`
	DocumentCount  int64     `json:"documentCount"`
	SampleDocument bson.M    `json:"sampleDocument"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// Stats reports the document count and a sample document for a collection.
func (im *Importer) Stats(ctx context.Context, collectionName string) (*CollectionStats, error) {
	if collectionName == "" {
		collectionName = DefaultCollection
	}

	coll := im.db.Collection(collectionName)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	var sample bson.M
	if err := coll.FindOne(ctx, bson.M{}).Decode(&sample); err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to fetch sample document: %w", err)
	}

	return &CollectionStats{
		CollectionName: collectionName,
		DocumentCount:  count,
		SampleDocument: sample,
		LastUpdated:    time.Now(),
	}, nil
}
