package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// ProductCollection is the collection backing the product CRUD API and the
// seed reconciliation pipeline.
const ProductCollection = "products"

type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func New(uri, name string) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Database{
		Client: client,
		DB:     client.Database(name),
	}, nil
}

// EnsureIndexes creates the weighted text index used by product search and
// the legacyId index used by seed reconciliation. Creation is idempotent.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	products := d.DB.Collection(ProductCollection)

	_, err := products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "sku", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().
				SetName("product_text_index").
				SetWeights(bson.D{
					{Key: "name", Value: 5},
					{Key: "sku", Value: 3},
					{Key: "description", Value: 1},
				}),
		},
		{
			Keys:    bson.D{{Key: "legacyId", Value: 1}},
			Options: options.Index().SetName("product_legacy_id"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

func (d *Database) Products() *mongo.Collection {
	return d.DB.Collection(ProductCollection)
}

func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
