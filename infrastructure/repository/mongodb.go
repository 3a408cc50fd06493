// Package repository stores annotation datasets in MongoDB.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const appName = "framer"

// MongoDB is a verified connection to the database holding datasets.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	cfg      MongoDBConfig
	logger   *slog.Logger
}

// MongoDBConfig contains configuration for the MongoDB connection.
type MongoDBConfig struct {
	URI      string
	Database string
	// ConnectTimeout bounds connecting and the initial ping.
	ConnectTimeout time.Duration
	// IndexTimeout bounds index creation.
	IndexTimeout time.Duration
}

// DefaultMongoDBConfig returns the configuration for a local server.
func DefaultMongoDBConfig() *MongoDBConfig {
	return &MongoDBConfig{
		URI:            "mongodb://localhost:27017",
		Database:       "framer",
		ConnectTimeout: 10 * time.Second,
		IndexTimeout:   30 * time.Second,
	}
}

// clientOptions builds the driver options for cfg.
func clientOptions(cfg *MongoDBConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
}

// NewMongoDB connects to cfg.URI and pings the primary before returning.
func NewMongoDB(ctx context.Context, cfg *MongoDBConfig, logger *slog.Logger) (*MongoDB, error) {
	if cfg == nil {
		cfg = DefaultMongoDBConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "mongodb", "database", cfg.Database)

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB", "uri", cfg.URI)
	return &MongoDB{
		client:   client,
		database: client.Database(cfg.Database),
		cfg:      *cfg,
		logger:   logger,
	}, nil
}

// Collection returns a collection by name.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// EnsureIndexes creates the given indexes on collection. Existing indexes
// with the same definition are left alone by the server.
func (m *MongoDB) EnsureIndexes(ctx context.Context, collection string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	if m.cfg.IndexTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.IndexTimeout)
		defer cancel()
	}

	names, err := m.Collection(collection).Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
	}
	m.logger.Debug("Indexes ensured", "collection", collection, "indexes", names)
	return nil
}

// Close disconnects from MongoDB.
func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
