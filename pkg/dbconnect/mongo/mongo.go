package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storefront_api/config"
	"storefront_api/pkg/logger"
)

const (
	maxRetries     = 10
	retryDelay     = 5 * time.Second
	connectTimeout = 10 * time.Second
	maxPoolSize    = 20
)

type MongoDatabase struct {
	config.MongoConfig
	client *mongo.Client
	mu     sync.Mutex
	log    logger.Logger
}

func NewMongoConnector(cfg config.MongoConfig, log logger.Logger) *MongoDatabase {
	return &MongoDatabase{MongoConfig: cfg, log: log}
}

// Connect returns the configured database, retrying until the server answers a ping.
func (m *MongoDatabase) Connect(ctx context.Context) (*mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client.Database(m.Database), nil
	}

	opts := options.Client().
		ApplyURI(m.GetConnectionString()).
		SetMaxPoolSize(maxPoolSize).
		SetConnectTimeout(connectTimeout)

	var err error
	for i := 0; i < maxRetries; i++ {
		var client *mongo.Client
		client, err = mongo.Connect(ctx, opts)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
			err = client.Ping(pingCtx, readpref.Primary())
			cancel()
			if err == nil {
				m.log.Log("Successfully connected to MongoDB database %s", m.Database)
				m.client = client
				return client.Database(m.Database), nil
			}
			_ = client.Disconnect(context.Background())
		}
		m.log.Warn("Failed to connect to MongoDB (attempt %d/%d): %v", i+1, maxRetries, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("mongodb unreachable after %d attempts: %w", maxRetries, err)
}

func (m *MongoDatabase) Ping(ctx context.Context) error {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return fmt.Errorf("mongodb connection is not established")
	}
	return client.Ping(ctx, readpref.Primary())
}

func (m *MongoDatabase) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}
