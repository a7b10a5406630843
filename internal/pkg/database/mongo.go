package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/piresc/mfs/internal/pkg/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnectTimeout = 10 * time.Second

// MongoClient represents a MongoDB client bound to one database
type MongoClient struct {
	client   *mongo.Client
	database string
}

// MongoURI returns config.URI when set, otherwise an Atlas SRV connection string
func MongoURI(config models.DatabaseConfig) string {
	if config.URI != "" {
		return config.URI
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		Host:     config.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	if config.Username != "" {
		u.User = url.UserPassword(config.Username, config.Password)
	}
	return u.String()
}

// NewMongoClient connects with the stable v1 server API and verifies the connection
func NewMongoClient(ctx context.Context, config models.DatabaseConfig) (*MongoClient, error) {
	timeout := defaultConnectTimeout
	if config.ConnectTimeout > 0 {
		timeout = time.Duration(config.ConnectTimeout) * time.Second
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(MongoURI(config)).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if config.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(config.MaxConns))
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoClient{client: client, database: config.Database}, nil
}

// NewMongoClientFrom wraps an already connected client
func NewMongoClientFrom(client *mongo.Client, database string) *MongoClient {
	return &MongoClient{client: client, database: database}
}

// Collection returns a handle on a collection of the configured database
func (m *MongoClient) Collection(name string) *mongo.Collection {
	return m.client.Database(m.database).Collection(name)
}

// Ping checks the primary is reachable
func (m *MongoClient) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (m *MongoClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
