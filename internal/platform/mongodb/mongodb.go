// Package mongodb builds and checks the MongoDB client shared by the commands.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const appName = "bookcatalog"

// Config describes where the books collection lives.
type Config struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds connect, ping and disconnect.
	Timeout time.Duration
}

func (c Config) Validate() error {
	switch {
	case c.URI == "":
		return errors.New("mongodb: empty URI")
	case c.Database == "":
		return errors.New("mongodb: empty database name")
	case c.Collection == "":
		return errors.New("mongodb: empty collection name")
	case c.Timeout <= 0:
		return fmt.Errorf("mongodb: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Connect creates a client and pings the primary. The client is disconnected
// again when the ping fails.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(cfg.Timeout)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("cannot create mongo client (%s): %w", RedactURI(cfg.URI), err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = Disconnect(client, cfg.Timeout)
		return nil, fmt.Errorf("cannot ping mongodb (%s): %w", RedactURI(cfg.URI), err)
	}
	return client, nil
}

// Collection returns the configured collection of client.
func Collection(client *mongo.Client, cfg Config) *mongo.Collection {
	return client.Database(cfg.Database).Collection(cfg.Collection)
}

// Disconnect closes client within timeout. It runs on a fresh context so it
// still succeeds after the caller's context was cancelled.
func Disconnect(client *mongo.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// RedactURI hides credentials in a connection string.
func RedactURI(uri string) string {
	const marker = "://"
	start := strings.Index(uri, marker)
	if start < 0 {
		return uri
	}
	start += len(marker)
	end := strings.Index(uri[start:], "@")
	if end < 0 {
		return uri
	}
	return uri[:start] + "***" + uri[start+end:]
}
