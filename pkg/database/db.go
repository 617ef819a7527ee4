// Package database owns the MongoDB connection. Every collection the app
// touches (products, sales, users, logs) hangs off the single client opened
// by Connect.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lspratas/atelier/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB client and verifies the connection with a ping.
// Returns an error instead of exiting so the caller can shut down gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())
	return nil
}

// DB returns the connected database handle.
// Panics when Connect has not been called — a programming error, not a
// runtime condition.
func DB() *mongo.Database {
	if db == nil {
		panic("database: not connected — call database.Connect first")
	}
	return db
}

// Collection is shorthand for DB().Collection(name).
func Collection(name string) *mongo.Collection {
	return DB().Collection(name)
}

// Ping verifies the connection is still live.
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("database: not connected")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Ping(pingCtx, readpref.Primary())
}

// Disconnect closes the client. Safe to call when never connected.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	err := client.Disconnect(ctx)
	client = nil
	db = nil
	return err
}
