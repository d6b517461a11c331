// Package db manages MongoDB connections and collections.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Client wraps mongo.Client and exposes collections.
type Client struct {
	// client is the underlying MongoDB connection (thread-safe, reused
	// across requests for the process lifetime)
	client *mongo.Client

	// db is reference to "board_db" database; the User and Message
	// collections are accessed through it
	db *mongo.Database
}

// New connects to MongoDB and returns a Client.
func New(ctx context.Context, mongoURI string) (*Client, error) {
	opts := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping with its own deadline so an unreachable server fails fast
	// instead of hanging startup.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database("board_db"),
	}, nil
}

// UsersCollection returns the User collection.
func (c *Client) UsersCollection() *mongo.Collection {
	return c.db.Collection("User")
}

// MessagesCollection returns the Message collection.
func (c *Client) MessagesCollection() *mongo.Collection {
	return c.db.Collection("Message")
}

// Ping verifies the connection is still usable. The health endpoint
// calls this on every probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// CreateIndexes creates the indexes the stores rely on: the unique
// username index that enforces the one-account-per-username invariant,
// and the message timestamp index backing GetMessages ordering.
func (c *Client) CreateIndexes(ctx context.Context) error {
	usersIndexModel := mongo.IndexModel{
		Keys:    map[string]int{"username": 1},
		Options: options.Index().SetUnique(true),
	}

	_, err := c.UsersCollection().Indexes().CreateOne(ctx, usersIndexModel)
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	messagesIndexModel := mongo.IndexModel{
		// Compound (msg_date_time, _id) matches the GetMessages sort so
		// the board listing never does an in-memory sort.
		Keys: bson.D{
			{Key: "msg_date_time", Value: 1},
			{Key: "_id", Value: 1},
		},
	}

	_, err = c.MessagesCollection().Indexes().CreateOne(ctx, messagesIndexModel)
	if err != nil {
		return fmt.Errorf("failed to create message index: %w", err)
	}

	return nil
}
