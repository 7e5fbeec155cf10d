// Package db manages MongoDB connections and collections.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Client wraps mongo.Client and exposes the application's collections.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, pings it, and returns a Client bound to the
// named database.
func New(ctx context.Context, mongoURI, database string) (*Client, error) {
	opts := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(10 * time.Second) // fail fast if MongoDB is unreachable

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping is the actual connection test; Connect alone does not dial.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(database),
	}, nil
}

// UsersCollection returns the users collection.
func (c *Client) UsersCollection() *mongo.Collection {
	return c.db.Collection("users")
}

// WishlistsCollection returns the wishlists collection.
func (c *Client) WishlistsCollection() *mongo.Collection {
	return c.db.Collection("wishlists")
}

// InvitationsCollection returns the invitations collection.
func (c *Client) InvitationsCollection() *mongo.Collection {
	return c.db.Collection("invitations")
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// CreateIndexes creates the indexes the stores rely on.
//
// Note there is deliberately no unique index on the invitation triple
// (sender, receiver_email, wishlist): duplicate-pending detection is a
// check-then-insert in the invitation service, matching observed
// behavior. The index below only serves the lookups.
func (c *Client) CreateIndexes(ctx context.Context) error {
	// Unique index on email so no two users share an address. Signup
	// relies on the duplicate-key error from this.
	usersIndexModel := mongo.IndexModel{
		Keys:    map[string]int{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := c.UsersCollection().Indexes().CreateOne(ctx, usersIndexModel); err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	// Wishlists are listed per owner and in a global feed sorted by
	// creation time descending.
	wishlistIndexes := []mongo.IndexModel{
		{Keys: map[string]int{"owner": 1}},
		{Keys: map[string]int{"created_at": -1}},
	}
	if _, err := c.WishlistsCollection().Indexes().CreateMany(ctx, wishlistIndexes); err != nil {
		return fmt.Errorf("failed to create wishlist indexes: %w", err)
	}

	// Invitations are looked up by receiver inbox and by the pending
	// triple during duplicate checks.
	invitationIndexes := []mongo.IndexModel{
		{Keys: map[string]int{"receiver_email": 1, "status": 1}},
		{Keys: map[string]int{"sender": 1, "receiver_email": 1, "wishlist": 1, "status": 1}},
	}
	if _, err := c.InvitationsCollection().Indexes().CreateMany(ctx, invitationIndexes); err != nil {
		return fmt.Errorf("failed to create invitation indexes: %w", err)
	}

	return nil
}
