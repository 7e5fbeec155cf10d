package data

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// WishlistsStore performs wishlist DB operations. The wishlist is an
// aggregate: products and comments live inside the document and every
// mutation rewrites the whole thing.
type WishlistsStore struct {
	coll *mongo.Collection
}

// NewWishlistsStore returns a WishlistsStore using the given collection.
func NewWishlistsStore(coll *mongo.Collection) *WishlistsStore {
	return &WishlistsStore{coll: coll}
}

// Insert stores a new wishlist document and populates its id.
func (s *WishlistsStore) Insert(ctx context.Context, w *Wishlist) error {
	result, err := s.coll.InsertOne(ctx, w)
	if err != nil {
		return err
	}
	w.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// GetByID loads one wishlist document.
func (s *WishlistsStore) GetByID(ctx context.Context, id bson.ObjectID) (*Wishlist, error) {
	var w Wishlist
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Save replaces the stored document with the given aggregate. There is
// no optimistic locking: concurrent saves are last-writer-wins on the
// whole document.
func (s *WishlistsStore) Save(ctx context.Context, w *Wishlist) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": w.ID}, w)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a wishlist document.
func (s *WishlistsStore) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner returns all wishlists owned by the given user.
func (s *WishlistsStore) ListByOwner(ctx context.Context, owner bson.ObjectID) ([]*Wishlist, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []*Wishlist
	if err = cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// ListAll returns every wishlist, newest first. This backs the global
// feed, which is world-readable to any authenticated caller.
func (s *WishlistsStore) ListAll(ctx context.Context) ([]*Wishlist, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []*Wishlist
	if err = cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}
