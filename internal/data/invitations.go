package data

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sakshamkanojia19/wishlist-server/internal/normalize"
)

// InvitationsStore performs invitation DB operations.
//
// There is no unique index on (sender, receiver_email, wishlist): the
// pending-duplicate check is a read in the service before the insert
// here, so two concurrent sends can both land. Accepted race, see the
// service documentation.
type InvitationsStore struct {
	coll *mongo.Collection
}

// NewInvitationsStore returns an InvitationsStore using the given collection.
func NewInvitationsStore(coll *mongo.Collection) *InvitationsStore {
	return &InvitationsStore{coll: coll}
}

// Insert stores a new invitation and populates its id. The receiver
// email is normalized on the way in.
func (s *InvitationsStore) Insert(ctx context.Context, inv *Invitation) error {
	inv.ReceiverEmail = normalize.Email(inv.ReceiverEmail)

	result, err := s.coll.InsertOne(ctx, inv)
	if err != nil {
		return err
	}
	inv.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// GetByID loads one invitation document.
func (s *InvitationsStore) GetByID(ctx context.Context, id bson.ObjectID) (*Invitation, error) {
	var inv Invitation
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindPending returns the pending invitation for the exact
// (sender, receiver email, wishlist) triple, or ErrNotFound.
func (s *InvitationsStore) FindPending(ctx context.Context, sender bson.ObjectID, receiverEmail string, wishlist bson.ObjectID) (*Invitation, error) {
	filter := bson.M{
		"sender":         sender,
		"receiver_email": normalize.Email(receiverEmail),
		"wishlist":       wishlist,
		"status":         InvitationPending,
	}

	var inv Invitation
	err := s.coll.FindOne(ctx, filter).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ListPendingByReceiver returns every pending invitation addressed to
// the given email.
func (s *InvitationsStore) ListPendingByReceiver(ctx context.Context, receiverEmail string) ([]*Invitation, error) {
	filter := bson.M{
		"receiver_email": normalize.Email(receiverEmail),
		"status":         InvitationPending,
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invs []*Invitation
	if err = cursor.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// Save replaces the stored invitation document.
func (s *InvitationsStore) Save(ctx context.Context, inv *Invitation) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": inv.ID}, inv)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
