package data

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Invitation status values. pending is the only state that permits a
// transition; accepted and rejected are terminal.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
)

// User maps to the users collection (unique lowercase email, bcrypt
// password hash, optional display name).
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	Name      string        `bson:"name,omitempty"`
	CreatedAt time.Time     `bson:"created_at"`
}

// Product is embedded in a wishlist document. It has no existence
// outside its wishlist; the generated _id only scopes it within the
// parent's products array.
type Product struct {
	ID   bson.ObjectID `bson:"_id"`
	Name string        `bson:"name"`
	Link string        `bson:"link,omitempty"`
	// Price is a pointer so "no price" and "price 0" stay distinct.
	Price *float64 `bson:"price,omitempty"`
}

// Comment is embedded in a wishlist document. Comments are append-only;
// no edit or delete operation exists.
type Comment struct {
	ID        bson.ObjectID `bson:"_id"`
	Commenter bson.ObjectID `bson:"commenter"`
	Comment   string        `bson:"comment"`
	CreatedAt time.Time     `bson:"created_at"`
}

// Wishlist maps to the wishlists collection. The whole aggregate
// (products, comments, invited users) is saved as one document;
// concurrent writers are last-writer-wins.
type Wishlist struct {
	ID           bson.ObjectID   `bson:"_id,omitempty"`
	Owner        bson.ObjectID   `bson:"owner"`
	Title        string          `bson:"title"`
	Description  string          `bson:"description,omitempty"`
	Products     []Product       `bson:"products"`
	Comments     []Comment       `bson:"comments"`
	InvitedUsers []bson.ObjectID `bson:"invited_users"`
	CreatedAt    time.Time       `bson:"created_at"`
	UpdatedAt    time.Time       `bson:"updated_at"`
}

// IsInvited reports whether the given user id is in the invited set.
// The owner is never stored in invited_users; ownership carries its own
// rights regardless of set membership.
func (w *Wishlist) IsInvited(userID bson.ObjectID) bool {
	for _, id := range w.InvitedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// FindProduct returns a pointer into the products slice for the given
// product id, or nil when absent.
func (w *Wishlist) FindProduct(productID bson.ObjectID) *Product {
	for i := range w.Products {
		if w.Products[i].ID == productID {
			return &w.Products[i]
		}
	}
	return nil
}

// Invitation maps to the invitations collection. The receiver is
// addressed by normalized email, not by user id: the receiver must
// exist when the invitation is sent, but is only resolved to an id at
// response time.
type Invitation struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Sender        bson.ObjectID `bson:"sender"`
	ReceiverEmail string        `bson:"receiver_email"`
	Wishlist      bson.ObjectID `bson:"wishlist"`
	Status        string        `bson:"status"`
	CreatedAt     time.Time     `bson:"created_at"`
}
