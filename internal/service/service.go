// Package service implements the application operations over the
// stores: the wishlist aggregate, the invitation state machine, and
// account handling. Every failure path surfaces exactly one apierr
// kind; the HTTP layer only translates.
package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sakshamkanojia19/wishlist-server/internal/data"
)

// UsersStore is the slice of the user store the services depend on.
type UsersStore interface {
	CreateUser(ctx context.Context, email, hashedPassword, name string) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	GetUserByID(ctx context.Context, id bson.ObjectID) (*data.User, error)
}

// WishlistsStore is the slice of the wishlist store the services depend on.
type WishlistsStore interface {
	Insert(ctx context.Context, w *data.Wishlist) error
	GetByID(ctx context.Context, id bson.ObjectID) (*data.Wishlist, error)
	Save(ctx context.Context, w *data.Wishlist) error
	Delete(ctx context.Context, id bson.ObjectID) error
	ListByOwner(ctx context.Context, owner bson.ObjectID) ([]*data.Wishlist, error)
	ListAll(ctx context.Context) ([]*data.Wishlist, error)
}

// InvitationsStore is the slice of the invitation store the services depend on.
type InvitationsStore interface {
	Insert(ctx context.Context, inv *data.Invitation) error
	GetByID(ctx context.Context, id bson.ObjectID) (*data.Invitation, error)
	FindPending(ctx context.Context, sender bson.ObjectID, receiverEmail string, wishlist bson.ObjectID) (*data.Invitation, error)
	ListPendingByReceiver(ctx context.Context, receiverEmail string) ([]*data.Invitation, error)
	Save(ctx context.Context, inv *data.Invitation) error
}

// UserView is the caller-facing shape of a user profile.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductView is the caller-facing shape of an embedded product.
type ProductView struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Link  string   `json:"link,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// CommentView is the caller-facing shape of an embedded comment.
// CommenterEmail is only resolved where the operation resolves it
// (direct fetch and comment-adding, not the feed).
type CommentView struct {
	ID             string    `json:"id"`
	Commenter      string    `json:"commenter"`
	CommenterEmail string    `json:"commenter_email,omitempty"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}

// WishlistView is the caller-facing shape of a wishlist aggregate with
// identity fields resolved for display.
type WishlistView struct {
	ID           string        `json:"id"`
	Owner        string        `json:"owner"`
	OwnerEmail   string        `json:"owner_email,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Products     []ProductView `json:"products"`
	Comments     []CommentView `json:"comments"`
	InvitedUsers []string      `json:"invited_users"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// InvitationView is the caller-facing shape of a pending invitation,
// annotated with the sender's email.
type InvitationView struct {
	ID            string    `json:"id"`
	SenderEmail   string    `json:"sender_email,omitempty"`
	ReceiverEmail string    `json:"receiver_email"`
	Wishlist      string    `json:"wishlist"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// emailResolver looks up user emails by id with a per-call cache so a
// feed with many wishlists from one owner hits the store once. A
// deleted user resolves to the empty string rather than an error.
type emailResolver struct {
	users UsersStore
	cache map[bson.ObjectID]string
}

func newEmailResolver(users UsersStore) *emailResolver {
	return &emailResolver{users: users, cache: make(map[bson.ObjectID]string)}
}

func (r *emailResolver) resolve(ctx context.Context, id bson.ObjectID) (string, error) {
	if email, ok := r.cache[id]; ok {
		return email, nil
	}
	user, err := r.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			r.cache[id] = ""
			return "", nil
		}
		return "", err
	}
	r.cache[id] = user.Email
	return user.Email, nil
}
