package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sakshamkanojia19/wishlist-server/internal/data"
	"github.com/sakshamkanojia19/wishlist-server/internal/normalize"
)

// In-memory store fakes. Reads hand out copies so a mutation only
// persists when the service actually calls Save, same as the real
// stores.

type memUsers struct {
	byID map[bson.ObjectID]*data.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[bson.ObjectID]*data.User)}
}

func (m *memUsers) add(email, name string) *data.User {
	u := &data.User{
		ID:        bson.NewObjectID(),
		Email:     normalize.Email(email),
		Password:  "hash",
		Name:      name,
		CreatedAt: time.Now(),
	}
	m.byID[u.ID] = u
	return u
}

func (m *memUsers) remove(id bson.ObjectID) { delete(m.byID, id) }

func (m *memUsers) CreateUser(ctx context.Context, email, hashedPassword, name string) (*data.User, error) {
	email = normalize.Email(email)
	for _, u := range m.byID {
		if u.Email == email {
			return nil, data.ErrDuplicate
		}
	}
	u := &data.User{
		ID:        bson.NewObjectID(),
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		CreatedAt: time.Now(),
	}
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*data.User, error) {
	email = normalize.Email(email)
	for _, u := range m.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *memUsers) GetUserByID(ctx context.Context, id bson.ObjectID) (*data.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	c := *u
	return &c, nil
}

type memWishlists struct {
	byID map[bson.ObjectID]*data.Wishlist
}

func newMemWishlists() *memWishlists {
	return &memWishlists{byID: make(map[bson.ObjectID]*data.Wishlist)}
}

func cloneWishlist(w *data.Wishlist) *data.Wishlist {
	c := *w
	c.Products = append([]data.Product(nil), w.Products...)
	c.Comments = append([]data.Comment(nil), w.Comments...)
	c.InvitedUsers = append([]bson.ObjectID(nil), w.InvitedUsers...)
	return &c
}

func (m *memWishlists) Insert(ctx context.Context, w *data.Wishlist) error {
	w.ID = bson.NewObjectID()
	m.byID[w.ID] = cloneWishlist(w)
	return nil
}

func (m *memWishlists) GetByID(ctx context.Context, id bson.ObjectID) (*data.Wishlist, error) {
	w, ok := m.byID[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	return cloneWishlist(w), nil
}

func (m *memWishlists) Save(ctx context.Context, w *data.Wishlist) error {
	if _, ok := m.byID[w.ID]; !ok {
		return data.ErrNotFound
	}
	m.byID[w.ID] = cloneWishlist(w)
	return nil
}

func (m *memWishlists) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, ok := m.byID[id]; !ok {
		return data.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memWishlists) ListByOwner(ctx context.Context, owner bson.ObjectID) ([]*data.Wishlist, error) {
	var lists []*data.Wishlist
	for _, w := range m.byID {
		if w.Owner == owner {
			lists = append(lists, cloneWishlist(w))
		}
	}
	return lists, nil
}

func (m *memWishlists) ListAll(ctx context.Context) ([]*data.Wishlist, error) {
	var lists []*data.Wishlist
	for _, w := range m.byID {
		lists = append(lists, cloneWishlist(w))
	}
	sort.Slice(lists, func(i, j int) bool {
		return lists[i].CreatedAt.After(lists[j].CreatedAt)
	})
	return lists, nil
}

type memInvitations struct {
	byID map[bson.ObjectID]*data.Invitation
}

func newMemInvitations() *memInvitations {
	return &memInvitations{byID: make(map[bson.ObjectID]*data.Invitation)}
}

func (m *memInvitations) Insert(ctx context.Context, inv *data.Invitation) error {
	inv.ID = bson.NewObjectID()
	inv.ReceiverEmail = normalize.Email(inv.ReceiverEmail)
	c := *inv
	m.byID[inv.ID] = &c
	return nil
}

func (m *memInvitations) GetByID(ctx context.Context, id bson.ObjectID) (*data.Invitation, error) {
	inv, ok := m.byID[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	c := *inv
	return &c, nil
}

func (m *memInvitations) FindPending(ctx context.Context, sender bson.ObjectID, receiverEmail string, wishlist bson.ObjectID) (*data.Invitation, error) {
	receiverEmail = normalize.Email(receiverEmail)
	for _, inv := range m.byID {
		if inv.Sender == sender && inv.ReceiverEmail == receiverEmail &&
			inv.Wishlist == wishlist && inv.Status == data.InvitationPending {
			c := *inv
			return &c, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *memInvitations) ListPendingByReceiver(ctx context.Context, receiverEmail string) ([]*data.Invitation, error) {
	receiverEmail = normalize.Email(receiverEmail)
	var invs []*data.Invitation
	for _, inv := range m.byID {
		if inv.ReceiverEmail == receiverEmail && inv.Status == data.InvitationPending {
			c := *inv
			invs = append(invs, &c)
		}
	}
	return invs, nil
}

func (m *memInvitations) Save(ctx context.Context, inv *data.Invitation) error {
	if _, ok := m.byID[inv.ID]; !ok {
		return data.ErrNotFound
	}
	c := *inv
	m.byID[inv.ID] = &c
	return nil
}

// fixture wires the three services over shared in-memory stores.
type fixture struct {
	users *memUsers
	lists *memWishlists
	invs  *memInvitations

	wishlists   *Wishlists
	invitations *Invitations
}

func newFixture() *fixture {
	users := newMemUsers()
	lists := newMemWishlists()
	invs := newMemInvitations()
	return &fixture{
		users:       users,
		lists:       lists,
		invs:        invs,
		wishlists:   NewWishlists(lists, users),
		invitations: NewInvitations(invs, lists, users),
	}
}
