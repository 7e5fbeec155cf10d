package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sakshamkanojia19/wishlist-server/internal/access"
	"github.com/sakshamkanojia19/wishlist-server/internal/apierr"
	"github.com/sakshamkanojia19/wishlist-server/internal/data"
)

// Wishlists implements the wishlist aggregate operations. Every
// mutation loads the document, authorizes the actor, applies the
// change, refreshes updated_at, and saves the whole aggregate.
type Wishlists struct {
	store WishlistsStore
	users UsersStore
}

// NewWishlists returns a wishlist service over the given stores.
func NewWishlists(store WishlistsStore, users UsersStore) *Wishlists {
	return &Wishlists{store: store, users: users}
}

// WishlistPatch carries the updatable wishlist fields. An empty string
// means "no change": a caller cannot blank out the title or description
// through Update. That quirk matches observed behavior and is preserved
// deliberately rather than fixed.
type WishlistPatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProductInput carries the fields for adding or patching a product.
// Link and Price are pointers so an explicit empty link or zero price
// is distinguishable from "not provided" when patching.
type ProductInput struct {
	Name  string   `json:"name"`
	Link  *string  `json:"link"`
	Price *float64 `json:"price"`
}

// Create makes a new, empty wishlist owned by the actor.
func (s *Wishlists) Create(ctx context.Context, owner *data.User, title, description string) (*WishlistView, error) {
	if title == "" {
		return nil, apierr.BadRequest("title is required")
	}

	now := time.Now()
	w := &data.Wishlist{
		Owner:        owner.ID,
		Title:        title,
		Description:  description,
		Products:     []data.Product{},
		Comments:     []data.Comment{},
		InvitedUsers: []bson.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, w); err != nil {
		return nil, apierr.Internal("failed to create wishlist", err)
	}

	return s.view(ctx, w, false)
}

// Update applies the non-empty fields of the patch. Requires write
// access (owner or collaborator).
func (s *Wishlists) Update(ctx context.Context, actor *data.User, id bson.ObjectID, patch WishlistPatch) (*WishlistView, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(w, actor.ID) {
		return nil, apierr.Forbidden("not authorized to update")
	}

	if patch.Title != "" {
		w.Title = patch.Title
	}
	if patch.Description != "" {
		w.Description = patch.Description
	}
	w.UpdatedAt = time.Now()

	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	return s.view(ctx, w, false)
}

// Delete removes the wishlist. Owner only; collaborators may write but
// never delete.
func (s *Wishlists) Delete(ctx context.Context, actor *data.User, id bson.ObjectID) error {
	w, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanDelete(w, actor.ID) {
		return apierr.Forbidden("only the owner can delete")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return apierr.NotFound("wishlist not found")
		}
		return apierr.Internal("failed to delete wishlist", err)
	}
	return nil
}

// AddProduct appends a product to the wishlist. Requires write access.
// The price is stored as given: this layer imposes no range validation,
// so negative prices are accepted (preserved permissive behavior).
func (s *Wishlists) AddProduct(ctx context.Context, actor *data.User, id bson.ObjectID, input ProductInput) (*WishlistView, error) {
	if input.Name == "" {
		return nil, apierr.BadRequest("product name required")
	}

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(w, actor.ID) {
		return nil, apierr.Forbidden("not authorized to modify")
	}

	product := data.Product{
		ID:    bson.NewObjectID(),
		Name:  input.Name,
		Price: input.Price,
	}
	if input.Link != nil {
		product.Link = *input.Link
	}
	w.Products = append(w.Products, product)
	w.UpdatedAt = time.Now()

	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	return s.view(ctx, w, false)
}

// UpdateProduct patches one product in place. Name changes only when
// non-empty; link and price change whenever provided, so an explicit
// empty link clears it and an explicit zero price is applied.
func (s *Wishlists) UpdateProduct(ctx context.Context, actor *data.User, id, productID bson.ObjectID, input ProductInput) (*WishlistView, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(w, actor.ID) {
		return nil, apierr.Forbidden("not authorized to modify")
	}

	product := w.FindProduct(productID)
	if product == nil {
		return nil, apierr.NotFound("product not found")
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Link != nil {
		product.Link = *input.Link
	}
	if input.Price != nil {
		product.Price = input.Price
	}
	w.UpdatedAt = time.Now()

	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	return s.view(ctx, w, false)
}

// DeleteProduct removes one product from the wishlist. Requires write
// access.
func (s *Wishlists) DeleteProduct(ctx context.Context, actor *data.User, id, productID bson.ObjectID) (*WishlistView, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(w, actor.ID) {
		return nil, apierr.Forbidden("not authorized to modify")
	}

	found := false
	kept := w.Products[:0]
	for _, p := range w.Products {
		if p.ID == productID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return nil, apierr.NotFound("product not found")
	}
	w.Products = kept
	w.UpdatedAt = time.Now()

	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	return s.view(ctx, w, false)
}

// AddComment appends a comment by the actor. There is no write gate on
// commenting: any authenticated user may comment on any wishlist, which
// is looser than the product-modification gate and intentional.
func (s *Wishlists) AddComment(ctx context.Context, actor *data.User, id bson.ObjectID, text string) (*WishlistView, error) {
	if text == "" {
		return nil, apierr.BadRequest("comment content required")
	}

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	w.Comments = append(w.Comments, data.Comment{
		ID:        bson.NewObjectID(),
		Commenter: actor.ID,
		Comment:   text,
		CreatedAt: time.Now(),
	})
	w.UpdatedAt = time.Now()

	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	return s.view(ctx, w, true)
}

// ListMine returns the wishlists owned by the actor.
func (s *Wishlists) ListMine(ctx context.Context, owner *data.User) ([]*WishlistView, error) {
	lists, err := s.store.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apierr.Internal("failed to list wishlists", err)
	}

	views := make([]*WishlistView, 0, len(lists))
	for _, w := range lists {
		v, err := s.view(ctx, w, false)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Feed returns every wishlist, newest first, with owner emails
// resolved. Readable by any authenticated caller.
func (s *Wishlists) Feed(ctx context.Context) ([]*WishlistView, error) {
	lists, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, apierr.Internal("failed to list feed", err)
	}

	resolver := newEmailResolver(s.users)
	views := make([]*WishlistView, 0, len(lists))
	for _, w := range lists {
		v, err := s.buildView(ctx, w, false, resolver)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Get returns one wishlist with owner and commenter emails resolved.
func (s *Wishlists) Get(ctx context.Context, id bson.ObjectID) (*WishlistView, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, w, true)
}

func (s *Wishlists) load(ctx context.Context, id bson.ObjectID) (*data.Wishlist, error) {
	w, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, apierr.NotFound("wishlist not found")
		}
		return nil, apierr.Internal("failed to load wishlist", err)
	}
	return w, nil
}

func (s *Wishlists) save(ctx context.Context, w *data.Wishlist) error {
	if err := s.store.Save(ctx, w); err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return apierr.NotFound("wishlist not found")
		}
		return apierr.Internal("failed to save wishlist", err)
	}
	return nil
}

func (s *Wishlists) view(ctx context.Context, w *data.Wishlist, resolveComments bool) (*WishlistView, error) {
	return s.buildView(ctx, w, resolveComments, newEmailResolver(s.users))
}

func (s *Wishlists) buildView(ctx context.Context, w *data.Wishlist, resolveComments bool, resolver *emailResolver) (*WishlistView, error) {
	ownerEmail, err := resolver.resolve(ctx, w.Owner)
	if err != nil {
		return nil, apierr.Internal("failed to resolve owner", err)
	}

	products := make([]ProductView, 0, len(w.Products))
	for _, p := range w.Products {
		products = append(products, ProductView{
			ID:    p.ID.Hex(),
			Name:  p.Name,
			Link:  p.Link,
			Price: p.Price,
		})
	}

	comments := make([]CommentView, 0, len(w.Comments))
	for _, c := range w.Comments {
		cv := CommentView{
			ID:        c.ID.Hex(),
			Commenter: c.Commenter.Hex(),
			Comment:   c.Comment,
			CreatedAt: c.CreatedAt,
		}
		if resolveComments {
			email, err := resolver.resolve(ctx, c.Commenter)
			if err != nil {
				return nil, apierr.Internal("failed to resolve commenter", err)
			}
			cv.CommenterEmail = email
		}
		comments = append(comments, cv)
	}

	invited := make([]string, 0, len(w.InvitedUsers))
	for _, id := range w.InvitedUsers {
		invited = append(invited, id.Hex())
	}

	return &WishlistView{
		ID:           w.ID.Hex(),
		Owner:        w.Owner.Hex(),
		OwnerEmail:   ownerEmail,
		Title:        w.Title,
		Description:  w.Description,
		Products:     products,
		Comments:     comments,
		InvitedUsers: invited,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}, nil
}
