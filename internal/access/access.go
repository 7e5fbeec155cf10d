// Package access holds the pure authorization predicates for wishlists.
// All functions operate on already-loaded entities and have no side
// effects; loading and persistence are the caller's problem.
package access

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sakshamkanojia19/wishlist-server/internal/data"
)

// CanRead reports whether the actor may read the wishlist. Every
// wishlist is world-readable to authenticated callers: the global feed
// and direct-by-id fetches impose no ownership check.
func CanRead(w *data.Wishlist, actor bson.ObjectID) bool {
	return true
}

// CanWrite reports whether the actor may modify the wishlist's title,
// description or products: the owner, or any invited collaborator.
//
// Comment-adding is not gated by CanWrite; any authenticated user may
// comment on any wishlist.
func CanWrite(w *data.Wishlist, actor bson.ObjectID) bool {
	return w.Owner == actor || w.IsInvited(actor)
}

// CanDelete reports whether the actor may delete the wishlist itself.
// Collaborators never may; only the owner.
func CanDelete(w *data.Wishlist, actor bson.ObjectID) bool {
	return w.Owner == actor
}

// CanInvite reports whether the actor may send invitations for the
// wishlist. Owner only.
func CanInvite(w *data.Wishlist, actor bson.ObjectID) bool {
	return w.Owner == actor
}
