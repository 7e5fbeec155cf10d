package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sakshamkanojia19/wishlist-server/internal/access"
	"github.com/sakshamkanojia19/wishlist-server/internal/apierr"
	"github.com/sakshamkanojia19/wishlist-server/internal/data"
	"github.com/sakshamkanojia19/wishlist-server/internal/normalize"
)

// Invitation response actions.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// Invitations implements the invitation state machine. An invitation is
// deliberately decoupled from wishlist membership: a pending or
// rejected invitation grants nothing, only the accept transition's side
// effect on invited_users does.
type Invitations struct {
	invs  InvitationsStore
	lists WishlistsStore
	users UsersStore
}

// NewInvitations returns an invitation service over the given stores.
func NewInvitations(invs InvitationsStore, lists WishlistsStore, users UsersStore) *Invitations {
	return &Invitations{invs: invs, lists: lists, users: users}
}

// Send creates a pending invitation from the wishlist owner to an
// existing user, addressed by email.
//
// The duplicate-pending check is a read before the insert, not an
// atomic constraint: two concurrent Sends for the same triple can both
// land. Known, accepted race.
func (s *Invitations) Send(ctx context.Context, sender *data.User, wishlistID bson.ObjectID, receiverEmail string) error {
	if receiverEmail == "" {
		return apierr.BadRequest("receiver email required")
	}
	receiverEmail = normalize.Email(receiverEmail)

	w, err := s.lists.GetByID(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return apierr.NotFound("wishlist not found")
		}
		return apierr.Internal("failed to load wishlist", err)
	}
	if !access.CanInvite(w, sender.ID) {
		return apierr.Forbidden("only the owner can send invitations")
	}

	// The receiver must resolve to a registered user at send time. The
	// invitation still stores only the email, so a receiver who changes
	// address afterwards becomes unreachable; lookup-by-email is the
	// contract here.
	receiver, err := s.users.GetUserByEmail(ctx, receiverEmail)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return apierr.NotFound("receiver user not found")
		}
		return apierr.Internal("failed to look up receiver", err)
	}
	if receiver.ID == sender.ID {
		return apierr.Conflict("cannot invite yourself")
	}

	_, err = s.invs.FindPending(ctx, sender.ID, receiverEmail, wishlistID)
	if err == nil {
		return apierr.Conflict("invitation already sent")
	}
	if !errors.Is(err, data.ErrNotFound) {
		return apierr.Internal("failed to check pending invitations", err)
	}

	inv := &data.Invitation{
		Sender:        sender.ID,
		ReceiverEmail: receiverEmail,
		Wishlist:      wishlistID,
		Status:        data.InvitationPending,
		CreatedAt:     time.Now(),
	}
	if err := s.invs.Insert(ctx, inv); err != nil {
		return apierr.Internal("failed to create invitation", err)
	}
	return nil
}

// ListReceived returns the actor's pending invitations, each annotated
// with the sender's email. Matching is case-insensitive through
// normalization.
func (s *Invitations) ListReceived(ctx context.Context, actor *data.User) ([]*InvitationView, error) {
	invs, err := s.invs.ListPendingByReceiver(ctx, actor.Email)
	if err != nil {
		return nil, apierr.Internal("failed to list invitations", err)
	}

	resolver := newEmailResolver(s.users)
	views := make([]*InvitationView, 0, len(invs))
	for _, inv := range invs {
		senderEmail, err := resolver.resolve(ctx, inv.Sender)
		if err != nil {
			return nil, apierr.Internal("failed to resolve sender", err)
		}
		views = append(views, &InvitationView{
			ID:            inv.ID.Hex(),
			SenderEmail:   senderEmail,
			ReceiverEmail: inv.ReceiverEmail,
			Wishlist:      inv.Wishlist.Hex(),
			Status:        inv.Status,
			CreatedAt:     inv.CreatedAt,
		})
	}
	return views, nil
}

// Respond moves a pending invitation to accepted or rejected. Only the
// receiver may respond, and only once: accepted and rejected are
// terminal states.
//
// On accept the actor is added to the wishlist's invited set before the
// invitation itself is persisted; if the wishlist has been deleted in
// the meantime nothing is persisted and the invitation stays pending.
// The membership add is idempotent, so accepting a duplicate invitation
// for the same wishlist cannot double-add.
func (s *Invitations) Respond(ctx context.Context, actor *data.User, invitationID bson.ObjectID, action string) error {
	if action != ActionAccept && action != ActionReject {
		return apierr.BadRequest("invalid action")
	}

	inv, err := s.invs.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return apierr.NotFound("invitation not found")
		}
		return apierr.Internal("failed to load invitation", err)
	}

	if normalize.Email(inv.ReceiverEmail) != normalize.Email(actor.Email) {
		return apierr.Forbidden("not the invitation receiver")
	}
	if inv.Status != data.InvitationPending {
		return apierr.Conflict("invitation already responded")
	}

	if action == ActionAccept {
		inv.Status = data.InvitationAccepted

		w, err := s.lists.GetByID(ctx, inv.Wishlist)
		if err != nil {
			if errors.Is(err, data.ErrNotFound) {
				return apierr.NotFound("wishlist not found")
			}
			return apierr.Internal("failed to load wishlist", err)
		}

		if !w.IsInvited(actor.ID) {
			w.InvitedUsers = append(w.InvitedUsers, actor.ID)
			w.UpdatedAt = time.Now()
			if err := s.lists.Save(ctx, w); err != nil {
				return apierr.Internal("failed to grant access", err)
			}
		}
	} else {
		inv.Status = data.InvitationRejected
	}

	if err := s.invs.Save(ctx, inv); err != nil {
		return apierr.Internal("failed to save invitation", err)
	}
	return nil
}
