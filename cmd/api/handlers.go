package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sakshamkanojia19/wishlist-server/internal/apierr"
	"github.com/sakshamkanojia19/wishlist-server/internal/data"
	"github.com/sakshamkanojia19/wishlist-server/internal/middleware"
	"github.com/sakshamkanojia19/wishlist-server/internal/service"
)

// respondErr translates a service error into its transport status. The
// cause of internal errors is logged here and never leaves the server.
func (s *Server) respondErr(c *gin.Context, err error) {
	kind := apierr.KindOf(err)
	if kind == apierr.KindInternal {
		s.log.Error("internal error", "path", c.FullPath(), "err", err)
	}
	c.JSON(apierr.HTTPStatus(kind), gin.H{"msg": apierr.PublicMessage(err)})
}

// actor returns the authenticated user attached by the auth middleware.
func (s *Server) actor(c *gin.Context) (*data.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		// Only reachable if a route skips RequireAuth; treat as a bug
		// surfaced to the caller as unauthenticated.
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
	}
	return user, ok
}

// pathID parses an ObjectID path parameter, replying BadRequest on
// malformed input.
func (s *Server) pathID(c *gin.Context, param string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return bson.ObjectID{}, false
	}
	return id, true
}

// --- auth ---

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}

	session, err := s.accounts.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}

	session, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) me(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.accounts.Profile(user))
}

// --- wishlists ---

type wishlistRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) createWishlist(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}

	view, err := s.wishlists.Create(c.Request.Context(), user, req.Title, req.Description)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) listMyWishlists(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	views, err := s.wishlists.ListMine(c.Request.Context(), user)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) globalFeed(c *gin.Context) {
	if _, ok := s.actor(c); !ok {
		return
	}
	views, err := s.wishlists.Feed(c.Request.Context())
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getWishlist(c *gin.Context) {
	if _, ok := s.actor(c); !ok {
		return
	}
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	view, err := s.wishlists.Get(c.Request.Context(), id)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) updateWishlist(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var patch service.WishlistPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}

	view, err := s.wishlists.Update(c.Request.Context(), user, id, patch)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) deleteWishlist(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if err := s.wishlists.Delete(c.Request.Context(), user, id); err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "wishlist deleted"})
}

func (s *Server) addProduct(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}

	view, err := s.wishlists.AddProduct(c.Request.Context(), user, id, input)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) updateProduct(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := s.pathID(c, "productId")
	if !ok {
		return
	}
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}

	view, err := s.wishlists.UpdateProduct(c.Request.Context(), user, id, productID, input)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) deleteProduct(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := s.pathID(c, "productId")
	if !ok {
		return
	}

	view, err := s.wishlists.DeleteProduct(c.Request.Context(), user, id, productID)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type commentRequest struct {
	Comment string `json:"comment"`
}

func (s *Server) addComment(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}

	view, err := s.wishlists.AddComment(c.Request.Context(), user, id, req.Comment)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// --- invitations ---

type sendInvitationRequest struct {
	WishlistID    string `json:"wishlist_id"`
	ReceiverEmail string `json:"receiver_email"`
}

func (s *Server) sendInvitation(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	var req sendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}
	if req.WishlistID == "" || req.ReceiverEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "wishlist id and receiver email required"})
		return
	}
	wishlistID, err := bson.ObjectIDFromHex(req.WishlistID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return
	}

	if err := s.invitations.Send(c.Request.Context(), user, wishlistID, req.ReceiverEmail); err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "invitation sent"})
}

func (s *Server) receivedInvitations(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	views, err := s.invitations.ListReceived(c.Request.Context(), user)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

type respondInvitationRequest struct {
	Action string `json:"action"`
}

func (s *Server) respondInvitation(c *gin.Context) {
	user, ok := s.actor(c)
	if !ok {
		return
	}
	id, ok := s.pathID(c, "invitationId")
	if !ok {
		return
	}
	var req respondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}

	if err := s.invitations.Respond(c.Request.Context(), user, id, req.Action); err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "invitation " + req.Action + "ed"})
}
