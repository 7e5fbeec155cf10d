package main

import (
	"github.com/sakshamkanojia19/wishlist-server/internal/logger"
	"github.com/sakshamkanojia19/wishlist-server/internal/service"
)

// Server holds the wired services the HTTP handlers dispatch to.
type Server struct {
	accounts    *service.Accounts
	wishlists   *service.Wishlists
	invitations *service.Invitations
	log         *logger.Logger
}

// newServer returns a ready-to-use Server wired with the services.
func newServer(accounts *service.Accounts, wishlists *service.Wishlists, invitations *service.Invitations, log *logger.Logger) *Server {
	return &Server{
		accounts:    accounts,
		wishlists:   wishlists,
		invitations: invitations,
		log:         log,
	}
}
