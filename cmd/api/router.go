package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakshamkanojia19/wishlist-server/internal/logger"
	"github.com/sakshamkanojia19/wishlist-server/internal/middleware"
)

// newRouter assembles the gin engine: request logging and CORS on every
// route, rate limiting on the credential endpoints only, and RequireAuth
// on everything else under /api.
func newRouter(srv *Server, tokens middleware.TokenVerifier, users middleware.UserLoader, limiter *middleware.LimiterStore, origins []string, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(origins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Wishlist API Running")
	})

	requireAuth := middleware.RequireAuth(tokens, users)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", middleware.RateLimit(limiter), srv.signup)
	auth.POST("/login", middleware.RateLimit(limiter), srv.login)
	auth.GET("/me", requireAuth, srv.me)

	wishlists := api.Group("/wishlists", requireAuth)
	wishlists.POST("", srv.createWishlist)
	wishlists.GET("/user", srv.listMyWishlists)
	wishlists.GET("/feed", srv.globalFeed)
	wishlists.GET("/:id", srv.getWishlist)
	wishlists.PUT("/:id", srv.updateWishlist)
	wishlists.DELETE("/:id", srv.deleteWishlist)
	wishlists.POST("/:id/products", srv.addProduct)
	wishlists.PUT("/:id/products/:productId", srv.updateProduct)
	wishlists.DELETE("/:id/products/:productId", srv.deleteProduct)
	wishlists.POST("/:id/comments", srv.addComment)

	invitations := api.Group("/invitations", requireAuth)
	invitations.POST("/send", srv.sendInvitation)
	invitations.GET("/received", srv.receivedInvitations)
	invitations.POST("/:invitationId/respond", srv.respondInvitation)

	return r
}
