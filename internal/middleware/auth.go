// Package middleware contains the gin middleware chain: authentication,
// CORS, per-key rate limiting and request logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sakshamkanojia19/wishlist-server/internal/auth"
	"github.com/sakshamkanojia19/wishlist-server/internal/data"
)

// userContextKey is the gin context key holding the authenticated user.
const userContextKey = "auth.user"

// TokenVerifier is the slice of the JWT manager the middleware needs.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*auth.Claims, error)
}

// UserLoader resolves a verified token's user id to a live user record.
type UserLoader interface {
	GetUserByID(ctx context.Context, id bson.ObjectID) (*data.User, error)
}

// CurrentUser returns the authenticated user attached by RequireAuth.
func CurrentUser(c *gin.Context) (*data.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*data.User)
	return user, ok
}

// RequireAuth verifies the Bearer token and re-loads the user record on
// every request, so a deleted account's tokens stop working
// immediately. The full user is attached for handlers via CurrentUser.
func RequireAuth(tokens TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "authorization token missing"})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}

		claims, err := tokens.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}

		userID, err := bson.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "user no longer exists"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}
