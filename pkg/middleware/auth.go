package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/talentshowcase/search-service/pkg/jwt"
)

const (
	UserIDKey     = "user_id"
	UsernameKey   = "username"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthMiddleware extracts caller identity from JWT bearer tokens.
type AuthMiddleware struct {
	verifier *jwt.Verifier
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(verifier *jwt.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// OptionalAuth returns a Gin middleware that sets the caller's identity in
// the context when a valid bearer token is present, and lets the request
// through anonymously otherwise. Search uses the identity only to decorate
// results, never as an authorization boundary.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			c.Next()
			return
		}

		claims, err := m.verifier.Verify(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			c.Next()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

// CallerID extracts the authenticated caller's id from the Gin context.
// The second return value reports whether a caller is known.
func CallerID(c *gin.Context) (int, bool) {
	if id, exists := c.Get(UserIDKey); exists {
		if userID, ok := id.(int); ok {
			return userID, true
		}
	}
	return 0, false
}
