package middleware

import (
	"strings"

	"github.com/thiagofalasca/finance-api/internal/apperr"
	"github.com/thiagofalasca/finance-api/internal/token"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Identity is the caller derived from a verified token.
type Identity struct {
	UserID  uint
	IsAdmin bool
}

// CallerIdentity returns the identity set by RequireAuth, if any.
func CallerIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// authenticate verifies the bearer token and attaches the caller identity
// to the request context. A missing token is an authentication failure; a
// token that does not verify is rejected as forbidden. It reports whether
// the request may proceed and never calls into the rest of the chain, so
// both gates can run it before their own checks.
func authenticate(c *gin.Context, mgr *token.Manager) bool {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		abortWith(c, apperr.Authentication("Token not provided, access denied."))
		return false
	}

	claims, err := mgr.Verify(tokenStr)
	if err != nil {
		abortWith(c, apperr.Forbidden("Invalid token, access denied."))
		return false
	}

	c.Set(identityKey, Identity{UserID: claims.UserID, IsAdmin: claims.IsAdmin})
	return true
}

// RequireAuth is the token gate. It never touches persistence.
func RequireAuth(mgr *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, mgr)
	}
}

// RequireAdmin composes the token gate with an admin check.
func RequireAdmin(mgr *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, mgr) {
			return
		}

		id, ok := CallerIdentity(c)
		if !ok || !id.IsAdmin {
			abortWith(c, apperr.Forbidden("Access denied, restricted to administrators."))
		}
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func abortWith(c *gin.Context, err *apperr.Error) {
	_ = c.Error(err)
	c.Abort()
}
