package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"health-dashboard-be/internal/jwt"
)

// Gin context keys set by the identity middleware
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

var errNoIdentity = errors.New("no identity")

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// Identity resolves the caller from a JWT, or from the x-user-id header and
// userId query parameter when allowUserIDHeader is set.
type Identity struct {
	tokens            TokenValidator
	allowUserIDHeader bool
}

func NewIdentity(tokens TokenValidator, allowUserIDHeader bool) *Identity {
	return &Identity{tokens: tokens, allowUserIDHeader: allowUserIDHeader}
}

// Resolve records the caller when one can be resolved and never aborts.
func (i *Identity) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = i.resolve(c)
		c.Next()
	}
}

// Required rejects requests without a resolvable identity.
func (i *Identity) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := i.resolve(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage(err)})
			return
		}
		c.Next()
	}
}

// Optional lets anonymous requests through. A token that is present but
// invalid is still rejected.
func (i *Identity) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := i.resolve(c); err != nil && !errors.Is(err, errNoIdentity) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage(err)})
			return
		}
		c.Next()
	}
}

func (i *Identity) resolve(c *gin.Context) error {
	token := bearerToken(c)
	if token != "" {
		claims, err := i.tokens.ValidateToken(token)
		if err != nil {
			return err
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		return nil
	}

	if i.allowUserIDHeader {
		userID := strings.TrimSpace(c.GetHeader("x-user-id"))
		if userID == "" {
			userID = strings.TrimSpace(c.Query("userId"))
		}
		if userID != "" {
			c.Set(ContextUserID, userID)
			return nil
		}
	}
	return errNoIdentity
}

// bearerToken reads the Authorization header, falling back to the token
// query parameter browsers must use for websocket upgrades.
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.Query("token"))
}

func unauthorizedMessage(err error) string {
	if errors.Is(err, errNoIdentity) {
		return "Authentication required"
	}
	return "Invalid or expired token"
}

// UserID returns the caller resolved by Identity, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// Email returns the token holder's email, or "" when identity did not come
// from a token.
func Email(c *gin.Context) string {
	return c.GetString(ContextEmail)
}
