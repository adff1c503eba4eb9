package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/postboard/api/pkg/logger"
	"github.com/postboard/api/pkg/response"
)

const ContextUserID = logger.ContextUserID

// AccessVerifier turns an access token into the user id it was issued to.
type AccessVerifier interface {
	VerifyAccess(token string) (string, error)
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID string
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// AuthRequired is a middleware that checks for a valid access token and
// attaches the caller's identity to the request.
func AuthRequired(verifier AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			response.Unauthorized(c, "authorization header required")
			return
		}

		token, ok := BearerToken(c)
		if !ok {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		userID, err := verifier.VerifyAccess(token)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ContextUserID, userID)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), Identity{UserID: userID}))

		c.Next()
	}
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) string {
	if id, ok := IdentityFrom(c.Request.Context()); ok {
		return id.UserID
	}
	return c.GetString(ContextUserID)
}
