package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"moveasy-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Context keys set by RequireAdmin.
const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

// AdminAuthorizer verifies that a bearer token belongs to an admin
type AdminAuthorizer interface {
	RequireAdmin(ctx context.Context, token string) (service.Identity, error)
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
// present reports whether any Authorization header was sent.
func BearerToken(c *gin.Context) (token string, present bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

// RequireAdmin aborts with 401 unless the request carries an admin's access token.
func RequireAdmin(authz AdminAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := BearerToken(c)
		if !present {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No authorization header"})
			return
		}

		id, err := authz.RequireAdmin(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrUnauthorized):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Admin access required"})
			return
		default:
			log.Error().Err(err).Str("path", c.FullPath()).Msg("admin authorization failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to verify admin access"})
			return
		}

		c.Set(UserIDKey, id.UserID)
		c.Set(UserEmailKey, id.Email)
		c.Next()
	}
}
