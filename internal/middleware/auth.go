package middleware

import (
	"net/http"
	"strings"

	domainUser "contact-keeper/internal/domain/user"
	"contact-keeper/pkg/token"
	"contact-keeper/pkg/utils"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// BearerToken extracts the bearer credential from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// AuthMiddleware verifies the access-scoped bearer token and resolves its
// subject to a user record. Any decode or lookup failure aborts with 401.
func AuthMiddleware(tokens *token.Manager, users domainUser.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer, ok := BearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		claims, err := tokens.Decode(bearer, token.ScopeAccess)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*domainUser.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*domainUser.User)
	return u, ok
}
