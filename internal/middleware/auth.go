package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipes/backend/internal/models"
	"github.com/pageza/recipes/backend/internal/types"
)

// UserEmailKey is the gin context key holding the authenticated email
const UserEmailKey = "user_email"

// Authenticator verifies Basic credentials and Bearer tokens
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware accepts either HTTP Basic credentials or a Bearer token and
// aborts with 401 before the handler runs when neither is valid
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		var email string
		if username, password, ok := c.Request.BasicAuth(); ok {
			user, err := auth.Authenticate(c.Request.Context(), username, password)
			if err != nil {
				unauthorized(c, "invalid credentials")
				return
			}
			email = user.Email
		} else {
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				unauthorized(c, "invalid authorization header format")
				return
			}
			claims, err := auth.ValidateToken(token)
			if err != nil {
				unauthorized(c, "invalid token")
				return
			}
			email = claims.Email()
		}

		// Store user info in context
		c.Set(UserEmailKey, email)
		c.Next()
	}
}

// UserEmail returns the identity stored by AuthMiddleware
func UserEmail(c *gin.Context) (string, bool) {
	email := c.GetString(UserEmailKey)
	return email, email != ""
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Basic realm="recipes"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}
