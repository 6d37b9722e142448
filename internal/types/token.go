package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token. The registered subject
// holds the account email.
type TokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Email returns the identity carried by the token
func (c *TokenClaims) Email() string {
	return c.Subject
}
