package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the parts of the hosted provider's access token the client relies on.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseAccessToken decodes the access token without verifying its signature.
// The token is signed by the provider with a key the client never sees; the
// provider verifies it on every request.
func ParseAccessToken(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	return claims, nil
}

// UserID is the subject of the token.
func (c *Claims) UserID() string {
	return c.Subject
}

// Expiry returns the zero time when the token carries no exp claim.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// NeedsRefresh is true once now is within leeway of the expiry.
// Tokens without an expiry never need a refresh.
func NeedsRefresh(expiresAt, now time.Time, leeway time.Duration) bool {
	if expiresAt.IsZero() {
		return false
	}
	return !now.Add(leeway).Before(expiresAt)
}
