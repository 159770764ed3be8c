// Package token decodes the access token for local display. The client
// holds no signing key, so claims are read without verification; the
// server remains the only authority on whether the token is still good.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrNotAJWT = errors.New("token is not a decodable JWT")

// Claims mirrors the payload the server embeds in its access tokens.
type Claims struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

// Valid satisfies jwt.Claims. Inspection never rejects a token; expiry is
// reported, not enforced, since the server is the authority.
func (c *Claims) Valid() error {
	return nil
}

// Inspect decodes the claims of a JWT without verifying its signature.
func Inspect(tokenString string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return Claims{}, ErrNotAJWT
	}
	return claims, nil
}

// IsExpired reports whether the decoded expiry has passed. Purely
// informational: the session is only cleared when the server says so.
func (c Claims) IsExpired(now time.Time) bool {
	return !c.ExpiredAt.IsZero() && now.After(c.ExpiredAt)
}
