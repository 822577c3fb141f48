package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by [Peek] when the raw token does not parse as a JWT.
// Opaque tokens are valid bearer credentials; callers treat this error as
// "no claims available", not as a failure.
var ErrNotJWT = errors.New("token is not a JWT")

// Claims is the subset of registered JWT claims surfaced to callers. Zero
// time values mean the claim was absent.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token looks expired at the given instant.
// Absent exp means never-expiring from the client's point of view.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Peek decodes the registered claims of raw without verifying its signature.
func Peek(raw string) (Claims, error) {
	var registered jwt.RegisteredClaims

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(raw, &registered); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	claims := Claims{Subject: registered.Subject}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}

	return claims, nil
}
