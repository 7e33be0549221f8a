// Package identity verifies bearer tokens and yields the caller's verified
// email address. The production verifier checks HS256 JWTs carrying an email
// claim; handlers only see the Verifier interface.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrNoEmail is returned for a valid token that carries no email claim.
var ErrNoEmail = errors.New("token has no email claim")

// Verifier turns a presented token into a verified email address.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Claims carried by an identity token.
type Claims struct {
	Email                string `json:"email"` // Verified email of the holder
	jwt.RegisteredClaims        // Standard JWT claims
}

// JWTVerifier validates HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier keyed by the shared signing secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and returns its email claim.
func (v *JWTVerifier) Verify(_ context.Context, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return v.secret, nil // Return the secret key for validation
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", jwt.ErrSignatureInvalid
	}
	if claims.Email == "" {
		return "", ErrNoEmail
	}
	return claims.Email, nil
}

// Sign issues a token for the given email, valid for ttl. Used by tooling
// and tests; the service itself only verifies.
func Sign(email, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(time.Now()),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
