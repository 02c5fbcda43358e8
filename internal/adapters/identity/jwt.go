// Package identity resolves bearer credentials into caller identities.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prmf/premium-api/internal/domain"
)

// sessionClaims are the claims this service reads from an access token.
type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier resolves identities by verifying HMAC-signed access tokens
// locally, without a round trip to the identity backend.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for tokens signed with the given
// shared secret. Panics when the secret is empty.
func NewJWTVerifier(secret string) *JWTVerifier {
	if secret == "" {
		panic("identity: JWT secret is required")
	}

	return &JWTVerifier{secret: []byte(secret)}
}

// Resolve implements ports.IdentityProvider. Any verification failure,
// including expiry, maps to domain.ErrUnauthorized.
func (v *JWTVerifier) Resolve(_ context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.NewUnauthorizedError("missing bearer credential")
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewUnauthorizedError("token expired")
		}

		return nil, domain.NewUnauthorizedError("invalid token")
	}

	if !parsed.Valid {
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	if claims.Subject == "" {
		return nil, domain.NewUnauthorizedError("token has no subject")
	}

	return &domain.Identity{
		ID:    claims.Subject,
		Email: claims.Email,
	}, nil
}
