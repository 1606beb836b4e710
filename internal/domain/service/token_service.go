package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by both token kinds:
// the principal's identity as the original API exposed it.
type Claims struct {
	PrincipalID uuid.UUID
	Name        string
	Email       string
	jwt.RegisteredClaims
}

// TokenSubject is the identity a token is minted for.
type TokenSubject struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// TokenService defines the interface for issuing and verifying the signed,
// time-limited tokens. Access and refresh tokens are signed with distinct
// secrets; a token of one kind never verifies as the other.
type TokenService interface {
	// GenerateAccessToken mints a short-lived access token with the given
	// time-to-live. The TTL is caller-supplied because the login flow and
	// the refresh flow are configured independently.
	GenerateAccessToken(subject TokenSubject, ttl time.Duration) (string, error)

	// GenerateRefreshToken mints a long-lived refresh token.
	GenerateRefreshToken(subject TokenSubject) (string, error)

	// ValidateAccessToken verifies signature and expiry against the access
	// secret and returns the decoded claims.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken verifies signature and expiry against the
	// refresh secret and returns the decoded claims.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// LoginAccessTTL returns the configured access-token lifetime for the
	// login and register flows.
	LoginAccessTTL() time.Duration

	// RefreshAccessTTL returns the configured access-token lifetime for
	// the refresh flow.
	RefreshAccessTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh-token lifetime.
	RefreshTokenTTL() time.Duration
}
