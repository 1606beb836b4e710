// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"pustaka/internal/domain/entity"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterOutput is the result of a successful registration.
type RegisterOutput struct {
	Principal   *entity.PrincipalSummary
	AccessToken string
}

// LoginInput carries the credentials for a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput is the result of a successful login. The refresh token is
// handed to the transport layer, which decides how to deliver it.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshOutput is the result of a successful access token renewal.
type RefreshOutput struct {
	AccessToken string
}

// SessionUsecase defines the session management operations for one realm.
// The same interface serves users and admins; each realm gets its own
// instance bound to that realm's principal repository.
type SessionUsecase interface {
	// Realm identifies which principal population this instance serves.
	Realm() entity.Realm

	// Register creates a new account and returns an initial access token.
	// No refresh token is handed out; the client must log in to get one.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials, persists a fresh refresh token and
	// returns both tokens. Any previously stored refresh token for the
	// account is overwritten and thereby invalidated.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout clears the stored refresh token of whichever account holds
	// the supplied token. It reports whether a matching account was found.
	Logout(ctx context.Context, refreshToken string) (bool, error)

	// Refresh exchanges a valid refresh token for a new short-lived access
	// token. The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)
}
