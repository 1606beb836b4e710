// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"pustaka/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPrincipalNotFound is a domain-specific error returned when no principal matches a lookup.
var ErrPrincipalNotFound = errors.New("principal not found")

// PrincipalRepository defines the standard operations for one realm's
// principal records. The session manager depends on this interface and is
// instantiated once per realm (user, admin), never on a concrete store.
type PrincipalRepository interface {
	// Realm identifies which principal population this repository serves.
	Realm() entity.Realm

	// FindByID retrieves a single principal by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error)

	// FindByEmail retrieves a single principal by email address.
	FindByEmail(ctx context.Context, email string) (*entity.Principal, error)

	// FindByRefreshToken retrieves the principal whose stored refresh token
	// equals the supplied value exactly. This is the server-side check that
	// makes an overwritten or cleared token invalid before its own expiry.
	FindByRefreshToken(ctx context.Context, token string) (*entity.Principal, error)

	// Create persists a new principal. Fails when the email is taken.
	Create(ctx context.Context, principal *entity.Principal) error

	// UpdateRefreshToken replaces the principal's stored refresh token.
	// An empty token clears the column (logged-out state).
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	// List returns all principals in the realm.
	List(ctx context.Context) ([]*entity.Principal, error)
}
