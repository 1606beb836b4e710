// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Principal is an authenticatable account. Users and admins share this shape
// and differ only in the realm (and therefore the table) they live in.
type Principal struct {
	ID           uuid.UUID // The unique identifier for the principal, assigned at creation.
	Name         string    // The principal's display name.
	Email        string    // The login identifier, unique within the principal's realm.
	PasswordHash string    // The bcrypt hash of the password. Never exposed outside the auth flows.
	// RefreshToken holds the one currently valid refresh token for this
	// principal ("" when logged out). Overwriting or clearing it logically
	// invalidates any previously issued refresh token, regardless of that
	// token's own expiry.
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary returns the public view of the principal, safe to put in responses.
func (p *Principal) Summary() *PrincipalSummary {
	return &PrincipalSummary{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
	}
}

// PrincipalSummary is the exposed subset of a Principal record.
type PrincipalSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
