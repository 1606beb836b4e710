package usecase

import (
	"context"

	"pustaka/internal/domain/entity"

	"github.com/google/uuid"
)

// PrincipalUsecase exposes read access to the user realm's accounts.
type PrincipalUsecase interface {
	// List returns the public view of every account.
	List(ctx context.Context) ([]*entity.PrincipalSummary, error)

	// GetDetail returns the public view of one account.
	GetDetail(ctx context.Context, id uuid.UUID) (*entity.PrincipalSummary, error)
}
