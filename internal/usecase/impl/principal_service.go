package impl

import (
	"context"
	"log/slog"

	deliverycontext "pustaka/internal/delivery/context"
	"pustaka/internal/domain/entity"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/domain/repository"
	"pustaka/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// principalService implements the PrincipalUsecase interface for the user realm.
type principalService struct {
	principalRepo repository.PrincipalRepository
	logger        *slog.Logger
}

// NewPrincipalService is the constructor for principalService.
func NewPrincipalService(
	principalRepo repository.PrincipalRepository,
	logger *slog.Logger,
) usecase.PrincipalUsecase {
	return &principalService{
		principalRepo: principalRepo,
		logger:        logger,
	}
}

func (srv *principalService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the public view of every account.
func (srv *principalService) List(ctx context.Context) ([]*entity.PrincipalSummary, error) {
	principals, err := srv.principalRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list principals", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list principals")
	}

	summaries := make([]*entity.PrincipalSummary, 0, len(principals))
	for _, principal := range principals {
		summaries = append(summaries, principal.Summary())
	}

	return summaries, nil
}

// GetDetail returns the public view of one account.
func (srv *principalService) GetDetail(ctx context.Context, id uuid.UUID) (*entity.PrincipalSummary, error) {
	principal, err := srv.principalRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, domainerrors.ErrPrincipalNotFound
		}
		srv.log(ctx).Error("Failed to find principal", slog.Any("error", err), slog.Any("principal_id", id))

		return nil, errors.Wrap(err, "failed to find principal")
	}

	return principal.Summary(), nil
}
