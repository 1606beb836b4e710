package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pustaka/internal/domain/entity"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/domain/repository"
	mockRepo "pustaka/internal/mocks/repository"
	"pustaka/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPrincipalService(t *testing.T) (usecase.PrincipalUsecase, *mockRepo.MockPrincipalRepository) {
	principalRepo := mockRepo.NewMockPrincipalRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewPrincipalService(principalRepo, logger), principalRepo
}

func TestPrincipalService_List_StripsCredentials(t *testing.T) {
	service, principalRepo := createTestPrincipalService(t)

	ctx := context.Background()
	principals := []*entity.Principal{
		{ID: uuid.New(), Name: "Budi", Email: "budi@example.com", PasswordHash: "hash", RefreshToken: "token"},
		{ID: uuid.New(), Name: "Siti", Email: "siti@example.com", PasswordHash: "hash"},
	}
	principalRepo.EXPECT().List(ctx).Return(principals, nil)

	summaries, err := service.List(ctx)

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, principals[0].ID, summaries[0].ID)
	assert.Equal(t, "Budi", summaries[0].Name)
	assert.Equal(t, "siti@example.com", summaries[1].Email)
}

func TestPrincipalService_GetDetail(t *testing.T) {
	service, principalRepo := createTestPrincipalService(t)

	ctx := context.Background()
	principal := &entity.Principal{ID: uuid.New(), Name: "Budi", Email: "budi@example.com"}
	principalRepo.EXPECT().FindByID(ctx, principal.ID).Return(principal, nil)

	summary, err := service.GetDetail(ctx, principal.ID)

	require.NoError(t, err)
	assert.Equal(t, principal.ID, summary.ID)
	assert.Equal(t, principal.Email, summary.Email)
}

func TestPrincipalService_GetDetail_NotFound(t *testing.T) {
	service, principalRepo := createTestPrincipalService(t)

	ctx := context.Background()
	missingID := uuid.New()
	principalRepo.EXPECT().FindByID(ctx, missingID).Return(nil, repository.ErrPrincipalNotFound)

	summary, err := service.GetDetail(ctx, missingID)

	assert.ErrorIs(t, err, domainerrors.ErrPrincipalNotFound)
	assert.Nil(t, summary)
}
