package impl

import (
	"context"
	"testing"

	"pustaka/internal/domain/entity"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/domain/repository"
	"pustaka/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Register_EmailTaken(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	existing := &entity.Principal{ID: uuid.New(), Email: "budi@example.com"}

	fx.principalRepo.EXPECT().
		FindByEmail(ctx, existing.Email).
		Return(existing, nil)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Budi",
		Email:    existing.Email,
		Password: "rahasia123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
	assert.Nil(t, output)
	fx.principalRepo.AssertNotCalled(t, "Create")
}

func TestSessionService_Register_MissingFields(t *testing.T) {
	fx := createTestSessionService(t)

	testCases := []struct {
		name  string
		input usecase.RegisterInput
	}{
		{"empty name", usecase.RegisterInput{Email: "budi@example.com", Password: "rahasia123"}},
		{"empty email", usecase.RegisterInput{Name: "Budi", Password: "rahasia123"}},
		{"empty password", usecase.RegisterInput{Name: "Budi", Email: "budi@example.com"}},
		{"whitespace name", usecase.RegisterInput{Name: "   ", Email: "budi@example.com", Password: "rahasia123"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := fx.service.Register(context.Background(), tc.input)

			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Nil(t, output)
		})
	}
}

func TestSessionService_Login_AccountNotFound(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	fx.principalRepo.EXPECT().
		FindByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrPrincipalNotFound)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "rahasia123",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
	assert.Nil(t, output)
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	principal := &entity.Principal{
		ID:           uuid.New(),
		Email:        "budi@example.com",
		PasswordHash: "hashed_password",
	}

	fx.principalRepo.EXPECT().
		FindByEmail(ctx, principal.Email).
		Return(principal, nil)
	fx.hasher.EXPECT().Check("salah", principal.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    principal.Email,
		Password: "salah",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, output)
	// A failed login must not touch the stored refresh token.
	fx.principalRepo.AssertNotCalled(t, "UpdateRefreshToken")
}

func TestSessionService_Refresh_UnknownToken(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	fx.principalRepo.EXPECT().
		FindByRefreshToken(ctx, "stale_token").
		Return(nil, repository.ErrPrincipalNotFound)

	output, err := fx.service.Refresh(ctx, "stale_token")

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Nil(t, output)
	// No account holds the token, so the signature is never even checked.
	fx.tokenService.AssertNotCalled(t, "ValidateRefreshToken")
}

func TestSessionService_Refresh_VerificationFails(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	principal := &entity.Principal{
		ID:           uuid.New(),
		Email:        "budi@example.com",
		RefreshToken: "tampered_token",
	}

	fx.principalRepo.EXPECT().
		FindByRefreshToken(ctx, "tampered_token").
		Return(principal, nil)
	fx.tokenService.EXPECT().
		ValidateRefreshToken("tampered_token").
		Return(nil, assert.AnError)

	output, err := fx.service.Refresh(ctx, "tampered_token")

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Nil(t, output)
	fx.tokenService.AssertNotCalled(t, "GenerateAccessToken")
}
