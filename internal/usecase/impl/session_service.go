// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	deliverycontext "pustaka/internal/delivery/context"
	"pustaka/internal/domain/entity"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/domain/repository"
	"pustaka/internal/domain/service"
	"pustaka/internal/usecase"

	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface for one realm.
type sessionService struct {
	principalRepo repository.PrincipalRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	logger        *slog.Logger
}

// NewSessionService is the constructor for sessionService. The realm it
// serves is whatever realm the injected repository serves.
func NewSessionService(
	principalRepo repository.PrincipalRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		principalRepo: principalRepo,
		hasher:        hasher,
		tokenService:  tokenService,
		logger:        logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger).With(
		slog.String("realm", srv.principalRepo.Realm().String()),
	)
}

// Realm identifies which principal population this instance serves.
func (srv *sessionService) Realm() entity.Realm {
	return srv.principalRepo.Realm()
}

// Register creates a new account and returns an initial access token.
func (srv *sessionService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Password == "" {
		return nil, domainerrors.ErrValidationFailed
	}

	// 1. Reject an already used email up front. The unique constraint on
	// the table still backs this up under concurrent registration.
	_, err := srv.principalRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrPrincipalNotFound) {
		srv.log(ctx).Error("Failed to check email availability", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to check email availability")
	}

	// 2. Hash the password and create the account.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	principal := &entity.Principal{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}
	if err := srv.principalRepo.Create(ctx, principal); err != nil {
		srv.log(ctx).Error("Failed to create principal", slog.Any("error", err))

		return nil, err
	}

	// 3. Store an opaque registration marker in the refresh token column.
	// It is not a JWT and can never satisfy the exact-match refresh
	// lookup together with signature verification, so the fresh account
	// still has to log in to obtain a usable session.
	marker := fmt.Sprintf("%s-%d", principal.ID, time.Now().UnixMilli())
	if err := srv.principalRepo.UpdateRefreshToken(ctx, principal.ID, marker); err != nil {
		srv.log(ctx).Error("Failed to store registration marker", slog.Any("error", err), slog.Any("principal_id", principal.ID))

		return nil, errors.Wrap(err, "failed to store registration marker")
	}

	// 4. Issue the initial access token. No refresh cookie at this point.
	accessToken, err := srv.tokenService.GenerateAccessToken(
		tokenSubject(principal),
		srv.tokenService.LoginAccessTTL(),
	)
	if err != nil {
		srv.log(ctx).Error("Failed to generate access token", slog.Any("error", err), slog.Any("principal_id", principal.ID))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Info("Principal registered", slog.Any("principal_id", principal.ID))

	return &usecase.RegisterOutput{
		Principal:   principal.Summary(),
		AccessToken: accessToken,
	}, nil
}

// Login verifies credentials and establishes a new session.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed
	}

	// 1. A missing account and a wrong password surface as different errors.
	principal, err := srv.principalRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}
		srv.log(ctx).Error("Failed to find principal by email", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find principal by email")
	}

	if !srv.hasher.Check(input.Password, principal.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	// 2. Mint both tokens.
	subject := tokenSubject(principal)
	accessToken, err := srv.tokenService.GenerateAccessToken(subject, srv.tokenService.LoginAccessTTL())
	if err != nil {
		srv.log(ctx).Error("Failed to generate access token", slog.Any("error", err), slog.Any("principal_id", principal.ID))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokenService.GenerateRefreshToken(subject)
	if err != nil {
		srv.log(ctx).Error("Failed to generate refresh token", slog.Any("error", err), slog.Any("principal_id", principal.ID))

		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	// 3. Overwrite the stored token. This is what invalidates any session
	// established by an earlier login on another device.
	if err := srv.principalRepo.UpdateRefreshToken(ctx, principal.ID, refreshToken); err != nil {
		srv.log(ctx).Error("Failed to store refresh token", slog.Any("error", err), slog.Any("principal_id", principal.ID))

		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	srv.log(ctx).Info("Principal logged in", slog.Any("principal_id", principal.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout clears the stored refresh token of the account holding the token.
func (srv *sessionService) Logout(ctx context.Context, refreshToken string) (bool, error) {
	principal, err := srv.principalRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			// Nothing to clear; the token is already invalid server-side.
			return false, nil
		}
		srv.log(ctx).Error("Failed to find principal by refresh token", slog.Any("error", err))

		return false, errors.Wrap(err, "failed to find principal by refresh token")
	}

	if err := srv.principalRepo.UpdateRefreshToken(ctx, principal.ID, ""); err != nil {
		srv.log(ctx).Error("Failed to clear refresh token", slog.Any("error", err), slog.Any("principal_id", principal.ID))

		return false, errors.Wrap(err, "failed to clear refresh token")
	}

	srv.log(ctx).Info("Principal logged out", slog.Any("principal_id", principal.ID))

	return true, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (srv *sessionService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	// 1. The stored-token lookup comes first: a token that no account
	// holds anymore is rejected even if its signature is still valid.
	principal, err := srv.principalRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, domainerrors.ErrForbidden
		}
		srv.log(ctx).Error("Failed to find principal by refresh token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find principal by refresh token")
	}

	// 2. Then verify signature and expiry.
	if _, err := srv.tokenService.ValidateRefreshToken(refreshToken); err != nil {
		srv.log(ctx).Warn("Refresh token failed verification", slog.Any("principal_id", principal.ID))

		return nil, domainerrors.ErrForbidden
	}

	// 3. Claims for the new access token come from the stored row, so a
	// renamed account propagates into the next access token.
	accessToken, err := srv.tokenService.GenerateAccessToken(
		tokenSubject(principal),
		srv.tokenService.RefreshAccessTTL(),
	)
	if err != nil {
		srv.log(ctx).Error("Failed to generate access token", slog.Any("error", err), slog.Any("principal_id", principal.ID))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Debug("Access token refreshed", slog.Any("principal_id", principal.ID))

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

func tokenSubject(principal *entity.Principal) service.TokenSubject {
	return service.TokenSubject{
		ID:    principal.ID,
		Name:  principal.Name,
		Email: principal.Email,
	}
}
