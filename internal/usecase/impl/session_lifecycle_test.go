package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"pustaka/config"
	"pustaka/internal/domain/entity"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/domain/repository"
	"pustaka/internal/infra/auth"
	"pustaka/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryPrincipalRepository is a stateful in-memory store used to exercise
// full session lifecycles with real tokens and real hashing.
type memoryPrincipalRepository struct {
	realm      entity.Realm
	principals map[uuid.UUID]*entity.Principal
}

func newMemoryPrincipalRepository(realm entity.Realm) *memoryPrincipalRepository {
	return &memoryPrincipalRepository{
		realm:      realm,
		principals: make(map[uuid.UUID]*entity.Principal),
	}
}

func (r *memoryPrincipalRepository) Realm() entity.Realm { return r.realm }

func (r *memoryPrincipalRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Principal, error) {
	if principal, ok := r.principals[id]; ok {
		copied := *principal

		return &copied, nil
	}

	return nil, repository.ErrPrincipalNotFound
}

func (r *memoryPrincipalRepository) FindByEmail(_ context.Context, email string) (*entity.Principal, error) {
	for _, principal := range r.principals {
		if principal.Email == email {
			copied := *principal

			return &copied, nil
		}
	}

	return nil, repository.ErrPrincipalNotFound
}

func (r *memoryPrincipalRepository) FindByRefreshToken(_ context.Context, token string) (*entity.Principal, error) {
	if token == "" {
		return nil, repository.ErrPrincipalNotFound
	}
	for _, principal := range r.principals {
		if principal.RefreshToken == token {
			copied := *principal

			return &copied, nil
		}
	}

	return nil, repository.ErrPrincipalNotFound
}

func (r *memoryPrincipalRepository) Create(_ context.Context, principal *entity.Principal) error {
	for _, existing := range r.principals {
		if existing.Email == principal.Email {
			return domainerrors.ErrEmailTaken
		}
	}
	principal.ID = uuid.New()
	copied := *principal
	r.principals[principal.ID] = &copied

	return nil
}

func (r *memoryPrincipalRepository) UpdateRefreshToken(_ context.Context, id uuid.UUID, token string) error {
	principal, ok := r.principals[id]
	if !ok {
		return repository.ErrPrincipalNotFound
	}
	principal.RefreshToken = token

	return nil
}

func (r *memoryPrincipalRepository) List(_ context.Context) ([]*entity.Principal, error) {
	principals := make([]*entity.Principal, 0, len(r.principals))
	for _, principal := range r.principals {
		copied := *principal
		principals = append(principals, &copied)
	}

	return principals, nil
}

func createLifecycleService(t *testing.T) (usecase.SessionUsecase, *memoryPrincipalRepository) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Token = config.TokenConfig{
		LoginAccessTTL:   20 * time.Second,
		RefreshAccessTTL: 15 * time.Second,
		RefreshTTL:       24 * time.Hour,
	}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	repo := newMemoryPrincipalRepository(entity.RealmUser)
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSessionService(repo, hasher, tokenService, logger), repo
}

func TestSessionLifecycle_RegisterThenLogin(t *testing.T) {
	service, repo := createLifecycleService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, usecase.RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "rahasia123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.AccessToken)

	// The registration marker cannot be exchanged for a session.
	stored, err := repo.FindByID(ctx, registered.Principal.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.RefreshToken)
	_, err = service.Refresh(ctx, stored.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// A real login establishes a usable session.
	session, err := service.Login(ctx, usecase.LoginInput{
		Email:    "budi@example.com",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	refreshed, err := service.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestSessionLifecycle_SecondLoginInvalidatesFirst(t *testing.T) {
	service, _ := createLifecycleService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, usecase.RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	input := usecase.LoginInput{Email: "budi@example.com", Password: "rahasia123"}

	first, err := service.Login(ctx, input)
	require.NoError(t, err)
	second, err := service.Login(ctx, input)
	require.NoError(t, err)

	// Only the token from the latest login matches the stored row.
	_, err = service.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	refreshed, err := service.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestSessionLifecycle_LogoutInvalidatesToken(t *testing.T) {
	service, _ := createLifecycleService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, usecase.RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	session, err := service.Login(ctx, usecase.LoginInput{
		Email:    "budi@example.com",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	cleared, err := service.Logout(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.True(t, cleared)

	// The token is dead server-side even though it has not expired.
	_, err = service.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// A repeated logout finds nothing to clear.
	cleared, err = service.Logout(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.False(t, cleared)
}
