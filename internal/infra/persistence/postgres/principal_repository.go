// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"pustaka/internal/domain/entity"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/domain/repository"
	"pustaka/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// principalRepository implements repository.PrincipalRepository using GORM.
// One instance serves one realm; the realm decides which table queries hit.
type principalRepository struct {
	db    *gorm.DB
	realm entity.Realm
}

// NewPrincipalRepository is the constructor for principalRepository.
// It returns the repository as a repository.PrincipalRepository interface, adhering to dependency inversion.
func NewPrincipalRepository(db *gorm.DB, realm entity.Realm) repository.PrincipalRepository {
	return &principalRepository{
		db:    db,
		realm: realm,
	}
}

// Realm identifies which principal population this repository serves.
func (repo *principalRepository) Realm() entity.Realm {
	return repo.realm
}

// FindByID retrieves a single principal by their unique ID.
func (repo *principalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error) {
	principalM := new(model.PrincipalModel)
	err := repo.table(ctx).Where("id = ?", id).First(principalM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, errors.Wrap(err, "failed to find principal by id")
	}

	return toPrincipalDomain(principalM), nil
}

// FindByEmail retrieves a single principal by their email address.
func (repo *principalRepository) FindByEmail(ctx context.Context, email string) (*entity.Principal, error) {
	principalM := new(model.PrincipalModel)
	err := repo.table(ctx).Where("email = ?", email).First(principalM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, errors.Wrap(err, "failed to find principal by email")
	}

	return toPrincipalDomain(principalM), nil
}

// FindByRefreshToken retrieves the principal whose stored refresh token equals
// the supplied value exactly. A logged-out principal stores NULL, so an empty
// token can never match a row.
func (repo *principalRepository) FindByRefreshToken(ctx context.Context, token string) (*entity.Principal, error) {
	if token == "" {
		return nil, repository.ErrPrincipalNotFound
	}

	principalM := new(model.PrincipalModel)
	err := repo.table(ctx).Where("refresh_token = ?", token).First(principalM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, errors.Wrap(err, "failed to find principal by refresh token")
	}

	return toPrincipalDomain(principalM), nil
}

// Create persists a new principal to the realm's table.
func (repo *principalRepository) Create(ctx context.Context, principal *entity.Principal) error {
	principalM := fromPrincipalDomain(principal)

	if err := repo.table(ctx).Create(principalM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create principal")
	}

	// Update the entity with the generated ID and timestamps
	principal.ID = principalM.ID
	principal.CreatedAt = principalM.CreatedAt
	principal.UpdatedAt = principalM.UpdatedAt

	return nil
}

// UpdateRefreshToken replaces the principal's stored refresh token.
// An empty token clears the column, which invalidates any outstanding token.
func (repo *principalRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	var value any
	if token != "" {
		value = token
	}

	result := repo.table(ctx).Where("id = ?", id).Update("refresh_token", value)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPrincipalNotFound
	}

	return nil
}

// List returns all principals in the realm, oldest first.
func (repo *principalRepository) List(ctx context.Context) ([]*entity.Principal, error) {
	var principalMs []*model.PrincipalModel
	if err := repo.table(ctx).Order("created_at ASC").Find(&principalMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list principals")
	}

	principals := make([]*entity.Principal, 0, len(principalMs))
	for _, principalM := range principalMs {
		principals = append(principals, toPrincipalDomain(principalM))
	}

	return principals, nil
}

func (repo *principalRepository) table(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Table(repo.realm.TableName()).Model(&model.PrincipalModel{})
}

// toPrincipalDomain maps the persistence model back to a pure domain entity.
func toPrincipalDomain(principalM *model.PrincipalModel) *entity.Principal {
	refreshToken := ""
	if principalM.RefreshToken != nil {
		refreshToken = *principalM.RefreshToken
	}

	return &entity.Principal{
		ID:           principalM.ID,
		Name:         principalM.Name,
		Email:        principalM.Email,
		PasswordHash: principalM.Password,
		RefreshToken: refreshToken,
		CreatedAt:    principalM.CreatedAt,
		UpdatedAt:    principalM.UpdatedAt,
	}
}

// fromPrincipalDomain maps a pure domain entity to a GORM persistence model.
func fromPrincipalDomain(principal *entity.Principal) *model.PrincipalModel {
	var refreshToken *string
	if principal.RefreshToken != "" {
		token := principal.RefreshToken
		refreshToken = &token
	}

	return &model.PrincipalModel{
		ID:           principal.ID,
		Name:         principal.Name,
		Email:        principal.Email,
		Password:     principal.PasswordHash,
		RefreshToken: refreshToken,
		CreatedAt:    principal.CreatedAt,
		UpdatedAt:    principal.UpdatedAt,
	}
}
