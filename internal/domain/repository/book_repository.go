package repository

import (
	"context"
	"errors"

	"pustaka/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookNotFound is returned when no book matches the given ID.
var ErrBookNotFound = errors.New("book not found")

// BookRepository defines the standard operations for book persistence.
type BookRepository interface {
	// FindAll returns every book in the catalog.
	FindAll(ctx context.Context) ([]*entity.Book, error)

	// FindByID retrieves a single book by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// Create persists a new book record.
	Create(ctx context.Context, book *entity.Book) error

	// Update modifies an existing book record.
	Update(ctx context.Context, book *entity.Book) error

	// Delete removes a book record by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
