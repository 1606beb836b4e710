package usecase

import (
	"context"
	"io"

	"pustaka/internal/domain/entity"

	"github.com/google/uuid"
)

// FileUpload is an uploaded file as received by the transport layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// BookInput carries the catalog fields of a book.
type BookInput struct {
	Title         string
	Author        string
	PublishedYear int
	Genre         string
}

// BookUsecase defines the catalog operations.
type BookUsecase interface {
	// List returns every book in the catalog.
	List(ctx context.Context) ([]*entity.Book, error)

	// Get retrieves a single book by ID.
	Get(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// Add uploads the files and creates a new catalog entry. The PDF is
	// mandatory, the thumbnail optional. Files are fully stored before
	// the record is written.
	Add(ctx context.Context, input BookInput, pdf, thumbnail *FileUpload) (*entity.Book, error)

	// Update modifies a catalog entry. When replacement files are
	// supplied the old objects are removed after the new ones are stored.
	Update(ctx context.Context, id uuid.UUID, input BookInput, pdf, thumbnail *FileUpload) (*entity.Book, error)

	// Delete removes a catalog entry along with its stored files.
	Delete(ctx context.Context, id uuid.UUID) error
}
