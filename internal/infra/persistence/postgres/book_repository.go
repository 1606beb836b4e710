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

// bookRepository implements repository.BookRepository using GORM.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository is the constructor for bookRepository.
func NewBookRepository(db *gorm.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

// FindAll returns every book in the catalog, oldest first.
func (repo *bookRepository) FindAll(ctx context.Context) ([]*entity.Book, error) {
	var bookMs []*model.BookModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&bookMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	books := make([]*entity.Book, 0, len(bookMs))
	for _, bookM := range bookMs {
		books = append(books, toBookDomain(bookM))
	}

	return books, nil
}

// FindByID retrieves a single book by its unique ID.
func (repo *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	bookM := new(model.BookModel)
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(bookM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book by id")
	}

	return toBookDomain(bookM), nil
}

// Create persists a new book record.
func (repo *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	if err := repo.db.WithContext(ctx).Create(bookM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create book")
	}

	book.ID = bookM.ID
	book.CreatedAt = bookM.CreatedAt
	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

// Update modifies an existing book record.
func (repo *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	result := repo.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":          bookM.Title,
			"author":         bookM.Author,
			"published_year": bookM.PublishedYear,
			"genre":          bookM.Genre,
			"pdf_url":        bookM.PDFURL,
			"thumbnail_url":  bookM.ThumbnailURL,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

// Delete removes a book record by ID.
func (repo *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BookModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

func toBookDomain(bookM *model.BookModel) *entity.Book {
	return &entity.Book{
		ID:            bookM.ID,
		Title:         bookM.Title,
		Author:        bookM.Author,
		PublishedYear: bookM.PublishedYear,
		Genre:         bookM.Genre,
		PDFURL:        bookM.PDFURL,
		ThumbnailURL:  bookM.ThumbnailURL,
		CreatedAt:     bookM.CreatedAt,
		UpdatedAt:     bookM.UpdatedAt,
	}
}

func fromBookDomain(book *entity.Book) *model.BookModel {
	return &model.BookModel{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		PublishedYear: book.PublishedYear,
		Genre:         book.Genre,
		PDFURL:        book.PDFURL,
		ThumbnailURL:  book.ThumbnailURL,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}
