package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"pustaka/config"
	deliverycontext "pustaka/internal/delivery/context"
	"pustaka/internal/domain/entity"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/domain/repository"
	"pustaka/internal/domain/service"
	"pustaka/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeJPEG = "image/jpeg"
	contentTypePNG  = "image/png"
)

// bookService implements the BookUsecase interface.
type bookService struct {
	bookRepo    repository.BookRepository
	fileStorage service.FileStorage
	storageCfg  *config.StorageConfig
	logger      *slog.Logger
}

// NewBookService is the constructor for bookService.
func NewBookService(
	bookRepo repository.BookRepository,
	fileStorage service.FileStorage,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.BookUsecase {
	return &bookService{
		bookRepo:    bookRepo,
		fileStorage: fileStorage,
		storageCfg:  cfg.Storage,
		logger:      logger,
	}
}

func (srv *bookService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns every book in the catalog.
func (srv *bookService) List(ctx context.Context) ([]*entity.Book, error) {
	books, err := srv.bookRepo.FindAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list books", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list books")
	}

	return books, nil
}

// Get retrieves a single book by ID.
func (srv *bookService) Get(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}
		srv.log(ctx).Error("Failed to find book", slog.Any("error", err), slog.Any("book_id", id))

		return nil, errors.Wrap(err, "failed to find book")
	}

	return book, nil
}

// Add uploads the files and creates a new catalog entry.
func (srv *bookService) Add(ctx context.Context, input usecase.BookInput, pdf, thumbnail *usecase.FileUpload) (*entity.Book, error) {
	if err := validateBookInput(input); err != nil {
		return nil, err
	}
	if pdf == nil {
		return nil, domainerrors.ErrPDFRequired
	}
	if err := validateUploadTypes(pdf, thumbnail); err != nil {
		return nil, err
	}

	// Uploads complete before the record is written, so the catalog never
	// points at files that are not fully stored.
	pdfURL, err := srv.fileStorage.Upload(ctx, srv.objectKey(srv.storageCfg.PDFPrefix, pdf.Filename), pdf.ContentType, pdf.Content)
	if err != nil {
		srv.log(ctx).Error("Failed to upload PDF", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to upload pdf")
	}

	thumbnailURL := ""
	if thumbnail != nil {
		thumbnailURL, err = srv.fileStorage.Upload(ctx, srv.objectKey(srv.storageCfg.ThumbnailPrefix, thumbnail.Filename), thumbnail.ContentType, thumbnail.Content)
		if err != nil {
			srv.log(ctx).Error("Failed to upload thumbnail", slog.Any("error", err))

			return nil, errors.Wrap(err, "failed to upload thumbnail")
		}
	}

	book := &entity.Book{
		Title:         input.Title,
		Author:        input.Author,
		PublishedYear: input.PublishedYear,
		Genre:         input.Genre,
		PDFURL:        pdfURL,
		ThumbnailURL:  thumbnailURL,
	}
	if err := srv.bookRepo.Create(ctx, book); err != nil {
		srv.log(ctx).Error("Failed to create book", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Book added", slog.Any("book_id", book.ID), slog.String("title", book.Title))

	return book, nil
}

// Update modifies a catalog entry, optionally replacing its files.
func (srv *bookService) Update(ctx context.Context, id uuid.UUID, input usecase.BookInput, pdf, thumbnail *usecase.FileUpload) (*entity.Book, error) {
	if err := validateBookInput(input); err != nil {
		return nil, err
	}
	if err := validateUploadTypes(pdf, thumbnail); err != nil {
		return nil, err
	}

	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book")
	}

	oldPDFURL, oldThumbnailURL := book.PDFURL, book.ThumbnailURL

	book.Title = input.Title
	book.Author = input.Author
	book.PublishedYear = input.PublishedYear
	book.Genre = input.Genre

	if pdf != nil {
		book.PDFURL, err = srv.fileStorage.Upload(ctx, srv.objectKey(srv.storageCfg.PDFPrefix, pdf.Filename), pdf.ContentType, pdf.Content)
		if err != nil {
			srv.log(ctx).Error("Failed to upload PDF", slog.Any("error", err))

			return nil, errors.Wrap(err, "failed to upload pdf")
		}
	}
	if thumbnail != nil {
		book.ThumbnailURL, err = srv.fileStorage.Upload(ctx, srv.objectKey(srv.storageCfg.ThumbnailPrefix, thumbnail.Filename), thumbnail.ContentType, thumbnail.Content)
		if err != nil {
			srv.log(ctx).Error("Failed to upload thumbnail", slog.Any("error", err))

			return nil, errors.Wrap(err, "failed to upload thumbnail")
		}
	}

	if err := srv.bookRepo.Update(ctx, book); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}
		srv.log(ctx).Error("Failed to update book", slog.Any("error", err), slog.Any("book_id", id))

		return nil, err
	}

	// Replaced files are removed only after the record points at the new
	// ones. A failed cleanup leaves an orphan object, nothing worse.
	if pdf != nil && oldPDFURL != "" {
		srv.deleteStoredFile(ctx, oldPDFURL)
	}
	if thumbnail != nil && oldThumbnailURL != "" {
		srv.deleteStoredFile(ctx, oldThumbnailURL)
	}

	srv.log(ctx).Info("Book updated", slog.Any("book_id", book.ID))

	return book, nil
}

// Delete removes a catalog entry along with its stored files.
func (srv *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return domainerrors.ErrBookNotFound
		}

		return errors.Wrap(err, "failed to find book")
	}

	if err := srv.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return domainerrors.ErrBookNotFound
		}
		srv.log(ctx).Error("Failed to delete book", slog.Any("error", err), slog.Any("book_id", id))

		return err
	}

	if book.PDFURL != "" {
		srv.deleteStoredFile(ctx, book.PDFURL)
	}
	if book.ThumbnailURL != "" {
		srv.deleteStoredFile(ctx, book.ThumbnailURL)
	}

	srv.log(ctx).Info("Book deleted", slog.Any("book_id", id))

	return nil
}

func (srv *bookService) deleteStoredFile(ctx context.Context, publicURL string) {
	if err := srv.fileStorage.Delete(ctx, publicURL); err != nil {
		srv.log(ctx).Warn("Failed to delete stored file", slog.Any("error", err), slog.String("url", publicURL))
	}
}

// objectKey builds a collision-resistant storage key that keeps the original
// filename readable.
func (srv *bookService) objectKey(prefix, filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))

	return fmt.Sprintf("%s/%d-%s", prefix, time.Now().UnixMilli(), name)
}

func validateBookInput(input usecase.BookInput) error {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Author) == "" ||
		input.PublishedYear == 0 {
		return domainerrors.ErrValidationFailed
	}

	return nil
}

func validateUploadTypes(pdf, thumbnail *usecase.FileUpload) error {
	if pdf != nil && pdf.ContentType != contentTypePDF {
		return domainerrors.ErrUnsupportedFileType
	}
	if thumbnail != nil && thumbnail.ContentType != contentTypeJPEG && thumbnail.ContentType != contentTypePNG {
		return domainerrors.ErrUnsupportedFileType
	}

	return nil
}
