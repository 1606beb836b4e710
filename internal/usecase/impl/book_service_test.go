package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"pustaka/config"
	"pustaka/internal/domain/entity"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/domain/repository"
	mockRepo "pustaka/internal/mocks/repository"
	mockSvc "pustaka/internal/mocks/service"
	"pustaka/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookServiceFixtures struct {
	service     usecase.BookUsecase
	bookRepo    *mockRepo.MockBookRepository
	fileStorage *mockSvc.MockFileStorage
}

func createTestBookService(t *testing.T) bookServiceFixtures {
	bookRepo := mockRepo.NewMockBookRepository(t)
	fileStorage := mockSvc.NewMockFileStorage(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Storage: &config.StorageConfig{
			Bucket:          "test-bucket",
			PublicBaseURL:   "https://storage.googleapis.com",
			PDFPrefix:       "pdfs",
			ThumbnailPrefix: "thumbnails",
		},
	}

	service := NewBookService(bookRepo, fileStorage, cfg, logger)

	return bookServiceFixtures{
		service:     service,
		bookRepo:    bookRepo,
		fileStorage: fileStorage,
	}
}

func pdfUpload(filename string) *usecase.FileUpload {
	return &usecase.FileUpload{
		Filename:    filename,
		ContentType: "application/pdf",
		Content:     strings.NewReader("%PDF-1.4"),
	}
}

func thumbnailUpload(filename, contentType string) *usecase.FileUpload {
	return &usecase.FileUpload{
		Filename:    filename,
		ContentType: contentType,
		Content:     strings.NewReader("image-bytes"),
	}
}

func keyWithPrefix(prefix, filename string) interface{} {
	return mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, prefix+"/") && strings.HasSuffix(key, "-"+filename)
	})
}

func TestBookService_Add_Success(t *testing.T) {
	fx := createTestBookService(t)

	ctx := context.Background()
	input := usecase.BookInput{
		Title:         "Laskar Pelangi",
		Author:        "Andrea Hirata",
		PublishedYear: 2005,
		Genre:         "Novel",
	}

	fx.fileStorage.EXPECT().
		Upload(ctx, keyWithPrefix("pdfs", "laskar.pdf"), "application/pdf", mock.Anything).
		Return("https://storage.googleapis.com/test-bucket/pdfs/1-laskar.pdf", nil)
	fx.fileStorage.EXPECT().
		Upload(ctx, keyWithPrefix("thumbnails", "cover.png"), "image/png", mock.Anything).
		Return("https://storage.googleapis.com/test-bucket/thumbnails/1-cover.png", nil)

	createdID := uuid.New()
	fx.bookRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Book")).
		Run(func(ctx context.Context, book *entity.Book) {
			book.ID = createdID
		}).
		Return(nil)

	book, err := fx.service.Add(ctx, input, pdfUpload("laskar.pdf"), thumbnailUpload("cover.png", "image/png"))

	require.NoError(t, err)
	assert.Equal(t, createdID, book.ID)
	assert.Equal(t, input.Title, book.Title)
	assert.Equal(t, "https://storage.googleapis.com/test-bucket/pdfs/1-laskar.pdf", book.PDFURL)
	assert.Equal(t, "https://storage.googleapis.com/test-bucket/thumbnails/1-cover.png", book.ThumbnailURL)
}

func TestBookService_Add_PDFRequired(t *testing.T) {
	fx := createTestBookService(t)

	input := usecase.BookInput{Title: "Laskar Pelangi", Author: "Andrea Hirata", PublishedYear: 2005}

	book, err := fx.service.Add(context.Background(), input, nil, nil)

	assert.ErrorIs(t, err, domainerrors.ErrPDFRequired)
	assert.Nil(t, book)
	fx.fileStorage.AssertNotCalled(t, "Upload")
}

func TestBookService_Add_RejectsUnsupportedTypes(t *testing.T) {
	fx := createTestBookService(t)

	input := usecase.BookInput{Title: "Laskar Pelangi", Author: "Andrea Hirata", PublishedYear: 2005}

	testCases := []struct {
		name      string
		pdf       *usecase.FileUpload
		thumbnail *usecase.FileUpload
	}{
		{"pdf slot with wrong type", thumbnailUpload("laskar.docx", "application/msword"), nil},
		{"thumbnail slot with gif", pdfUpload("laskar.pdf"), thumbnailUpload("cover.gif", "image/gif")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			book, err := fx.service.Add(context.Background(), input, tc.pdf, tc.thumbnail)

			assert.ErrorIs(t, err, domainerrors.ErrUnsupportedFileType)
			assert.Nil(t, book)
		})
	}

	// Nothing reaches storage when validation fails.
	fx.fileStorage.AssertNotCalled(t, "Upload")
}

func TestBookService_Add_MissingFields(t *testing.T) {
	fx := createTestBookService(t)

	book, err := fx.service.Add(context.Background(), usecase.BookInput{Title: "Laskar Pelangi"}, pdfUpload("laskar.pdf"), nil)

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, book)
}

func TestBookService_Update_ReplacesFiles(t *testing.T) {
	fx := createTestBookService(t)

	ctx := context.Background()
	existing := &entity.Book{
		ID:            uuid.New(),
		Title:         "Laskar Pelangi",
		Author:        "Andrea Hirata",
		PublishedYear: 2005,
		PDFURL:        "https://storage.googleapis.com/test-bucket/pdfs/1-old.pdf",
		ThumbnailURL:  "https://storage.googleapis.com/test-bucket/thumbnails/1-old.png",
	}

	fx.bookRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)
	fx.fileStorage.EXPECT().
		Upload(ctx, keyWithPrefix("pdfs", "new.pdf"), "application/pdf", mock.Anything).
		Return("https://storage.googleapis.com/test-bucket/pdfs/2-new.pdf", nil)
	fx.bookRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Book")).
		Return(nil)

	// The replaced PDF is cleaned up; the untouched thumbnail is kept.
	fx.fileStorage.EXPECT().
		Delete(ctx, "https://storage.googleapis.com/test-bucket/pdfs/1-old.pdf").
		Return(nil)

	input := usecase.BookInput{
		Title:         "Laskar Pelangi (Edisi Revisi)",
		Author:        "Andrea Hirata",
		PublishedYear: 2008,
		Genre:         "Novel",
	}

	book, err := fx.service.Update(ctx, existing.ID, input, pdfUpload("new.pdf"), nil)

	require.NoError(t, err)
	assert.Equal(t, input.Title, book.Title)
	assert.Equal(t, input.PublishedYear, book.PublishedYear)
	assert.Equal(t, "https://storage.googleapis.com/test-bucket/pdfs/2-new.pdf", book.PDFURL)
	assert.Equal(t, existing.ThumbnailURL, book.ThumbnailURL)
}

func TestBookService_Update_NotFound(t *testing.T) {
	fx := createTestBookService(t)

	ctx := context.Background()
	missingID := uuid.New()
	fx.bookRepo.EXPECT().FindByID(ctx, missingID).Return(nil, repository.ErrBookNotFound)

	input := usecase.BookInput{Title: "Laskar Pelangi", Author: "Andrea Hirata", PublishedYear: 2005}

	book, err := fx.service.Update(ctx, missingID, input, nil, nil)

	assert.ErrorIs(t, err, domainerrors.ErrBookNotFound)
	assert.Nil(t, book)
}

func TestBookService_Delete_RemovesRecordAndFiles(t *testing.T) {
	fx := createTestBookService(t)

	ctx := context.Background()
	existing := &entity.Book{
		ID:           uuid.New(),
		Title:        "Laskar Pelangi",
		PDFURL:       "https://storage.googleapis.com/test-bucket/pdfs/1-laskar.pdf",
		ThumbnailURL: "https://storage.googleapis.com/test-bucket/thumbnails/1-cover.png",
	}

	fx.bookRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)
	fx.bookRepo.EXPECT().Delete(ctx, existing.ID).Return(nil)
	fx.fileStorage.EXPECT().Delete(ctx, existing.PDFURL).Return(nil)
	fx.fileStorage.EXPECT().Delete(ctx, existing.ThumbnailURL).Return(nil)

	err := fx.service.Delete(ctx, existing.ID)

	require.NoError(t, err)
}

func TestBookService_Delete_SurvivesFileCleanupFailure(t *testing.T) {
	fx := createTestBookService(t)

	ctx := context.Background()
	existing := &entity.Book{
		ID:     uuid.New(),
		Title:  "Laskar Pelangi",
		PDFURL: "https://storage.googleapis.com/test-bucket/pdfs/1-laskar.pdf",
	}

	fx.bookRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)
	fx.bookRepo.EXPECT().Delete(ctx, existing.ID).Return(nil)
	fx.fileStorage.EXPECT().Delete(ctx, existing.PDFURL).Return(assert.AnError)

	err := fx.service.Delete(ctx, existing.ID)

	// The catalog entry is gone; a leftover object is only logged.
	require.NoError(t, err)
}

func TestBookService_Get_NotFound(t *testing.T) {
	fx := createTestBookService(t)

	ctx := context.Background()
	missingID := uuid.New()
	fx.bookRepo.EXPECT().FindByID(ctx, missingID).Return(nil, repository.ErrBookNotFound)

	book, err := fx.service.Get(ctx, missingID)

	assert.ErrorIs(t, err, domainerrors.ErrBookNotFound)
	assert.Nil(t, book)
}

func TestBookService_List(t *testing.T) {
	fx := createTestBookService(t)

	ctx := context.Background()
	books := []*entity.Book{
		{ID: uuid.New(), Title: "Laskar Pelangi"},
		{ID: uuid.New(), Title: "Bumi Manusia"},
	}
	fx.bookRepo.EXPECT().FindAll(ctx).Return(books, nil)

	listed, err := fx.service.List(ctx)

	require.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Equal(t, "Laskar Pelangi", listed[0].Title)
}
