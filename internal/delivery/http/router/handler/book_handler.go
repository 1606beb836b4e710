package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"pustaka/internal/delivery/http/response"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookHandler serves the catalog routes.
type BookHandler struct {
	uc     usecase.BookUsecase
	logger *slog.Logger
}

// NewBookHandler is the constructor for BookHandler.
func NewBookHandler(uc usecase.BookUsecase, logger *slog.Logger) *BookHandler {
	return &BookHandler{uc: uc, logger: logger}
}

// List handles GET /books.
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, books)
}

// Get handles GET /books/:id.
func (h *BookHandler) Get(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}

	book, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, book)
}

// Add handles POST /books. The request is multipart: catalog fields plus a
// mandatory "pdf" file and an optional "thumbnail".
func (h *BookHandler) Add(c echo.Context) error {
	input, err := bookInput(c)
	if err != nil {
		return err
	}

	pdf, closePDF, err := fileUpload(c, "pdf")
	if err != nil {
		return err
	}
	defer closePDF()

	thumbnail, closeThumbnail, err := fileUpload(c, "thumbnail")
	if err != nil {
		return err
	}
	defer closeThumbnail()

	book, err := h.uc.Add(c.Request().Context(), input, pdf, thumbnail)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, book)
}

// Update handles PUT /books/:id. Files are optional; absent files keep the
// stored ones.
func (h *BookHandler) Update(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}

	input, err := bookInput(c)
	if err != nil {
		return err
	}

	pdf, closePDF, err := fileUpload(c, "pdf")
	if err != nil {
		return err
	}
	defer closePDF()

	thumbnail, closeThumbnail, err := fileUpload(c, "thumbnail")
	if err != nil {
		return err
	}
	defer closeThumbnail()

	book, err := h.uc.Update(c.Request().Context(), id, input, pdf, thumbnail)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Message{Message: "Book deleted successfully"})
}

func bookID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable ID can never match a record.
		return uuid.Nil, domainerrors.ErrBookNotFound
	}

	return id, nil
}

func bookInput(c echo.Context) (usecase.BookInput, error) {
	publishedYear := 0
	if raw := c.FormValue("publishedYear"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return usecase.BookInput{}, domainerrors.ErrValidationFailed
		}
		publishedYear = year
	}

	return usecase.BookInput{
		Title:         c.FormValue("title"),
		Author:        c.FormValue("author"),
		PublishedYear: publishedYear,
		Genre:         c.FormValue("genre"),
	}, nil
}

// fileUpload opens the named multipart file. A missing part is not an
// error; it yields a nil upload and a no-op closer.
func fileUpload(c echo.Context, name string) (*usecase.FileUpload, func(), error) {
	fileHeader, err := c.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}

		return nil, nil, domainerrors.ErrValidationFailed
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open uploaded file")
	}

	return &usecase.FileUpload{
		Filename:    fileHeader.Filename,
		ContentType: contentType(fileHeader),
		Content:     file,
	}, func() { _ = file.Close() }, nil
}

func contentType(fileHeader *multipart.FileHeader) string {
	return fileHeader.Header.Get(echo.HeaderContentType)
}
