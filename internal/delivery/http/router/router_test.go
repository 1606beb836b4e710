package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pustaka/config"
	"pustaka/internal/delivery/http/middleware"
	"pustaka/internal/delivery/http/router/handler"
	"pustaka/internal/domain/entity"
	"pustaka/internal/domain/service"
	mockSvc "pustaka/internal/mocks/service"
	"pustaka/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBookUsecase records which catalog operations the routes reached.
type recordingBookUsecase struct {
	listed  bool
	deleted bool
}

func (r *recordingBookUsecase) List(_ context.Context) ([]*entity.Book, error) {
	r.listed = true

	return []*entity.Book{}, nil
}

func (r *recordingBookUsecase) Get(_ context.Context, id uuid.UUID) (*entity.Book, error) {
	return &entity.Book{ID: id}, nil
}

func (r *recordingBookUsecase) Add(_ context.Context, input usecase.BookInput, _, _ *usecase.FileUpload) (*entity.Book, error) {
	return &entity.Book{Title: input.Title}, nil
}

func (r *recordingBookUsecase) Update(_ context.Context, id uuid.UUID, input usecase.BookInput, _, _ *usecase.FileUpload) (*entity.Book, error) {
	return &entity.Book{ID: id, Title: input.Title}, nil
}

func (r *recordingBookUsecase) Delete(_ context.Context, _ uuid.UUID) error {
	r.deleted = true

	return nil
}

type noopPrincipalUsecase struct{}

func (noopPrincipalUsecase) List(_ context.Context) ([]*entity.PrincipalSummary, error) {
	return []*entity.PrincipalSummary{}, nil
}

func (noopPrincipalUsecase) GetDetail(_ context.Context, id uuid.UUID) (*entity.PrincipalSummary, error) {
	return &entity.PrincipalSummary{ID: id}, nil
}

type routerFixtures struct {
	server   *echo.Echo
	tokenSvc *mockSvc.MockTokenService
	books    *recordingBookUsecase
}

func createTestRouter(t *testing.T) routerFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.Cookie = config.CookieConfig{Name: "refreshToken", MaxAge: 24 * time.Hour}

	tokenSvc := mockSvc.NewMockTokenService(t)
	books := &recordingBookUsecase{}

	authHandler := handler.NewAuthHandler(nil, cfg, logger)
	params := RouterParams{
		UserAuthHandler:  authHandler,
		AdminAuthHandler: authHandler,
		BookHandler:      handler.NewBookHandler(books, logger),
		UserHandler:      handler.NewUserHandler(noopPrincipalUsecase{}, logger),
		AuthMiddleware:   middleware.NewAuthMiddleware(tokenSvc),
	}

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	NewRouter(params).RegisterRoutes(e)

	return routerFixtures{server: e, tokenSvc: tokenSvc, books: books}
}

func (fx routerFixtures) do(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	fx.server.ServeHTTP(rec, req)

	return rec
}

func TestRouter_BookMutationsRequireToken(t *testing.T) {
	fx := createTestRouter(t)

	target := "/books/" + uuid.NewString()
	testCases := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/books"},
		{http.MethodPut, target},
		{http.MethodDelete, target},
	}

	for _, tc := range testCases {
		t.Run(tc.method, func(t *testing.T) {
			rec := fx.do(tc.method, tc.target, "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	assert.False(t, fx.books.deleted)
	fx.tokenSvc.AssertNotCalled(t, "ValidateAccessToken")
}

func TestRouter_BookDeleteWithValidToken(t *testing.T) {
	fx := createTestRouter(t)

	fx.tokenSvc.EXPECT().ValidateAccessToken("goodtoken").Return(&service.Claims{
		PrincipalID: uuid.New(),
	}, nil)

	rec := fx.do(http.MethodDelete, "/books/"+uuid.NewString(), "goodtoken")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, fx.books.deleted)
}

func TestRouter_BookReadsArePublic(t *testing.T) {
	fx := createTestRouter(t)

	rec := fx.do(http.MethodGet, "/books", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, fx.books.listed)
	fx.tokenSvc.AssertNotCalled(t, "ValidateAccessToken")
}

func TestRouter_UserRoutesRequireToken(t *testing.T) {
	fx := createTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, fx.do(http.MethodGet, "/users", "").Code)
	assert.Equal(t, http.StatusUnauthorized, fx.do(http.MethodGet, "/users/id", "").Code)
}
