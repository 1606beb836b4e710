package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pustaka/internal/delivery/http/response"
	domainerrors "pustaka/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (int, response.Envelope) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.HandleHTTPError(err, c)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec.Code, envelope
}

func TestHandleHTTPError_AppError(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		wantCode    int
		wantStatus  string
		wantMessage string
	}{
		{"account not found", domainerrors.ErrAccountNotFound, http.StatusNotFound, response.StatusFail, "Akun tidak ditemukan"},
		{"wrong password", domainerrors.ErrInvalidCredentials, http.StatusBadRequest, response.StatusFail, "Password Salah"},
		{"forbidden", domainerrors.ErrForbidden, http.StatusForbidden, response.StatusFail, "Forbidden: Invalid or expired token"},
		{"missing token", domainerrors.ErrUnauthenticated, http.StatusUnauthorized, response.StatusFail, "Unauthorized: No token provided"},
		{"malformed token", domainerrors.ErrMalformedToken, http.StatusUnauthorized, response.StatusFail, "Unauthorized: Invalid token format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, envelope := handleError(t, tc.err)

			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantStatus, envelope.Status)
			assert.Equal(t, tc.wantMessage, envelope.Message)
		})
	}
}

func TestHandleHTTPError_WrappedAppError(t *testing.T) {
	code, envelope := handleError(t, errors.Wrap(domainerrors.ErrBookNotFound, "lookup"))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, response.StatusFail, envelope.Status)
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	code, envelope := handleError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "Method Not Allowed", envelope.Message)
}

func TestHandleHTTPError_UnknownErrorIsOpaque(t *testing.T) {
	code, envelope := handleError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, response.StatusError, envelope.Status)
	assert.Equal(t, "Internal Server Error", envelope.Message)
	assert.NotContains(t, envelope.Message, "pq:")
}
