package middleware

import (
	"log/slog"
	"net/http"

	"pustaka/internal/delivery/http/response"
	domainerrors "pustaka/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Every error
// that reaches this point becomes a {status, message} envelope with the
// status code its taxonomy entry defines.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logError(err, c)
		}
		_ = c.JSON(appErr.HTTPCode(), response.Envelope{
			Status:  response.StatusFor(appErr.HTTPCode()),
			Message: appErr.Message(),
		})

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = c.JSON(httpErr.Code, response.Envelope{
			Status:  response.StatusFor(httpErr.Code),
			Message: message,
		})

		return
	}

	// Unexpected error: log with detail, answer opaquely.
	m.logError(err, c)
	_ = c.JSON(domainerrors.ErrInternalError.HTTPCode(), response.Envelope{
		Status:  response.StatusError,
		Message: domainerrors.ErrInternalError.Message(),
	})
}

func (m *ErrorMiddleware) logError(err error, c echo.Context) {
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
