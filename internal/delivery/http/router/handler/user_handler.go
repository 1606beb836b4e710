package handler

import (
	"log/slog"
	"net/http"

	"pustaka/internal/delivery/http/middleware"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler serves the account listing routes of the user realm.
type UserHandler struct {
	uc     usecase.PrincipalUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(uc usecase.PrincipalUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

// GetUsers handles GET /users.
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, users)
}

// GetUserDetail handles GET /users/id. The ID comes from the access token,
// so a principal can only read its own record.
func (h *UserHandler) GetUserDetail(c echo.Context) error {
	principal := middleware.Principal(c)
	if principal == nil {
		return domainerrors.ErrUnauthenticated
	}

	user, err := h.uc.GetDetail(c.Request().Context(), principal.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, user)
}
