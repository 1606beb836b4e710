// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"pustaka/config"
	"pustaka/internal/delivery/http/response"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler serves the session routes of one realm. The user and admin
// realms each get their own instance wired to that realm's session usecase.
type AuthHandler struct {
	uc        usecase.SessionUsecase
	cookieCfg config.CookieConfig
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(uc usecase.SessionUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:        uc,
		cookieCfg: cfg.Cookie,
		logger:    logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles the registration request. It answers with an initial
// access token but deliberately sets no refresh cookie.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, response.Registered{
		Status:      response.StatusSuccess,
		Message:     "Registrasi berhasil",
		Principal:   output.Principal,
		AccessToken: output.AccessToken,
	})
}

// Login handles the login request and delivers the refresh token as a cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.refreshCookie(output.RefreshToken, int(h.cookieCfg.MaxAge.Seconds())))

	return c.JSON(http.StatusOK, response.AccessToken{AccessToken: output.AccessToken})
}

// Logout clears the session behind the refresh cookie. No cookie is a 401,
// an unknown token answers 204 and a cleared session answers 200.
func (h *AuthHandler) Logout(c echo.Context) error {
	refreshToken, err := h.refreshTokenFromCookie(c)
	if err != nil {
		return err
	}

	cleared, err := h.uc.Logout(c.Request().Context(), refreshToken)
	if err != nil {
		return errors.WithStack(err)
	}
	if !cleared {
		return c.NoContent(http.StatusNoContent)
	}

	c.SetCookie(h.refreshCookie("", -1))

	return c.NoContent(http.StatusOK)
}

// Refresh exchanges the refresh cookie for a new access token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken, err := h.refreshTokenFromCookie(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.AccessToken{AccessToken: output.AccessToken})
}

func (h *AuthHandler) refreshTokenFromCookie(c echo.Context) (string, error) {
	cookie, err := c.Cookie(h.cookieCfg.Name)
	if err != nil || cookie.Value == "" {
		return "", domainerrors.ErrUnauthenticated
	}

	return cookie.Value, nil
}

func (h *AuthHandler) refreshCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieCfg.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: h.cookieCfg.HTTPOnly,
		Secure:   h.cookieCfg.Secure,
	}
}
