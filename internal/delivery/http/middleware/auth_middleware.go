package middleware

import (
	"strings"

	"pustaka/internal/domain/entity"
	domainerrors "pustaka/internal/domain/errors"
	"pustaka/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// contextKeyPrincipal is the echo.Context key holding the authenticated principal.
const contextKeyPrincipal = "principal"

// AuthMiddleware guards protected routes with the access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token. A missing or malformed
// header is a 401; a token that fails verification is a 403. On success the
// token's identity claims are exposed to handlers via Principal.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrMalformedToken
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return domainerrors.ErrForbidden
		}

		c.Set(contextKeyPrincipal, &entity.PrincipalSummary{
			ID:    claims.PrincipalID,
			Name:  claims.Name,
			Email: claims.Email,
		})

		return next(c)
	}
}

// Principal returns the authenticated principal set by Authenticate, or nil
// on routes the middleware did not run on.
func Principal(c echo.Context) *entity.PrincipalSummary {
	principal, _ := c.Get(contextKeyPrincipal).(*entity.PrincipalSummary)

	return principal
}
