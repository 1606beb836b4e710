// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pustaka/config"
	"pustaka/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens are signed with distinct secrets so that one can
// never be validated against the other's key.
type jwtService struct {
	accessSecret     string
	refreshSecret    string
	loginAccessTTL   time.Duration
	refreshAccessTTL time.Duration
	refreshTTL       time.Duration
}

// NewJWTService is the constructor for jwtService.
// It refuses to start when either secret is missing.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:     cfg.SecretKey.Access,
		refreshSecret:    cfg.SecretKey.Refresh,
		loginAccessTTL:   cfg.Token.LoginAccessTTL,
		refreshAccessTTL: cfg.Token.RefreshAccessTTL,
		refreshTTL:       cfg.Token.RefreshTTL,
	}, nil
}

// GenerateAccessToken creates a short-lived access token for the given subject.
func (s *jwtService) GenerateAccessToken(subject service.TokenSubject, ttl time.Duration) (string, error) {
	return s.generateToken(subject, ttl, s.accessSecret)
}

// GenerateRefreshToken creates a refresh token carrying the same identity claims.
func (s *jwtService) GenerateRefreshToken(subject service.TokenSubject) (string, error) {
	return s.generateToken(subject, s.refreshTTL, s.refreshSecret)
}

// ValidateAccessToken parses and verifies an access token against the access secret.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return s.validateToken(tokenString, s.accessSecret)
}

// ValidateRefreshToken parses and verifies a refresh token against the refresh secret.
func (s *jwtService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret)
}

func (s *jwtService) LoginAccessTTL() time.Duration { return s.loginAccessTTL }

func (s *jwtService) RefreshAccessTTL() time.Duration { return s.refreshAccessTTL }

func (s *jwtService) RefreshTokenTTL() time.Duration { return s.refreshTTL }

func (s *jwtService) generateToken(subject service.TokenSubject, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := service.Claims{
		PrincipalID: subject.ID,
		Name:        subject.Name,
		Email:       subject.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			// The unique ID keeps two tokens minted within the same second
			// distinct, which the exact-match session invalidation relies on.
			ID:        uuid.NewString(),
			Subject:   subject.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

func (s *jwtService) validateToken(tokenString, secret string) (*service.Claims, error) {
	claims := new(service.Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}
