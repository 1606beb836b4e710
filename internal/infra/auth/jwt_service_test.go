package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pustaka/config"
	"pustaka/internal/domain/service"
)

func testTokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.Token = config.TokenConfig{
		LoginAccessTTL:   20 * time.Second,
		RefreshAccessTTL: 15 * time.Second,
		RefreshTTL:       24 * time.Hour,
	}

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	subject := service.TokenSubject{
		ID:    uuid.New(),
		Name:  "Budi",
		Email: "budi@example.com",
	}

	accessToken, err := jwtService.GenerateAccessToken(subject, jwtService.LoginAccessTTL())
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	refreshToken, err := jwtService.GenerateRefreshToken(subject)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.NotNil(t, accessClaims)
	assert.Equal(t, subject.ID, accessClaims.PrincipalID)
	assert.Equal(t, subject.Name, accessClaims.Name)
	assert.Equal(t, subject.Email, accessClaims.Email)

	// Validate refresh token
	refreshClaims, err := jwtService.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.NotNil(t, refreshClaims)
	assert.Equal(t, subject.ID, refreshClaims.PrincipalID)
}

func TestJWTService_SecretsAreNotInterchangeable(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)

	subject := service.TokenSubject{ID: uuid.New(), Name: "Budi", Email: "budi@example.com"}

	accessToken, err := jwtService.GenerateAccessToken(subject, jwtService.LoginAccessTTL())
	assert.NoError(t, err)

	refreshToken, err := jwtService.GenerateRefreshToken(subject)
	assert.NoError(t, err)

	// An access token must not validate against the refresh secret and vice versa.
	claims, err := jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)

	subject := service.TokenSubject{ID: uuid.New(), Name: "Budi", Email: "budi@example.com"}

	accessToken, err := jwtService.GenerateAccessToken(subject, -time.Minute)
	assert.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(accessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)

	// Test invalid token - using clearly non-JWT format
	invalidToken := "clearly-not-a-jwt-token-format"
	claims, err := jwtService.ValidateAccessToken(invalidToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := testTokenConfig()
	cfg.SecretKey.Access = ""
	cfg.SecretKey.Refresh = ""

	// Should fail to create service
	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_ConfiguredTTLs(t *testing.T) {
	jwtService, err := NewJWTService(testTokenConfig())
	assert.NoError(t, err)

	assert.Equal(t, 20*time.Second, jwtService.LoginAccessTTL())
	assert.Equal(t, 15*time.Second, jwtService.RefreshAccessTTL())
	assert.Equal(t, 24*time.Hour, jwtService.RefreshTokenTTL())
}
