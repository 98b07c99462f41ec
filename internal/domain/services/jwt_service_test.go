package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-campus-service/internal/infrastructure/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	svc := NewJWTService(cfg)

	token, err := svc.GenerateToken(7, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 7, claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "smart-campus-service", claims["iss"])
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	svc := NewJWTService(cfg)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	issuer := NewJWTService(&config.Config{JWTSecretKey: "key-a"})
	verifier := NewJWTService(&config.Config{JWTSecretKey: "key-b"})

	token, err := issuer.GenerateToken(1, "admin")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}
