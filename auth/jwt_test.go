package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-platform/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func TestGenerateTokenPair(t *testing.T) {
	cfg := testConfig()

	access, refresh, err := GenerateTokenPair(cfg, "user-1", "user@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := ValidateAccessToken(cfg, access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	cfg := testConfig()

	_, refresh, err := GenerateTokenPair(cfg, "user-1", "user@example.com", "user")
	require.NoError(t, err)

	// refresh-токен подписан другим секретом и имеет type=refresh
	_, err = ValidateAccessToken(cfg, refresh)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	cfg := testConfig()

	access, _, err := GenerateTokenPair(cfg, "user-1", "user@example.com", "admin")
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "another-secret"
	_, err = ValidateAccessToken(other, access)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.JWTAccessExpiry = -time.Minute

	access, _, err := GenerateTokenPair(cfg, "user-1", "user@example.com", "user")
	require.NoError(t, err)

	_, err = ValidateAccessToken(cfg, access)
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	cfg := testConfig()

	_, refresh, err := GenerateTokenPair(cfg, "user-7", "seven@example.com", "user")
	require.NoError(t, err)

	newAccess, newRefresh, err := RefreshTokens(cfg, refresh)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(cfg, newAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.UserID)

	refClaims, err := ValidateRefreshToken(cfg, newRefresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refClaims.Type)
}
