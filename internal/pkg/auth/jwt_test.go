// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "POS Backend"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-that-is-long-enough",
			AccessTokenExpiry: time.Hour,
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateAccessToken("op-123", "alice", "cashier")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "op-123", claims.OperatorID)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "cashier", claims.Role)
	assert.Equal(t, "operator:op-123", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := NewJWTManager(testConfig())
	token, err := m.GenerateAccessToken("op-123", "alice", "cashier")
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "a-completely-different-secret-value"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	m := NewJWTManager(testConfig())

	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	m := NewJWTManager(cfg)

	token, err := m.GenerateAccessToken("op-123", "alice", "cashier")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "abc123", ExtractTokenFromHeader("bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc123"))
}

func TestHashAndVerifyPIN(t *testing.T) {
	hash, err := HashPIN("1234", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)

	assert.True(t, VerifyPIN("1234", hash))
	assert.False(t, VerifyPIN("4321", hash))
}

func TestHashPINTooShort(t *testing.T) {
	_, err := HashPIN("12", 4)
	assert.Error(t, err)
}
