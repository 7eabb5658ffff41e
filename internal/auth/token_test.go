package auth

import (
	"testing"

	"workpush/internal/config"
	"workpush/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", models.UserRoleAdmin)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseToken_Invalid(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", models.UserRoleSeeker)
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "different-secret"
	defer func() { config.AppConfig.JWT.Secret = "test-secret" }()

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
