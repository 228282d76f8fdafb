package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tokens := NewTokens("secret", "portfolio-api", "portfolio-admin")
	token, err := tokens.GenerateToken("u-1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestValidateToken_Invalid(t *testing.T) {
	tokens := NewTokens("secret", "portfolio-api", "portfolio-admin")
	_, err := tokens.ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	token, err := NewTokens("secret", "portfolio-api", "someone-else").GenerateToken("u-1", "alice")
	require.NoError(t, err)

	_, err = NewTokens("secret", "portfolio-api", "portfolio-admin").ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewTokens("one", "portfolio-api", "portfolio-admin").GenerateToken("u-1", "alice")
	require.NoError(t, err)

	_, err = NewTokens("two", "portfolio-api", "portfolio-admin").ValidateToken(token)
	require.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.True(t, CheckPassword(hash, "hunter2"))
	require.False(t, CheckPassword(hash, "hunter3"))
}
