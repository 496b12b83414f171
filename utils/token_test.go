package utils

import (
	"testing"

	"github.com/btbrandon/Orbital-2024/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Load()

	userID := uuid.New()
	token, err := GenerateToken(userID, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestParseToken_Garbage(t *testing.T) {
	config.Load()

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	config.Load()

	token, err := GenerateToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "a-different-secret"
	defer config.Load()

	_, err = ParseToken(token)
	assert.Error(t, err)
}
