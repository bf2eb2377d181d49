package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setTestKey(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
}

func TestGetSymmetricKeyRejectsBadLength(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "too-short")
	_, err := GetSymmetricKey()
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	setTestKey(t)

	token, err := GenerateAccessToken("user-1", "patient")
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "patient", claims.Role)
}

func TestValidateTokenChecksRole(t *testing.T) {
	setTestKey(t)

	token, err := GenerateAccessToken("user-1", "patient")
	assert.NoError(t, err)

	_, err = ValidateToken(token, "doctor")
	assert.Error(t, err)

	claims, err := ValidateToken(token, "doctor", "patient")
	assert.NoError(t, err)
	assert.Equal(t, "patient", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	setTestKey(t)

	_, err := ValidateToken("v2.local.not-a-real-token")
	assert.Error(t, err)
}

func TestGenerateTokensProducesDistinctPair(t *testing.T) {
	setTestKey(t)

	access, refresh, err := GenerateTokens("user-1", "doctor")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
}
