package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	id := uuid.New()

	token, err := CreateToken(secret, id, "user", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.AccountID)
	assert.Equal(t, "user", claims.Role)
}

func TestTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	id := uuid.New()

	token, err := CreateToken([]byte("a"), id, "user", time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken([]byte("b"), token)
	assert.Error(t, err)

	expired, err := CreateToken([]byte("a"), id, "user", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken([]byte("a"), expired)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NoError(t, ComparePasswords(hash, "hunter22"))
	assert.Error(t, ComparePasswords(hash, "hunter23"))
}
