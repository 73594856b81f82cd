package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateToken(t *testing.T) {
	Configure("unit-test-secret")

	token, err := CreateToken("9b8a4f2e-0000-4000-8000-000000000001", "user@example.com")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "9b8a4f2e-0000-4000-8000-000000000001", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	Configure("secret-a")
	token, err := CreateToken("id", "user@example.com")
	require.NoError(t, err)

	Configure("secret-b")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
