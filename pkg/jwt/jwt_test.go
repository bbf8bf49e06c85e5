package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := Generate("secreto", "user-1", RoleBodeguero, "stockmaster", 5)
	require.NoError(t, err)

	userID, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, RoleBodeguero, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secreto", "user-1", RoleAdmin, "stockmaster", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro-secreto", token)
	require.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate("secreto", "user-1", RoleAdmin, "stockmaster", -1)
	require.NoError(t, err)

	_, _, err = Parse("secreto", token)
	require.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "user-1", RoleAdmin, "x", 5)
	require.Error(t, err)
	_, _, err = Parse("", "abc")
	require.Error(t, err)
}
