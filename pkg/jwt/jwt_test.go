package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("s3cret", "admin", "admin", "ventas-analytics", 5)
	require.NoError(t, err)

	uid, role, err := Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", uid)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("s3cret", "u", "viewer", "x", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("s3cret", "u", "viewer", "x", -1)
	require.NoError(t, err)

	_, _, err = Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u", "viewer", "x", 5)
	assert.Error(t, err)
	_, _, err = Parse("", "abc")
	assert.Error(t, err)
}
