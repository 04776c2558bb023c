package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, salt, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEmpty(t, salt)

	assert.True(t, strings.HasPrefix(hash, salt), "salt must be the hash prefix")
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	_, salt1, err := HashPassword("same-password")
	require.NoError(t, err)
	_, salt2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2, "each user gets a fresh random salt")
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", SanitizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "bob@example.com", SanitizeEmail("<b>bob@example.com</b>"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("alice@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}
