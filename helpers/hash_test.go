package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateHash(t *testing.T) {

	hash, err := GenerateHash("secret-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// bcrypt hashes always start with $2
	assert.True(t, strings.HasPrefix(hash, "$2"))

	// a random salt is used every time
	hash2, err := GenerateHash("secret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestCompareHash(t *testing.T) {

	hash, err := GenerateHash("secret-password")
	assert.NoError(t, err)

	ok, err := CompareHash(hash, "secret-password")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = CompareHash(hash, "wrong-password")
	assert.Error(t, err)
	assert.False(t, ok)
}
