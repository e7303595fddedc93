package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPasswordCost("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CompareHashAndPassword(hash, "secret1"))
	assert.False(t, CompareHashAndPassword(hash, "secret2"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPasswordCost("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPasswordCost("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCompareRejectsMalformedHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-hash", "secret1"))
}

func TestHashPasswordAcceptsLongInput(t *testing.T) {
	long := strings.Repeat("p", 80)
	hash, err := HashPasswordCost(long, bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CompareHashAndPassword(hash, long))
	// only the first 72 bytes take part in the hash
	assert.True(t, CompareHashAndPassword(hash, long[:72]))
	assert.False(t, CompareHashAndPassword(hash, long[:71]))
}
