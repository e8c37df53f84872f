package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndCompare(t *testing.T) {
	t.Parallel()

	// MinCost keeps the test fast; production uses the default cost.
	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("correcthorsebatterystaple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correcthorsebatterystaple", hash)

	assert.NoError(t, verifier.Compare(hash, "correcthorsebatterystaple"))
	assert.Error(t, verifier.Compare(hash, "wrong-password"))
}

func TestNewBcryptHasherDefaultsCost(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestDummyCompare(t *testing.T) {
	t.Parallel()

	// Must not panic and must not be a no-op path that skips bcrypt.
	DummyCompare(NewBcryptVerifier())
}
