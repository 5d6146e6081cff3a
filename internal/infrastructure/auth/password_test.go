package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounthub/internal/infrastructure/auth"
)

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	hasher := auth.NewPasswordHasher(4) // minimum cost keeps the test fast

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.NoError(t, hasher.Compare(hash, "secret1"))
}

func TestPasswordHasher_CompareMismatch(t *testing.T) {
	hasher := auth.NewPasswordHasher(4)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	assert.ErrorIs(t, hasher.Compare(hash, "wrong-password"), auth.ErrPasswordMismatch)
}

func TestPasswordHasher_SaltsPerCall(t *testing.T) {
	hasher := auth.NewPasswordHasher(4)

	first, err := hasher.Hash("secret1")
	require.NoError(t, err)
	second, err := hasher.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, hasher.Compare(first, "secret1"))
	assert.NoError(t, hasher.Compare(second, "secret1"))
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	// An out-of-range cost must still produce a working hasher.
	hasher := auth.NewPasswordHasher(99)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "secret1"))
}

func TestPasswordHasher_CompareGarbageHash(t *testing.T) {
	hasher := auth.NewPasswordHasher(4)

	err := hasher.Compare("not-a-bcrypt-hash", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrPasswordMismatch)
}
