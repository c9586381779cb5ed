package auth

import (
	"testing"

	"tastebud/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 4}, // bcrypt.MinCost keeps tests fast
	}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	password := "correct horse battery staple"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_FreshSaltPerHash(t *testing.T) {
	hasher := newTestHasher()

	password := "same password twice"
	first, err := hasher.Hash(password)
	require.NoError(t, err)
	second, err := hasher.Hash(password)
	require.NoError(t, err)

	// Random salts make the digests differ, yet both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check(password, first))
	assert.True(t, hasher.Check(password, second))
}

func TestBcryptHasher_WrongPassword(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("right password")
	require.NoError(t, err)

	assert.False(t, hasher.Check("wrong password", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_GarbageDigest(t *testing.T) {
	hasher := newTestHasher()

	// A corrupted digest verifies nothing but never panics or errors out.
	assert.False(t, hasher.Check("anything", "not-a-bcrypt-digest"))
}

func TestNewBcryptHasher_CostOutOfRangeFallsBack(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 99},
	}

	hasher := NewBcryptHasher(cfg).(*bcryptHasher)
	hash, err := hasher.Hash("password with default cost")
	require.NoError(t, err)
	assert.True(t, hasher.Check("password with default cost", hash))
}
