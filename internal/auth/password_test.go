package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", digest)

	assert.True(t, h.Verify("password1", digest))
	assert.False(t, h.Verify("password2", digest))
	assert.False(t, h.Verify("password1", "not-a-digest"))
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	base := strings.Repeat("a1", 40)

	digest, err := h.Hash(base + "x")
	require.NoError(t, err)

	assert.True(t, h.Verify(base+"x", digest))
	assert.False(t, h.Verify(base+"y", digest))
}

func TestBcryptHasher_Empty(t *testing.T) {
	t.Parallel()

	_, err := NewBcryptHasher(bcrypt.MinCost).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
}
