package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher("test-pepper")

	encoded, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := h.Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasherWrongPassword(t *testing.T) {
	h := NewHasher("test-pepper")

	encoded, err := h.Hash("password-one")
	require.NoError(t, err)

	ok, err := h.Verify("password-two", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasherPepperMismatch(t *testing.T) {
	encoded, err := NewHasher("pepper-a").Hash("same password")
	require.NoError(t, err)

	ok, err := NewHasher("pepper-b").Verify("same password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasherSaltsDiffer(t *testing.T) {
	h := NewHasher("test-pepper")

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasherMalformedDigest(t *testing.T) {
	h := NewHasher("test-pepper")

	cases := []string{
		"",
		"not a hash",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}
	for _, encoded := range cases {
		_, err := h.Verify("whatever", encoded)
		assert.Error(t, err, "digest %q should be rejected", encoded)
	}
}
