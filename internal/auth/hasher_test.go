package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	h := NewHasher("server-secret")
	first := h.Hash("salt", "hunter2")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, h.Hash("salt", "hunter2"))
	}
}

func TestHashVariesWithSalt(t *testing.T) {
	h := NewHasher("server-secret")
	assert.NotEqual(t, h.Hash("salt-a", "hunter2"), h.Hash("salt-b", "hunter2"))
}

func TestHashVariesWithSecret(t *testing.T) {
	h := NewHasher("server-secret")
	assert.NotEqual(t, h.Hash("salt", "hunter2"), h.Hash("salt", "hunter3"))
}

func TestHashKeyedByServerSecret(t *testing.T) {
	// Two deployments with different server secrets must not produce
	// interchangeable hashes for the same user input.
	a := NewHasher("secret-a")
	b := NewHasher("secret-b")
	assert.NotEqual(t, a.Hash("salt", "hunter2"), b.Hash("salt", "hunter2"))
}

func TestEqual(t *testing.T) {
	h := NewHasher("server-secret")
	hash := h.Hash("salt", "hunter2")
	assert.True(t, h.Equal(hash, h.Hash("salt", "hunter2")))
	assert.False(t, h.Equal(hash, h.Hash("salt", "wrong")))
	assert.False(t, h.Equal(hash, ""))
}

func TestGenerateSalt(t *testing.T) {
	salt := GenerateSalt()
	raw, err := base64.StdEncoding.DecodeString(salt)
	require.NoError(t, err)
	assert.Len(t, raw, saltBytes)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := GenerateSalt()
		require.False(t, seen[s], "salt generated twice")
		seen[s] = true
	}
}
