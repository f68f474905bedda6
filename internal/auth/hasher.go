package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Hasher computes keyed one-way hashes of (salt, secret) pairs. The same
// construction covers both password hashing (secret = plaintext password)
// and session-token derivation (secret = user id).
type Hasher struct {
	key []byte
}

// NewHasher creates a Hasher keyed by the process-wide server secret.
func NewHasher(serverSecret string) *Hasher {
	return &Hasher{key: []byte(serverSecret)}
}

// Hash returns hex(HMAC-SHA256(key, salt||secret)). Deterministic for a
// given (salt, secret) pair under the same server secret.
func (h *Hasher) Hash(salt, secret string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(salt))
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}

// Equal compares two hash strings in constant time.
func (h *Hasher) Equal(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
