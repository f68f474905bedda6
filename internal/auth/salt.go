package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// saltBytes is the amount of raw entropy drawn per salt.
const saltBytes = 128

// GenerateSalt returns a fresh cryptographically random value encoded as
// base64. Salts double as session-token seeds, so they must never come from
// a weaker source; if the system entropy source fails there is nothing
// sensible to fall back to.
func GenerateSalt() string {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		panic("auth: system entropy source unavailable: " + err.Error())
	}
	return base64.StdEncoding.EncodeToString(buf)
}
