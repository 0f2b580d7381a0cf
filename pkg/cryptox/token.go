package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// fingerprintLen keeps log lines short while staying unique enough to tell
// tokens apart.
const fingerprintLen = 12

// FingerprintToken returns a short, deterministic SHA-256 fingerprint of a
// bearer token so it can be correlated across log lines without being
// disclosed.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:fingerprintLen]
}
