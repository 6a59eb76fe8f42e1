package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// AuthCachePrefix namespaces token verdict keys in the auth cache.
const AuthCachePrefix = "auth:"

// HashToken returns a hex fingerprint of a bearer token, so raw tokens
// never appear in cache keys or logs.
func HashToken(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
