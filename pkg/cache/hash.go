package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Layout hashes in build results
// and manifests use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue hashes the JSON encoding of v. Struct field order makes the
// result stable; values JSON cannot encode hash like null.
func HashValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte("null")
	}
	return Hash(data)
}

// hashKey returns prefix + ":" + HashValue(parts).
func hashKey(prefix string, parts ...any) string {
	return prefix + ":" + HashValue(parts)
}
