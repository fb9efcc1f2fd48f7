package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key for one cached value kind ("solve",
// "artifact") by hashing the identifying parts: the input fingerprint
// plus the kind's key options. The key format is kind:hex so backends
// and operators can tell result kinds apart at a glance.
//
// The full SHA-256 digest is kept; truncating it would invite
// collisions between distinct solve inputs.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(sum[:]))
}

// Hash fingerprints serialized solve inputs and results for key
// derivation, returning the 64-character hex SHA-256 digest.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
