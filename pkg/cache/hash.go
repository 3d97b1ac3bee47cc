package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a "prefix:hash" key from the stage name and its inputs.
// Parts are JSON-encoded before hashing so option structs participate in
// the key without any manual serialization; the full 256-bit digest keeps
// distinct graphs from ever sharing an entry.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the sha256 of data as a 64-character hex string. Pipeline
// stages use it to content-address their inputs.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
