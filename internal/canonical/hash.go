package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for changing the record layout.
const (
	DomainEvaluation = "precisemath/evaluation/v1"
	DomainTrace      = "precisemath/trace/v1"
)

// Hash returns hex(SHA-256(domain || 0x00 || Marshal(v))).
// The null separator keeps domain and payload boundaries unambiguous.
func Hash(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", domain, err)
	}
	return HashBytes(domain, data), nil
}

// HashBytes hashes already canonical data.
func HashBytes(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
