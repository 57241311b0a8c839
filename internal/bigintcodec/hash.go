package bigintcodec

import (
	sha256 "github.com/minio/sha256-simd"
)

// Sum256 hashes the concatenation of parts, returning 32 bytes.
func Sum256(parts ...[]byte) [32]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
