package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of b.
func Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}
