package hash

import (
	"golang.org/x/crypto/blake2b"
)

// Blake2b computes the chain's 256-bit blake2b digest over the
// concatenation of the provided slices.
func Blake2b(data ...[]byte) [32]byte {
	hasher, _ := blake2b.New256(nil)
	for _, d := range data {
		hasher.Write(d)
	}
	var out [32]byte
	hasher.Sum(out[:0])
	return out
}
