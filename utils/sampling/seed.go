package sampling

import (
	"github.com/zeebo/blake3"
)

// KeySize is the size in bytes of the keys returned by [DeriveKey].
const KeySize = 32

// DeriveKey hashes an arbitrary seed into a key of KeySize bytes
// suitable for [NewKeyedPRNG].
func DeriveKey(seed []byte) []byte {
	hasher := blake3.New()
	hasher.Write(seed)
	digest := hasher.Sum(nil)
	return digest[:KeySize]
}

// NewKeyedPRNGFromSeed returns a [KeyedPRNG] keyed with [DeriveKey] of seed.
func NewKeyedPRNGFromSeed(seed []byte) (*KeyedPRNG, error) {
	return NewKeyedPRNG(DeriveKey(seed))
}
