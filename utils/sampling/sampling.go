// Package sampling implements secure sampling of bytes and integers.
package sampling

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// RandInt generates a random Int in [0, max-1] from the given source.
// It panics if the source fails, which does not happen for the PRNGs of this package.
func RandInt(prng io.Reader, max *big.Int) (n *big.Int) {
	var err error
	if n, err = rand.Int(prng, max); err != nil {
		panic(fmt.Errorf("sampling.RandInt: %w", err))
	}
	return
}

// RandIntRange returns a uniformly distributed integer in the closed interval [min, max].
// It panics if min > max.
func RandIntRange(prng io.Reader, min, max int) int {
	if min > max {
		panic(fmt.Errorf("cannot RandIntRange: min=%d > max=%d", min, max))
	}

	span := big.NewInt(int64(max) - int64(min) + 1)

	return min + int(RandInt(prng, span).Int64())
}
