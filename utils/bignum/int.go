// Package bignum implements arbitrary precision arithmetic helpers for integers and floats.
package bignum

import (
	"fmt"
	"math/big"
)

// NewInt allocates a new *big.Int.
// Accepted types are: string, uint, uint64, int64, int, *big.Float or *big.Int.
func NewInt(x interface{}) (y *big.Int) {

	y = new(big.Int)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		y.SetString(x, 0)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case int64:
		y.SetInt64(x)
	case int:
		y.SetInt64(int64(x))
	case *big.Float:
		x.Int(y)
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot Newint: accepted types are string, uint, uint64, int, int64, *big.Float, *big.Int, but is %T", x))
	}

	return
}

// NewIntSlice allocates a slice of *big.Int from a slice of int64.
func NewIntSlice(x ...int64) (y []*big.Int) {
	y = make([]*big.Int, len(x))
	for i := range x {
		y[i] = big.NewInt(x[i])
	}
	return
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

// IsCoprime returns true if gcd(a, b) = 1.
func IsCoprime(a, b *big.Int) bool {
	return GCD(a, b).Cmp(big.NewInt(1)) == 0
}

// ModInverse returns x such that (a * x) mod m = 1.
// An error is returned if m < 2 or if a is not invertible modulo m.
func ModInverse(a, m *big.Int) (x *big.Int, err error) {

	if m.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("cannot ModInverse: modulus %s < 2", m)
	}

	if x = new(big.Int).ModInverse(a, m); x == nil {
		return nil, fmt.Errorf("cannot ModInverse: %s is not invertible modulo %s", a, m)
	}

	return
}

// MulMod returns (a * b) mod m.
func MulMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, m)
}

// Sum returns the sum of the inputs.
func Sum(x ...*big.Int) (s *big.Int) {
	s = new(big.Int)
	for i := range x {
		s.Add(s, x[i])
	}
	return
}
