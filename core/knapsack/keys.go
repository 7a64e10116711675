package knapsack

import (
	"fmt"
	"math/big"

	"github.com/google/go-cmp/cmp"
	"github.com/zeebo/blake3"

	"github.com/tuneinsight/knapsack/utils/bignum"
	"github.com/tuneinsight/knapsack/utils/structs"
)

var bigIntComparer = cmp.Comparer(func(x, y *big.Int) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.Cmp(y) == 0
})

func copyInt(x *big.Int) *big.Int {
	return new(big.Int).Set(x)
}

// PrivateKey is a type for knapsack private keys.
type PrivateKey struct {
	// Value is the superincreasing sequence w_1..w_n.
	Value *structs.Sequence[*big.Int]
	// Sum is the sum of all the terms of Value.
	Sum *big.Int
	// Q is the modulus, greater than Sum.
	Q *big.Int
	// R is the multiplier, coprime with Q.
	R *big.Int
}

// NewPrivateKey returns a new empty private key.
func NewPrivateKey() *PrivateKey {
	return &PrivateKey{
		Value: new(structs.Sequence[*big.Int]),
		Sum:   new(big.Int),
		Q:     new(big.Int),
		R:     new(big.Int),
	}
}

// Len returns the number of terms of the key.
func (sk PrivateKey) Len() int {
	return sk.Value.Len()
}

// IsSuperincreasing returns true if every term of the key is
// strictly greater than the sum of the terms preceding it.
func (sk PrivateKey) IsSuperincreasing() (ok bool) {
	ok = true
	sum := new(big.Int)
	sk.Value.Range(func(_ int, w *big.Int) bool {
		if w.Cmp(sum) <= 0 {
			ok = false
			return false
		}
		sum.Add(sum, w)
		return true
	})
	return
}

// Steps returns the increments of the key: w_i - (w_1 + ... + w_{i-1}).
func (sk PrivateKey) Steps() (steps []*big.Int) {
	steps = make([]*big.Int, 0, sk.Len())
	sum := new(big.Int)
	sk.Value.Range(func(_ int, w *big.Int) bool {
		steps = append(steps, new(big.Int).Sub(w, sum))
		sum.Add(sum, w)
		return true
	})
	return
}

// Validate checks the invariants of the key: non-empty superincreasing sequence,
// consistent sum, Q > Sum and gcd(R, Q) = 1.
func (sk PrivateKey) Validate() (err error) {

	if sk.Value.IsEmpty() {
		return fmt.Errorf("invalid private key: empty sequence")
	}

	if sk.Sum == nil || sk.Q == nil || sk.R == nil {
		return fmt.Errorf("invalid private key: unset Sum, Q or R")
	}

	if !sk.IsSuperincreasing() {
		return fmt.Errorf("invalid private key: sequence is not superincreasing")
	}

	if sum := bignum.Sum(sk.Value.Slice()...); sum.Cmp(sk.Sum) != 0 {
		return fmt.Errorf("invalid private key: Sum=%s but terms sum to %s", sk.Sum, sum)
	}

	if sk.Q.Cmp(sk.Sum) <= 0 {
		return fmt.Errorf("invalid private key: Q=%s must be greater than Sum=%s", sk.Q, sk.Sum)
	}

	if !bignum.IsCoprime(sk.R, sk.Q) {
		return fmt.Errorf("invalid private key: R=%s and Q=%s are not coprime", sk.R, sk.Q)
	}

	return
}

// CopyNew creates a deep copy of the receiver secret key and returns it.
func (sk PrivateKey) CopyNew() *PrivateKey {
	return &PrivateKey{
		Value: sk.Value.CopyNew(copyInt),
		Sum:   copyInt(sk.Sum),
		Q:     copyInt(sk.Q),
		R:     copyInt(sk.R),
	}
}

// Equal performs a deep equal.
func (sk PrivateKey) Equal(other *PrivateKey) bool {
	return sk.Value.Equal(other.Value, bigIntComparer) &&
		cmp.Equal([]*big.Int{sk.Sum, sk.Q, sk.R}, []*big.Int{other.Sum, other.Q, other.R}, bigIntComparer)
}

// PublicKey is a type for knapsack public keys.
type PublicKey struct {
	// Value is the sequence b_i = w_i * R mod Q.
	Value *structs.Sequence[*big.Int]
}

// NewPublicKey returns a new empty public key.
func NewPublicKey() *PublicKey {
	return &PublicKey{Value: new(structs.Sequence[*big.Int])}
}

// Len returns the number of terms of the key.
func (pk PublicKey) Len() int {
	return pk.Value.Len()
}

// Max returns the largest term of the key, or nil if the key is empty.
func (pk PublicKey) Max() (max *big.Int) {
	pk.Value.Range(func(_ int, b *big.Int) bool {
		if max == nil || b.Cmp(max) > 0 {
			max = b
		}
		return true
	})
	return
}

// CopyNew creates a deep copy of the receiver public key and returns it.
func (pk PublicKey) CopyNew() *PublicKey {
	return &PublicKey{Value: pk.Value.CopyNew(copyInt)}
}

// Equal performs a deep equal.
func (pk PublicKey) Equal(other *PublicKey) bool {
	return pk.Value.Equal(other.Value, bigIntComparer)
}

// Fingerprint returns a 32-byte blake3 digest identifying the public key.
func (pk PublicKey) Fingerprint() []byte {
	hasher := blake3.New()
	pk.Value.Range(func(_ int, b *big.Int) bool {
		hasher.Write([]byte(b.String()))
		hasher.Write([]byte{' '})
		return true
	})
	return hasher.Sum(nil)
}
