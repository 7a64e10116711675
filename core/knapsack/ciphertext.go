package knapsack

import (
	"fmt"
	"math/big"
)

// Ciphertext is a knapsack ciphertext: the sum of the public key terms
// selected by the bits of the plaintext.
type Ciphertext struct {
	Value *big.Int

	// PlaintextSize is the size in bytes of the encrypted plaintext.
	// It is used to strip the padding of the decrypted message and is
	// zero when unknown, in which case trailing zero bytes are stripped.
	PlaintextSize int
}

// NewCiphertext returns a new Ciphertext with zero value.
func NewCiphertext() *Ciphertext {
	return &Ciphertext{Value: new(big.Int)}
}

// NewCiphertextFromString parses the decimal representation of a ciphertext.
func NewCiphertextFromString(s string) (ct *Ciphertext, err error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("cannot NewCiphertextFromString: %q is not a decimal integer", s)
	}

	if v.Sign() < 0 {
		return nil, fmt.Errorf("cannot NewCiphertextFromString: ciphertext must be non-negative")
	}

	return &Ciphertext{Value: v}, nil
}

// CopyNew creates a deep copy of the receiver and returns it.
func (ct Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{Value: new(big.Int).Set(ct.Value), PlaintextSize: ct.PlaintextSize}
}

// Equal performs a deep equal.
func (ct Ciphertext) Equal(other *Ciphertext) bool {
	return ct.Value.Cmp(other.Value) == 0 && ct.PlaintextSize == other.PlaintextSize
}

// String returns the decimal representation of the ciphertext.
func (ct Ciphertext) String() string {
	return ct.Value.String()
}
