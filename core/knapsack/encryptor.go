package knapsack

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/knapsack/utils"
)

// Encryptor is a structure used to encrypt plaintexts. It stores the public key.
type Encryptor struct {
	pk *PublicKey
}

// NewEncryptor instantiates a new [Encryptor] from a non-empty public key.
func NewEncryptor(pk *PublicKey) (*Encryptor, error) {
	if pk == nil || pk.Value.IsEmpty() {
		return nil, fmt.Errorf("cannot NewEncryptor: public key is empty")
	}
	return &Encryptor{pk: pk}, nil
}

// EncryptNew encrypts pt and returns the result in a new [Ciphertext].
func (enc Encryptor) EncryptNew(pt []byte) (ct *Ciphertext) {
	ct = NewCiphertext()
	enc.Encrypt(pt, ct)
	return
}

// Encrypt encrypts pt and writes the result on ct.
//
// The i-th bit of the bitstream of pt selects the i-th term of the public key.
// Bits beyond the length of the public key all select its last term: a plaintext
// larger than [Parameters.MaxPlaintextSize] is not rejected but cannot be recovered.
// The empty plaintext encrypts to 0.
func (enc Encryptor) Encrypt(pt []byte, ct *Ciphertext) {

	if ct.Value == nil {
		ct.Value = new(big.Int)
	}

	sum := ct.Value.SetInt64(0)

	last := enc.pk.Len() - 1

	for i, bit := range NewBitstream(pt) {
		if bit == 1 {
			sum.Add(sum, enc.pk.Value.At(utils.Min(i, last)))
		}
	}

	ct.PlaintextSize = len(pt)
}

// WithKey creates a shallow copy of the [Encryptor] with a new public key.
func (enc Encryptor) WithKey(pk *PublicKey) (*Encryptor, error) {
	return NewEncryptor(pk)
}
