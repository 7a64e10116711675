package knapsack

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/knapsack/utils"
	"github.com/tuneinsight/knapsack/utils/bignum"
)

// Decryptor is a structure used to decrypt [Ciphertext]. It stores the private key
// and the inverse of its multiplier.
type Decryptor struct {
	sk   *PrivateKey
	rInv *big.Int
}

// NewDecryptor instantiates a new [Decryptor]. It returns an error if the
// private key is malformed, in particular if R is not invertible modulo Q.
func NewDecryptor(sk *PrivateKey) (*Decryptor, error) {

	if sk == nil {
		return nil, fmt.Errorf("cannot NewDecryptor: private key is nil")
	}

	if err := sk.Validate(); err != nil {
		return nil, fmt.Errorf("cannot NewDecryptor: %w", err)
	}

	rInv, err := bignum.ModInverse(sk.R, sk.Q)
	if err != nil {
		return nil, fmt.Errorf("cannot NewDecryptor: %w", err)
	}

	return &Decryptor{sk: sk, rInv: rInv}, nil
}

// RInverse returns a copy of R^-1 mod Q.
func (dec Decryptor) RInverse() *big.Int {
	return new(big.Int).Set(dec.rInv)
}

// DecryptNew decrypts the [Ciphertext] and returns the recovered plaintext.
//
// The output is cut to ct.PlaintextSize bytes when it is set. Otherwise the trailing
// zero bytes, which correspond to unused terms of the key, are stripped.
// Recovered bytes are returned as-is without any check on their range.
func (dec Decryptor) DecryptNew(ct *Ciphertext) (pt []byte) {

	pt = dec.DecryptBits(ct).Bytes()

	if ct.PlaintextSize > 0 {
		return pt[:utils.Min(ct.PlaintextSize, len(pt))]
	}

	return utils.TrimRight(pt, 0)
}

// DecryptBits returns the bitstream recovered from ct, one bit per term of the private key.
//
// The ciphertext is mapped back to the private knapsack with c' = c * R^-1 mod Q and
// decomposed greedily from the largest term down: a term w_i <= c' yields a 1 and is
// subtracted from c', otherwise it yields a 0.
func (dec Decryptor) DecryptBits(ct *Ciphertext) (bits Bitstream) {

	decoded := bignum.MulMod(dec.rInv, ct.Value, dec.sk.Q)

	bits = make(Bitstream, 0, dec.sk.Len())

	dec.sk.Value.RangeBackward(func(_ int, w *big.Int) bool {
		if w.Cmp(decoded) <= 0 {
			bits = append(bits, 1)
			decoded.Sub(decoded, w)
		} else {
			bits = append(bits, 0)
		}
		return true
	})

	utils.ReverseSliceInPlace(bits)

	return
}

// WithKey creates a new [Decryptor] with a new private key.
func (dec Decryptor) WithKey(sk *PrivateKey) (*Decryptor, error) {
	return NewDecryptor(sk)
}
