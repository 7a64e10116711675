package knapsack

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/tuneinsight/knapsack/utils/bignum"
	"github.com/tuneinsight/knapsack/utils/sampling"
)

// ErrAlgorithmFailure is returned when the key generation cannot find a multiplier
// coprime with the modulus. The key pair under construction must be discarded.
var ErrAlgorithmFailure = errors.New("algorithm failed to converge: could not find valid coprime")

// KeyGenerator is a structure that stores the elements required to create new keys.
type KeyGenerator struct {
	params Parameters
	prng   sampling.PRNG
}

// NewKeyGenerator creates a new KeyGenerator, from which the private and public keys can be generated.
// The increments of the private key are drawn from prng. If prng is nil, the operating system's
// entropy source is used. Pass a [sampling.KeyedPRNG] to obtain reproducible keys.
func NewKeyGenerator(params Parameters, prng sampling.PRNG) *KeyGenerator {

	if prng == nil {
		var err error
		if prng, err = sampling.NewPRNG(); err != nil {
			// Sanity check, this error should not happen.
			panic(err)
		}
	}

	return &KeyGenerator{
		params: params,
		prng:   prng,
	}
}

// GetParameters returns the underlying [Parameters].
func (kgen KeyGenerator) GetParameters() Parameters {
	return kgen.params
}

// GenPrivateKey generates a new private key of params.VectorLength() terms.
func (kgen KeyGenerator) GenPrivateKey() (sk *PrivateKey, err error) {
	return kgen.genPrivateKey(kgen.params.VectorLength(), kgen.params.MinStep(), kgen.params.MaxStep())
}

func (kgen KeyGenerator) genPrivateKey(n, minStep, maxStep int) (sk *PrivateKey, err error) {

	sk = NewPrivateKey()

	sumBefore := new(big.Int)

	for i := 0; i < n; i++ {
		term := big.NewInt(int64(sampling.RandIntRange(kgen.prng, minStep, maxStep)))
		term.Add(term, sumBefore)
		sk.Value.PushBack(term)
		sumBefore.Add(sumBefore, term)
	}

	sk.Sum = sumBefore

	if err = kgen.genModulusAndMultiplier(sk); err != nil {
		return nil, fmt.Errorf("cannot GenPrivateKey: %w", err)
	}

	return
}

// GenPrivateKeyFromTerms generates a private key whose sequence is the given terms.
// The terms must be a superincreasing sequence of params.VectorLength() positive integers.
// The modulus and the multiplier are drawn as in [KeyGenerator.GenPrivateKey].
func (kgen KeyGenerator) GenPrivateKeyFromTerms(terms []*big.Int) (sk *PrivateKey, err error) {

	if len(terms) != kgen.params.VectorLength() {
		return nil, fmt.Errorf("cannot GenPrivateKeyFromTerms: len(terms)=%d does not match VectorLength=%d", len(terms), kgen.params.VectorLength())
	}

	sk = NewPrivateKey()
	for i := range terms {
		sk.Value.PushBack(new(big.Int).Set(terms[i]))
	}

	if !sk.IsSuperincreasing() {
		return nil, fmt.Errorf("cannot GenPrivateKeyFromTerms: terms are not a superincreasing sequence of positive integers")
	}

	sk.Sum = bignum.Sum(terms...)

	if err = kgen.genModulusAndMultiplier(sk); err != nil {
		return nil, fmt.Errorf("cannot GenPrivateKeyFromTerms: %w", err)
	}

	return
}

// genModulusAndMultiplier sets q = Sum + step with step drawn in [MinStep, MaxStep]
// and r = FindCoprime(q).
func (kgen KeyGenerator) genModulusAndMultiplier(sk *PrivateKey) (err error) {

	step := big.NewInt(int64(sampling.RandIntRange(kgen.prng, kgen.params.MinStep(), kgen.params.MaxStep())))

	sk.Q = new(big.Int).Add(sk.Sum, step)

	sk.R, err = FindCoprime(sk.Q)

	return
}

// GenPublicKey derives the public key b_i = w_i * R mod Q from the private key,
// preserving the order of the terms.
func (kgen KeyGenerator) GenPublicKey(sk *PrivateKey) (pk *PublicKey) {
	pk = NewPublicKey()
	sk.Value.Range(func(_ int, w *big.Int) bool {
		pk.Value.PushBack(bignum.MulMod(w, sk.R, sk.Q))
		return true
	})
	return
}

// GenKeyPair generates a new private key and its associated public key.
func (kgen KeyGenerator) GenKeyPair() (sk *PrivateKey, pk *PublicKey, err error) {
	if sk, err = kgen.GenPrivateKey(); err != nil {
		return nil, nil, err
	}
	return sk, kgen.GenPublicKey(sk), nil
}

// FindCoprime returns the largest integer 1 < r < limit such that gcd(r, limit) = 1.
// The search starts at limit - 1, which is coprime with limit for any limit > 2.
// It returns an error wrapping [ErrAlgorithmFailure] if no such integer exists,
// which is the case for limit <= 2.
func FindCoprime(limit *big.Int) (r *big.Int, err error) {

	one := big.NewInt(1)

	r = new(big.Int).Sub(limit, one)

	for r.Cmp(one) > 0 {
		if bignum.IsCoprime(r, limit) {
			return r, nil
		}
		r.Sub(r, one)
	}

	return nil, fmt.Errorf("FindCoprime(%s): %w", limit, ErrAlgorithmFailure)
}
