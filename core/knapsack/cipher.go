package knapsack

import (
	"fmt"

	"github.com/tuneinsight/knapsack/utils/sampling"
)

// Cipher is an encryption session: it owns one key pair, generated once, and
// keeps the most recent ciphertext and plaintext as working state.
//
// A Cipher is not safe for concurrent use.
type Cipher struct {
	params Parameters
	sk     *PrivateKey
	pk     *PublicKey
	enc    *Encryptor
	dec    *Decryptor
	ct     *Ciphertext
	pt     []byte
}

// NewCipher generates a new key pair from the given parameters and prng and returns a session
// using it. See [NewKeyGenerator] for the semantic of prng.
// The returned error wraps [ErrAlgorithmFailure] if the key generation failed.
func NewCipher(params Parameters, prng sampling.PRNG) (c *Cipher, err error) {

	sk, pk, err := NewKeyGenerator(params, prng).GenKeyPair()
	if err != nil {
		return nil, fmt.Errorf("cannot NewCipher: %w", err)
	}

	return NewCipherFromKeys(params, sk, pk)
}

// NewCipherFromKeys returns a session using the provided key pair.
func NewCipherFromKeys(params Parameters, sk *PrivateKey, pk *PublicKey) (c *Cipher, err error) {

	if sk.Len() != pk.Len() {
		return nil, fmt.Errorf("cannot NewCipherFromKeys: private key length %d does not match public key length %d", sk.Len(), pk.Len())
	}

	c = &Cipher{
		params: params,
		sk:     sk,
		pk:     pk,
		ct:     NewCiphertext(),
	}

	if c.enc, err = NewEncryptor(pk); err != nil {
		return nil, fmt.Errorf("cannot NewCipherFromKeys: %w", err)
	}

	if c.dec, err = NewDecryptor(sk); err != nil {
		return nil, fmt.Errorf("cannot NewCipherFromKeys: %w", err)
	}

	return
}

// Encrypt encrypts pt with the session's public key, stores the result as the
// current ciphertext and returns it.
func (c *Cipher) Encrypt(pt []byte) *Ciphertext {
	c.ct = c.enc.EncryptNew(pt)
	return c.ct
}

// Decrypt decrypts ct with the session's private key, stores the result as the
// current plaintext and returns it.
func (c *Cipher) Decrypt(ct *Ciphertext) []byte {
	c.pt = c.dec.DecryptNew(ct)
	return c.pt
}

// Parameters returns the parameters of the session.
func (c *Cipher) Parameters() Parameters {
	return c.params
}

// PrivateKey returns the private key of the session.
func (c *Cipher) PrivateKey() *PrivateKey {
	return c.sk
}

// PublicKey returns the public key of the session.
func (c *Cipher) PublicKey() *PublicKey {
	return c.pk
}

// Ciphertext returns the most recent ciphertext.
func (c *Cipher) Ciphertext() *Ciphertext {
	return c.ct
}

// Plaintext returns the most recently decrypted plaintext.
func (c *Cipher) Plaintext() []byte {
	return c.pt
}
