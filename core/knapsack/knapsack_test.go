package knapsack

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/knapsack/utils"
	"github.com/tuneinsight/knapsack/utils/bignum"
	"github.com/tuneinsight/knapsack/utils/sampling"
)

var flagParamString = flag.String("params", "", "specify the test parameters as a JSON string. Overrides the default test parameters.")

func testString(params Parameters, opname string) string {
	return fmt.Sprintf("%s/n=%d/steps=[%d,%d]",
		opname,
		params.VectorLength(),
		params.MinStep(),
		params.MaxStep())
}

type TestContext struct {
	params Parameters
	kgen   *KeyGenerator
	enc    *Encryptor
	dec    *Decryptor
	sk     *PrivateKey
	pk     *PublicKey
}

func NewTestContext(params Parameters) (tc *TestContext, err error) {

	prng, err := sampling.NewKeyedPRNG([]byte{'k', 'n', 'a', 'p', 's', 'a', 'c', 'k'})
	if err != nil {
		return nil, err
	}

	kgen := NewKeyGenerator(params, prng)

	sk, pk, err := kgen.GenKeyPair()
	if err != nil {
		return nil, err
	}

	enc, err := NewEncryptor(pk)
	if err != nil {
		return nil, err
	}

	dec, err := NewDecryptor(sk)
	if err != nil {
		return nil, err
	}

	return &TestContext{
		params: params,
		kgen:   kgen,
		enc:    enc,
		dec:    dec,
		sk:     sk,
		pk:     pk,
	}, nil
}

func TestKnapsack(t *testing.T) {

	var err error

	paramsLiterals := testInsecure

	if *flagParamString != "" {
		var jsonParams ParametersLiteral
		if err = json.Unmarshal([]byte(*flagParamString), &jsonParams); err != nil {
			t.Fatal(err)
		}
		paramsLiterals = []ParametersLiteral{jsonParams}
	}

	for _, paramsLit := range paramsLiterals {

		var params Parameters
		if params, err = NewParametersFromLiteral(paramsLit); err != nil {
			t.Fatal(err)
		}

		tc, err := NewTestContext(params)
		require.NoError(t, err)

		for _, testSet := range []func(tc *TestContext, t *testing.T){
			testKeyGenerator,
			testEncryptor,
			testDecryptor,
			testCipher,
			testKeyReport,
		} {
			testSet(tc, t)
		}
	}

	testParameters(t)
	testFindCoprime(t)
	testDeterministicScenario(t)
	testBitstream(t)
}

func testParameters(t *testing.T) {

	t.Run("Parameters/Defaults", func(t *testing.T) {
		params, err := NewParametersFromLiteral(ParametersLiteral{})
		require.NoError(t, err)
		require.Equal(t, DefaultVectorLength, params.VectorLength())
		require.Equal(t, DefaultMinStep, params.MinStep())
		require.Equal(t, DefaultMaxStep, params.MaxStep())
		require.Equal(t, 80, params.MaxPlaintextSize())
		require.Equal(t, DefaultParametersLiteral, params.ParametersLiteral())

		params, err = NewParametersFromLiteral(ParametersLiteral{MinStep: 9})
		require.NoError(t, err)
		require.Equal(t, 9, params.MaxStep())
	})

	t.Run("Parameters/Invalid", func(t *testing.T) {
		for _, lit := range []ParametersLiteral{
			{VectorLength: -1},
			{MinStep: -2},
			{MinStep: 4, MaxStep: 3},
		} {
			params, err := NewParametersFromLiteral(lit)
			require.Error(t, err)
			require.Equal(t, Parameters{}, params)
		}
	})

	t.Run("Parameters/JSON", func(t *testing.T) {
		params, err := NewParametersFromLiteral(ExampleParametersLiteral)
		require.NoError(t, err)

		data, err := json.Marshal(params)
		require.NoError(t, err)

		var paramsNew Parameters
		require.NoError(t, json.Unmarshal(data, &paramsNew))
		require.True(t, params.Equal(&paramsNew))

		var paramsBad Parameters
		require.Error(t, json.Unmarshal([]byte(`{"VectorLength":8,"MinStep":3,"MaxStep":2}`), &paramsBad))
		require.Equal(t, Parameters{}, paramsBad)
	})
}

func testKeyGenerator(tc *TestContext, t *testing.T) {

	params := tc.params
	sk := tc.sk
	pk := tc.pk

	t.Run(testString(params, "KeyGenerator/Superincreasing"), func(t *testing.T) {
		require.True(t, sk.IsSuperincreasing())
		sum := new(big.Int)
		sk.Value.Range(func(_ int, w *big.Int) bool {
			require.Equal(t, 1, w.Cmp(sum))
			sum.Add(sum, w)
			return true
		})
		require.Zero(t, sum.Cmp(sk.Sum))
		require.NoError(t, sk.Validate())
	})

	t.Run(testString(params, "KeyGenerator/Steps"), func(t *testing.T) {
		steps := sk.Steps()
		require.Len(t, steps, params.VectorLength())
		for _, step := range steps {
			require.True(t, step.IsInt64())
			require.GreaterOrEqual(t, step.Int64(), int64(params.MinStep()))
			require.LessOrEqual(t, step.Int64(), int64(params.MaxStep()))
		}

		qStep := new(big.Int).Sub(sk.Q, sk.Sum)
		require.GreaterOrEqual(t, qStep.Int64(), int64(params.MinStep()))
		require.LessOrEqual(t, qStep.Int64(), int64(params.MaxStep()))
	})

	t.Run(testString(params, "KeyGenerator/WellFormed"), func(t *testing.T) {
		require.Equal(t, params.VectorLength(), sk.Len())
		require.Equal(t, params.VectorLength(), pk.Len())
		pk.Value.Range(func(i int, b *big.Int) bool {
			require.True(t, b.Sign() >= 0)
			require.Equal(t, -1, b.Cmp(sk.Q))
			require.Zero(t, b.Cmp(bignum.MulMod(sk.Value.At(i), sk.R, sk.Q)))
			return true
		})
	})

	t.Run(testString(params, "KeyGenerator/Coprime"), func(t *testing.T) {
		require.True(t, bignum.IsCoprime(sk.R, sk.Q))
		require.Zero(t, bignum.MulMod(sk.R, tc.dec.RInverse(), sk.Q).Cmp(big.NewInt(1)))
	})

	t.Run(testString(params, "KeyGenerator/Deterministic"), func(t *testing.T) {
		prng0, err := sampling.NewKeyedPRNG([]byte("deterministic"))
		require.NoError(t, err)
		prng1, err := sampling.NewKeyedPRNG([]byte("deterministic"))
		require.NoError(t, err)

		sk0, pk0, err := NewKeyGenerator(params, prng0).GenKeyPair()
		require.NoError(t, err)
		sk1, pk1, err := NewKeyGenerator(params, prng1).GenKeyPair()
		require.NoError(t, err)

		require.True(t, sk0.Equal(sk1))
		require.True(t, pk0.Equal(pk1))
		require.Equal(t, pk0.Fingerprint(), pk1.Fingerprint())
	})

	t.Run(testString(params, "KeyGenerator/CopyNew"), func(t *testing.T) {
		skCpy := sk.CopyNew()
		pkCpy := pk.CopyNew()
		require.True(t, sk.Equal(skCpy))
		require.True(t, pk.Equal(pkCpy))

		skCpy.Value.At(0).Add(skCpy.Value.At(0), big.NewInt(1))
		pkCpy.Value.At(0).Add(pkCpy.Value.At(0), big.NewInt(1))
		require.False(t, sk.Equal(skCpy))
		require.False(t, pk.Equal(pkCpy))
		require.NotEqual(t, pk.Fingerprint(), pkCpy.Fingerprint())
	})

	t.Run(testString(params, "KeyGenerator/FromTerms"), func(t *testing.T) {
		skNew, err := tc.kgen.GenPrivateKeyFromTerms(sk.Value.Slice())
		require.NoError(t, err)
		require.True(t, sk.Value.Equal(skNew.Value, bigIntComparer))
		require.NoError(t, skNew.Validate())

		_, err = tc.kgen.GenPrivateKeyFromTerms(sk.Value.Slice()[1:])
		require.Error(t, err)

		terms := sk.Value.Slice()
		terms[len(terms)-1] = big.NewInt(0)
		_, err = tc.kgen.GenPrivateKeyFromTerms(terms)
		require.Error(t, err)
	})
}

func testEncryptor(tc *TestContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Encryptor/Empty"), func(t *testing.T) {
		ct := tc.enc.EncryptNew(nil)
		require.Zero(t, ct.Value.Sign())
		require.Equal(t, "0", ct.String())
		require.Equal(t, 0, ct.PlaintextSize)
	})

	t.Run(testString(params, "Encryptor/SubsetSum"), func(t *testing.T) {
		pt := []byte{0x80, 0x01}
		ct := tc.enc.EncryptNew(pt)

		// Bits 0 and 15 are set. Past the last term, bits select the last term.
		last := tc.pk.Len() - 1
		want := new(big.Int).Add(tc.pk.Value.At(0), tc.pk.Value.At(utils.Min(15, last)))
		require.Zero(t, want.Cmp(ct.Value))
		require.Equal(t, 2, ct.PlaintextSize)
	})

	t.Run(testString(params, "Encryptor/Saturation"), func(t *testing.T) {
		n := tc.pk.Len()

		// One byte past the capacity of the key, all bits set.
		pt := make([]byte, params.MaxPlaintextSize()+1)
		for i := range pt {
			pt[i] = 0xff
		}

		bits := len(pt) * 8
		want := new(big.Int)
		tc.pk.Value.Range(func(_ int, b *big.Int) bool {
			want.Add(want, b)
			return true
		})
		tail, _ := tc.pk.Value.Tail()
		want.Add(want, new(big.Int).Mul(tail, big.NewInt(int64(bits-n))))

		require.Zero(t, want.Cmp(tc.enc.EncryptNew(pt).Value))
	})

	t.Run(testString(params, "Encryptor/Reuse"), func(t *testing.T) {
		ct := NewCiphertext()
		tc.enc.Encrypt([]byte{0xff}, ct)
		first := ct.CopyNew()
		tc.enc.Encrypt([]byte{0xff}, ct)
		require.True(t, first.Equal(ct))
	})

	t.Run("Encryptor/EmptyKey", func(t *testing.T) {
		_, err := NewEncryptor(NewPublicKey())
		require.Error(t, err)
		_, err = NewEncryptor(nil)
		require.Error(t, err)
	})
}

func testDecryptor(tc *TestContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Decryptor/RoundTrip"), func(t *testing.T) {
		prng, err := sampling.NewKeyedPRNG([]byte("messages"))
		require.NoError(t, err)

		for size := 1; size <= params.MaxPlaintextSize(); size = size*2 + 1 {
			pt := make([]byte, size)
			_, err = prng.Read(pt)
			require.NoError(t, err)

			ct := tc.enc.EncryptNew(pt)
			require.Equal(t, pt, tc.dec.DecryptNew(ct))
		}
	})

	t.Run(testString(params, "Decryptor/Text"), func(t *testing.T) {
		pt := []byte("Merkle-Hellman knapsack")
		if len(pt) > params.MaxPlaintextSize() {
			pt = pt[:params.MaxPlaintextSize()]
		}
		require.Equal(t, pt, tc.dec.DecryptNew(tc.enc.EncryptNew(pt)))
	})

	t.Run(testString(params, "Decryptor/Empty"), func(t *testing.T) {
		require.Equal(t, []byte{}, tc.dec.DecryptNew(tc.enc.EncryptNew([]byte{})))
		require.Equal(t, []byte{}, tc.dec.DecryptNew(NewCiphertext()))
	})

	t.Run(testString(params, "Decryptor/Padding"), func(t *testing.T) {
		if params.MaxPlaintextSize() < 2 {
			t.Skip("key too short")
		}

		pt := []byte{'A', 0}
		ct := tc.enc.EncryptNew(pt)
		require.Equal(t, pt, tc.dec.DecryptNew(ct))

		// Without size metadata, trailing zero bytes are dropped.
		bare, err := NewCiphertextFromString(ct.String())
		require.NoError(t, err)
		require.Equal(t, []byte{'A'}, tc.dec.DecryptNew(bare))
	})

	t.Run(testString(params, "Decryptor/Bits"), func(t *testing.T) {
		pt := []byte{0xA5}
		bits := tc.dec.DecryptBits(tc.enc.EncryptNew(pt))
		require.Len(t, bits, params.VectorLength())
		require.Equal(t, "10100101", bits[:8].String())
	})

	t.Run("Decryptor/InvalidKey", func(t *testing.T) {
		_, err := NewDecryptor(nil)
		require.Error(t, err)

		_, err = NewDecryptor(NewPrivateKey())
		require.Error(t, err)

		sk := tc.sk.CopyNew()
		sk.R.Mul(sk.R, sk.Q)
		_, err = NewDecryptor(sk)
		require.Error(t, err)

		sk = tc.sk.CopyNew()
		sk.Q.Set(sk.Sum)
		_, err = NewDecryptor(sk)
		require.Error(t, err)
	})
}

func testCipher(tc *TestContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Cipher/Session"), func(t *testing.T) {
		c, err := NewCipherFromKeys(params, tc.sk, tc.pk)
		require.NoError(t, err)
		require.True(t, params.Equal(utils.Pointy(c.Parameters())))
		require.Zero(t, c.Ciphertext().Value.Sign())
		require.Nil(t, c.Plaintext())

		for _, msg := range []string{"a", "Hello", "knapsack"} {
			pt := []byte(msg)
			if len(pt) > params.MaxPlaintextSize() {
				continue
			}

			ct := c.Encrypt(pt)
			require.True(t, ct.Equal(c.Ciphertext()))
			require.Equal(t, pt, c.Decrypt(c.Ciphertext()))
			require.Equal(t, pt, c.Plaintext())
		}

		require.True(t, tc.sk.Equal(c.PrivateKey()))
		require.True(t, tc.pk.Equal(c.PublicKey()))
	})

	t.Run(testString(params, "Cipher/MismatchedKeys"), func(t *testing.T) {
		pk := NewPublicKey()
		_, err := NewCipherFromKeys(params, tc.sk, pk)
		require.Error(t, err)
	})
}

func testKeyReport(tc *TestContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "KeyReport"), func(t *testing.T) {
		r, err := NewKeyReport(tc.sk, tc.pk)
		require.NoError(t, err)
		require.Equal(t, params.VectorLength(), r.VectorLength)
		require.Equal(t, tc.sk.Q.BitLen(), r.ModulusBits)
		require.Equal(t, tc.pk.Fingerprint(), r.Fingerprint)
		require.Greater(t, r.Density, 0.0)
		require.GreaterOrEqual(t, r.StepMean, float64(params.MinStep()))
		require.LessOrEqual(t, r.StepMean, float64(params.MaxStep()))
		require.GreaterOrEqual(t, r.StepMedian, float64(params.MinStep()))
		require.LessOrEqual(t, r.StepMedian, float64(params.MaxStep()))
		require.GreaterOrEqual(t, r.StepStdDev, 0.0)
		require.Contains(t, r.String(), "density:")

		_, err = NewKeyReport(tc.sk, NewPublicKey())
		require.Error(t, err)
	})
}

func testFindCoprime(t *testing.T) {

	t.Run("FindCoprime", func(t *testing.T) {
		for _, limit := range []int64{3, 4, 256, 1 << 40} {
			r, err := FindCoprime(big.NewInt(limit))
			require.NoError(t, err)
			require.Equal(t, limit-1, r.Int64())
		}

		for _, limit := range []int64{2, 1, 0, -5} {
			_, err := FindCoprime(big.NewInt(limit))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrAlgorithmFailure))
		}
	})

	t.Run("FindCoprime/KeyGeneration", func(t *testing.T) {
		// n=1 with unit steps gives w = [1], S = 1 and q = 2.
		params, err := NewParameters(1, 1, 1)
		require.NoError(t, err)

		_, _, err = NewKeyGenerator(params, nil).GenKeyPair()
		require.ErrorIs(t, err, ErrAlgorithmFailure)

		_, err = NewCipher(params, nil)
		require.ErrorIs(t, err, ErrAlgorithmFailure)
	})
}

func testDeterministicScenario(t *testing.T) {

	t.Run("Scenario/UnitSteps", func(t *testing.T) {
		params, err := NewParametersFromLiteral(ParametersLiteral{VectorLength: 8, MinStep: 1, MaxStep: 1})
		require.NoError(t, err)

		// The increments are all 1 regardless of the source.
		c, err := NewCipher(params, nil)
		require.NoError(t, err)

		sk := c.PrivateKey()
		require.Equal(t, "1 2 4 8 16 32 64 128", sk.Value.String())
		require.Equal(t, int64(255), sk.Sum.Int64())
		require.Equal(t, int64(256), sk.Q.Int64())
		require.Equal(t, int64(255), sk.R.Int64())
		require.Equal(t, "255 254 252 248 240 224 192 128", c.PublicKey().Value.String())

		// 65 = 01000001 selects b_2 and b_8.
		ct := c.Encrypt([]byte{65})
		require.Equal(t, "382", ct.String())
		require.Equal(t, []byte{65}, c.Decrypt(ct))
		require.Equal(t, "A", string(c.Plaintext()))
	})

	t.Run("Scenario/FixedTerms", func(t *testing.T) {
		params, err := NewParameters(8, 1, 1)
		require.NoError(t, err)

		kgen := NewKeyGenerator(params, nil)
		sk, err := kgen.GenPrivateKeyFromTerms(bignum.NewIntSlice(2, 3, 6, 13, 27, 52, 105, 210))
		require.NoError(t, err)
		require.Equal(t, int64(419), sk.Q.Int64())

		c, err := NewCipherFromKeys(params, sk, kgen.GenPublicKey(sk))
		require.NoError(t, err)

		for v := 0; v < 256; v++ {
			pt := []byte{byte(v)}
			ct := c.Encrypt(pt)
			ct.PlaintextSize = 1
			require.Equal(t, pt, c.Decrypt(ct))
		}
	})
}

func testBitstream(t *testing.T) {

	t.Run("Bitstream", func(t *testing.T) {
		bits := NewBitstream([]byte("A\x00\xff"))
		require.Equal(t, "010000010000000011111111", bits.String())
		require.Equal(t, []byte("A\x00\xff"), bits.Bytes())

		require.Empty(t, NewBitstream(nil))
		require.Equal(t, []byte{}, Bitstream{}.Bytes())

		// A trailing partial group is dropped.
		require.Equal(t, []byte{1}, Bitstream{0, 0, 0, 0, 0, 0, 0, 1, 1, 1}.Bytes())
	})

	t.Run("Ciphertext/String", func(t *testing.T) {
		ct, err := NewCiphertextFromString("123456789012345678901234567890")
		require.NoError(t, err)
		require.Equal(t, "123456789012345678901234567890", ct.String())

		_, err = NewCiphertextFromString("12a")
		require.Error(t, err)

		_, err = NewCiphertextFromString("-1")
		require.Error(t, err)
	})
}
