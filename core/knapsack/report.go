package knapsack

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/tuneinsight/knapsack/utils/bignum"
)

// ReportPrecision is the precision in bits of the arbitrary precision
// computations of [NewKeyReport].
const ReportPrecision = 128

// KeyReport gathers diagnostic values about a key pair.
type KeyReport struct {
	VectorLength int

	// Density is n / log2(max b_i). Knapsacks of density below ~0.94
	// are solvable by lattice reduction.
	Density float64

	// ModulusBits is the bit length of Q.
	ModulusBits int

	// StepMean, StepMedian and StepStdDev are computed over the
	// increments w_i - (w_1 + ... + w_{i-1}) of the private key.
	StepMean   float64
	StepMedian float64
	StepStdDev float64

	Fingerprint []byte
}

// NewKeyReport computes the [KeyReport] of a key pair.
func NewKeyReport(sk *PrivateKey, pk *PublicKey) (r *KeyReport, err error) {

	if sk.Len() == 0 || sk.Len() != pk.Len() {
		return nil, fmt.Errorf("cannot NewKeyReport: invalid key lengths %d and %d", sk.Len(), pk.Len())
	}

	r = &KeyReport{
		VectorLength: pk.Len(),
		ModulusBits:  sk.Q.BitLen(),
		Fingerprint:  pk.Fingerprint(),
	}

	if r.Density, err = density(pk); err != nil {
		return nil, fmt.Errorf("cannot NewKeyReport: %w", err)
	}

	steps := sk.Steps()
	data := make(stats.Float64Data, len(steps))
	for i := range steps {
		data[i], _ = new(big.Float).SetInt(steps[i]).Float64()
	}

	if r.StepMean, err = stats.Mean(data); err != nil {
		return nil, fmt.Errorf("cannot NewKeyReport: stats.Mean: %w", err)
	}

	if r.StepMedian, err = stats.Median(data); err != nil {
		return nil, fmt.Errorf("cannot NewKeyReport: stats.Median: %w", err)
	}

	if r.StepStdDev, err = stats.StandardDeviation(data); err != nil {
		return nil, fmt.Errorf("cannot NewKeyReport: stats.StandardDeviation: %w", err)
	}

	return
}

func density(pk *PublicKey) (d float64, err error) {

	max := pk.Max()

	if max.Cmp(big.NewInt(1)) <= 0 {
		return 0, fmt.Errorf("density is undefined for max b_i = %s", max)
	}

	log2Max := bignum.Log2Int(max, ReportPrecision)

	d, _ = new(big.Float).Quo(bignum.NewFloat(pk.Len(), ReportPrecision), log2Max).Float64()

	return
}

// String returns a human readable multi-line rendering of the report.
func (r KeyReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "vector length: %d\n", r.VectorLength)
	fmt.Fprintf(&sb, "modulus bits:  %d\n", r.ModulusBits)
	fmt.Fprintf(&sb, "density:       %.6f\n", r.Density)
	fmt.Fprintf(&sb, "steps:         mean=%.3f median=%.3f stddev=%.3f\n", r.StepMean, r.StepMedian, r.StepStdDev)
	fmt.Fprintf(&sb, "fingerprint:   %s", hex.EncodeToString(r.Fingerprint))
	return sb.String()
}
