package knapsack

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/tuneinsight/knapsack/utils"
)

const (
	// DefaultVectorLength is the default number of terms of the keys, which allows
	// encrypting up to 80 bytes.
	DefaultVectorLength = 640

	// DefaultMinStep is the default lower bound of the random increments of the private key.
	DefaultMinStep = 1

	// DefaultMaxStep is the default upper bound of the random increments of the private key.
	DefaultMaxStep = 5
)

// ParametersLiteral is a literal representation of knapsack parameters. It has public fields and
// is used to express unchecked user-defined parameters literally into Go programs or configuration
// files. The [NewParametersFromLiteral] function is used to generate the actual checked parameters
// from the literal representation.
//
// Fields left to their zero value are substituted with [DefaultVectorLength], [DefaultMinStep]
// and [DefaultMaxStep].
type ParametersLiteral struct {
	VectorLength int `json:",omitempty" yaml:"vector_length,omitempty"`
	MinStep      int `json:",omitempty" yaml:"min_step,omitempty"`
	MaxStep      int `json:",omitempty" yaml:"max_step,omitempty"`
}

// Parameters represents a set of knapsack parameters. Its fields are private and
// immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	vectorLength int
	minStep      int
	maxStep      int
}

var (
	// DefaultParametersLiteral is the parameter set of the reference console program:
	// 640 terms and increments drawn in [1, 5].
	DefaultParametersLiteral = ParametersLiteral{
		VectorLength: DefaultVectorLength,
		MinStep:      DefaultMinStep,
		MaxStep:      DefaultMaxStep,
	}

	// ExampleParametersLiteral is a small parameter set that encrypts up to 16 bytes.
	ExampleParametersLiteral = ParametersLiteral{
		VectorLength: 128,
		MinStep:      1,
		MaxStep:      1 << 10,
	}
)

// NewParameters returns a new set of knapsack parameters. It returns the empty
// parameters [Parameters]{} and a non-nil error if the specified parameters are invalid.
func NewParameters(vectorLength, minStep, maxStep int) (params Parameters, err error) {

	if vectorLength < 1 {
		return Parameters{}, fmt.Errorf("cannot NewParameters: VectorLength=%d must be at least 1", vectorLength)
	}

	if minStep < 1 {
		return Parameters{}, fmt.Errorf("cannot NewParameters: MinStep=%d must be at least 1", minStep)
	}

	if maxStep < minStep {
		return Parameters{}, fmt.Errorf("cannot NewParameters: MaxStep=%d must be greater or equal to MinStep=%d", maxStep, minStep)
	}

	return Parameters{
		vectorLength: vectorLength,
		minStep:      minStep,
		maxStep:      maxStep,
	}, nil
}

// NewParametersFromLiteral instantiate a set of knapsack parameters from a [ParametersLiteral] specification.
// It returns the empty parameters Parameters{} and a non-nil error if the specified parameters are invalid.
//
// If MaxStep is left unset, it is set to max(DefaultMaxStep, MinStep).
func NewParametersFromLiteral(paramDef ParametersLiteral) (params Parameters, err error) {

	if paramDef.VectorLength == 0 {
		paramDef.VectorLength = DefaultVectorLength
	}

	if paramDef.MinStep == 0 {
		paramDef.MinStep = DefaultMinStep
	}

	if paramDef.MaxStep == 0 {
		paramDef.MaxStep = utils.Max(DefaultMaxStep, paramDef.MinStep)
	}

	if params, err = NewParameters(paramDef.VectorLength, paramDef.MinStep, paramDef.MaxStep); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	return
}

// ParametersLiteral returns the [ParametersLiteral] of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		VectorLength: p.vectorLength,
		MinStep:      p.minStep,
		MaxStep:      p.maxStep,
	}
}

// VectorLength returns the number of terms of the keys, which is also
// the maximum number of plaintext bits.
func (p Parameters) VectorLength() int {
	return p.vectorLength
}

// MinStep returns the lower bound of the private key increments.
func (p Parameters) MinStep() int {
	return p.minStep
}

// MaxStep returns the upper bound of the private key increments.
func (p Parameters) MaxStep() int {
	return p.maxStep
}

// MaxPlaintextSize returns the maximum number of bytes that can be
// encrypted without saturating the public key.
func (p Parameters) MaxPlaintextSize() int {
	return p.vectorLength / 8
}

// Equal returns true if the receiver and the operand are identical.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
