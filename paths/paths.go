// Package paths post-processes the per-path outputs of the ray-tracing
// solver: interaction tensors, validity masks, and complex channel
// coefficients.
//
// Tensors follow the solver's axis layout
// [depth, rx, rx_ant, tx, tx_ant, path] (or the reduced form
// [depth, rx, tx, path]); the validity mask and channel coefficients drop
// the leading depth axis. All operations accept either a raw dense tensor
// or any value exposing the matching accessor (such as *Paths), and leave
// their inputs untouched except for FilterAllValid with applyMask set.
package paths

import (
	"fmt"
	"math"

	"github.com/pdevine/tensor"

	"github.com/mlouielu/sionna-utils/npy"
)

// InteractionType classifies what happened to a signal at one depth slot.
type InteractionType uint32

const (
	None InteractionType = iota
	Specular
	Diffuse
	Refraction
	Diffraction
)

// InvalidObject marks an object slot with no interaction.
const InvalidObject uint32 = math.MaxUint32

var (
	// ErrTensorType reports an input that is not a tensor of the expected
	// element type or rank.
	ErrTensorType = fmt.Errorf("unexpected tensor type")

	// ErrUnknownMode reports an unrecognized reduction mode.
	ErrUnknownMode = fmt.Errorf("unknown reduction mode")

	// ErrEmptySequence reports an empty object id or sequence argument.
	ErrEmptySequence = fmt.Errorf("empty sequence")
)

// InteractionSource yields an interaction-type tensor.
type InteractionSource interface {
	Interactions() *tensor.Dense
}

// ObjectSource yields a hit-object-id tensor.
type ObjectSource interface {
	Objects() *tensor.Dense
}

// ValiditySource yields a path validity tensor.
type ValiditySource interface {
	Valid() *tensor.Dense
}

// CoefficientSource yields the (real, imaginary) channel coefficient pair.
type CoefficientSource interface {
	A() (re, im *tensor.Dense)
}

// Paths bundles the solver outputs for one solve. Any member the solver
// did not produce may be nil; operations needing it fail with ErrTensorType.
type Paths struct {
	interactions *tensor.Dense
	objects      *tensor.Dense
	valid        *tensor.Dense
	aReal        *tensor.Dense
	aImag        *tensor.Dense
}

// New bundles solver output tensors.
func New(interactions, objects, valid, aReal, aImag *tensor.Dense) *Paths {
	return &Paths{
		interactions: interactions,
		objects:      objects,
		valid:        valid,
		aReal:        aReal,
		aImag:        aImag,
	}
}

// Load reads a solver dump (.npz archive with members "interactions",
// "objects", "valid", "a_real", "a_imag"; any member may be absent).
func Load(path string) (*Paths, error) {
	arrays, err := npy.ReadArchive(path)
	if err != nil {
		return nil, err
	}
	return New(
		arrays["interactions"],
		arrays["objects"],
		arrays["valid"],
		arrays["a_real"],
		arrays["a_imag"],
	), nil
}

func (p *Paths) Interactions() *tensor.Dense { return p.interactions }

func (p *Paths) Objects() *tensor.Dense { return p.objects }

func (p *Paths) Valid() *tensor.Dense { return p.valid }

func (p *Paths) A() (re, im *tensor.Dense) { return p.aReal, p.aImag }

func interactionsOf(v any) (*tensor.Dense, error) {
	switch t := v.(type) {
	case *tensor.Dense:
		return t, nil
	case InteractionSource:
		if it := t.Interactions(); it != nil {
			return it, nil
		}
		return nil, fmt.Errorf("%w: no interactions tensor", ErrTensorType)
	}
	return nil, fmt.Errorf("%w: want *tensor.Dense or InteractionSource, got %T", ErrTensorType, v)
}

func objectsOf(v any) (*tensor.Dense, error) {
	switch t := v.(type) {
	case *tensor.Dense:
		return t, nil
	case ObjectSource:
		if ot := t.Objects(); ot != nil {
			return ot, nil
		}
		return nil, fmt.Errorf("%w: no objects tensor", ErrTensorType)
	}
	return nil, fmt.Errorf("%w: want *tensor.Dense or ObjectSource, got %T", ErrTensorType, v)
}

func validOf(v any) (*tensor.Dense, error) {
	switch t := v.(type) {
	case *tensor.Dense:
		return t, nil
	case ValiditySource:
		if vt := t.Valid(); vt != nil {
			return vt, nil
		}
		return nil, fmt.Errorf("%w: no validity tensor", ErrTensorType)
	}
	return nil, fmt.Errorf("%w: want *tensor.Dense or ValiditySource, got %T", ErrTensorType, v)
}

func coefficientsOf(v any) (re, im *tensor.Dense, err error) {
	switch t := v.(type) {
	case [2]*tensor.Dense:
		re, im = t[0], t[1]
	case CoefficientSource:
		re, im = t.A()
	default:
		return nil, nil, fmt.Errorf("%w: want [2]*tensor.Dense or CoefficientSource, got %T", ErrTensorType, v)
	}
	if re == nil || im == nil {
		return nil, nil, fmt.Errorf("%w: no coefficient tensors", ErrTensorType)
	}
	return re, im, nil
}

func uint32Data(t *tensor.Dense, what string) ([]uint32, error) {
	if t.Dtype() != tensor.Uint32 {
		return nil, fmt.Errorf("%w: %s must be uint32, got %v", ErrTensorType, what, t.Dtype())
	}
	data, ok := t.Data().([]uint32)
	if !ok {
		return nil, fmt.Errorf("%w: %s has non-contiguous backing", ErrTensorType, what)
	}
	return data, nil
}

func boolData(t *tensor.Dense, what string) ([]bool, error) {
	if t.Dtype() != tensor.Bool {
		return nil, fmt.Errorf("%w: %s must be bool, got %v", ErrTensorType, what, t.Dtype())
	}
	data, ok := t.Data().([]bool)
	if !ok {
		return nil, fmt.Errorf("%w: %s has non-contiguous backing", ErrTensorType, what)
	}
	return data, nil
}

func float32Data(t *tensor.Dense, what string) ([]float32, error) {
	if t.Dtype() != tensor.Float32 {
		return nil, fmt.Errorf("%w: %s must be float32, got %v", ErrTensorType, what, t.Dtype())
	}
	data, ok := t.Data().([]float32)
	if !ok {
		return nil, fmt.Errorf("%w: %s has non-contiguous backing", ErrTensorType, what)
	}
	return data, nil
}
