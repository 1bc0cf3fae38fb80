package paths

import (
	"fmt"

	"github.com/pdevine/tensor"
)

// Reduce selects how per-link results collapse across the link axes
// (rx, rx_ant, tx, tx_ant).
type Reduce int

const (
	// ReduceNone keeps the per-link result, shaped like the input minus
	// the depth axis.
	ReduceNone Reduce = iota

	// ReduceAny marks a path where the condition holds on at least one link.
	ReduceAny

	// ReduceAll marks a path where the condition holds on every link.
	ReduceAll
)

// Depths counts the interactions of each path: the number of non-None
// codes along the depth axis. The result drops the depth axis, so a
// [depth, rx, rx_ant, tx, tx_ant, path] input yields
// [rx, rx_ant, tx, tx_ant, path] integer counts.
func Depths(v any) (*tensor.Dense, error) {
	t, err := interactionsOf(v)
	if err != nil {
		return nil, err
	}
	data, err := uint32Data(t, "interactions")
	if err != nil {
		return nil, err
	}
	shape := t.Shape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("%w: interactions needs a depth and a path axis, got shape %v", ErrTensorType, shape)
	}

	depth := shape[0]
	rest := sizeOf(shape[1:])
	counts := make([]int, rest)
	for d := 0; d < depth; d++ {
		slot := data[d*rest : (d+1)*rest]
		for i, code := range slot {
			if InteractionType(code) != None {
				counts[i]++
			}
		}
	}

	return tensor.New(tensor.WithShape(shape[1:]...), tensor.WithBacking(counts)), nil
}

// AllValid reduces a validity tensor with logical AND across every axis
// except the trailing path axis: result[p] is true only when path p is
// valid on every link.
func AllValid(v any) ([]bool, error) {
	t, err := validOf(v)
	if err != nil {
		return nil, err
	}
	data, err := boolData(t, "valid")
	if err != nil {
		return nil, err
	}
	return andOverLinks(data, lastAxis(t.Shape())), nil
}

// FilterAllValid computes the AllValid mask and, when applyMask is set,
// writes it back into the validity tensor in place: every link entry of a
// path that is invalid somewhere becomes invalid everywhere.
func FilterAllValid(v any, applyMask bool) ([]bool, error) {
	t, err := validOf(v)
	if err != nil {
		return nil, err
	}
	data, err := boolData(t, "valid")
	if err != nil {
		return nil, err
	}

	nPaths := lastAxis(t.Shape())
	mask := andOverLinks(data, nPaths)
	if applyMask && nPaths > 0 {
		for i := range data {
			data[i] = data[i] && mask[i%nPaths]
		}
	}
	return mask, nil
}

// HitObjects reports, per path, whether the path's object sequence contains
// any of the target object ids at any depth. The per-link result collapses
// across the link axes according to mode: ReduceAny and ReduceAll yield a
// 1-D bool tensor over paths, ReduceNone keeps the link axes.
func HitObjects(v any, ids []uint32, mode Reduce) (*tensor.Dense, error) {
	t, err := objectsOf(v)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no object ids given", ErrEmptySequence)
	}
	data, shape, err := objectLayout(t)
	if err != nil {
		return nil, err
	}

	rest := sizeOf(shape[1:])
	perLink := make([]bool, rest)
	for d := 0; d < shape[0]; d++ {
		slot := data[d*rest : (d+1)*rest]
		for i, id := range slot {
			if perLink[i] {
				continue
			}
			for _, want := range ids {
				if id == want {
					perLink[i] = true
					break
				}
			}
		}
	}

	return reduceLinks(perLink, shape[1:], mode)
}

// HitSequence reports, per path, whether the first len(seq) object slots
// equal seq exactly, in order. A tensor shallower than the sequence yields
// an all-false result. Link-axis reduction follows mode as in HitObjects.
func HitSequence(v any, seq []uint32, mode Reduce) (*tensor.Dense, error) {
	t, err := objectsOf(v)
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: no object sequence given", ErrEmptySequence)
	}
	data, shape, err := objectLayout(t)
	if err != nil {
		return nil, err
	}

	rest := sizeOf(shape[1:])
	perLink := make([]bool, rest)
	if shape[0] >= len(seq) {
		for i := range perLink {
			perLink[i] = true
		}
		for k, want := range seq {
			slot := data[k*rest : (k+1)*rest]
			for i, id := range slot {
				if id != want {
					perLink[i] = false
				}
			}
		}
	}

	return reduceLinks(perLink, shape[1:], mode)
}

func objectLayout(t *tensor.Dense) ([]uint32, tensor.Shape, error) {
	data, err := uint32Data(t, "objects")
	if err != nil {
		return nil, nil, err
	}
	shape := t.Shape()
	if len(shape) < 2 {
		return nil, nil, fmt.Errorf("%w: objects needs a depth and a path axis, got shape %v", ErrTensorType, shape)
	}
	return data, shape, nil
}

// reduceLinks collapses a per-link bool slice (shaped linkShape, path axis
// last) according to mode.
func reduceLinks(perLink []bool, linkShape tensor.Shape, mode Reduce) (*tensor.Dense, error) {
	nPaths := lastAxis(linkShape)

	switch mode {
	case ReduceNone:
		return tensor.New(tensor.WithShape(linkShape...), tensor.WithBacking(perLink)), nil
	case ReduceAny:
		out := make([]bool, nPaths)
		for i, hit := range perLink {
			if hit {
				out[i%nPaths] = true
			}
		}
		return tensor.New(tensor.WithShape(nPaths), tensor.WithBacking(out)), nil
	case ReduceAll:
		return tensor.New(tensor.WithShape(nPaths), tensor.WithBacking(andOverLinks(perLink, nPaths))), nil
	}
	return nil, fmt.Errorf("%w: reduce mode %d", ErrUnknownMode, mode)
}

// andOverLinks AND-reduces a flat bool slice over everything but the
// trailing path axis.
func andOverLinks(data []bool, nPaths int) []bool {
	out := make([]bool, nPaths)
	for i := range out {
		out[i] = true
	}
	if nPaths == 0 {
		return out
	}
	for i, ok := range data {
		if !ok {
			out[i%nPaths] = false
		}
	}
	return out
}

func sizeOf(shape tensor.Shape) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func lastAxis(shape tensor.Shape) int {
	if len(shape) == 0 {
		return 0
	}
	return shape[len(shape)-1]
}
