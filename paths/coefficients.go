package paths

import (
	"fmt"
	"math"
	"sort"

	"github.com/pdevine/tensor"
	"gonum.org/v1/gonum/stat"
)

// MagMode selects how channel coefficient magnitudes reduce across the
// link axes.
type MagMode int

const (
	MagMax MagMode = iota
	MagMin
	MagMean
	MagMedian
)

// ParseMagMode parses a reduction mode name: "max", "min", "mean" or
// "median".
func ParseMagMode(s string) (MagMode, error) {
	switch s {
	case "max":
		return MagMax, nil
	case "min":
		return MagMin, nil
	case "mean":
		return MagMean, nil
	case "median":
		return MagMedian, nil
	}
	return 0, fmt.Errorf("%w: %q, must be one of: max, min, mean, median", ErrUnknownMode, s)
}

func (m MagMode) String() string {
	switch m {
	case MagMax:
		return "max"
	case MagMin:
		return "min"
	case MagMean:
		return "mean"
	case MagMedian:
		return "median"
	}
	return fmt.Sprintf("MagMode(%d)", int(m))
}

// A assembles the complex channel coefficients from the solver's
// (real, imaginary) float32 tensor pair.
func A(v any) (*tensor.Dense, error) {
	re, im, err := coefficientsOf(v)
	if err != nil {
		return nil, err
	}
	reData, err := float32Data(re, "coefficients (real)")
	if err != nil {
		return nil, err
	}
	imData, err := float32Data(im, "coefficients (imag)")
	if err != nil {
		return nil, err
	}
	if !re.Shape().Eq(im.Shape()) {
		return nil, fmt.Errorf("%w: real and imaginary shapes differ: %v vs %v", ErrTensorType, re.Shape(), im.Shape())
	}

	out := make([]complex64, len(reData))
	for i := range out {
		out[i] = complex(reData[i], imData[i])
	}
	return tensor.New(tensor.WithShape(re.Shape()...), tensor.WithBacking(out)), nil
}

// AMag returns the elementwise magnitude of the channel coefficients with
// the original shape preserved.
func AMag(v any) (*tensor.Dense, error) {
	re, im, err := coefficientsOf(v)
	if err != nil {
		return nil, err
	}
	reData, err := float32Data(re, "coefficients (real)")
	if err != nil {
		return nil, err
	}
	imData, err := float32Data(im, "coefficients (imag)")
	if err != nil {
		return nil, err
	}
	if !re.Shape().Eq(im.Shape()) {
		return nil, fmt.Errorf("%w: real and imaginary shapes differ: %v vs %v", ErrTensorType, re.Shape(), im.Shape())
	}

	out := make([]float32, len(reData))
	for i := range out {
		out[i] = float32(math.Hypot(float64(reData[i]), float64(imData[i])))
	}
	return tensor.New(tensor.WithShape(re.Shape()...), tensor.WithBacking(out)), nil
}

// AMagReduced reduces the coefficient magnitudes across every axis except
// the trailing path axis, yielding one value per path.
func AMagReduced(v any, mode MagMode) ([]float64, error) {
	mag, err := AMag(v)
	if err != nil {
		return nil, err
	}

	data := mag.Data().([]float32)
	nPaths := lastAxis(mag.Shape())
	if nPaths == 0 || len(data) == 0 {
		return make([]float64, nPaths), nil
	}

	// Gather the magnitudes of each path across all link axes.
	groups := make([][]float64, nPaths)
	perPath := len(data) / nPaths
	for p := range groups {
		groups[p] = make([]float64, 0, perPath)
	}
	for i, m := range data {
		p := i % nPaths
		groups[p] = append(groups[p], float64(m))
	}

	out := make([]float64, nPaths)
	for p, xs := range groups {
		switch mode {
		case MagMax:
			out[p] = xs[0]
			for _, x := range xs[1:] {
				out[p] = math.Max(out[p], x)
			}
		case MagMin:
			out[p] = xs[0]
			for _, x := range xs[1:] {
				out[p] = math.Min(out[p], x)
			}
		case MagMean:
			out[p] = stat.Mean(xs, nil)
		case MagMedian:
			sort.Float64s(xs)
			out[p] = median(xs)
		default:
			return nil, fmt.Errorf("%w: reduction mode %d", ErrUnknownMode, mode)
		}
	}
	return out, nil
}

// median of a sorted slice: the middle element, or the midpoint of the two
// middle elements for even counts.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
