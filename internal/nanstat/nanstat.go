// Package nanstat provides masked selection and NaN-aware reductions over
// float64 slices. A NaN element marks a missing value: reductions skip it
// instead of letting it poison the result.
package nanstat

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of the non-NaN elements of v.
// It returns NaN when v holds no such element.
func Mean(v []float64) float64 {
	valid := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			valid = append(valid, x)
		}
	}
	if len(valid) == 0 {
		return math.NaN()
	}
	return stat.Mean(valid, nil)
}

// Offset returns a new slice holding v[i] - origin.
func Offset(v []float64, origin float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	floats.AddConst(-origin, out)
	return out
}

// Anomaly returns a new slice holding v[i] - Mean(v).
func Anomaly(v []float64) []float64 {
	return Offset(v, Mean(v))
}

// Ratio returns a new slice holding num[i] / den[i].
// It panics if the slices differ in length.
func Ratio(num, den []float64) []float64 {
	out := make([]float64, len(num))
	floats.DivTo(out, num, den)
	return out
}

// AbsGreater returns a mask that is set wherever |v[i]| > threshold.
// NaN elements are never selected.
func AbsGreater(v []float64, threshold float64) []bool {
	mask := make([]bool, len(v))
	for i, x := range v {
		mask[i] = math.Abs(x) > threshold
	}
	return mask
}

// Select returns the elements of v whose mask entry is set, in order.
func Select(v []float64, mask []bool) []float64 {
	out := make([]float64, 0, len(v))
	for i, keep := range mask {
		if keep {
			out = append(out, v[i])
		}
	}
	return out
}
