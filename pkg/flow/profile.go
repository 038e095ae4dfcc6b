// Package flow provides closed-form ice flow profiles: the Vialov (1958)
// ice-sheet surface and the Dansgaard-Johnsen and Lliboutry vertical
// velocity closures.
//
// Inputs are not range checked. Distances beyond the flowband length or
// normalized depths outside [0, 1] produce NaN or physically meaningless
// values rather than errors.
package flow

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConstant is returned by Constants.Validate
var ErrInvalidConstant = errors.New("physical constant must be positive")

// Constants holds the physical constants used by the ice-sheet profile
type Constants struct {
	N   float64 // Glen's flow-law exponent
	Rho float64 // ice density (kg/m³)
	G   float64 // gravitational acceleration (m/s²)
}

// DefaultConstants returns Glen's n = 3, ice density 917 kg/m³ and g = 9.81 m/s²
func DefaultConstants() Constants {
	return Constants{
		N:   3,
		Rho: 917,
		G:   9.81,
	}
}

// Validate reports the first constant that is not a positive number
func (c Constants) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"n", c.N},
		{"rho", c.Rho},
		{"g", c.G},
	} {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s = %g", ErrInvalidConstant, f.name, f.value)
		}
	}
	return nil
}

// vialovCoefficient is K = 2(n+2)^(1/n) / (ρg) · (ȧ/2A)^(1/n)
func vialovCoefficient(A, adot float64, c Constants) float64 {
	return 2 * math.Pow(c.N+2, 1/c.N) / (c.Rho * c.G) * math.Pow(adot/(2*A), 1/c.N)
}

func vialov(x, L, k float64, c Constants) float64 {
	e := 1 + 1/c.N
	return math.Pow(k*(math.Pow(L, e)-math.Pow(x, e)), 1/(2+2/c.N))
}

// VialovThickness returns the ice thickness x metres from the divide of a
// flowband of length L, for rate factor A and accumulation rate adot.
// Units must be consistent, e.g. A in Pa⁻ⁿ s⁻¹ and adot in m/s.
func VialovThickness(x, L, A, adot float64, c Constants) float64 {
	return vialov(x, L, vialovCoefficient(A, adot, c), c)
}

// IceSheetProfile evaluates VialovThickness at each distance in x.
// The result has the same length and order as x. Thickness is zero at
// x = L and NaN beyond it.
func IceSheetProfile(x []float64, L, A, adot float64, c Constants) []float64 {
	k := vialovCoefficient(A, adot, c)
	h := make([]float64, len(x))
	for i, xi := range x {
		h[i] = vialov(xi, L, k, c)
	}
	return h
}
