package flow

import (
	"errors"
	"fmt"
	"math"
)

// ErrParamCount is returned when a parameter vector has the wrong length
var ErrParamCount = errors.New("wrong number of model parameters")

// VerticalVelocity is a vertical velocity closure evaluated at normalized
// vertical positions in [0, 1]
type VerticalVelocity interface {
	Velocity(eps []float64) []float64
}

// DansgaardJohnsen is the Dansgaard-Johnsen closure with surface velocity
// scale Ws and critical normalized depth EpsC, the transition between the
// quadratic and linear regimes. Velocity is 0 at ε = 0 and Ws at ε = 1.
type DansgaardJohnsen struct {
	Ws   float64
	EpsC float64
}

// Velocity implements VerticalVelocity
func (m DansgaardJohnsen) Velocity(eps []float64) []float64 {
	return VerticalVelocityDansgaardJohnsen(m.Ws, eps, m.EpsC)
}

// Lliboutry is the Lliboutry closure with surface velocity scale Ws and
// shape exponent P. Velocity is Ws at ε = 0 and 0 at ε = 1.
type Lliboutry struct {
	Ws float64
	P  float64
}

// LliboutryFromParams builds a Lliboutry model from a [ws, p] parameter
// vector, the shape curve fitting routines work with.
func LliboutryFromParams(params []float64) (Lliboutry, error) {
	if len(params) != 2 {
		return Lliboutry{}, fmt.Errorf("%w: lliboutry takes [ws, p], got %d values", ErrParamCount, len(params))
	}
	return Lliboutry{Ws: params[0], P: params[1]}, nil
}

// Velocity implements VerticalVelocity
func (m Lliboutry) Velocity(eps []float64) []float64 {
	return VerticalVelocityLliboutry(m.Ws, m.P, eps)
}

// VerticalVelocityDansgaardJohnsen returns the vertical velocity at each
// normalized depth in eps (Kingslake et al., 2014):
//
//	w = ws·ε² / (εc(2-εc))      for ε < εc
//	w = ws·(2ε - εc) / (2-εc)   otherwise
func VerticalVelocityDansgaardJohnsen(ws float64, eps []float64, epsC float64) []float64 {
	w := make([]float64, len(eps))
	for i, e := range eps {
		if e < epsC {
			w[i] = ws * e * e / (epsC * (2 - epsC))
		} else {
			w[i] = ws * (2*e - epsC) / (2 - epsC)
		}
	}
	return w
}

// VerticalVelocityLliboutry returns the vertical velocity at each normalized
// depth in eps (Kingslake et al., 2014):
//
//	w = ws·(1 - (p+2)/(p+1)·ε + 1/(p+1)·ε^(p+2))
func VerticalVelocityLliboutry(ws, p float64, eps []float64) []float64 {
	w := make([]float64, len(eps))
	for i, e := range eps {
		w[i] = ws * (1 - (p+2)/(p+1)*e + 1/(p+1)*math.Pow(e, p+2))
	}
	return w
}
