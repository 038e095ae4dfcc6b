// Package strain estimates principal strain rates and their orientation from
// surface velocities measured at points scattered around a center point.
//
// Velocity gradients are approximated by differencing each observation's
// velocity against the mean velocity of its axis subset and dividing by the
// observation's offset from the center along that axis. Degenerate input
// does not produce an error: it produces NaN values that callers must check
// for, see Result.Defined.
package strain

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/chrissnell/glaciology/internal/log"
	"github.com/chrissnell/glaciology/internal/nanstat"
)

var (
	// ErrLengthMismatch is returned when the observation slices differ in length
	ErrLengthMismatch = errors.New("observation slices differ in length")

	// ErrNegativeMinDistance is returned for a minimum distance below zero or NaN
	ErrNegativeMinDistance = errors.New("minimum distance must be zero or positive")
)

// Point is a location in map coordinates (m)
type Point struct {
	X, Y float64
}

// Observations holds velocity measurements as parallel slices. Every
// non-nil slice must have the same length. ErrX and ErrY are optional;
// uncertainty is propagated only when both are set.
type Observations struct {
	X, Y   []float64 // measurement positions (m)
	VX, VY []float64 // velocity components (m/yr)
	ErrX   []float64 // uncertainty of VX (m/yr)
	ErrY   []float64 // uncertainty of VY (m/yr)
}

// Len returns the number of observations
func (o Observations) Len() int {
	return len(o.X)
}

// HasErrors reports whether both velocity uncertainty slices are present
func (o Observations) HasErrors() bool {
	return o.ErrX != nil && o.ErrY != nil
}

func (o Observations) validate() error {
	n := o.Len()
	fields := []struct {
		name     string
		values   []float64
		optional bool
	}{
		{"y", o.Y, false},
		{"vx", o.VX, false},
		{"vy", o.VY, false},
		{"errx", o.ErrX, true},
		{"erry", o.ErrY, true},
	}
	for _, f := range fields {
		if f.optional && f.values == nil {
			continue
		}
		if len(f.values) != n {
			return fmt.Errorf("%w: %s has %d values, x has %d", ErrLengthMismatch, f.name, len(f.values), n)
		}
	}
	return nil
}

// Uncertainty is a strain-rate error estimate that may be absent.
// Valid is false when no velocity uncertainties were supplied.
type Uncertainty struct {
	Rate  float64 // yr⁻¹
	Valid bool
}

// Result holds the principal strain rates around a center point
type Result struct {
	ThetaP      float64 // principal angle from the x axis (rad)
	Eps11       float64 // first principal strain rate, along ThetaP (yr⁻¹)
	Eps22       float64 // second principal strain rate, along ThetaP + π/2 (yr⁻¹)
	Tensor      Tensor  // strain-rate tensor in x-y orientation
	Uncertainty Uncertainty
}

// Defined reports whether the angle and both principal strain rates are numbers
func (r Result) Defined() bool {
	return !math.IsNaN(r.ThetaP) && !math.IsNaN(r.Eps11) && !math.IsNaN(r.Eps22)
}

func undefinedResult(withErrors bool) Result {
	nan := math.NaN()
	return Result{
		ThetaP:      nan,
		Eps11:       nan,
		Eps22:       nan,
		Tensor:      Tensor{XX: nan, YY: nan, XY: nan},
		Uncertainty: Uncertainty{Rate: nan, Valid: withErrors},
	}
}

// Estimator computes principal strain rates. Configure it through
// NewEstimator's options; its fields must not be changed afterwards. An
// Estimator that is not modified is safe for concurrent use.
type Estimator struct {
	// MinDistance excludes observations whose offset from the center along an
	// axis is at or below this value (m) from that axis's gradients.
	MinDistance float64

	// EmitWarnings logs a warning when too few observations are supplied
	EmitWarnings bool

	logger *zap.SugaredLogger
}

// Option configures an Estimator
type Option func(*Estimator)

// WithMinDistance sets the per-axis minimum offset from the center (m)
func WithMinDistance(d float64) Option {
	return func(e *Estimator) {
		e.MinDistance = d
	}
}

// WithWarnings enables or disables the insufficient-data warning
func WithWarnings(enabled bool) Option {
	return func(e *Estimator) {
		e.EmitWarnings = enabled
	}
}

// WithLogger routes warnings to logger instead of the package logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Estimator) {
		e.logger = logger
	}
}

// NewEstimator returns an Estimator with no minimum distance and warnings enabled
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{
		EmitWarnings: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.GetSugaredLogger()
	}
	return e
}

// PrincipalStrain is shorthand for NewEstimator(WithMinDistance(minDistance)).PrincipalStrain.
func PrincipalStrain(center Point, obs Observations, minDistance float64) (Result, error) {
	return NewEstimator(WithMinDistance(minDistance)).PrincipalStrain(center, obs)
}

// PrincipalStrain calculates the principal strain rates about center from
// the velocity observations.
//
// Fewer than two observations yield an all-NaN result and a nil error. An
// axis left without observations after MinDistance filtering yields NaN
// components that carry through to the result. Errors are returned only for
// malformed input.
func (e *Estimator) PrincipalStrain(center Point, obs Observations) (Result, error) {
	if !(e.MinDistance >= 0) {
		return undefinedResult(obs.HasErrors()), fmt.Errorf("%w: got %g", ErrNegativeMinDistance, e.MinDistance)
	}
	if err := obs.validate(); err != nil {
		return undefinedResult(obs.HasErrors()), err
	}

	n := obs.Len()
	if n <= 1 {
		if e.EmitWarnings {
			e.logger.Warnw("not enough observations to estimate strain rates, need at least 2",
				"observations", n,
				"center_x", center.X,
				"center_y", center.Y,
			)
		}
		return undefinedResult(obs.HasErrors()), nil
	}

	// Distance from center to each point
	xdist := nanstat.Offset(obs.X, center.X)
	ydist := nanstat.Offset(obs.Y, center.Y)

	// Points too close to the center along an axis are left out of that
	// axis's gradients
	xmask := nanstat.AbsGreater(xdist, e.MinDistance)
	ymask := nanstat.AbsGreater(ydist, e.MinDistance)
	xd := nanstat.Select(xdist, xmask)
	yd := nanstat.Select(ydist, ymask)

	// Strain rates oriented with x-y
	epsXX := gradient(nanstat.Select(obs.VX, xmask), xd)
	epsYY := gradient(nanstat.Select(obs.VY, ymask), yd)
	epsXY := gradient(nanstat.Select(obs.VX, ymask), yd)
	epsYX := gradient(nanstat.Select(obs.VY, xmask), xd)

	t := Tensor{
		XX: epsXX,
		YY: epsYY,
		XY: (epsXY + epsYX) / 2,
	}
	theta, eps11, eps22 := t.Principal()

	res := Result{
		ThetaP: theta,
		Eps11:  eps11,
		Eps22:  eps22,
		Tensor: t,
	}

	if obs.HasErrors() {
		errXX := nanstat.Mean(nanstat.Ratio(nanstat.Select(obs.ErrX, xmask), xd))
		errYY := nanstat.Mean(nanstat.Ratio(nanstat.Select(obs.ErrY, ymask), yd))
		errXY := nanstat.Mean(nanstat.Ratio(nanstat.Select(obs.ErrX, ymask), yd))
		errYX := nanstat.Mean(nanstat.Ratio(nanstat.Select(obs.ErrY, xmask), xd))

		res.Uncertainty = Uncertainty{
			Rate:  (errXX+errYY)/2 + nanstat.Mean([]float64{errXY, errYX}),
			Valid: true,
		}
	}

	return res, nil
}

// gradient averages the velocity anomalies divided by their offsets,
// skipping any ratio that is NaN.
func gradient(v, dist []float64) float64 {
	return nanstat.Mean(nanstat.Ratio(nanstat.Anomaly(v), dist))
}
