package strain

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Tensor is a symmetric 2-D strain-rate tensor (yr⁻¹ when velocities are in m/yr)
type Tensor struct {
	XX float64 // normal strain rate along x
	YY float64 // normal strain rate along y
	XY float64 // shear strain rate, mean of ∂vx/∂y and ∂vy/∂x
}

func (t Tensor) dense() *mat.SymDense {
	return mat.NewSymDense(2, []float64{t.XX, t.XY, t.XY, t.YY})
}

// Dilatation returns the trace of the tensor, which does not change under rotation
func (t Tensor) Dilatation() float64 {
	return t.XX + t.YY
}

// PrincipalAngle returns the angle (radians) from the x axis to the first
// principal axis. A tensor with equal normal components and no shear has no
// preferred orientation; 0 is returned for it.
func (t Tensor) PrincipalAngle() float64 {
	diff := t.XX - t.YY
	if diff == 0 && t.XY == 0 {
		return 0
	}
	return math.Atan(2*t.XY/diff) / 2
}

// Rotate returns the tensor expressed in axes rotated by theta radians
// counter-clockwise from x, computed as R·T·Rᵀ.
func (t Tensor) Rotate(theta float64) Tensor {
	sin, cos := math.Sincos(theta)
	r := mat.NewDense(2, 2, []float64{
		cos, sin,
		-sin, cos,
	})

	var rt, out mat.Dense
	rt.Mul(r, t.dense())
	out.Mul(&rt, r.T())

	return Tensor{
		XX: out.At(0, 0),
		YY: out.At(1, 1),
		XY: out.At(0, 1),
	}
}

// Principal returns the principal angle and the normal strain rates along
// the first (theta) and second (theta + π/2) principal axes.
func (t Tensor) Principal() (theta, eps11, eps22 float64) {
	theta = t.PrincipalAngle()
	p := t.Rotate(theta)
	return theta, p.XX, p.YY
}

// Eigenvalues returns the eigenvalues of the tensor in ascending order.
// ok is false when a component is not finite or the factorization fails.
func (t Tensor) Eigenvalues() (lo, hi float64, ok bool) {
	for _, v := range []float64{t.XX, t.YY, t.XY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.NaN(), math.NaN(), false
		}
	}

	var es mat.EigenSym
	if !es.Factorize(t.dense(), false) {
		return math.NaN(), math.NaN(), false
	}
	values := es.Values(nil)
	return values[0], values[1], true
}
