package spk

import "nbody.space/vector3"

// CubicHermiteSampler is a concrete Sampler: a cubic Hermite interpolant
// over [t0, t1] built from position and velocity at both endpoints. It is
// C1-continuous by construction, satisfying spec §4.D's boundary contract
// when adjacent segments share an endpoint state.
type CubicHermiteSampler struct {
	T0, T1     float64
	R0, R1     vector3.Vector
	V0, V1     vector3.Vector
}

// Sample evaluates the Hermite cubic at jd, which must lie in [T0, T1].
func (h CubicHermiteSampler) Sample(jd float64) (vector3.Vector, vector3.Vector, error) {
	dt := h.T1 - h.T0
	if dt <= 0 {
		return vector3.Zero, vector3.Zero, errZeroSpan
	}
	s := (jd - h.T0) / dt

	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	r := h.R0.Scale(h00).
		Add(h.V0.Scale(dt * h10)).
		Add(h.R1.Scale(h01)).
		Add(h.V1.Scale(dt * h11))

	// Derivatives of the basis functions wrt s, converted to d/djd via 1/dt.
	dh00 := 6*s2 - 6*s
	dh10 := 3*s2 - 4*s + 1
	dh01 := -6*s2 + 6*s
	dh11 := 3*s2 - 2*s

	v := h.R0.Scale(dh00 / dt).
		Add(h.V0.Scale(dh10)).
		Add(h.R1.Scale(dh01 / dt)).
		Add(h.V1.Scale(dh11))

	return r, v, nil
}

var errZeroSpan = sampleError("spk: CubicHermiteSampler has zero-length time span")

type sampleError string

func (e sampleError) Error() string { return string(e) }
