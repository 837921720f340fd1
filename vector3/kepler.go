package vector3

import (
	"fmt"
	"math"

	"nbody.space/simerr"
)

// KeplerMaxIterations bounds the Newton iteration for SolveKepler.
const KeplerMaxIterations = 50

// KeplerTolerance is the convergence tolerance on E - e*sin(E) - M, in radians.
const KeplerTolerance = 1e-12

// SolveKepler returns the eccentric anomaly E satisfying
// E - e*sin(E) = M, for mean anomaly M (radians) and eccentricity
// 0 <= e < 1, via Newton iteration. Fails with a NumericalError if the
// iteration does not converge within KeplerMaxIterations.
func SolveKepler(meanAnomaly, eccentricity float64) (float64, error) {
	if eccentricity < 0 || eccentricity >= 1 {
		return 0, simerr.InvariantViolation(
			fmt.Sprintf("eccentricity %g out of range [0, 1)", eccentricity), nil)
	}

	m := NormalizeRadians(meanAnomaly)
	// Map into (-pi, pi] for faster, more stable convergence near e close to 1.
	if m > math.Pi {
		m -= 2 * math.Pi
	}

	e := m
	if eccentricity > 0.8 {
		e = math.Copysign(math.Pi, m)
	}

	for i := 0; i < KeplerMaxIterations; i++ {
		f := e - eccentricity*math.Sin(e) - m
		fPrime := 1 - eccentricity*math.Cos(e)
		if math.Abs(f) < KeplerTolerance {
			// One more Newton step brings E to full double precision.
			return e - f/fPrime, nil
		}
		e -= f / fPrime
	}

	f := e - eccentricity*math.Sin(e) - m
	if math.Abs(f) < KeplerTolerance {
		return e, nil
	}
	return 0, simerr.Numerical(
		fmt.Sprintf("Kepler solver did not converge after %d iterations (M=%g, e=%g)",
			KeplerMaxIterations, meanAnomaly, eccentricity), nil)
}
