package particle

import (
	"fmt"

	"nbody.space/simerr"
	"nbody.space/vector3"
)

// SpeedOfLight is c in m/s (spec §6), used by the PPN and CWPM kernels.
const SpeedOfLight = 299792458.0

// ComputeAccelerations evaluates the active kernel (Newton, PPN, or CWPM)
// over every particle and stores the result in each Particle's
// Acceleration field (spec §4.F). It returns a NumericalError, leaving no
// particle's Position/Velocity touched, if any resulting acceleration is
// non-finite.
func (s *System) ComputeAccelerations() error {
	massive := s.Massive()

	newton := newtonAccelerations(s.particles, massive)

	var total map[*Particle]vector3.Vector
	switch s.activeKernel() {
	case KernelNewton:
		total = newton
	case KernelPPN:
		total = addRelativistic(s.particles, massive, newton, ppnWeights)
	case KernelCWPM:
		total = addRelativistic(s.particles, massive, newton, cwpmWeights)
	}

	for _, p := range s.particles {
		a := total[p]
		if !finite(a) {
			return simerr.Numerical(fmt.Sprintf("particle: non-finite acceleration for %q", p.Name), nil)
		}
	}
	for _, p := range s.particles {
		p.Acceleration = total[p]
	}
	return nil
}

// newtonAccelerations computes, for every particle in all (test particles
// included as receivers only), the Newtonian gravitational acceleration
// sourced by the massive subset (spec §4.F):
//
//	a_i = sum_{j != i, mu_j>0} mu_j * (r_j - r_i) / |r_j - r_i|^3
func newtonAccelerations(all, massive []*Particle) map[*Particle]vector3.Vector {
	out := make(map[*Particle]vector3.Vector, len(all))
	for _, pi := range all {
		var a vector3.Vector
		for _, pj := range massive {
			if pj == pi {
				continue
			}
			rij := pj.Position.Sub(pi.Position)
			d := rij.Norm()
			a = a.Add(rij.Scale(pj.Mu / (d * d * d)))
		}
		out[pi] = a
	}
	return out
}

// relWeights parameterizes the one structural difference between the PPN
// and CWPM kernels: how the two potential sums inside the bracket term are
// weighted (spec §4.F, §9 — CWPM is "a mutually exclusive alternative
// weighting, not a refinement").
type relWeights struct {
	selfPotential, otherPotential float64
}

var ppnWeights = relWeights{selfPotential: 4, otherPotential: 1}
var cwpmWeights = relWeights{selfPotential: 3, otherPotential: 2}

// addRelativistic adds the post-Newtonian correction (spec §4.F) on top of
// the already-computed Newtonian accelerations, for every particle as a
// receiver and every pair of massive particles as sources:
//
//	a_i^rel = sum_{j != i, mu_j>0} mu_j/(c^2 |r_ij|^3) * r_ij *
//	    [ w1 * sum_{k!=i} mu_k/|r_ik| + w2 * sum_{k!=j} mu_k/|r_jk|
//	      - 3/2 (r_ij . a_j^N) - |v_i|^2 - 2|v_j|^2 + 4 (v_i . v_j)
//	      + 3/2 ((r_ij . v_j)/|r_ij|)^2 ]
//	    + sum_{j != i, mu_j>0} mu_j/(c^2 |r_ij|^3) * (r_ij . (4 v_i - 3 v_j)) * (v_i - v_j)
//
// where r_ij = r_j - r_i.
func addRelativistic(all, massive []*Particle, newton map[*Particle]vector3.Vector, w relWeights) map[*Particle]vector3.Vector {
	c2 := SpeedOfLight * SpeedOfLight
	out := make(map[*Particle]vector3.Vector, len(all))

	for _, pi := range all {
		var accel vector3.Vector
		for _, pj := range massive {
			if pj == pi {
				continue
			}
			rij := pj.Position.Sub(pi.Position)
			dij := rij.Norm()

			var selfSum float64
			for _, pk := range massive {
				if pk == pi {
					continue
				}
				selfSum += pk.Mu / pi.Position.Distance(pk.Position)
			}
			var otherSum float64
			for _, pk := range massive {
				if pk == pj {
					continue
				}
				otherSum += pk.Mu / pj.Position.Distance(pk.Position)
			}

			ajNewton := newton[pj]
			vi, vj := pi.Velocity, pj.Velocity

			bracket := w.selfPotential*selfSum + w.otherPotential*otherSum -
				1.5*rij.Dot(ajNewton) -
				vi.Norm2() - 2*vj.Norm2() + 4*vi.Dot(vj) +
				1.5*pow2(rij.Dot(vj)/dij)

			coeff := pj.Mu / (c2 * dij * dij * dij)
			accel = accel.Add(rij.Scale(coeff * bracket))

			veldiff := vi.Sub(vj)
			accel = accel.Add(veldiff.Scale(coeff * rij.Dot(vi.Scale(4).Sub(vj.Scale(3)))))
		}
		out[pi] = newton[pi].Add(accel)
	}
	return out
}

func pow2(x float64) float64 { return x * x }
