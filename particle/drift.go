package particle

import (
	"gonum.org/v1/gonum/floats"

	"nbody.space/simerr"
	"nbody.space/vector3"
)

// DriftCorrect removes the free motion of the system's reference frame
// (spec §4.F, §9 Open Question): DriftMassWeightedCentroid subtracts the
// center of mass of the massive subset from every particle, falling back
// automatically to DriftPinnedAnchor when the massive subset is empty.
// anchorName is only consulted for DriftPinnedAnchor (or the fallback) and
// must then name a registered particle.
func (s *System) DriftCorrect(policy DriftPolicy, anchorName string) error {
	if policy == DriftMassWeightedCentroid {
		if massive := s.Massive(); len(massive) > 0 {
			return s.driftByCentroid(massive)
		}
		policy = DriftPinnedAnchor
	}
	return s.driftByAnchor(anchorName)
}

// driftByCentroid subtracts the mass-weighted centroid position and
// velocity of massive from every particle in the system.
func (s *System) driftByCentroid(massive []*Particle) error {
	rx := make([]float64, len(massive))
	ry := make([]float64, len(massive))
	rz := make([]float64, len(massive))
	vx := make([]float64, len(massive))
	vy := make([]float64, len(massive))
	vz := make([]float64, len(massive))
	var totalMass float64
	for i, p := range massive {
		rx[i], ry[i], rz[i] = p.Mass*p.Position.X, p.Mass*p.Position.Y, p.Mass*p.Position.Z
		vx[i], vy[i], vz[i] = p.Mass*p.Velocity.X, p.Mass*p.Velocity.Y, p.Mass*p.Velocity.Z
		totalMass += p.Mass
	}
	if totalMass == 0 {
		return simerr.InvariantViolation("particle: mass-weighted centroid requires nonzero total mass", nil)
	}

	centroidR := vector3.New(floats.Sum(rx), floats.Sum(ry), floats.Sum(rz)).Scale(1 / totalMass)
	centroidV := vector3.New(floats.Sum(vx), floats.Sum(vy), floats.Sum(vz)).Scale(1 / totalMass)

	for _, p := range s.particles {
		p.Position = p.Position.Sub(centroidR)
		p.Velocity = p.Velocity.Sub(centroidV)
	}
	return nil
}

// driftByAnchor subtracts the named anchor particle's position/velocity
// from every particle, pinning it at the origin.
func (s *System) driftByAnchor(anchorName string) error {
	if anchorName == "" {
		return simerr.InvariantViolation("particle: pinned-anchor drift correction requires an anchor name", nil)
	}
	anchor, err := s.GetParticle(anchorName)
	if err != nil {
		return err
	}
	r0, v0 := anchor.Position, anchor.Velocity
	for _, p := range s.particles {
		p.Position = p.Position.Sub(r0)
		p.Velocity = p.Velocity.Sub(v0)
	}
	return nil
}
