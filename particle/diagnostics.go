package particle

import "nbody.space/vector3"

// KineticEnergy returns sum_i (1/2) m_i |v_i|^2 over every particle
// (supplemented diagnostic, spec §8's drift-threshold scenarios).
func (s *System) KineticEnergy() float64 {
	var total float64
	for _, p := range s.particles {
		total += 0.5 * p.Mass * p.Velocity.Norm2()
	}
	return total
}

// PotentialEnergy returns sum_{i<j} -mu_i * m_j / |r_i - r_j| over every
// pair of massive particles (supplemented diagnostic; test particles carry
// no potential energy since they do not gravitate). Using mu_i (= G*m_i)
// rather than G and m_i directly avoids needing the gravitational constant
// in this package.
func (s *System) PotentialEnergy() float64 {
	massive := s.Massive()
	var total float64
	for i, pi := range massive {
		for _, pj := range massive[i+1:] {
			d := pi.Position.Distance(pj.Position)
			total -= pi.Mu * pj.Mass / d
		}
	}
	return total
}

// TotalEnergy returns KineticEnergy() + PotentialEnergy(), the quantity a
// symplectic integrator is expected to conserve over long integrations.
func (s *System) TotalEnergy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}

// AngularMomentum returns sum_i m_i (r_i x v_i) over every particle.
func (s *System) AngularMomentum() vector3.Vector {
	var total vector3.Vector
	for _, p := range s.particles {
		total = total.Add(p.Position.Cross(p.Velocity).Scale(p.Mass))
	}
	return total
}
