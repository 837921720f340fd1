// Package particle implements spec §4.F: the Particle and System types,
// the Newton/PPN/CWPM acceleration kernels, and drift correction.
package particle

import (
	"fmt"
	"math"

	"nbody.space/simerr"
	"nbody.space/vector3"
)

// testParticleMass is the tiny sentinel mass recorded for a massless
// (mu == 0) test particle, purely for bookkeeping (spec §4.F).
const testParticleMass = 1.0

// RK4Scratch is the four-slot state a classical RK4 integrator stages on a
// particle between its A/B/C/D substeps (spec §3, §4.G): the saved
// starting state and the four (position-rate, velocity-rate) evaluations.
type RK4Scratch struct {
	X0, V0                 vector3.Vector
	K1R, K1V               vector3.Vector
	K2R, K2V               vector3.Vector
	K3R, K3V               vector3.Vector
	K4R, K4V               vector3.Vector
}

// Particle is the integrator's unit (spec §3). Mass and Mu are immutable
// once added to a System; Position/Velocity/Acceleration are updated by
// integrators; AccelHistory/HistoryFilled and RK4 are integrator-owned
// scratch.
type Particle struct {
	Name string
	Mass float64
	Mu   float64

	Position     vector3.Vector
	Velocity     vector3.Vector
	Acceleration vector3.Vector

	// AccelHistory and VelocityHistory hold the last four committed
	// accelerations and velocities for ABM4 (spec §3, §4.G), most recent
	// last: the velocity history drives the position predictor/corrector,
	// the acceleration history drives the velocity predictor/corrector.
	// HistoryFilled counts valid entries, shared by both (0-4).
	AccelHistory    [4]vector3.Vector
	VelocityHistory [4]vector3.Vector
	HistoryFilled   int

	RK4 RK4Scratch
}

// IsTestParticle reports whether p has zero standard gravitational
// parameter, i.e. is integrated but excluded from the gravitating set
// (spec §3).
func (p *Particle) IsTestParticle() bool { return p.Mu == 0 }

// PushHistory rotates a committed (velocity, acceleration) pair into the
// four-slot ABM4 history, discarding the oldest entry of each.
func (p *Particle) PushHistory(v, a vector3.Vector) {
	p.VelocityHistory[0] = p.VelocityHistory[1]
	p.VelocityHistory[1] = p.VelocityHistory[2]
	p.VelocityHistory[2] = p.VelocityHistory[3]
	p.VelocityHistory[3] = v

	p.AccelHistory[0] = p.AccelHistory[1]
	p.AccelHistory[1] = p.AccelHistory[2]
	p.AccelHistory[2] = p.AccelHistory[3]
	p.AccelHistory[3] = a

	if p.HistoryFilled < 4 {
		p.HistoryFilled++
	}
}

// ResetHistory empties the ABM4 history and any in-progress RK4 scratch,
// as required whenever the integrator timestep changes sign or magnitude
// (spec §3's ABM4 history lifecycle).
func (p *Particle) ResetHistory() {
	p.AccelHistory = [4]vector3.Vector{}
	p.VelocityHistory = [4]vector3.Vector{}
	p.HistoryFilled = 0
	p.RK4 = RK4Scratch{}
}

// Kernel selects which acceleration law a System evaluates (spec §4.F,
// §9: "tagged variants, not inheritance").
type Kernel int

const (
	// KernelNewton is pure Newtonian gravity.
	KernelNewton Kernel = iota
	// KernelPPN is Newton plus the post-Newtonian relativistic correction.
	KernelPPN
	// KernelCWPM is Newton plus the curvature-of-wave-propagation variant.
	KernelCWPM
)

// DriftPolicy selects how a System's drift correction removes the free
// centroid motion after each integrator step (spec §4.F).
type DriftPolicy int

const (
	// DriftMassWeightedCentroid subtracts the center of mass of the
	// massive subset from every particle.
	DriftMassWeightedCentroid DriftPolicy = iota
	// DriftPinnedAnchor subtracts a nominated anchor particle's state
	// from every particle.
	DriftPinnedAnchor
)

// System is an ordered set of uniquely-named particles sharing a kernel
// selection (spec §3).
type System struct {
	particles []*Particle
	byName    map[string]int

	generalRelativity        bool
	curvatureWavePropagation bool
}

// NewSystem builds an empty particle system using Newtonian gravity.
func NewSystem() *System {
	return &System{byName: make(map[string]int)}
}

// AddParticle adds a mass-bearing particle. Fails with InvariantViolation
// if name is already registered.
func (s *System) AddParticle(name string, mass, mu float64, r, v vector3.Vector) error {
	if _, exists := s.byName[name]; exists {
		return simerr.InvariantViolation(fmt.Sprintf("particle: duplicate name %q", name), nil)
	}
	s.byName[name] = len(s.particles)
	s.particles = append(s.particles, &Particle{Name: name, Mass: mass, Mu: mu, Position: r, Velocity: v})
	return nil
}

// AddTestParticle adds a massless (mu=0) test particle, e.g. a spacecraft
// or small body that is integrated but does not gravitate (spec §4.F).
func (s *System) AddTestParticle(name string, r, v vector3.Vector) error {
	return s.AddParticle(name, testParticleMass, 0, r, v)
}

// RemoveParticle removes a particle by name, e.g. when a spacecraft
// migrates out of a subsystem (spec §4.I). Fails with NotFoundError if
// name is unregistered.
func (s *System) RemoveParticle(name string) error {
	idx, ok := s.byName[name]
	if !ok {
		return simerr.NotFound(fmt.Sprintf("particle: unknown name %q", name), nil)
	}
	s.particles = append(s.particles[:idx], s.particles[idx+1:]...)
	delete(s.byName, name)
	for i := idx; i < len(s.particles); i++ {
		s.byName[s.particles[i].Name] = i
	}
	return nil
}

// GetParticle looks up a particle by name. Fails with NotFoundError if
// absent (spec §4.F).
func (s *System) GetParticle(name string) (*Particle, error) {
	idx, ok := s.byName[name]
	if !ok {
		return nil, simerr.NotFound(fmt.Sprintf("particle: unknown name %q", name), nil)
	}
	return s.particles[idx], nil
}

// Particles returns every particle in insertion order. The slice is owned
// by the System; callers must not retain it across a RemoveParticle call.
func (s *System) Particles() []*Particle { return s.particles }

// Massive returns the subset of particles with Mu > 0, in insertion order.
func (s *System) Massive() []*Particle {
	out := make([]*Particle, 0, len(s.particles))
	for _, p := range s.particles {
		if p.Mu > 0 {
			out = append(out, p)
		}
	}
	return out
}

// SetGeneralRelativity toggles the post-Newtonian correction.
func (s *System) SetGeneralRelativity(enabled bool) {
	s.generalRelativity = enabled
	if !enabled {
		s.curvatureWavePropagation = false
	}
}

// SetCurvatureWavePropagation toggles the CWPM variant. It is an
// InvariantViolation to enable CWPM while general relativity is off
// (spec §4.F, §7).
func (s *System) SetCurvatureWavePropagation(enabled bool) error {
	if enabled && !s.generalRelativity {
		return simerr.InvariantViolation("particle: cannot enable CWPM while general relativity is disabled", nil)
	}
	s.curvatureWavePropagation = enabled
	return nil
}

// GeneralRelativity reports whether the PPN correction is enabled.
func (s *System) GeneralRelativity() bool { return s.generalRelativity }

// CurvatureWavePropagation reports whether the CWPM variant is selected.
func (s *System) CurvatureWavePropagation() bool { return s.curvatureWavePropagation }

func (s *System) activeKernel() Kernel {
	switch {
	case s.generalRelativity && s.curvatureWavePropagation:
		return KernelCWPM
	case s.generalRelativity:
		return KernelPPN
	default:
		return KernelNewton
	}
}

// finite reports whether every component of v is finite (no NaN/Inf).
func finite(v vector3.Vector) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
