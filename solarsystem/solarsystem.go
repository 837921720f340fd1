// Package solarsystem implements spec §4.I: the composite driver that
// schedules a main particle system against a set of sub-stepped
// planet-moon subsystems, anchored by the layered ephemeris resolver.
package solarsystem

import (
	"fmt"
	"sort"
	"time"

	"nbody.space/catalogue"
	"nbody.space/ephemeris"
	"nbody.space/integrate"
	"nbody.space/metrics"
	"nbody.space/oblateness"
	"nbody.space/particle"
	"nbody.space/simerr"
	"nbody.space/vector3"
)

// subsystem is a planet and its moons, integrated in a planet-centered
// frame: the planet particle is repeatedly pinned at the origin (spec
// §4.I step 2's "pinned anchor" re-anchor) and moons are stored relative
// to it.
type subsystem struct {
	planet     string
	sys        *particle.System
	integrator *integrate.ABM4
}

// System is the composite Solar-System driver (spec §4.I): a main
// Sun-and-planets particle system plus on-demand planet-moon subsystems,
// advanced together by AdvanceSingleStep.
type System struct {
	catalogue *catalogue.Catalogue
	resolver  *ephemeris.Resolver
	metrics   *metrics.Collector

	main           *particle.System
	mainIntegrator *integrate.RK4

	subsystems map[string]*subsystem
	maxSubstep map[string]float64
	oblate     *oblateness.Model

	// spacecraftHome maps a migrated spacecraft's name to the planet
	// subsystem it currently resides in, or "" if it is in the main
	// system.
	spacecraftHome map[string]string

	date float64 // current simulation date, UTC Julian Date
}

// NewSystem builds a driver over cat and resolver. mcol may be nil: every
// metrics call is then a no-op.
func NewSystem(cat *catalogue.Catalogue, resolver *ephemeris.Resolver, mcol *metrics.Collector) *System {
	return &System{
		catalogue:      cat,
		resolver:       resolver,
		metrics:        mcol,
		main:           particle.NewSystem(),
		mainIntegrator: integrate.NewRK4(),
		subsystems:     make(map[string]*subsystem),
		maxSubstep:     DefaultMaxSubstepSeconds,
		oblate:         oblateness.NewDefault(),
		spacecraftHome: make(map[string]string),
	}
}

// Date returns the driver's current UTC Julian Date.
func (s *System) Date() float64 { return s.date }

// Main exposes the main particle system, e.g. so a caller can toggle
// SetGeneralRelativity/SetCurvatureWavePropagation.
func (s *System) Main() *particle.System { return s.main }

// mainSystemKind reports whether a catalogue body of this kind belongs in
// the main particle system (spec §4.I: "Sun, planets, selected small
// bodies"). Moons live only inside their planet's subsystem.
func mainSystemKind(k catalogue.Kind) bool {
	switch k {
	case catalogue.KindStar, catalogue.KindPlanet, catalogue.KindDwarfPlanet, catalogue.KindComet, catalogue.KindAsteroid:
		return true
	default:
		return false
	}
}

// InitializeSimulation sets the simulation date and populates the main
// system from the resolver (spec §4.I).
func (s *System) InitializeSimulation(date float64) error {
	s.date = date
	for _, name := range s.catalogue.Names() {
		body, err := s.catalogue.Get(name)
		if err != nil {
			return err
		}
		if !mainSystemKind(body.Kind) {
			continue
		}
		r, v, err := s.resolver.PositionVelocity(name, date)
		if err != nil {
			return err
		}
		if err := s.main.AddParticle(name, body.Mass, body.Mu, r, v); err != nil {
			return err
		}
	}
	return nil
}

// CreatePlanetSystem expands planet into a subsystem containing it and
// its catalogued moons (spec §4.I), stored relative to the planet.
func (s *System) CreatePlanetSystem(planet string) error {
	if _, exists := s.subsystems[planet]; exists {
		return simerr.InvariantViolation(fmt.Sprintf("solarsystem: subsystem %q already exists", planet), nil)
	}
	planetBody, err := s.catalogue.Get(planet)
	if err != nil {
		return err
	}

	sub := &subsystem{planet: planet, sys: particle.NewSystem(), integrator: integrate.NewABM4()}
	if err := sub.sys.AddParticle(planet, planetBody.Mass, planetBody.Mu, vector3.Zero, vector3.Zero); err != nil {
		return err
	}

	rPlanet, vPlanet, err := s.resolver.PositionVelocity(planet, s.date)
	if err != nil {
		return err
	}
	for _, moonName := range s.catalogue.MoonsOf(planet) {
		moonBody, err := s.catalogue.Get(moonName)
		if err != nil {
			return err
		}
		rMoon, vMoon, err := s.resolver.PositionVelocity(moonName, s.date)
		if err != nil {
			return err
		}
		if err := sub.sys.AddParticle(moonName, moonBody.Mass, moonBody.Mu, rMoon.Sub(rPlanet), vMoon.Sub(vPlanet)); err != nil {
			return err
		}
	}

	s.subsystems[planet] = sub
	return nil
}

// CreateSpacecraft queries the segmented ephemeris for name's state at
// date and adds it to the main system as a test particle (spec §4.I).
func (s *System) CreateSpacecraft(name string, date float64) error {
	r, v, err := s.resolver.PositionVelocity(name, date)
	if err != nil {
		return err
	}
	if err := s.main.AddTestParticle(name, r, v); err != nil {
		return err
	}
	s.spacecraftHome[name] = ""
	return nil
}

// GetParticle returns the raw particle state for name: absolute for main
// system members, planet-relative for subsystem members. Use GetPosition
// for an absolute position regardless of location.
func (s *System) GetParticle(name string) (*particle.Particle, error) {
	if p, err := s.main.GetParticle(name); err == nil {
		return p, nil
	}
	for _, sub := range s.subsystems {
		if p, err := sub.sys.GetParticle(name); err == nil {
			return p, nil
		}
	}
	return nil, simerr.NotFound(fmt.Sprintf("solarsystem: unknown particle %q", name), nil)
}

// GetPosition returns name's absolute (Sun-relative) position, combining a
// subsystem member's relative position with its planet's main-system
// position when necessary.
func (s *System) GetPosition(name string) (vector3.Vector, error) {
	if p, err := s.main.GetParticle(name); err == nil {
		return p.Position, nil
	}
	for planetName, sub := range s.subsystems {
		if p, err := sub.sys.GetParticle(name); err == nil {
			planetParticle, err := s.main.GetParticle(planetName)
			if err != nil {
				return vector3.Zero, err
			}
			return planetParticle.Position.Add(p.Position), nil
		}
	}
	return vector3.Zero, simerr.NotFound(fmt.Sprintf("solarsystem: unknown body %q", name), nil)
}

// AdvanceSingleStep advances the simulation by one outer step of dt
// seconds (spec §4.I's per-step ordering): main RK4 step, sub-stepped
// subsystem updates, drift correction, then the date advance.
func (s *System) AdvanceSingleStep(dt float64) error {
	start := time.Now()

	if err := s.mainIntegrator.Step(s.main, dt); err != nil {
		s.metrics.IncNumericalError("main")
		return err
	}

	for _, planetName := range s.sortedSubsystemNames() {
		if err := s.advanceSubsystem(s.subsystems[planetName], dt); err != nil {
			s.metrics.IncNumericalError(planetName)
			return err
		}
	}

	if err := s.main.DriftCorrect(particle.DriftMassWeightedCentroid, ""); err != nil {
		return err
	}

	s.date += dt / 86400.0

	if err := s.migrateSpacecraft(); err != nil {
		return err
	}

	s.metrics.ObserveStepDuration("main", time.Since(start))
	return nil
}

// advanceSubsystem runs sub's ABM4 integrator across enough equal
// sub-steps to cover dt, applying the oblateness perturbation and
// re-pinning the planet to the origin after each (spec §4.I step 2).
func (s *System) advanceSubsystem(sub *subsystem, dt float64) error {
	planetBody, err := s.catalogue.Get(sub.planet)
	if err != nil {
		return err
	}
	n, size := s.substepsFor(sub.planet, dt)
	jd := s.date

	for i := 0; i < n; i++ {
		s.applyOblateness(sub, planetBody, size, jd)
		if err := sub.integrator.Step(sub.sys, size); err != nil {
			return err
		}
		if err := sub.sys.DriftCorrect(particle.DriftPinnedAnchor, sub.planet); err != nil {
			return err
		}
		s.metrics.IncReanchor(sub.planet)
		jd += size / 86400.0
	}
	return nil
}

// applyOblateness adds an explicit velocity kick for the J2 perturbation
// to every moon in sub, sized to the sub-step (operator-split against the
// gravity-only integrator step that follows).
func (s *System) applyOblateness(sub *subsystem, planetBody *catalogue.Body, dtSeconds, jd float64) {
	for _, p := range sub.sys.Particles() {
		if p.Name == sub.planet {
			continue
		}
		a := s.oblate.Acceleration(planetBody, p.Position, jd)
		p.Velocity = p.Velocity.Add(a.Scale(dtSeconds))
	}
}

// AdvanceForward advances the simulation by hours whole hours, one
// 1-hour outer step at a time (spec §4.I).
func (s *System) AdvanceForward(hours int) error {
	for i := 0; i < hours; i++ {
		if err := s.AdvanceSingleStep(3600); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) sortedSubsystemNames() []string {
	names := make([]string, 0, len(s.subsystems))
	for name := range s.subsystems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
