package solarsystem

import (
	"io"

	"nbody.space/integrate"
	"nbody.space/particle"
	"nbody.space/persistence"
)

// SaveState writes a versioned snapshot of the entire driver (spec §4.J)
// to w: the main system, every live subsystem, and spacecraft placement.
func (s *System) SaveState(w io.Writer) error {
	snap := persistence.Snapshot{
		DateJD:                   s.date,
		GeneralRelativity:        s.main.GeneralRelativity(),
		CurvatureWavePropagation: s.main.CurvatureWavePropagation(),
		Main:                     toParticleStates(s.main.Particles()),
		SpacecraftHome:           copyStringMap(s.spacecraftHome),
	}
	for _, planetName := range s.sortedSubsystemNames() {
		sub := s.subsystems[planetName]
		snap.Subsystems = append(snap.Subsystems, persistence.SubsystemState{
			Planet:     sub.planet,
			Particles:  toParticleStates(sub.sys.Particles()),
			StepsTaken: sub.integrator.StepsTaken(),
		})
	}
	return persistence.Save(w, snap)
}

// LoadState replaces the driver's entire state with a previously-saved
// snapshot (spec §4.J). Resuming and advancing from a loaded snapshot
// reproduces the same subsequent steps as the run that saved it, since the
// ABM4 history travels with each particle.
func (s *System) LoadState(r io.Reader) error {
	snap, err := persistence.Load(r)
	if err != nil {
		return err
	}

	s.date = snap.DateJD
	s.main = particle.NewSystem()
	s.main.SetGeneralRelativity(snap.GeneralRelativity)
	if err := s.main.SetCurvatureWavePropagation(snap.CurvatureWavePropagation); err != nil {
		return err
	}
	if err := fromParticleStates(s.main, snap.Main); err != nil {
		return err
	}

	s.subsystems = make(map[string]*subsystem, len(snap.Subsystems))
	for _, subSnap := range snap.Subsystems {
		sub := &subsystem{planet: subSnap.Planet, sys: particle.NewSystem(), integrator: integrate.ResumeABM4(subSnap.StepsTaken)}
		if err := fromParticleStates(sub.sys, subSnap.Particles); err != nil {
			return err
		}
		s.subsystems[subSnap.Planet] = sub
	}

	s.spacecraftHome = copyStringMap(snap.SpacecraftHome)
	if s.spacecraftHome == nil {
		s.spacecraftHome = make(map[string]string)
	}
	return nil
}

// toParticleStates captures a particle.System's particles into their
// persisted form, in the System's insertion order.
func toParticleStates(particles []*particle.Particle) []persistence.ParticleState {
	out := make([]persistence.ParticleState, len(particles))
	for i, p := range particles {
		out[i] = persistence.ParticleState{
			Name: p.Name, Mass: p.Mass, Mu: p.Mu,
			Position: p.Position, Velocity: p.Velocity, Acceleration: p.Acceleration,
			AccelHistory: p.AccelHistory, VelocityHistory: p.VelocityHistory,
			HistoryFilled: p.HistoryFilled,
		}
	}
	return out
}

// fromParticleStates repopulates sys from persisted particle states,
// restoring each particle's full ABM4 history.
func fromParticleStates(sys *particle.System, states []persistence.ParticleState) error {
	for _, st := range states {
		if err := sys.AddParticle(st.Name, st.Mass, st.Mu, st.Position, st.Velocity); err != nil {
			return err
		}
		p, err := sys.GetParticle(st.Name)
		if err != nil {
			return err
		}
		p.Acceleration = st.Acceleration
		p.AccelHistory = st.AccelHistory
		p.VelocityHistory = st.VelocityHistory
		p.HistoryFilled = st.HistoryFilled
	}
	return nil
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
