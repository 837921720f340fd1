package integrate

import "nbody.space/particle"

// Leapfrog is the symplectic kick-drift-kick integrator (spec §4.G). It
// must be advanced with consistently-signed steps: Step lazily performs
// the half-kick initialization on its first call.
type Leapfrog struct {
	initialized bool
}

// NewLeapfrog builds a Leapfrog integrator. Call Reset if dt's sign or
// magnitude changes so the initializing half-kick is redone.
func NewLeapfrog() *Leapfrog { return &Leapfrog{} }

// Reset forces the next Step to re-run the initializing half-kick.
func (l *Leapfrog) Reset() { l.initialized = false }

// Step advances sys by dt. On the first call it offsets every particle's
// velocity by -1/2 dt . a so later integer-step velocities sit half a step
// behind positions (spec §4.G); subsequent calls perform the ordinary
// kick-drift: v += dt.a(r); r += dt.v.
func (l *Leapfrog) Step(sys *particle.System, dt float64) error {
	if !l.initialized {
		if err := sys.ComputeAccelerations(); err != nil {
			return err
		}
		for _, p := range sys.Particles() {
			p.Velocity = p.Velocity.Sub(p.Acceleration.Scale(0.5 * dt))
		}
		l.initialized = true
	}

	if err := sys.ComputeAccelerations(); err != nil {
		return err
	}
	for _, p := range sys.Particles() {
		p.Velocity = p.Velocity.Add(p.Acceleration.Scale(dt))
	}
	for _, p := range sys.Particles() {
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
	}
	return nil
}
