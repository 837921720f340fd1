package integrate

import "nbody.space/particle"

// RK4 is the classical four-stage Runge-Kutta integrator (spec §4.G). Its
// four substeps (A/B/C/D) are each followed by a fresh system-wide
// acceleration pass, so inter-particle accelerations stay consistent
// across every stage.
type RK4 struct{}

// NewRK4 builds an RK4 integrator.
func NewRK4() *RK4 { return &RK4{} }

// Step advances sys by dt through the four staged evaluations and commits
// the weighted combination.
func (rk *RK4) Step(sys *particle.System, dt float64) error {
	if err := rk.stageA(sys, dt); err != nil {
		return err
	}
	if err := rk.stageB(sys, dt); err != nil {
		return err
	}
	if err := rk.stageC(sys, dt); err != nil {
		return err
	}
	if err := rk.stageD(sys, dt); err != nil {
		return err
	}
	rk.commit(sys, dt)
	return nil
}

// stageA evaluates k1 = (v0, a(r0)) and advances the system to the
// midpoint guess r0 + dt/2.v0, v0 + dt/2.a0 for stage B's evaluation.
func (rk *RK4) stageA(sys *particle.System, dt float64) error {
	if err := sys.ComputeAccelerations(); err != nil {
		return err
	}
	for _, p := range sys.Particles() {
		p.RK4.X0 = p.Position
		p.RK4.V0 = p.Velocity
		p.RK4.K1R = p.Velocity
		p.RK4.K1V = p.Acceleration
	}
	for _, p := range sys.Particles() {
		p.Position = p.RK4.X0.Add(p.RK4.K1R.Scale(0.5 * dt))
		p.Velocity = p.RK4.V0.Add(p.RK4.K1V.Scale(0.5 * dt))
	}
	return nil
}

// stageB evaluates k2 at the stage-A midpoint and re-advances to a second
// midpoint guess for stage C.
func (rk *RK4) stageB(sys *particle.System, dt float64) error {
	if err := sys.ComputeAccelerations(); err != nil {
		return err
	}
	for _, p := range sys.Particles() {
		p.RK4.K2R = p.Velocity
		p.RK4.K2V = p.Acceleration
	}
	for _, p := range sys.Particles() {
		p.Position = p.RK4.X0.Add(p.RK4.K2R.Scale(0.5 * dt))
		p.Velocity = p.RK4.V0.Add(p.RK4.K2V.Scale(0.5 * dt))
	}
	return nil
}

// stageC evaluates k3 at the stage-B midpoint and advances to the full-step
// endpoint guess for stage D.
func (rk *RK4) stageC(sys *particle.System, dt float64) error {
	if err := sys.ComputeAccelerations(); err != nil {
		return err
	}
	for _, p := range sys.Particles() {
		p.RK4.K3R = p.Velocity
		p.RK4.K3V = p.Acceleration
	}
	for _, p := range sys.Particles() {
		p.Position = p.RK4.X0.Add(p.RK4.K3R.Scale(dt))
		p.Velocity = p.RK4.V0.Add(p.RK4.K3V.Scale(dt))
	}
	return nil
}

// stageD evaluates k4 at the stage-C endpoint guess; the system is left at
// that guess until commit overwrites it with the weighted combination.
func (rk *RK4) stageD(sys *particle.System, dt float64) error {
	if err := sys.ComputeAccelerations(); err != nil {
		return err
	}
	for _, p := range sys.Particles() {
		p.RK4.K4R = p.Velocity
		p.RK4.K4V = p.Acceleration
	}
	return nil
}

// commit combines the four stage evaluations into the committed state:
// r <- r0 + dt/6 (k1_r + 2 k2_r + 2 k3_r + k4_r), likewise for v.
func (rk *RK4) commit(sys *particle.System, dt float64) {
	for _, p := range sys.Particles() {
		r := p.RK4.K1R.Add(p.RK4.K2R.Scale(2)).Add(p.RK4.K3R.Scale(2)).Add(p.RK4.K4R)
		v := p.RK4.K1V.Add(p.RK4.K2V.Scale(2)).Add(p.RK4.K3V.Scale(2)).Add(p.RK4.K4V)
		p.Position = p.RK4.X0.Add(r.Scale(dt / 6))
		p.Velocity = p.RK4.V0.Add(v.Scale(dt / 6))
	}
}
