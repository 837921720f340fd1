// Package integrate implements spec §4.G: the leapfrog, classical RK4, and
// ABM4 predictor-corrector integrators, all operating on a
// particle.System.
package integrate

import "nbody.space/particle"

// Integrator advances a particle.System by one step of size dt (seconds).
// Implementations update Position/Velocity in place. Acceleration is left
// holding the result of the implementation's last acceleration pass, which
// is not re-evaluated at the committed state.
type Integrator interface {
	Step(sys *particle.System, dt float64) error
}
