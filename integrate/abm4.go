package integrate

import (
	"nbody.space/particle"
	"nbody.space/vector3"
)

// abm4Coefficient is 1/24, the common factor in every ABM4 weighted sum
// (spec §4.G).
const abm4Coefficient = 1.0 / 24.0

// ABM4 is the fourth-order Adams-Bashforth-Moulton predictor-corrector
// (spec §4.G). It bootstraps its first three steps with RK4 while
// accumulating the four-slot acceleration/velocity history each step
// requires, then switches permanently to predictor-corrector stepping.
type ABM4 struct {
	bootstrap  *RK4
	stepsTaken int
}

// NewABM4 builds an ABM4 integrator.
func NewABM4() *ABM4 { return &ABM4{bootstrap: NewRK4()} }

// ResumeABM4 builds an ABM4 integrator that has already taken stepsTaken
// steps, e.g. when restoring a persisted simulation whose particles
// already carry a full four-slot history (spec §4.J): without this, a
// freshly-constructed ABM4 would re-run the three-step RK4 bootstrap
// against history that is already populated.
func ResumeABM4(stepsTaken int) *ABM4 {
	return &ABM4{bootstrap: NewRK4(), stepsTaken: stepsTaken}
}

// StepsTaken reports how many steps this integrator has completed, for
// persistence (spec §4.J).
func (a *ABM4) StepsTaken() int { return a.stepsTaken }

// Step advances sys by dt. The first three calls delegate to RK4 while
// recording history; every call after that runs the predictor-corrector.
func (a *ABM4) Step(sys *particle.System, dt float64) error {
	if err := sys.ComputeAccelerations(); err != nil {
		return err
	}
	for _, p := range sys.Particles() {
		p.PushHistory(p.Velocity, p.Acceleration)
	}

	var err error
	if a.stepsTaken < 3 {
		err = a.bootstrap.Step(sys, dt)
	} else {
		err = a.predictorCorrector(sys, dt)
	}
	if err != nil {
		return err
	}
	a.stepsTaken++
	return nil
}

// predictorCorrector runs one ABM4 step from the current committed state,
// assuming every particle's history is fully populated (spec §4.G).
func (a *ABM4) predictorCorrector(sys *particle.System, dt float64) error {
	particles := sys.Particles()

	rPred := make(map[*particle.Particle]vector3.Vector, len(particles))
	vPred := make(map[*particle.Particle]vector3.Vector, len(particles))
	savedR := make(map[*particle.Particle]vector3.Vector, len(particles))
	savedV := make(map[*particle.Particle]vector3.Vector, len(particles))

	for _, p := range particles {
		v3, v2, v1, v0 := p.VelocityHistory[3], p.VelocityHistory[2], p.VelocityHistory[1], p.VelocityHistory[0]
		a3, a2, a1, a0 := p.AccelHistory[3], p.AccelHistory[2], p.AccelHistory[1], p.AccelHistory[0]

		rStep := v3.Scale(55).Add(v2.Scale(-59)).Add(v1.Scale(37)).Add(v0.Scale(-9)).Scale(abm4Coefficient * dt)
		vStep := a3.Scale(55).Add(a2.Scale(-59)).Add(a1.Scale(37)).Add(a0.Scale(-9)).Scale(abm4Coefficient * dt)

		savedR[p] = p.Position
		savedV[p] = p.Velocity
		rPred[p] = p.Position.Add(rStep)
		vPred[p] = p.Velocity.Add(vStep)
	}

	for _, p := range particles {
		p.Position = rPred[p]
		p.Velocity = vPred[p]
	}
	if err := sys.ComputeAccelerations(); err != nil {
		for _, p := range particles {
			p.Position, p.Velocity = savedR[p], savedV[p]
		}
		return err
	}

	aPred := make(map[*particle.Particle]vector3.Vector, len(particles))
	for _, p := range particles {
		aPred[p] = p.Acceleration
	}

	for _, p := range particles {
		v3, v2, v1 := p.VelocityHistory[3], p.VelocityHistory[2], p.VelocityHistory[1]
		a3, a2, a1 := p.AccelHistory[3], p.AccelHistory[2], p.AccelHistory[1]

		rStep := vPred[p].Scale(9).Add(v3.Scale(19)).Add(v2.Scale(-5)).Add(v1).Scale(abm4Coefficient * dt)
		vStep := aPred[p].Scale(9).Add(a3.Scale(19)).Add(a2.Scale(-5)).Add(a1).Scale(abm4Coefficient * dt)

		p.Position = savedR[p].Add(rStep)
		p.Velocity = savedV[p].Add(vStep)
	}
	return nil
}
