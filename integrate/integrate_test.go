package integrate

import (
	"math"
	"testing"

	"nbody.space/particle"
	"nbody.space/vector3"
)

const muSun = 1.32712440018e20

func circularTwoBody() *particle.System {
	s := particle.NewSystem()
	s.AddParticle("sun", 1.988e30, muSun, vector3.Zero, vector3.Zero)
	r := 1.496e11
	v := math.Sqrt(muSun / r)
	s.AddParticle("planet", 5.97e24, 3.986e14, vector3.New(r, 0, 0), vector3.New(0, v, 0))
	return s
}

func orbitalPeriod(r float64) float64 {
	return 2 * math.Pi * math.Sqrt(r*r*r/muSun)
}

func runOneOrbit(t *testing.T, integ Integrator, dt float64) (energyDrift, angularMomentumDrift float64) {
	t.Helper()
	s := circularTwoBody()
	period := orbitalPeriod(1.496e11)
	steps := int(period / dt)

	e0 := s.TotalEnergy()
	l0 := s.AngularMomentum().Norm()

	for i := 0; i < steps; i++ {
		if err := integ.Step(s, dt); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	e1 := s.TotalEnergy()
	l1 := s.AngularMomentum().Norm()
	return math.Abs((e1 - e0) / e0), math.Abs((l1 - l0) / l0)
}

func TestLeapfrogConservesEnergyOverOneOrbit(t *testing.T) {
	dt := orbitalPeriod(1.496e11) / 2000
	eDrift, lDrift := runOneOrbit(t, NewLeapfrog(), dt)
	if eDrift > 1e-4 {
		t.Errorf("energy drift = %g, want < 1e-4", eDrift)
	}
	if lDrift > 1e-6 {
		t.Errorf("angular momentum drift = %g, want < 1e-6", lDrift)
	}
}

func TestRK4ConservesEnergyOverOneOrbit(t *testing.T) {
	dt := orbitalPeriod(1.496e11) / 2000
	eDrift, lDrift := runOneOrbit(t, NewRK4(), dt)
	if eDrift > 1e-4 {
		t.Errorf("energy drift = %g, want < 1e-4", eDrift)
	}
	if lDrift > 1e-6 {
		t.Errorf("angular momentum drift = %g, want < 1e-6", lDrift)
	}
}

func TestABM4ConservesEnergyOverOneOrbit(t *testing.T) {
	dt := orbitalPeriod(1.496e11) / 2000
	eDrift, lDrift := runOneOrbit(t, NewABM4(), dt)
	if eDrift > 1e-4 {
		t.Errorf("energy drift = %g, want < 1e-4", eDrift)
	}
	if lDrift > 1e-6 {
		t.Errorf("angular momentum drift = %g, want < 1e-6", lDrift)
	}
}

func TestABM4BootstrapsWithRK4ThenSwitches(t *testing.T) {
	s := circularTwoBody()
	a := NewABM4()
	for i := 0; i < 3; i++ {
		if err := a.Step(s, 3600); err != nil {
			t.Fatalf("bootstrap step %d: %v", i, err)
		}
		if a.stepsTaken != i+1 {
			t.Errorf("stepsTaken = %d, want %d", a.stepsTaken, i+1)
		}
	}
	// Each Step pushes the state it starts from, so three bootstrap steps
	// leave three entries; the fourth Step pushes the fourth before
	// running the predictor-corrector.
	planet, _ := s.GetParticle("planet")
	if planet.HistoryFilled != 3 {
		t.Errorf("HistoryFilled after 3 bootstrap steps = %d, want 3", planet.HistoryFilled)
	}
	if err := a.Step(s, 3600); err != nil {
		t.Fatalf("first predictor-corrector step: %v", err)
	}
	if planet.HistoryFilled != 4 {
		t.Errorf("HistoryFilled after first predictor-corrector step = %d, want 4", planet.HistoryFilled)
	}
}

func TestRK4StagesAreOrderConsistent(t *testing.T) {
	s := circularTwoBody()
	rk := NewRK4()
	planet, _ := s.GetParticle("planet")
	r0 := planet.Position
	if err := rk.Step(s, 3600); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if planet.Position == r0 {
		t.Error("expected RK4 step to move the planet")
	}
}

func TestLeapfrogInitializesOnce(t *testing.T) {
	s := circularTwoBody()
	l := NewLeapfrog()
	if err := l.Step(s, 60); err != nil {
		t.Fatalf("first step: %v", err)
	}
	if !l.initialized {
		t.Error("expected Leapfrog to be initialized after first Step")
	}
	if err := l.Step(s, 60); err != nil {
		t.Fatalf("second step: %v", err)
	}
}
