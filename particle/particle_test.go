package particle

import (
	"math"
	"testing"

	"nbody.space/simerr"
	"nbody.space/vector3"
)

func twoBodySystem() *System {
	s := NewSystem()
	// Sun at rest at the origin, an Earth-mass planet in a circular orbit.
	const muSun = 1.32712440018e20
	s.AddParticle("sun", 1.988e30, muSun, vector3.Zero, vector3.Zero)
	r := 1.496e11
	vCirc := math.Sqrt(muSun / r)
	s.AddParticle("planet", 5.97e24, 3.986e14, vector3.New(r, 0, 0), vector3.New(0, vCirc, 0))
	return s
}

func TestNewtonAccelerationPointsInward(t *testing.T) {
	s := twoBodySystem()
	if err := s.ComputeAccelerations(); err != nil {
		t.Fatalf("ComputeAccelerations: %v", err)
	}
	planet, _ := s.GetParticle("planet")
	a := planet.Acceleration
	if a.X >= 0 {
		t.Errorf("expected inward (negative X) acceleration, got %+v", a)
	}
	if math.Abs(a.Y) > 1e-20 || math.Abs(a.Z) > 1e-20 {
		t.Errorf("expected acceleration along -X only for this configuration, got %+v", a)
	}
}

func TestTestParticleDoesNotGravitate(t *testing.T) {
	s := NewSystem()
	s.AddParticle("sun", 1.988e30, 1.32712440018e20, vector3.Zero, vector3.Zero)
	s.AddTestParticle("probe", vector3.New(1.496e11, 0, 0), vector3.Zero)

	if err := s.ComputeAccelerations(); err != nil {
		t.Fatalf("ComputeAccelerations: %v", err)
	}
	sun, _ := s.GetParticle("sun")
	if sun.Acceleration != vector3.Zero {
		t.Errorf("sun.Acceleration = %+v, want zero (test particles must not gravitate)", sun.Acceleration)
	}
}

func TestCWPMRequiresGeneralRelativityEnabled(t *testing.T) {
	s := twoBodySystem()
	if err := s.SetCurvatureWavePropagation(true); !simerr.Is(err, simerr.KindInvariantViolation) {
		t.Errorf("expected InvariantViolation enabling CWPM without GR, got %v", err)
	}
}

func TestPPNCorrectionIsSmallPerturbation(t *testing.T) {
	s := twoBodySystem()
	if err := s.ComputeAccelerations(); err != nil {
		t.Fatalf("ComputeAccelerations (newton): %v", err)
	}
	planet, _ := s.GetParticle("planet")
	newtonA := planet.Acceleration

	s.SetGeneralRelativity(true)
	if err := s.ComputeAccelerations(); err != nil {
		t.Fatalf("ComputeAccelerations (ppn): %v", err)
	}
	ppnA := planet.Acceleration

	delta := ppnA.Sub(newtonA).Norm()
	if delta == 0 {
		t.Error("expected PPN correction to perturb the Newtonian acceleration")
	}
	if delta > 1e-3*newtonA.Norm() {
		t.Errorf("PPN correction %.3g is not a small perturbation of Newtonian %.3g", delta, newtonA.Norm())
	}
}

func TestCWPMDiffersFromPPN(t *testing.T) {
	s := twoBodySystem()
	s.SetGeneralRelativity(true)
	if err := s.ComputeAccelerations(); err != nil {
		t.Fatalf("ComputeAccelerations (ppn): %v", err)
	}
	planet, _ := s.GetParticle("planet")
	ppnA := planet.Acceleration

	if err := s.SetCurvatureWavePropagation(true); err != nil {
		t.Fatalf("SetCurvatureWavePropagation: %v", err)
	}
	if err := s.ComputeAccelerations(); err != nil {
		t.Fatalf("ComputeAccelerations (cwpm): %v", err)
	}
	cwpmA := planet.Acceleration

	if ppnA == cwpmA {
		t.Error("expected CWPM and PPN accelerations to differ")
	}
}

func TestDriftCorrectMassWeightedCentroid(t *testing.T) {
	s := NewSystem()
	s.AddParticle("a", 2, 1, vector3.New(10, 0, 0), vector3.New(1, 0, 0))
	s.AddParticle("b", 2, 1, vector3.New(-10, 0, 0), vector3.New(-1, 0, 0))

	if err := s.DriftCorrect(DriftMassWeightedCentroid, ""); err != nil {
		t.Fatalf("DriftCorrect: %v", err)
	}
	a, _ := s.GetParticle("a")
	b, _ := s.GetParticle("b")
	if a.Position.Add(b.Position).Scale(0.5) != vector3.Zero {
		t.Errorf("centroid not removed: a=%+v b=%+v", a.Position, b.Position)
	}
}

func TestDriftCorrectFallsBackToPinnedAnchorWhenMassless(t *testing.T) {
	s := NewSystem()
	s.AddTestParticle("probe1", vector3.New(5, 0, 0), vector3.New(1, 0, 0))
	s.AddTestParticle("probe2", vector3.New(-5, 0, 0), vector3.New(-1, 0, 0))

	if err := s.DriftCorrect(DriftMassWeightedCentroid, "probe1"); err != nil {
		t.Fatalf("DriftCorrect: %v", err)
	}
	probe1, _ := s.GetParticle("probe1")
	if probe1.Position != vector3.Zero || probe1.Velocity != vector3.Zero {
		t.Errorf("anchor particle should land at origin, got pos=%+v vel=%+v", probe1.Position, probe1.Velocity)
	}
}

func TestDriftCorrectFallbackWithoutAnchorIsInvariantViolation(t *testing.T) {
	s := NewSystem()
	s.AddTestParticle("probe", vector3.New(5, 0, 0), vector3.Zero)
	if err := s.DriftCorrect(DriftMassWeightedCentroid, ""); !simerr.Is(err, simerr.KindInvariantViolation) {
		t.Errorf("expected InvariantViolation, got %v", err)
	}
}

func TestDriftCorrectPinnedAnchorExact(t *testing.T) {
	s := NewSystem()
	s.AddParticle("anchor", 1, 1, vector3.New(3, 4, 0), vector3.New(1, 1, 1))
	s.AddParticle("other", 1, 1, vector3.New(0, 0, 0), vector3.New(0, 0, 0))

	if err := s.DriftCorrect(DriftPinnedAnchor, "anchor"); err != nil {
		t.Fatalf("DriftCorrect: %v", err)
	}
	anchor, _ := s.GetParticle("anchor")
	other, _ := s.GetParticle("other")
	if anchor.Position != vector3.Zero || anchor.Velocity != vector3.Zero {
		t.Errorf("anchor should be exactly at origin, got pos=%+v vel=%+v", anchor.Position, anchor.Velocity)
	}
	wantOther := vector3.New(-3, -4, 0)
	if other.Position != wantOther {
		t.Errorf("other.Position = %+v, want %+v", other.Position, wantOther)
	}
}

func TestEnergyAndAngularMomentumDiagnostics(t *testing.T) {
	s := twoBodySystem()
	e := s.TotalEnergy()
	if e >= 0 {
		t.Errorf("bound two-body orbit should have negative total energy, got %g", e)
	}
	l := s.AngularMomentum()
	if l.Norm() == 0 {
		t.Error("expected nonzero angular momentum for a circular orbit")
	}
}

func TestAccelHistoryRotatesAndCaps(t *testing.T) {
	p := &Particle{}
	for i := 0; i < 6; i++ {
		p.PushHistory(vector3.Zero, vector3.New(float64(i), 0, 0))
	}
	if p.HistoryFilled != 4 {
		t.Errorf("HistoryFilled = %d, want 4", p.HistoryFilled)
	}
	want := [4]vector3.Vector{vector3.New(2, 0, 0), vector3.New(3, 0, 0), vector3.New(4, 0, 0), vector3.New(5, 0, 0)}
	if p.AccelHistory != want {
		t.Errorf("AccelHistory = %+v, want %+v", p.AccelHistory, want)
	}
}

func TestAddParticleDuplicateNameIsInvariantViolation(t *testing.T) {
	s := NewSystem()
	s.AddParticle("x", 1, 1, vector3.Zero, vector3.Zero)
	err := s.AddParticle("x", 1, 1, vector3.Zero, vector3.Zero)
	if !simerr.Is(err, simerr.KindInvariantViolation) {
		t.Errorf("expected InvariantViolation, got %v", err)
	}
}

func TestGetParticleUnknownIsNotFound(t *testing.T) {
	s := NewSystem()
	_, err := s.GetParticle("nobody")
	if !simerr.Is(err, simerr.KindNotFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestRemoveParticle(t *testing.T) {
	s := NewSystem()
	s.AddParticle("a", 1, 1, vector3.Zero, vector3.Zero)
	s.AddParticle("b", 1, 1, vector3.Zero, vector3.Zero)
	if err := s.RemoveParticle("a"); err != nil {
		t.Fatalf("RemoveParticle: %v", err)
	}
	if _, err := s.GetParticle("a"); !simerr.Is(err, simerr.KindNotFound) {
		t.Errorf("expected NotFoundError after removal, got %v", err)
	}
	if _, err := s.GetParticle("b"); err != nil {
		t.Errorf("GetParticle(b) after removing a: %v", err)
	}
}
