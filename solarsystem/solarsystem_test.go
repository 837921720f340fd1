package solarsystem

import (
	"bytes"
	"testing"

	"nbody.space/catalogue"
	"nbody.space/ephemeris"
	"nbody.space/spk"
	"nbody.space/vector3"
)

// j2000Noon is an arbitrary date well inside the hard outer band and
// within every approximate-elements source's nominal validity (1800-2050).
const j2000Noon = vector3.J2000

func newTestSystem(t *testing.T) (*System, *catalogue.Catalogue) {
	t.Helper()
	cat := catalogue.Default()
	resolver := ephemeris.New(cat, nil, nil)
	sys := NewSystem(cat, resolver, nil)
	if err := sys.InitializeSimulation(j2000Noon); err != nil {
		t.Fatalf("InitializeSimulation: %v", err)
	}
	return sys, cat
}

func TestInitializeSimulationPopulatesMainSystem(t *testing.T) {
	sys, _ := newTestSystem(t)

	for _, name := range []string{"sun", "mercury", "earth", "jupiter", "pluto"} {
		if _, err := sys.GetPosition(name); err != nil {
			t.Errorf("GetPosition(%q): %v", name, err)
		}
	}
	if p, err := sys.GetPosition("sun"); err != nil || p != vector3.Zero {
		t.Errorf("sun position = %+v, err=%v; want zero", p, err)
	}

	// InitializeSimulation leaves moons (and spacecraft) out of the main
	// system; moons are added only by CreatePlanetSystem.
	if _, err := sys.main.GetParticle("moon"); err == nil {
		t.Error("expected moon to be absent from the main system before CreatePlanetSystem")
	}
}

func TestCreatePlanetSystemAddsMoonRelativeToPlanet(t *testing.T) {
	sys, _ := newTestSystem(t)
	if err := sys.CreatePlanetSystem("earth"); err != nil {
		t.Fatalf("CreatePlanetSystem: %v", err)
	}

	sub, ok := sys.subsystems["earth"]
	if !ok {
		t.Fatal("expected an earth subsystem to exist")
	}
	if _, err := sub.sys.GetParticle("earth"); err != nil {
		t.Errorf("subsystem missing its own planet particle: %v", err)
	}
	moon, err := sub.sys.GetParticle("moon")
	if err != nil {
		t.Fatalf("subsystem missing moon: %v", err)
	}
	// The Moon is roughly 3.84e8 m from Earth; stored relative to the
	// planet, its distance from the origin should be in that ballpark.
	if d := moon.Position.Norm(); d < 2e8 || d > 5e8 {
		t.Errorf("moon distance from planet = %g, want ~3.84e8", d)
	}

	combined, err := sys.GetPosition("moon")
	if err != nil {
		t.Fatalf("GetPosition(moon): %v", err)
	}
	earthPos, err := sys.GetPosition("earth")
	if err != nil {
		t.Fatalf("GetPosition(earth): %v", err)
	}
	if d := combined.Distance(earthPos); d < 2e8 || d > 5e8 {
		t.Errorf("combined moon-earth distance = %g, want ~3.84e8", d)
	}
}

func TestAdvanceSingleStepAdvancesDateAndKeepsSubsystemPinned(t *testing.T) {
	sys, _ := newTestSystem(t)
	if err := sys.CreatePlanetSystem("earth"); err != nil {
		t.Fatalf("CreatePlanetSystem: %v", err)
	}

	startDate := sys.Date()
	const dt = 3600.0
	for i := 0; i < 5; i++ {
		if err := sys.AdvanceSingleStep(dt); err != nil {
			t.Fatalf("AdvanceSingleStep step %d: %v", i, err)
		}
	}

	if got, want := sys.Date(), startDate+5*dt/86400.0; want-got > 1e-9 || got-want > 1e-9 {
		t.Errorf("Date() = %g, want %g", got, want)
	}

	earthParticle, err := sys.subsystems["earth"].sys.GetParticle("earth")
	if err != nil {
		t.Fatalf("GetParticle(earth) in subsystem: %v", err)
	}
	if d := earthParticle.Position.Norm(); d > 1.0 {
		t.Errorf("subsystem planet drifted from pinned origin by %g m", d)
	}
}

func TestAdvanceForwardRunsWholeHourSteps(t *testing.T) {
	sys, _ := newTestSystem(t)
	startDate := sys.Date()
	if err := sys.AdvanceForward(24); err != nil {
		t.Fatalf("AdvanceForward: %v", err)
	}
	if got, want := sys.Date(), startDate+1.0; (got-want) > 1e-9 || (want-got) > 1e-9 {
		t.Errorf("Date() after 24 hours = %g, want %g", got, want)
	}
}

// constantSampler is a spk.Sampler returning a fixed state, enough to
// exercise the segmented-ephemeris path without a real trajectory file.
type constantSampler struct {
	r, v vector3.Vector
}

func (c constantSampler) Sample(jd float64) (vector3.Vector, vector3.Vector, error) {
	return c.r, c.v, nil
}

func TestCreateSpacecraftAndMigrationIntoSphereOfInfluence(t *testing.T) {
	cat := catalogue.Default()
	store := spk.NewStore()
	// "probe" sits 1e8 m from Earth, well inside Earth's ~9.29e8 m sphere
	// of influence.
	store.Add(spk.NewTrajectory("probe", []spk.Segment{
		{
			CenterName: "earth", StartJD: j2000Noon - 10, EndJD: j2000Noon + 10,
			Sampler: constantSampler{r: vector3.New(1e8, 0, 0), v: vector3.New(0, 1000, 0)},
		},
	}))
	resolver := ephemeris.New(cat, nil, store)
	sys := NewSystem(cat, resolver, nil)
	if err := sys.InitializeSimulation(j2000Noon); err != nil {
		t.Fatalf("InitializeSimulation: %v", err)
	}
	if err := sys.CreatePlanetSystem("earth"); err != nil {
		t.Fatalf("CreatePlanetSystem: %v", err)
	}
	if err := sys.CreateSpacecraft("probe", j2000Noon); err != nil {
		t.Fatalf("CreateSpacecraft: %v", err)
	}

	if _, err := sys.main.GetParticle("probe"); err != nil {
		t.Fatalf("expected probe in the main system before migration: %v", err)
	}

	if err := sys.migrateSpacecraft(); err != nil {
		t.Fatalf("migrateSpacecraft: %v", err)
	}

	if home := sys.spacecraftHome["probe"]; home != "earth" {
		t.Errorf("spacecraftHome[probe] = %q, want \"earth\"", home)
	}
	if _, err := sys.subsystems["earth"].sys.GetParticle("probe"); err != nil {
		t.Errorf("expected probe inside the earth subsystem: %v", err)
	}
	if _, err := sys.main.GetParticle("probe"); err == nil {
		t.Error("expected probe to be removed from the main system after migration")
	}
}

func TestSaveLoadStatePreservesDateAndParticles(t *testing.T) {
	sys, _ := newTestSystem(t)
	if err := sys.CreatePlanetSystem("earth"); err != nil {
		t.Fatalf("CreatePlanetSystem: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := sys.AdvanceSingleStep(3600); err != nil {
			t.Fatalf("AdvanceSingleStep: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := sys.SaveState(&buf); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	cat := catalogue.Default()
	resolver := ephemeris.New(cat, nil, nil)
	restored := NewSystem(cat, resolver, nil)
	if err := restored.LoadState(&buf); err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if restored.Date() != sys.Date() {
		t.Errorf("restored Date() = %g, want %g", restored.Date(), sys.Date())
	}
	wantEarth, err := sys.GetPosition("earth")
	if err != nil {
		t.Fatalf("GetPosition(earth): %v", err)
	}
	gotEarth, err := restored.GetPosition("earth")
	if err != nil {
		t.Fatalf("restored GetPosition(earth): %v", err)
	}
	if d := wantEarth.Distance(gotEarth); d > 1e-6 {
		t.Errorf("restored earth position differs by %g m", d)
	}

	// Advancing both should stay in lockstep, since the persisted ABM4
	// history and step count were carried over.
	if err := sys.AdvanceSingleStep(3600); err != nil {
		t.Fatalf("AdvanceSingleStep (original): %v", err)
	}
	if err := restored.AdvanceSingleStep(3600); err != nil {
		t.Fatalf("AdvanceSingleStep (restored): %v", err)
	}
	wantMoon, err := sys.GetPosition("moon")
	if err != nil {
		t.Fatalf("GetPosition(moon): %v", err)
	}
	gotMoon, err := restored.GetPosition("moon")
	if err != nil {
		t.Fatalf("restored GetPosition(moon): %v", err)
	}
	if d := wantMoon.Distance(gotMoon); d > 1.0 {
		t.Errorf("restored moon position diverged by %g m after one more step", d)
	}
}

func TestClosestApproachFindsAMinimum(t *testing.T) {
	sys, _ := newTestSystem(t)
	jd, d, err := sys.ClosestApproach("earth", "venus", sys.Date()+10, 86400)
	if err != nil {
		t.Fatalf("ClosestApproach: %v", err)
	}
	if d <= 0 {
		t.Errorf("closest distance = %g, want > 0", d)
	}
	if jd < sys.Date()-1 || jd > sys.Date()+10 {
		t.Errorf("closest approach jd = %g out of expected range", jd)
	}
}
