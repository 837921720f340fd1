package solarsystem

// DefaultMaxSubstepSeconds is the spec §4.I per-planet maximum sub-step
// table, in seconds. A planet absent from this map (no catalogued moons,
// or a planet-moon system the default table doesn't name) falls back to
// defaultFallbackSubstepSeconds.
var DefaultMaxSubstepSeconds = map[string]float64{
	"jupiter": 600, // 10 min
	"saturn":  600,
	"uranus":  600,
	"neptune": 600,
	"pluto":   300, // 5 min
	"mars":    300,
	"earth":   60, // 1 min, Earth-Moon
}

const defaultFallbackSubstepSeconds = 300

// substepsFor splits outer step dt (seconds) into the number of
// sub-steps of size <= the planet's configured maximum, each step equal
// in length (spec §4.I: "repeats delta until the outer interval has
// advanced by Delta").
func (s *System) substepsFor(planet string, dt float64) (count int, size float64) {
	maxStep, ok := s.maxSubstep[planet]
	if !ok {
		maxStep = defaultFallbackSubstepSeconds
	}
	if dt <= maxStep {
		return 1, dt
	}
	n := int(dt/maxStep) + 1
	return n, dt / float64(n)
}
