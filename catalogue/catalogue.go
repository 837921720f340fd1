// Package catalogue holds the process-wide body parameter tables (spec §3,
// §9). A Catalogue is built once by Default (or a caller-supplied
// variant) and passed explicitly into the ephemeris resolver and the
// solar-system driver; nothing in this package or its callers treats it
// as an ambient global.
package catalogue

import (
	"fmt"

	"nbody.space/elements"
	"nbody.space/simerr"
)

// Kind classifies a Body for the purposes of the layered resolver (§4.E)
// and the driver's subsystem expansion (§4.I). It does not drive any
// polymorphic behavior — per spec §9, behavior lives in the particle
// system's acceleration kernel, not in a Body class hierarchy.
type Kind int

const (
	KindStar Kind = iota
	KindPlanet
	KindDwarfPlanet
	KindMoon
	KindComet
	KindAsteroid
	KindSpacecraft
)

// Oblateness carries the J2 perturbation traits for a small set of bodies
// (spec §4.H): equatorial radius, the J2 coefficient, and the body's pole
// direction at J2000 with linear secular rates (right ascension and
// declination of the pole, degrees and degrees/century).
type Oblateness struct {
	J2                    float64
	EquatorialRadiusM     float64
	PoleRightAscensionDeg float64
	PoleDeclinationDeg    float64
	PoleRARateDegPerCty   float64
	PoleDecRateDegPerCty  float64
}

// Body is immutable, process-wide data (spec §3, §9): no back-pointers, no
// polymorphism. ParentName names the body a moon orbits, or the center a
// comet/asteroid/spacecraft's approximate elements are expressed around
// ("sun" for heliocentric bodies).
type Body struct {
	Name       string
	Kind       Kind
	ParentName string

	DiameterKm float64 // rendering-adjacent, but also used for surface-distance checks
	Mass       float64 // kg
	Mu         float64 // G*Mass, m^3/s^2, tabulated independently when known more precisely

	Oblate *Oblateness // nil if the body has no modeled oblateness

	// SphereOfInfluenceM is the distance threshold (spec §4.I) used by the
	// driver to decide when a spacecraft migrates into this body's
	// planet-centered subsystem. Zero for bodies that never host a
	// subsystem (moons, comets, asteroids, spacecraft).
	SphereOfInfluenceM float64

	// ApproximateElements supplies the Keplerian approximate source
	// (spec §4.E layer 2/3) for planets outside the DE405 window, and for
	// moons/comets/asteroids at any date. Nil for the Sun and for
	// spacecraft, whose state always comes from DE405 or the segmented
	// ephemeris.
	ApproximateElements *elements.Elements
}

// Catalogue is a read-only, explicitly-constructed table of Body values,
// keyed by case-sensitive name (spec §3).
type Catalogue struct {
	bodies map[string]*Body
	order  []string
}

// New builds an empty Catalogue. Callers typically start from Default and
// layer additions with Add.
func New() *Catalogue {
	return &Catalogue{bodies: make(map[string]*Body)}
}

// Add registers a body. It panics on a duplicate name since the catalogue
// is assembled once, at process start, by trusted code (spec §3's
// lifecycle: "Bodies: created from a catalogue at program start; immutable
// thereafter").
func (c *Catalogue) Add(b Body) {
	if _, exists := c.bodies[b.Name]; exists {
		panic(fmt.Sprintf("catalogue: duplicate body %q", b.Name))
	}
	stored := b
	c.bodies[b.Name] = &stored
	c.order = append(c.order, b.Name)
}

// Get looks up a body by name. Fails with a NotFoundError if absent.
func (c *Catalogue) Get(name string) (*Body, error) {
	b, ok := c.bodies[name]
	if !ok {
		return nil, simerr.NotFound(fmt.Sprintf("catalogue: unknown body %q", name), nil)
	}
	return b, nil
}

// Names returns every registered body name, in insertion order.
func (c *Catalogue) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// MoonsOf returns the names of every body whose ParentName is planet.
func (c *Catalogue) MoonsOf(planet string) []string {
	var out []string
	for _, name := range c.order {
		b := c.bodies[name]
		if b.Kind == KindMoon && b.ParentName == planet {
			out = append(out, name)
		}
	}
	return out
}
