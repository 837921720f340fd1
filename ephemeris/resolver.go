// Package ephemeris implements spec §4.E: the layered resolver that picks
// between DE405, Keplerian approximation, orbit-element tables, a Moon
// period-wrap fallback, and the segmented ephemeris, per body and per
// date.
package ephemeris

import (
	"fmt"
	"math"

	"nbody.space/catalogue"
	"nbody.space/de405"
	"nbody.space/simerr"
	"nbody.space/spk"
	"nbody.space/vector3"
)

// MoonSiderealPeriodDays is the Moon's sidereal period used by the
// period-wrap fallback (spec §4.E step 4, §6).
const MoonSiderealPeriodDays = 27.321582

// hardOuterBandFirstJD and hardOuterBandLastJD cap the union of all
// sources' validity windows at roughly 3000 BC and 3000 AD (spec §4.E).
var (
	hardOuterBandFirstJD = vector3.JulianDate(vector3.CalendarDate{Year: -3000, Month: 1, Day: 1, Hour: 0})
	hardOuterBandLastJD  = vector3.JulianDate(vector3.CalendarDate{Year: 3000, Month: 1, Day: 1, Hour: 0})
)

// de405Names maps a catalogue body name to its DE405 target, for the set
// of bodies DE405 covers directly (spec §4.E layer 1).
var de405Names = map[string]de405.Target{
	"mercury": de405.Mercury,
	"venus":   de405.Venus,
	"earth":   de405.Earth,
	"moon":    de405.Moon,
	"mars":    de405.Mars,
	"jupiter": de405.Jupiter,
	"saturn":  de405.Saturn,
	"uranus":  de405.Uranus,
	"neptune": de405.Neptune,
	"pluto":   de405.Pluto,
	"sun":     de405.Sun,
}

// Resolver is the layered front-end callers use for position/velocity
// queries (spec §4.E). de and segments are optional: a Resolver built
// without DE405 coverage still answers via the Keplerian/orbit-element
// layers; one built without a segment store simply can't answer
// spacecraft/small-body queries.
type Resolver struct {
	catalogue *catalogue.Catalogue
	de        *de405.Evaluator
	segments  *spk.Store
}

// New builds a Resolver over the given catalogue and optional DE405
// evaluator / segmented-ephemeris store.
func New(cat *catalogue.Catalogue, de *de405.Evaluator, segments *spk.Store) *Resolver {
	return &Resolver{catalogue: cat, de: de, segments: segments}
}

// FirstValidDate and LastValidDate bound the union of every source's
// validity window, capped at the hard outer band (spec §4.E).
func (r *Resolver) FirstValidDate() float64 { return hardOuterBandFirstJD }
func (r *Resolver) LastValidDate() float64  { return hardOuterBandLastJD }

// PositionVelocity resolves (name, jd) to a heliocentric J2000 ecliptic
// position (m) and velocity (m/s), per spec §4.E's layered dispatch.
func (r *Resolver) PositionVelocity(name string, jd float64) (vector3.Vector, vector3.Vector, error) {
	if jd < hardOuterBandFirstJD || jd > hardOuterBandLastJD {
		return vector3.Zero, vector3.Zero, simerr.OutOfRange(
			fmt.Sprintf("ephemeris: jd %g outside supported band [%g, %g]", jd, hardOuterBandFirstJD, hardOuterBandLastJD), nil)
	}

	if name == "sun" {
		return vector3.Zero, vector3.Zero, nil
	}

	if name == "moon" {
		return r.moonPositionVelocity(jd)
	}

	if target, ok := de405Names[name]; ok && r.de != nil && jd >= r.de.FirstValidJD() && jd <= r.de.LastValidJD() {
		return r.accurateSource(target, jd)
	}

	body, err := r.catalogue.Get(name)
	if err != nil {
		if r.segments != nil && r.segments.Has(name) {
			return r.segmentedSource(name, jd)
		}
		return vector3.Zero, vector3.Zero, err
	}

	switch body.Kind {
	case catalogue.KindPlanet, catalogue.KindDwarfPlanet:
		return r.approximateSource(body, jd)
	case catalogue.KindMoon:
		return r.orbitElementMoon(body, jd)
	case catalogue.KindComet, catalogue.KindAsteroid:
		return r.approximateSource(body, jd) // heliocentric orbit-element table, same math as layer 2
	case catalogue.KindSpacecraft:
		if r.segments != nil && r.segments.Has(name) {
			return r.segmentedSource(name, jd)
		}
		return vector3.Zero, vector3.Zero, simerr.OutOfRange(
			fmt.Sprintf("ephemeris: no segmented trajectory registered for spacecraft %q", name), nil)
	default:
		return vector3.Zero, vector3.Zero, simerr.InvariantViolation(
			fmt.Sprintf("ephemeris: body %q has unresolvable kind", name), nil)
	}
}

// Position returns only the position component of PositionVelocity.
func (r *Resolver) Position(name string, jd float64) (vector3.Vector, error) {
	p, _, err := r.PositionVelocity(name, jd)
	return p, err
}

// Velocity returns only the velocity component of PositionVelocity.
func (r *Resolver) Velocity(name string, jd float64) (vector3.Vector, error) {
	_, v, err := r.PositionVelocity(name, jd)
	return v, err
}

// accurateSource is spec §4.E layer 1: DE405, position relative to the Sun,
// rotated from the mean-equator into the ecliptic frame and scaled from
// AU/AU-per-day into meters/meters-per-second.
func (r *Resolver) accurateSource(target de405.Target, jd float64) (vector3.Vector, vector3.Vector, error) {
	rTarget, vTarget, err := r.de.PositionVelocity(target, jd)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	rSun, vSun, err := r.de.PositionVelocity(de405.Sun, jd)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}

	rAU := de405.ToEcliptic(rTarget.Sub(rSun))
	vAU := de405.ToEcliptic(vTarget.Sub(vSun))

	const metersPerAU = catalogue.AU
	const secondsPerDay = 86400.0

	return rAU.Scale(metersPerAU), vAU.Scale(metersPerAU / secondsPerDay), nil
}

// approximateSource is spec §4.E layer 2/3 for heliocentric bodies
// (planets outside the DE405 window, comets, asteroids): Keplerian
// elements evaluated at jd.
func (r *Resolver) approximateSource(body *catalogue.Body, jd float64) (vector3.Vector, vector3.Vector, error) {
	if body.ApproximateElements == nil {
		return vector3.Zero, vector3.Zero, simerr.OutOfRange(
			fmt.Sprintf("ephemeris: %q has no approximate-elements source", body.Name), nil)
	}
	sun, err := r.catalogue.Get("sun")
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	return body.ApproximateElements.AtEpoch(jd).PositionVelocity(sun.Mu)
}

// orbitElementMoon is spec §4.E layer 3 for a moon (Earth's Moon included,
// when no DE405 evaluator is configured): elements are expressed relative
// to the parent planet, so the parent's position must be resolved and
// added.
func (r *Resolver) orbitElementMoon(body *catalogue.Body, jd float64) (vector3.Vector, vector3.Vector, error) {
	if body.ApproximateElements == nil {
		return vector3.Zero, vector3.Zero, simerr.OutOfRange(
			fmt.Sprintf("ephemeris: moon %q has no approximate-elements source", body.Name), nil)
	}
	parent, err := r.catalogue.Get(body.ParentName)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	rParent, vParent, err := r.PositionVelocity(body.ParentName, jd)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	rRel, vRel, err := body.ApproximateElements.AtEpoch(jd).PositionVelocity(parent.Mu)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	return rParent.Add(rRel), vParent.Add(vRel), nil
}

// moonPositionVelocity applies spec §4.E layers 1 and 4 for the Moon: DE405
// inside its window, or a period-wrap fallback outside it.
func (r *Resolver) moonPositionVelocity(jd float64) (vector3.Vector, vector3.Vector, error) {
	if r.de != nil && jd >= r.de.FirstValidJD() && jd <= r.de.LastValidJD() {
		return r.accurateSource(de405.Moon, jd)
	}
	if r.de == nil {
		moonBody, err := r.catalogue.Get("moon")
		if err != nil {
			return vector3.Zero, vector3.Zero, err
		}
		return r.orbitElementMoon(moonBody, jd)
	}
	return r.moonPeriodWrapFallback(jd)
}

// moonPeriodWrapFallback is spec §4.E step 4: find the nearest in-window
// date by adding/subtracting integer multiples of the Moon's sidereal
// period, compute the Earth-Moon relative state there from DE405, and
// apply it as an offset to the approximate Earth position/velocity at the
// requested date.
func (r *Resolver) moonPeriodWrapFallback(jd float64) (vector3.Vector, vector3.Vector, error) {
	wrapped := nearestWithinWindow(jd, MoonSiderealPeriodDays, r.de.FirstValidJD(), r.de.LastValidJD())
	if math.IsNaN(wrapped) {
		return vector3.Zero, vector3.Zero, simerr.OutOfRange(
			fmt.Sprintf("ephemeris: cannot period-wrap Moon query at jd=%g into DE405 window", jd), nil)
	}

	rEarthAtWrap, vEarthAtWrap, err := r.accurateSource(de405.Earth, wrapped)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	rMoonAtWrap, vMoonAtWrap, err := r.accurateSource(de405.Moon, wrapped)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	rEMAtWrap := rMoonAtWrap.Sub(rEarthAtWrap)
	vEMAtWrap := vMoonAtWrap.Sub(vEarthAtWrap)

	earthBody, err := r.catalogue.Get("earth")
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	rEarthNow, vEarthNow, err := r.approximateSource(earthBody, jd)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}

	return rEarthNow.Add(rEMAtWrap), vEarthNow.Add(vEMAtWrap), nil
}

// nearestWithinWindow returns jd shifted by the integer multiple of period
// that lands closest to (and within) [first, last]. Returns NaN if no
// integer multiple lands inside the window.
func nearestWithinWindow(jd, period, first, last float64) float64 {
	if jd >= first && jd <= last {
		return jd
	}
	var k float64
	if jd < first {
		k = math.Ceil((first - jd) / period)
	} else {
		k = -math.Ceil((jd - last) / period)
	}
	for _, i := range []float64{0, -1, 1} {
		candidate := jd + (k+i)*period
		if candidate >= first && candidate <= last {
			return candidate
		}
	}
	return math.NaN()
}

// segmentedSource is spec §4.E layer 5: a named spacecraft/small-body
// trajectory relative to a declared center, which may itself need
// resolving.
func (r *Resolver) segmentedSource(name string, jd float64) (vector3.Vector, vector3.Vector, error) {
	center, rRel, vRel, err := r.segments.Query(name, jd)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	if center == "sun" || center == "" {
		return rRel, vRel, nil
	}
	rCenter, vCenter, err := r.PositionVelocity(center, jd)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	return rCenter.Add(rRel), vCenter.Add(vRel), nil
}
