// Package de405 evaluates the JPL DE405 Chebyshev-series planetary
// ephemeris (spec §4.C). It consumes an already-decoded coefficient
// provider; parsing the DE405 text/binary files is an explicit collaborator
// per spec §1 and is not implemented here.
package de405

import (
	"fmt"
	"math"

	"nbody.space/simerr"
	"nbody.space/vector3"
)

// Target identifies one of the eleven DE405 targets, plus two derived
// logical bodies (Earth, Moon) reconstructed from the Earth-Moon
// barycenter and the geocentric Moon per spec §4.C step 5.
type Target int

const (
	Mercury Target = iota
	Venus
	EarthMoonBarycenter
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	GeocentricMoon
	Sun

	// Earth and Moon are not directly stored in a DE405 record; they are
	// derived from EarthMoonBarycenter and GeocentricMoon.
	Earth
	Moon
)

// EMRAT is the DE405 Earth-Moon mass ratio (spec §6).
const EMRAT = 81.30056

// numbersPerInterval is the fixed record length (spec §6).
const numbersPerInterval = 816

// IntervalDays is the length, in days, of one DE405 record (spec §4.C).
const IntervalDays = 32.0

type targetLayout struct {
	subintervals int // K
	coeffsPerAxis int // N
	offset       int // starting index into the 816-number record
}

// layout is derived from the table in spec §6, in fixed target order.
var layout = buildLayout()

func buildLayout() map[Target]targetLayout {
	type spec struct {
		target Target
		k, n   int
	}
	order := []spec{
		{Mercury, 4, 14},
		{Venus, 2, 10},
		{EarthMoonBarycenter, 2, 13},
		{Mars, 1, 11},
		{Jupiter, 1, 8},
		{Saturn, 1, 7},
		{Uranus, 1, 6},
		{Neptune, 1, 6},
		{Pluto, 1, 6},
		{GeocentricMoon, 8, 13},
		{Sun, 2, 11},
	}
	out := make(map[Target]targetLayout, len(order))
	offset := 0
	for _, s := range order {
		out[s.target] = targetLayout{subintervals: s.k, coeffsPerAxis: s.n, offset: offset}
		offset += s.k * 3 * s.n
	}
	if offset != numbersPerInterval {
		panic(fmt.Sprintf("de405: layout size %d != %d", offset, numbersPerInterval))
	}
	return out
}

// CoefficientSource supplies already-decoded DE405 Chebyshev coefficients.
// An implementation owns the file parsing (an explicit collaborator per
// spec §1); Evaluator only ever calls Record with an index it derived from
// FirstValidJD/LastValidJD.
type CoefficientSource interface {
	// FirstValidJD and LastValidJD bound the supported ephemeris window.
	FirstValidJD() float64
	LastValidJD() float64
	// Record returns the numbersPerInterval=816 coefficients for the
	// 32-day interval starting at FirstValidJD() + 32*index.
	Record(index int) ([]float64, error)
}

// Evaluator provides random-access position/velocity evaluation over a
// CoefficientSource (spec §4.C).
type Evaluator struct {
	source CoefficientSource
}

// New builds an Evaluator over source.
func New(source CoefficientSource) *Evaluator {
	return &Evaluator{source: source}
}

// FirstValidJD returns the earliest Julian Date this evaluator supports.
func (e *Evaluator) FirstValidJD() float64 { return e.source.FirstValidJD() }

// LastValidJD returns the latest Julian Date this evaluator supports.
func (e *Evaluator) LastValidJD() float64 { return e.source.LastValidJD() }

// PositionVelocity evaluates target at Julian Date jd, returning position
// in AU and velocity in AU/day, in the DE405 J2000 mean-equator frame
// (spec §4.C). Earth and Moon are reconstructed from the Earth-Moon
// barycenter and the geocentric Moon via EMRAT.
func (e *Evaluator) PositionVelocity(target Target, jd float64) (vector3.Vector, vector3.Vector, error) {
	switch target {
	case Earth, Moon:
		rEMB, vEMB, err := e.rawPositionVelocity(EarthMoonBarycenter, jd)
		if err != nil {
			return vector3.Zero, vector3.Zero, err
		}
		rGeoMoon, vGeoMoon, err := e.rawPositionVelocity(GeocentricMoon, jd)
		if err != nil {
			return vector3.Zero, vector3.Zero, err
		}
		rEarth := rEMB.Sub(rGeoMoon.Scale(1 / (1 + EMRAT)))
		vEarth := vEMB.Sub(vGeoMoon.Scale(1 / (1 + EMRAT)))
		if target == Earth {
			return rEarth, vEarth, nil
		}
		return rEarth.Add(rGeoMoon), vEarth.Add(vGeoMoon), nil
	default:
		return e.rawPositionVelocity(target, jd)
	}
}

func (e *Evaluator) rawPositionVelocity(target Target, jd float64) (vector3.Vector, vector3.Vector, error) {
	lay, ok := layout[target]
	if !ok {
		return vector3.Zero, vector3.Zero, simerr.InvariantViolation(
			fmt.Sprintf("de405: unknown target %d", target), nil)
	}

	first, last := e.source.FirstValidJD(), e.source.LastValidJD()
	if jd < first || jd > last {
		return vector3.Zero, vector3.Zero, simerr.OutOfRange(
			fmt.Sprintf("jd %g outside DE405 window [%g, %g]", jd, first, last), nil)
	}

	recordIndex := int(math.Floor((jd - first) / IntervalDays))
	record, err := e.source.Record(recordIndex)
	if err != nil {
		return vector3.Zero, vector3.Zero, simerr.OutOfRange(
			fmt.Sprintf("de405: failed to load record %d", recordIndex), err)
	}
	if len(record) != numbersPerInterval {
		return vector3.Zero, vector3.Zero, simerr.InvariantViolation(
			fmt.Sprintf("de405: record %d has %d coefficients, want %d", recordIndex, len(record), numbersPerInterval), nil)
	}

	recordStart := first + float64(recordIndex)*IntervalDays
	subLen := IntervalDays / float64(lay.subintervals)

	s := int(math.Floor((jd - recordStart) / subLen))
	if s < 0 {
		s = 0
	}
	if s >= lay.subintervals {
		s = lay.subintervals - 1
	}
	subStart := recordStart + float64(s)*subLen

	tau := 2*(jd-subStart)/subLen - 1
	if tau < -1 {
		tau = -1
	}
	if tau > 1 {
		tau = 1
	}

	n := lay.coeffsPerAxis
	axisBase := lay.offset + s*3*n

	var pos, vel [3]float64
	for axis := 0; axis < 3; axis++ {
		coeffs := record[axisBase+axis*n : axisBase+axis*n+n]
		pos[axis], vel[axis] = evaluateChebyshev(coeffs, tau)
	}

	dTauDJD := 2 * float64(lay.subintervals) / IntervalDays
	velocity := vector3.New(vel[0], vel[1], vel[2]).Scale(dTauDJD)

	return vector3.New(pos[0], pos[1], pos[2]), velocity, nil
}

// evaluateChebyshev evaluates the Chebyshev series sum(c_k * T_k(tau)) and
// its derivative with respect to tau, sum(c_k * dT_k/dtau), using the
// standard three-term recurrences for T_k and the second-kind U_k that
// supplies the derivative (spec §4.C step 4).
func evaluateChebyshev(coeffs []float64, tau float64) (value, derivative float64) {
	n := len(coeffs)
	if n == 0 {
		return 0, 0
	}

	t := make([]float64, n)
	t[0] = 1
	if n > 1 {
		t[1] = tau
	}
	for k := 2; k < n; k++ {
		t[k] = 2*tau*t[k-1] - t[k-2]
	}

	for k := 0; k < n; k++ {
		value += coeffs[k] * t[k]
	}

	if n == 1 {
		return value, 0
	}

	u := make([]float64, n)
	u[0] = 1
	if n > 1 {
		u[1] = 2 * tau
	}
	for k := 2; k < n; k++ {
		u[k] = 2*tau*u[k-1] - u[k-2]
	}

	// dT_k/dtau = k*U_{k-1} for k >= 1; dT_0/dtau = 0.
	for k := 1; k < n; k++ {
		derivative += coeffs[k] * float64(k) * u[k-1]
	}

	return value, derivative
}
