// Package elements implements spec §4.B: time-varying Keplerian orbital
// elements, their evaluation at an epoch, and conversion to/from Cartesian
// state vectors.
package elements

import (
	"math"

	"nbody.space/vector3"
)

// Elements holds the classical six Keplerian elements and their linear
// secular rates, plus the optional multi-term corrections {b, c, s, f}
// used by the outer-planet longitude terms (spec §4.B).
//
// Units: SemiMajorAxis in meters, angles in degrees, rates per Julian
// century.
type Elements struct {
	SemiMajorAxis        float64 // a, meters
	Eccentricity         float64 // e
	Inclination          float64 // i, degrees
	AscendingNode        float64 // Omega, degrees
	LongitudePerihelion  float64 // omega-bar (varpi), degrees
	MeanLongitude        float64 // L, degrees

	SemiMajorAxisRate       float64 // a-dot, m/century
	EccentricityRate        float64 // e-dot, per century
	InclinationRate         float64 // i-dot, deg/century
	AscendingNodeRate       float64 // Omega-dot, deg/century
	LongitudePerihelionRate float64 // omega-bar-dot, deg/century
	MeanLongitudeRate       float64 // L-dot, deg/century

	// Secular correction terms applied to the mean longitude only, per
	// spec §4.B: L + L-dot*T + b*T^2 + c*cos(f*T) + s*sin(f*T).
	B, C, S, F float64
}

// circularEccentricityThreshold and equatorialInclinationThreshold are the
// edge-case cutoffs named in spec §4.B.
const (
	circularEccentricityThreshold   = 1e-12
	equatorialInclinationThreshold  = 1e-12 // radians
)

// AtEpoch evaluates the elements at Julian Date jd, applying the linear
// secular rates and the multi-term correction to the mean longitude. The
// returned angles (Inclination, AscendingNode, LongitudePerihelion,
// MeanLongitude) are reduced modulo 360 degrees.
func (e Elements) AtEpoch(jd float64) Elements {
	t := vector3.CenturiesSinceJ2000(jd)

	out := Elements{
		SemiMajorAxis:       e.SemiMajorAxis + e.SemiMajorAxisRate*t,
		Eccentricity:        e.Eccentricity + e.EccentricityRate*t,
		Inclination:         vector3.NormalizeDegrees(e.Inclination + e.InclinationRate*t),
		AscendingNode:       vector3.NormalizeDegrees(e.AscendingNode + e.AscendingNodeRate*t),
		LongitudePerihelion: vector3.NormalizeDegrees(e.LongitudePerihelion + e.LongitudePerihelionRate*t),
	}

	meanLongitude := e.MeanLongitude + e.MeanLongitudeRate*t +
		e.B*t*t + e.C*math.Cos(e.F*t*vector3.DegToRad) + e.S*math.Sin(e.F*t*vector3.DegToRad)
	out.MeanLongitude = vector3.NormalizeDegrees(meanLongitude)

	// Rates and secular coefficients are not meaningful on an
	// already-evaluated instantaneous element set; zero them so a caller
	// cannot accidentally re-propagate an AtEpoch result.
	return out
}

// PositionVelocity returns the position and velocity (meters, meters/sec)
// implied by the elements (already evaluated at the desired epoch via
// AtEpoch) and the standard gravitational parameter mu of the central
// body, in the central body's equatorial/ecliptic reference frame.
//
// Velocity is computed analytically from the vis-viva relation and the
// perifocal basis, not by finite differencing (spec §4.B).
func (e Elements) PositionVelocity(mu float64) (vector3.Vector, vector3.Vector, error) {
	a := e.SemiMajorAxis
	ecc := e.Eccentricity
	if ecc < 0 {
		ecc = 0
	}

	incl := e.Inclination * vector3.DegToRad
	node := e.AscendingNode * vector3.DegToRad
	argPeri := (e.LongitudePerihelion - e.AscendingNode) * vector3.DegToRad
	meanAnomaly := (e.MeanLongitude - e.LongitudePerihelion) * vector3.DegToRad

	if ecc < circularEccentricityThreshold {
		ecc = 0
	}
	if incl < equatorialInclinationThreshold {
		incl = 0
	}

	eccAnom, err := vector3.SolveKepler(meanAnomaly, ecc)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}

	cosE, sinE := math.Cos(eccAnom), math.Sin(eccAnom)
	sqrt1me2 := math.Sqrt(1 - ecc*ecc)

	// Position and velocity in the perifocal (PQW) frame.
	rMag := a * (1 - ecc*cosE)
	xPerifocal := a * (cosE - ecc)
	yPerifocal := a * sqrt1me2 * sinE

	n := math.Sqrt(mu / (a * a * a)) // mean motion, rad/s
	xDotPerifocal := -a * n * sinE / (1 - ecc*cosE)
	yDotPerifocal := a * n * sqrt1me2 * cosE / (1 - ecc*cosE)

	_ = rMag

	pos := rotatePerifocal(xPerifocal, yPerifocal, argPeri, incl, node)
	vel := rotatePerifocal(xDotPerifocal, yDotPerifocal, argPeri, incl, node)

	return pos, vel, nil
}

// rotatePerifocal rotates a perifocal-plane (x, y, 0) vector into the
// parent-body frame via the standard 3-1-3 Euler sequence (argument of
// perihelion, inclination, ascending node).
func rotatePerifocal(x, y, argPeri, incl, node float64) vector3.Vector {
	cosW, sinW := math.Cos(argPeri), math.Sin(argPeri)
	cosI, sinI := math.Cos(incl), math.Sin(incl)
	cosO, sinO := math.Cos(node), math.Sin(node)

	// Rotate by argument of perihelion in the orbital plane.
	xw := x*cosW - y*sinW
	yw := x*sinW + y*cosW

	// Tilt by inclination.
	xi := xw
	yi := yw * cosI
	zi := yw * sinI

	// Rotate by the longitude of the ascending node.
	xf := xi*cosO - yi*sinO
	yf := xi*sinO + yi*cosO
	zf := zi

	return vector3.New(xf, yf, zf)
}

// FromStateVector computes the osculating Keplerian elements at the given
// Julian Date from a Cartesian position/velocity and the central body's mu
// (spec §4.B). Rates are set to zero since an osculating element set is
// only valid instantaneously; callers must not re-propagate it with AtEpoch
// beyond using it as a starting point for a fresh, non-secular evaluation.
func FromStateVector(mu float64, r, v vector3.Vector, jd float64) Elements {
	rMag := r.Norm()
	vMag2 := v.Norm2()

	h := r.Cross(v) // specific angular momentum
	hMag := h.Norm()

	nodeVec := vector3.New(0, 0, 1).Cross(h) // points toward ascending node
	nodeMag := nodeVec.Norm()

	// Eccentricity vector.
	eVec := r.Scale(vMag2/mu - 1/rMag).Sub(v.Scale(r.Dot(v) / mu))
	ecc := eVec.Norm()

	energy := vMag2/2 - mu/rMag
	var a float64
	if math.Abs(ecc-1) > 1e-12 {
		a = -mu / (2 * energy)
	} else {
		a = math.Inf(1)
	}

	incl := 0.0
	if hMag > 0 {
		incl = math.Atan2(math.Hypot(h.X, h.Y), h.Z) * vector3.RadToDeg
	}

	var node float64
	if nodeMag > circularEccentricityThreshold {
		node = math.Acos(clamp(nodeVec.X/nodeMag, -1, 1)) * vector3.RadToDeg
		if nodeVec.Y < 0 {
			node = 360 - node
		}
	}

	var argPeri float64
	if nodeMag > circularEccentricityThreshold && ecc > circularEccentricityThreshold {
		cosArg := clamp(nodeVec.Dot(eVec)/(nodeMag*ecc), -1, 1)
		argPeri = math.Acos(cosArg) * vector3.RadToDeg
		if eVec.Z < 0 {
			argPeri = 360 - argPeri
		}
	} else if ecc > circularEccentricityThreshold {
		// Equatorial orbit: there is no ascending node (node stays 0), so
		// measure the perihelion direction from the x-axis.
		argPeri = math.Atan2(eVec.Y, eVec.X) * vector3.RadToDeg
		if h.Z < 0 {
			argPeri = -argPeri
		}
	}

	var trueAnomaly float64
	if ecc > circularEccentricityThreshold {
		cosNu := clamp(eVec.Dot(r)/(ecc*rMag), -1, 1)
		trueAnomaly = math.Acos(cosNu) * vector3.RadToDeg
		if r.Dot(v) < 0 {
			trueAnomaly = 360 - trueAnomaly
		}
	} else {
		// Circular orbit: measure the angle from the ascending node (or
		// from x if equatorial) directly, since there is no perihelion.
		if nodeMag > circularEccentricityThreshold {
			cosU := clamp(nodeVec.Dot(r)/(nodeMag*rMag), -1, 1)
			trueAnomaly = math.Acos(cosU) * vector3.RadToDeg
			if r.Z < 0 {
				trueAnomaly = 360 - trueAnomaly
			}
		} else {
			trueAnomaly = math.Atan2(r.Y, r.X) * vector3.RadToDeg
		}
	}

	eccAnomaly := trueToEccentricAnomaly(trueAnomaly*vector3.DegToRad, ecc)
	meanAnomaly := eccAnomaly - ecc*math.Sin(eccAnomaly)
	meanLongitude := vector3.NormalizeDegrees(node + argPeri + meanAnomaly*vector3.RadToDeg)
	longPeri := vector3.NormalizeDegrees(node + argPeri)

	return Elements{
		SemiMajorAxis:       a,
		Eccentricity:        ecc,
		Inclination:         vector3.NormalizeDegrees(incl),
		AscendingNode:       vector3.NormalizeDegrees(node),
		LongitudePerihelion: longPeri,
		MeanLongitude:       meanLongitude,
	}
}

func trueToEccentricAnomaly(nu, ecc float64) float64 {
	return 2 * math.Atan2(math.Sqrt(1-ecc)*math.Sin(nu/2), math.Sqrt(1+ecc)*math.Cos(nu/2))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
