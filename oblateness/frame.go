package oblateness

import (
	"math"

	"nbody.space/catalogue"
	"nbody.space/vector3"
)

// poleDirection returns the unit vector of o's pole in the inertial frame
// at jd, propagating the pole's right ascension/declination by their
// secular rates (spec §4.H: "rotated into the inertial frame by the
// primary's pole direction at the current date").
func poleDirection(o *catalogue.Oblateness, jd float64) vector3.Vector {
	t := vector3.CenturiesSinceJ2000(jd)
	ra := (o.PoleRightAscensionDeg + o.PoleRARateDegPerCty*t) * vector3.DegToRad
	dec := (o.PoleDeclinationDeg + o.PoleDecRateDegPerCty*t) * vector3.DegToRad

	cosDec := math.Cos(dec)
	return vector3.New(cosDec*math.Cos(ra), cosDec*math.Sin(ra), math.Sin(dec))
}

// bodyFixedBasis builds a right-handed orthonormal basis (e1, e2, pole)
// for the body-fixed frame whose z-axis is pole. e1 is the intersection of
// the primary's equator with the inertial xy-plane (its ascending node),
// falling back to x cross pole (the inertial -y axis for a pole along +z)
// if pole is too close to the z-axis.
func bodyFixedBasis(pole vector3.Vector) (e1, e2, e3 vector3.Vector) {
	node := vector3.New(0, 0, 1).Cross(pole)
	if node.Norm() < 1e-9 {
		node = vector3.New(1, 0, 0).Cross(pole)
	}
	e1 = node.Unit()
	e3 = pole.Unit()
	e2 = e3.Cross(e1)
	return e1, e2, e3
}

// toBodyFixed rotates v (inertial) into the body-fixed frame whose z-axis
// is pole.
func toBodyFixed(v, pole vector3.Vector) vector3.Vector {
	e1, e2, e3 := bodyFixedBasis(pole)
	return vector3.New(v.Dot(e1), v.Dot(e2), v.Dot(e3))
}

// fromBodyFixed rotates vBody (body-fixed components) back into the
// inertial frame whose pole is pole.
func fromBodyFixed(vBody, pole vector3.Vector) vector3.Vector {
	e1, e2, e3 := bodyFixedBasis(pole)
	return e1.Scale(vBody.X).Add(e2.Scale(vBody.Y)).Add(e3.Scale(vBody.Z))
}
