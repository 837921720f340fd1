package de405

import (
	"math"

	"nbody.space/vector3"
)

// SinObliquity is the bit-exact J2000 obliquity constant used to rotate a
// DE405 J2000 mean-equator vector into the J2000 ecliptic frame (spec §6).
// cos(epsilon) is derived from sin(epsilon) rather than independently
// specified.
const SinObliquity = -0.397776995

var cosObliquity = math.Sqrt(1 - SinObliquity*SinObliquity)

// ToEcliptic rotates a vector from the DE405 J2000 mean-equator frame into
// the J2000 ecliptic frame: a rotation about the x-axis by the obliquity
// of the ecliptic (spec §4.C, §6).
func ToEcliptic(v vector3.Vector) vector3.Vector {
	return vector3.New(
		v.X,
		v.Y*cosObliquity+v.Z*SinObliquity,
		-v.Y*SinObliquity+v.Z*cosObliquity,
	)
}
