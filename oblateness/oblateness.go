// Package oblateness implements spec §4.H: the J2 perturbation applied to
// moon motion around a small set of non-spherical primaries.
package oblateness

import (
	"nbody.space/catalogue"
	"nbody.space/vector3"
)

// DefaultCutoffM is the default distance beyond which the J2 perturbation
// is skipped (spec §4.H); zero disables the perturbation globally.
const DefaultCutoffM = 5e9

// Model applies the J2 perturbation for a configurable set of oblate
// primaries, each evaluated only when the orbiting body is within CutoffM
// of it.
type Model struct {
	// CutoffM is the distance cutoff in meters. Zero disables the
	// perturbation for every body.
	CutoffM float64
	// Bodies is the set of primary names the model perturbs around,
	// keyed by lower-case catalogue name (spec default: earth, jupiter,
	// saturn, uranus, neptune).
	Bodies map[string]bool
}

// DefaultBodies is the spec §4.H default oblate-primary set.
func DefaultBodies() map[string]bool {
	return map[string]bool{
		"earth":   true,
		"jupiter": true,
		"saturn":  true,
		"uranus":  true,
		"neptune": true,
	}
}

// NewDefault builds a Model using the spec-default cutoff and body set.
func NewDefault() *Model {
	return &Model{CutoffM: DefaultCutoffM, Bodies: DefaultBodies()}
}

// Enabled reports whether primary is configured to perturb moon motion.
func (m *Model) Enabled(primary string) bool {
	if m.CutoffM <= 0 {
		return false
	}
	return m.Bodies[primary]
}

// Acceleration returns the J2 acceleration a satellite at relativePosition
// (relative to primary, inertial frame) experiences due to primary's
// oblateness, evaluated at Julian Date jd. It returns the zero vector if
// primary is not configured, or relativePosition exceeds CutoffM.
func (m *Model) Acceleration(primary *catalogue.Body, relativePosition vector3.Vector, jd float64) vector3.Vector {
	if !m.Enabled(primary.Name) || primary.Oblate == nil {
		return vector3.Zero
	}
	d := relativePosition.Norm()
	if d == 0 || d > m.CutoffM {
		return vector3.Zero
	}

	pole := poleDirection(primary.Oblate, jd)
	bodyFrame := toBodyFixed(relativePosition, pole)
	aBody := j2Acceleration(primary.Mu, primary.Oblate.J2, primary.Oblate.EquatorialRadiusM, bodyFrame)
	return fromBodyFixed(aBody, pole)
}

// j2Acceleration is the classical J2 oblateness perturbation (spec §4.H),
// evaluated in the primary's body-fixed frame where z is the pole axis:
//
//	ax = -(3/2) J2 mu Re^2 x/r^5 (1 - 5 z^2/r^2)
//	ay = -(3/2) J2 mu Re^2 y/r^5 (1 - 5 z^2/r^2)
//	az = -(3/2) J2 mu Re^2 z/r^5 (3 - 5 z^2/r^2)
func j2Acceleration(mu, j2, equatorialRadius float64, bodyFrame vector3.Vector) vector3.Vector {
	r := bodyFrame.Norm()
	r2 := r * r
	r5 := r2 * r2 * r
	z2OverR2 := (bodyFrame.Z * bodyFrame.Z) / r2
	common := -1.5 * j2 * mu * equatorialRadius * equatorialRadius / r5

	return vector3.New(
		common*bodyFrame.X*(1-5*z2OverR2),
		common*bodyFrame.Y*(1-5*z2OverR2),
		common*bodyFrame.Z*(3-5*z2OverR2),
	)
}
