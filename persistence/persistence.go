// Package persistence implements spec §4.J: a versioned, self-describing,
// endian-independent snapshot of a running simulation, encoded with
// encoding/gob so neither format-versioning nor byte-order handling needs
// to be hand-rolled.
package persistence

import (
	"encoding/gob"
	"fmt"
	"io"

	"nbody.space/simerr"
	"nbody.space/vector3"
)

// FormatVersion is bumped whenever Snapshot's shape changes in a way that
// would change how an older Load call interprets newer bytes.
const FormatVersion = 1

// ParticleState is the persisted form of a particle.Particle: its full
// ABM4 history is captured too, so that resuming a snapshot and continuing
// the simulation reproduces the same subsequent steps as if it had never
// been saved (spec §4.J, §5's determinism guarantee).
type ParticleState struct {
	Name string
	Mass float64
	Mu   float64

	Position     vector3.Vector
	Velocity     vector3.Vector
	Acceleration vector3.Vector

	AccelHistory    [4]vector3.Vector
	VelocityHistory [4]vector3.Vector
	HistoryFilled   int
}

// SubsystemState is a planet-centered subsystem: its planet name and the
// particle states it holds (planet first, then moons/test particles).
type SubsystemState struct {
	Planet    string
	Particles []ParticleState

	// StepsTaken is the subsystem's ABM4 integrator step count, so a
	// resumed simulation doesn't re-run the RK4 bootstrap against
	// already-populated history (spec §4.J).
	StepsTaken int
}

// Snapshot is the full persisted state of a solarsystem.System (spec
// §4.J): the simulation date, the relativistic-kernel flags, the main
// system's particles, every live subsystem, and which subsystem (if any)
// each tracked spacecraft currently resides in.
type Snapshot struct {
	Version int

	DateJD                   float64
	GeneralRelativity        bool
	CurvatureWavePropagation bool

	Main       []ParticleState
	Subsystems []SubsystemState

	// SpacecraftHome maps a tracked spacecraft's name to the planet
	// subsystem it's currently inside, or "" for the main system.
	SpacecraftHome map[string]string
}

// Save gob-encodes snap to w, stamped with the current FormatVersion.
func Save(w io.Writer, snap Snapshot) error {
	snap.Version = FormatVersion
	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return simerr.Numerical("persistence: encode failed", err)
	}
	return nil
}

// Load gob-decodes a Snapshot from r. Fails with OutOfRangeError if the
// embedded version is newer than this build's FormatVersion — an older
// reader has no sound way to interpret a future format.
func Load(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, simerr.Numerical("persistence: decode failed", err)
	}
	if snap.Version > FormatVersion {
		return Snapshot{}, simerr.OutOfRange(
			fmt.Sprintf("persistence: snapshot format version %d is newer than this build supports (%d)", snap.Version, FormatVersion), nil)
	}
	return snap, nil
}
