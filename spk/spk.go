// Package spk implements spec §4.D: a segmented position/velocity provider
// for spacecraft and small bodies, relative to a declared center body. The
// coefficient/sample layout of a segment is an implementation detail of
// its Sampler; this package only mandates C1-continuous r, v over the
// segment's validity window.
package spk

import (
	"fmt"
	"math"
	"sort"

	"nbody.space/simerr"
	"nbody.space/vector3"
)

// Sampler evaluates position and velocity at a Julian Date known to lie
// within a Segment's window. Implementations may be polynomial (Chebyshev,
// as in de405) or directly sampled with local interpolation; spec §4.D
// leaves the representation to the collaborator that built the segment.
type Sampler interface {
	Sample(jd float64) (vector3.Vector, vector3.Vector, error)
}

// Segment is one contiguous span of a trajectory relative to a single
// center body.
type Segment struct {
	CenterName string
	CenterID   int
	TargetName string
	TargetID   int
	StartJD    float64
	EndJD      float64
	Sampler    Sampler
}

func (s Segment) covers(jd float64) bool {
	return jd >= s.StartJD && jd <= s.EndJD
}

// Trajectory is an ordered, non-overlapping sequence of segments for one
// named body.
type Trajectory struct {
	Name     string
	segments []Segment
}

// NewTrajectory builds a Trajectory from an unordered slice of segments,
// sorting them by start time.
func NewTrajectory(name string, segments []Segment) *Trajectory {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartJD < sorted[j].StartJD })
	return &Trajectory{Name: name, segments: sorted}
}

// FirstValidJD returns the earliest time covered by any segment, or
// +Inf if the trajectory has no segments.
func (t *Trajectory) FirstValidJD() float64 {
	if len(t.segments) == 0 {
		return math.Inf(1)
	}
	return t.segments[0].StartJD
}

// LastValidJD returns the latest time covered by any segment, or -Inf if
// the trajectory has no segments.
func (t *Trajectory) LastValidJD() float64 {
	if len(t.segments) == 0 {
		return math.Inf(-1)
	}
	return t.segments[len(t.segments)-1].EndJD
}

// Query returns the center body name and the position/velocity of the
// trajectory's target relative to that center at jd. It fails with an
// OutOfRangeError if no segment covers jd (spec §4.D).
func (t *Trajectory) Query(jd float64) (center string, r, v vector3.Vector, err error) {
	for _, seg := range t.segments {
		if seg.covers(jd) {
			r, v, err = seg.Sampler.Sample(jd)
			if err != nil {
				return "", vector3.Zero, vector3.Zero, simerr.OutOfRange(
					fmt.Sprintf("spk: segment sample failed for %q at jd=%g", t.Name, jd), err)
			}
			return seg.CenterName, r, v, nil
		}
	}
	return "", vector3.Zero, vector3.Zero, simerr.OutOfRange(
		fmt.Sprintf("spk: no segment covers %q at jd=%g (valid [%g, %g])",
			t.Name, jd, t.FirstValidJD(), t.LastValidJD()), nil)
}

// Store is a named collection of trajectories (one per spacecraft or small
// body), injected into the layered resolver (spec §4.E).
type Store struct {
	trajectories map[string]*Trajectory
}

// NewStore builds an empty Store.
func NewStore() *Store {
	return &Store{trajectories: make(map[string]*Trajectory)}
}

// Add registers a trajectory, keyed by its name.
func (s *Store) Add(t *Trajectory) {
	s.trajectories[t.Name] = t
}

// Query looks up name's trajectory and queries it at jd. Fails with a
// NotFoundError if name is unregistered.
func (s *Store) Query(name string, jd float64) (center string, r, v vector3.Vector, err error) {
	t, ok := s.trajectories[name]
	if !ok {
		return "", vector3.Zero, vector3.Zero, simerr.NotFound(
			fmt.Sprintf("spk: no trajectory registered for %q", name), nil)
	}
	return t.Query(jd)
}

// Has reports whether name has a registered trajectory.
func (s *Store) Has(name string) bool {
	_, ok := s.trajectories[name]
	return ok
}
