// Package meshgen turns a host curve into mesh segment descriptors and
// additional mesh placements for an external instancer.
//
// Segments can follow the control points, fixed time steps, or break times
// found by bisecting the curve wherever its tangent turns more than a
// threshold angle.
package meshgen

import (
	"fmt"
	"strings"

	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/spline"
)

// Mode selects how a curve is cut into segments.
type Mode int

const (
	// ModePoint makes one segment per pair of consecutive control points.
	ModePoint Mode = iota
	// ModeTimeBased makes one segment per fixed time interval.
	ModeTimeBased
	// ModeSteepness cuts segments at break times where the curve bends.
	ModeSteepness
)

var modeNames = map[Mode]string{
	ModePoint:     "point",
	ModeTimeBased: "time",
	ModeSteepness: "steepness",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("meshgen: invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for mode, name := range modeNames {
		if s == name {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("meshgen: unknown mode %q", string(text))
}

// Segment describes one piece of mesh bent between two times on the curve.
// Tangents are unnormalized curve tangents. Rolls are in radians.
type Segment struct {
	StartTime, EndTime float32

	StartPosition, StartTangent math.Vec3
	EndPosition, EndTangent     math.Vec3

	StartScale, EndScale math.Vec3
	StartRoll, EndRoll   float32
}

// StartCrossSection returns the Y and Z scale at the start of the segment.
func (s Segment) StartCrossSection() math.Vec2 { return s.StartScale.YZ() }

// EndCrossSection returns the Y and Z scale at the end of the segment.
func (s Segment) EndCrossSection() math.Vec2 { return s.EndScale.YZ() }

// NewSegment samples the curve at both ends of [start, end].
func NewSegment(s *spline.Sampler, start, end float32) Segment {
	return Segment{
		StartTime:     start,
		EndTime:       end,
		StartPosition: s.PositionAtTime(start),
		StartTangent:  s.TangentAtTime(start),
		EndPosition:   s.PositionAtTime(end),
		EndTangent:    s.TangentAtTime(end),
		StartScale:    s.ScaleAtTime(start),
		EndScale:      s.ScaleAtTime(end),
		StartRoll:     math.Radians(s.RollAtTime(start)),
		EndRoll:       math.Radians(s.RollAtTime(end)),
	}
}

// SegmentsBetween makes one segment per consecutive pair of sorted times.
func SegmentsBetween(s *spline.Sampler, times []float32) []Segment {
	if len(times) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(times)-1)
	for i := 0; i < len(times)-1; i++ {
		segs = append(segs, NewSegment(s, times[i], times[i+1]))
	}
	return segs
}

// PointTimes returns the time of every control point.
func PointTimes(s *spline.Sampler) []float32 {
	times := make([]float32, 0, s.PointCount())
	for i := 0; i < s.PointCount(); i++ {
		t, err := s.PointToTime(i)
		if err != nil {
			break
		}
		times = append(times, t)
	}
	return times
}

// StepTimes returns 0, interval, 2*interval, ... and ends with the duration.
// A non-positive interval yields just the two ends.
func StepTimes(duration, interval float32) []float32 {
	times := []float32{0}
	if interval > 0 {
		for i := 1; ; i++ {
			t := float32(i) * interval
			if t >= duration {
				break
			}
			times = append(times, t)
		}
	}
	if duration > 0 {
		times = append(times, duration)
	}
	return times
}

// SegmentsByPoints makes one segment per pair of consecutive control points.
func SegmentsByPoints(s *spline.Sampler) []Segment {
	return SegmentsBetween(s, PointTimes(s))
}

// SegmentsByTime makes one segment per time interval; the last one ends at
// the curve's duration.
func SegmentsByTime(s *spline.Sampler, interval float32) []Segment {
	return SegmentsBetween(s, StepTimes(s.Duration(), interval))
}
