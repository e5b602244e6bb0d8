package meshgen

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/spline"
)

// MinRepetition is the smallest spacing, in time units, between additional
// meshes. Smaller requests are raised to it.
const MinRepetition = 0.009

// RepetitionType selects which parts of the curve receive additional meshes.
type RepetitionType int

const (
	// Always repeats over the whole duration.
	Always RepetitionType = iota
	// BetweenPoints repeats over control point index ranges.
	BetweenPoints
	// BetweenTimeIntervals repeats over explicit time ranges.
	BetweenTimeIntervals
)

var repetitionNames = map[RepetitionType]string{
	Always:               "always",
	BetweenPoints:        "points",
	BetweenTimeIntervals: "time",
}

func (r RepetitionType) String() string {
	if s, ok := repetitionNames[r]; ok {
		return s
	}
	return fmt.Sprintf("RepetitionType(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r RepetitionType) MarshalText() ([]byte, error) {
	if _, ok := repetitionNames[r]; !ok {
		return nil, fmt.Errorf("meshgen: invalid repetition type %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RepetitionType) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for typ, name := range repetitionNames {
		if s == name {
			*r = typ
			return nil
		}
	}
	return fmt.Errorf("meshgen: unknown repetition type %q", string(text))
}

// Range is a span of either times or control point indices.
type Range struct {
	Start float32 `yaml:"start"`
	End   float32 `yaml:"end"`
}

// Repetition describes how often and where a mesh repeats.
type Repetition struct {
	Every  float32        `yaml:"every"`
	Type   RepetitionType `yaml:"type"`
	Ranges []Range        `yaml:"ranges,omitempty"`
}

// Spacing returns Every raised to MinRepetition.
func (r Repetition) Spacing() float32 {
	return max(r.Every, MinRepetition)
}

// MeshInfo describes the mesh placed along the curve. Bounds are the mesh's
// local bounds, used to center it when AdjustByBounds is set.
type MeshInfo struct {
	Mesh           string       `yaml:"mesh"`
	Class          string       `yaml:"class,omitempty"`
	Scale          math.Vec3    `yaml:"scale"`
	LocationOffset math.Vec3    `yaml:"location_offset"`
	RotationOffset math.Rotator `yaml:"rotation_offset"`
	AdjustByBounds bool         `yaml:"adjust_by_bounds"`
	Bounds         math.AABB    `yaml:"bounds"`
}

// AdditionalMesh is a mesh repeated along the curve.
type AdditionalMesh struct {
	Instance             MeshInfo   `yaml:"instance"`
	Repetition           Repetition `yaml:"repetition"`
	Identifier           string     `yaml:"identifier"`
	TriggerCreationEvent bool       `yaml:"trigger_creation_event"`
}

// Placement is one additional mesh instance. Index counts from 0 within its
// range, Count is the number of placements in that range and MaxIndex is
// the whole number of spacings the range spans.
type Placement struct {
	Identifier string
	Mesh       string
	Class      string

	Index    int
	Count    int
	MaxIndex int
	Time     float32

	Location math.Vec3
	Rotation math.Rotator
	Scale    math.Vec3
}

// Transform returns the placement's translation * rotation * scale matrix.
func (p Placement) Transform() math.Mat4 {
	return math.Compose(p.Location, p.Rotation.Quat(), p.Scale)
}

// Ranges resolves the time ranges a repetition covers on the curve.
func Ranges(s *spline.Sampler, r Repetition) []Range {
	duration := s.Duration()
	switch r.Type {
	case Always:
		return []Range{{Start: 0, End: duration}}
	case BetweenTimeIntervals:
		out := make([]Range, 0, len(r.Ranges))
		for _, rg := range r.Ranges {
			out = append(out, Range{Start: max(rg.Start, 0), End: min(duration, rg.End)})
		}
		return out
	case BetweenPoints:
		last := float32(s.PointCount() - 1)
		out := make([]Range, 0, len(r.Ranges))
		for _, rg := range r.Ranges {
			start, err := s.PointToTime(int(max(rg.Start, 0)))
			if err != nil {
				continue
			}
			end, err := s.PointToTime(int(min(last, rg.End)))
			if err != nil {
				continue
			}
			out = append(out, Range{Start: start, End: end})
		}
		return out
	}
	return nil
}

// StepCount returns how many positions start + i*spacing fall before end.
func StepCount(rg Range, spacing float32) int {
	span := float64(rg.End - rg.Start)
	if span <= 0 || spacing <= 0 {
		return 0
	}
	return int(gomath.Ceil(span/float64(spacing) - 1e-6))
}

// MaxIndex returns the number of whole spacings in rg.
func MaxIndex(rg Range, spacing float32) int {
	span := float64(rg.End - rg.Start)
	if span <= 0 || spacing <= 0 {
		return 0
	}
	return int(gomath.Floor(span/float64(spacing) + 1e-6))
}

// Placements lays out m along the curve. Meshes without a mesh reference
// produce nothing.
func Placements(s *spline.Sampler, m AdditionalMesh) []Placement {
	if m.Instance.Mesh == "" {
		return nil
	}
	spacing := m.Repetition.Spacing()
	var out []Placement
	for _, rg := range Ranges(s, m.Repetition) {
		count := StepCount(rg, spacing)
		maxIndex := MaxIndex(rg, spacing)
		for i := 0; i < count; i++ {
			t := rg.Start + float32(i)*spacing
			p := place(s, m.Instance, t)
			p.Identifier = m.Identifier
			p.Index = i
			p.Count = count
			p.MaxIndex = maxIndex
			out = append(out, p)
		}
	}
	return out
}

func place(s *spline.Sampler, info MeshInfo, t float32) Placement {
	loc := s.PositionAtTime(t).Add(info.LocationOffset)
	if info.AdjustByBounds {
		loc = loc.Sub(info.Bounds.Center().Mul(info.Scale))
	}
	return Placement{
		Mesh:     info.Mesh,
		Class:    info.Class,
		Time:     t,
		Location: loc,
		Rotation: math.RotatorFromX(s.TangentAtTime(t)).Add(info.RotationOffset),
		Scale:    info.Scale,
	}
}
