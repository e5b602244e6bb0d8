package splinefile

import (
	"io"

	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/meshgen"
)

// Instances is the exported form of generated meshes.
type Instances struct {
	Segments   []Segment   `yaml:"segments"`
	Placements []Placement `yaml:"placements,omitempty"`
}

// Segment is an exported meshgen.Segment. Rolls are in radians.
type Segment struct {
	Start SegmentEnd `yaml:"start"`
	End   SegmentEnd `yaml:"end"`
}

// SegmentEnd is one end of a Segment. CrossSection is the Y and Z scale a
// mesh deformer applies to the segment's end.
type SegmentEnd struct {
	Time         float32    `yaml:"time"`
	Position     Vec        `yaml:"position,flow"`
	Tangent      Vec        `yaml:"tangent,flow"`
	Scale        Vec        `yaml:"scale,flow"`
	CrossSection [2]float32 `yaml:"cross_section,flow"`
	Roll         float32    `yaml:"roll"`
}

// Placement is an exported meshgen.Placement. Rotation is pitch, yaw and
// roll in degrees. Transform is the column-major instance matrix.
type Placement struct {
	Identifier string  `yaml:"identifier,omitempty"`
	Mesh       string  `yaml:"mesh"`
	Class      string  `yaml:"class,omitempty"`
	Index      int         `yaml:"index"`
	Count      int         `yaml:"count"`
	MaxIndex   int         `yaml:"max_index"`
	Time       float32     `yaml:"time"`
	Location   Vec         `yaml:"location,flow"`
	Rotation   Vec         `yaml:"rotation,flow"`
	Scale      Vec         `yaml:"scale,flow"`
	Transform  [16]float32 `yaml:"transform,flow"`
}

// NewInstances converts what rec has recorded.
func NewInstances(rec *meshgen.Recorder) *Instances {
	out := &Instances{
		Segments:   make([]Segment, 0, len(rec.Segments)),
		Placements: make([]Placement, 0, len(rec.Placements)),
	}
	for _, s := range rec.Segments {
		out.Segments = append(out.Segments, Segment{
			Start: SegmentEnd{
				Time:     s.StartTime,
				Position: vecOf(s.StartPosition),
				Tangent:  vecOf(s.StartTangent),
				Scale:    vecOf(s.StartScale),
				Roll:     s.StartRoll,

				CrossSection: crossSection(s.StartCrossSection()),
			},
			End: SegmentEnd{
				Time:     s.EndTime,
				Position: vecOf(s.EndPosition),
				Tangent:  vecOf(s.EndTangent),
				Scale:    vecOf(s.EndScale),
				Roll:     s.EndRoll,

				CrossSection: crossSection(s.EndCrossSection()),
			},
		})
	}
	for _, p := range rec.Placements {
		out.Placements = append(out.Placements, Placement{
			Identifier: p.Identifier,
			Mesh:       p.Mesh,
			Class:      p.Class,
			Index:      p.Index,
			Count:      p.Count,
			MaxIndex:   p.MaxIndex,
			Time:       p.Time,
			Location:   vecOf(p.Location),
			Rotation:   Vec{p.Rotation.Pitch, p.Rotation.Yaw, p.Rotation.Roll},
			Scale:      vecOf(p.Scale),
			Transform:  p.Transform(),
		})
	}
	return out
}

func crossSection(v math.Vec2) [2]float32 { return [2]float32{v.X, v.Y} }

// ExportInstances writes the segments and placements held by rec to w.
func ExportInstances(w io.Writer, rec *meshgen.Recorder) error {
	return writeYAML(w, NewInstances(rec))
}
