package spline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/splinekit/pkg/math"
)

// samplesPerSegment is the resolution of the arc-length table.
const samplesPerSegment = 16

// Type selects how a Spline interpolates between control points.
type Type int

const (
	// CatmullRom passes a uniform Catmull-Rom curve through every point.
	CatmullRom Type = iota
	// Linear joins the points with straight segments.
	Linear
)

// String returns the name used in spline documents.
func (t Type) String() string {
	switch t {
	case CatmullRom:
		return "curve"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType parses a type name as produced by String.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "curve", "catmullrom", "catmull-rom", "":
		return CatmullRom, nil
	case "linear":
		return Linear, nil
	}
	return 0, fmt.Errorf("spline: unknown type %q", s)
}

// Point is a control point. Roll is in degrees.
type Point struct {
	Position math.Vec3
	Scale    math.Vec3
	Roll     float32
}

// NewPoint returns a control point at p with unit scale and no roll.
func NewPoint(p math.Vec3) Point {
	return Point{Position: p, Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Spline is an open curve through an ordered list of control points.
// Time is constant-velocity: time t maps to arc length t/Duration*Length.
//
// A Spline is not safe for concurrent use; queries may rebuild the arc-length
// table after the point list changed.
type Spline struct {
	typ      Type
	duration float32
	points   []Point

	dirty bool
	dist  []float32   // arc length at each control point
	table [][]float32 // cumulative arc length at each sample of each segment
}

// New returns a spline of the given type through points. A non-positive
// duration defaults to 1.
func New(typ Type, duration float32, points ...Point) *Spline {
	s := &Spline{typ: typ}
	s.SetDuration(duration)
	s.points = append(s.points, points...)
	s.rebuild()
	return s
}

// FromPositions returns a spline through the given positions, each with unit
// scale and no roll.
func FromPositions(typ Type, duration float32, positions ...math.Vec3) *Spline {
	pts := make([]Point, len(positions))
	for i, p := range positions {
		pts[i] = NewPoint(p)
	}
	return New(typ, duration, pts...)
}

// Type returns the interpolation type.
func (s *Spline) Type() Type { return s.typ }

// SetDuration sets the parametric time span. Non-positive values reset it to 1.
func (s *Spline) SetDuration(d float32) {
	if d <= 0 {
		d = 1
	}
	s.duration = d
}

// ControlPoint returns control point i including scale and roll.
func (s *Spline) ControlPoint(i int) Point {
	if s == nil || i < 0 || i >= len(s.points) {
		return Point{}
	}
	return s.points[i]
}

// AddControlPoint appends a control point with its scale and roll.
func (s *Spline) AddControlPoint(p Point) {
	s.points = append(s.points, p)
	s.dirty = true
}

// AddPoint appends a control point at p with unit scale and no roll.
func (s *Spline) AddPoint(p math.Vec3) {
	s.AddControlPoint(NewPoint(p))
}

// ClearPoints removes every control point.
func (s *Spline) ClearPoints() {
	s.points = s.points[:0]
	s.dirty = true
}

// UpdateSpline rebuilds the arc-length table.
func (s *Spline) UpdateSpline() {
	s.rebuild()
}

// Valid reports whether s is non-nil.
func (s *Spline) Valid() bool { return s != nil }

// NumPoints returns the number of control points.
func (s *Spline) NumPoints() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// PointPosition returns the position of control point i, or the zero vector
// when i is out of range.
func (s *Spline) PointPosition(i int) math.Vec3 {
	return s.ControlPoint(i).Position
}

// DistanceAtPoint returns the arc length at control point i.
func (s *Spline) DistanceAtPoint(i int) float32 {
	if s == nil || i < 0 || i >= len(s.points) {
		return 0
	}
	s.ensure()
	return s.dist[i]
}

// Length returns the total arc length.
func (s *Spline) Length() float32 {
	if s == nil || len(s.points) == 0 {
		return 0
	}
	s.ensure()
	return s.dist[len(s.dist)-1]
}

// Duration returns the parametric time span.
func (s *Spline) Duration() float32 {
	if s == nil {
		return 0
	}
	return s.duration
}

// PositionAtDistance returns the position at arc length d, clamped to the
// ends of the curve.
func (s *Spline) PositionAtDistance(d float32) math.Vec3 {
	switch s.NumPoints() {
	case 0:
		return math.Vec3{}
	case 1:
		return s.points[0].Position
	}
	seg, u := s.locate(d)
	return s.eval(seg, u)
}

// TangentAtDistance returns the derivative of position with respect to the
// segment parameter at arc length d.
func (s *Spline) TangentAtDistance(d float32) math.Vec3 {
	if s.NumPoints() < 2 {
		return math.Vec3{}
	}
	seg, u := s.locate(d)
	return s.derivative(seg, u)
}

// PositionAtTime returns the position at time t.
func (s *Spline) PositionAtTime(t float32) math.Vec3 {
	return s.PositionAtDistance(s.timeToDistance(t))
}

// TangentAtTime returns the tangent at time t.
func (s *Spline) TangentAtTime(t float32) math.Vec3 {
	return s.TangentAtDistance(s.timeToDistance(t))
}

// ScaleAtTime interpolates the control point scales at time t.
func (s *Spline) ScaleAtTime(t float32) math.Vec3 {
	switch s.NumPoints() {
	case 0:
		return math.Vec3{X: 1, Y: 1, Z: 1}
	case 1:
		return s.points[0].Scale
	}
	seg, u := s.locate(s.timeToDistance(t))
	return s.points[seg].Scale.Lerp(s.points[seg+1].Scale, u)
}

// RollAtTime interpolates the control point rolls, in degrees, at time t.
func (s *Spline) RollAtTime(t float32) float32 {
	switch s.NumPoints() {
	case 0:
		return 0
	case 1:
		return s.points[0].Roll
	}
	seg, u := s.locate(s.timeToDistance(t))
	r0, r1 := s.points[seg].Roll, s.points[seg+1].Roll
	return r0 + u*(r1-r0)
}

func (s *Spline) timeToDistance(t float32) float32 {
	if s.NumPoints() == 0 || s.duration <= 0 {
		return 0
	}
	if t < 0 {
		t = 0
	} else if t > s.duration {
		t = s.duration
	}
	return t / s.duration * s.Length()
}

func (s *Spline) ensure() {
	if s.dirty {
		s.rebuild()
	}
}

func (s *Spline) rebuild() {
	s.dirty = false
	n := len(s.points)
	s.dist = make([]float32, n)
	if n < 2 {
		s.table = nil
		return
	}
	s.table = make([][]float32, n-1)
	for i := 0; i < n-1; i++ {
		cum := make([]float32, samplesPerSegment+1)
		cum[0] = s.dist[i]
		prev := s.eval(i, 0)
		for k := 1; k <= samplesPerSegment; k++ {
			p := s.eval(i, float32(k)/samplesPerSegment)
			cum[k] = cum[k-1] + p.Distance(prev)
			prev = p
		}
		s.table[i] = cum
		s.dist[i+1] = cum[samplesPerSegment]
	}
}

// locate maps an arc length to a segment index and a local parameter in
// [0, 1]. The curve must have at least two points.
func (s *Spline) locate(d float32) (int, float32) {
	s.ensure()
	n := len(s.points)
	if d <= 0 {
		return 0, 0
	}
	if d >= s.dist[n-1] {
		return n - 2, 1
	}

	seg := sort.Search(n-1, func(i int) bool { return s.dist[i+1] >= d })
	if seg > n-2 {
		seg = n - 2
	}
	cum := s.table[seg]
	k := sort.Search(samplesPerSegment, func(k int) bool { return cum[k+1] >= d })
	if k > samplesPerSegment-1 {
		k = samplesPerSegment - 1
	}
	var f float32
	if span := cum[k+1] - cum[k]; span > 0 {
		f = (d - cum[k]) / span
	}
	return seg, (float32(k) + f) / samplesPerSegment
}

// neighbours returns the four points that shape segment i, reflecting the
// first and last segments to build phantom end points.
func (s *Spline) neighbours(i int) (p0, p1, p2, p3 math.Vec3) {
	n := len(s.points)
	p1 = s.points[i].Position
	p2 = s.points[i+1].Position
	if i > 0 {
		p0 = s.points[i-1].Position
	} else {
		p0 = p1.Add(p1.Sub(p2))
	}
	if i+2 < n {
		p3 = s.points[i+2].Position
	} else {
		p3 = p2.Add(p2.Sub(p1))
	}
	return p0, p1, p2, p3
}

func (s *Spline) eval(i int, u float32) math.Vec3 {
	if s.typ == Linear {
		return s.points[i].Position.Lerp(s.points[i+1].Position, u)
	}
	p0, p1, p2, p3 := s.neighbours(i)
	m1 := p2.Sub(p0).Scale(0.5)
	m2 := p3.Sub(p1).Scale(0.5)

	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	return p1.Scale(h00).Add(m1.Scale(h10)).Add(p2.Scale(h01)).Add(m2.Scale(h11))
}

func (s *Spline) derivative(i int, u float32) math.Vec3 {
	if s.typ == Linear {
		return s.points[i+1].Position.Sub(s.points[i].Position)
	}
	p0, p1, p2, p3 := s.neighbours(i)
	m1 := p2.Sub(p0).Scale(0.5)
	m2 := p3.Sub(p1).Scale(0.5)

	u2 := u * u
	d00 := 6*u2 - 6*u
	d10 := 3*u2 - 4*u + 1
	d01 := -6*u2 + 6*u
	d11 := 3*u2 - 2*u
	return p1.Scale(d00).Add(m1.Scale(d10)).Add(p2.Scale(d01)).Add(m2.Scale(d11))
}
