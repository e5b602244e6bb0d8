// Package spline defines the host curve contract consumed by the resampling
// and mesh generation packages, a checked Sampler over it, and Spline, a
// concrete linear or Catmull-Rom curve with arc-length parametrization.
package spline

import (
	"errors"
	"fmt"

	"github.com/Faultbox/splinekit/pkg/math"
)

// Errors reported by Sampler.
var (
	ErrNilCurve        = errors.New("spline: nil curve")
	ErrNoPoints        = errors.New("spline: curve has no points")
	ErrIndexOutOfRange = errors.New("spline: point index out of range")
)

// Curve is the read side of a host curve. Distances are arc lengths from the
// first point, times are in [0, Duration]. Tangents are not normalized.
type Curve interface {
	NumPoints() int
	PointPosition(i int) math.Vec3
	DistanceAtPoint(i int) float32
	Length() float32
	Duration() float32

	PositionAtDistance(d float32) math.Vec3
	TangentAtDistance(d float32) math.Vec3
	PositionAtTime(t float32) math.Vec3
	TangentAtTime(t float32) math.Vec3
	ScaleAtTime(t float32) math.Vec3
	// RollAtTime returns the roll in degrees.
	RollAtTime(t float32) float32
}

// Mutable is a host curve whose point list can be rebuilt. UpdateSpline must
// be called once after a batch of ClearPoints/AddPoint calls.
type Mutable interface {
	Curve
	ClearPoints()
	AddPoint(p math.Vec3)
	UpdateSpline()
}

// Validator is implemented by curves that can tell when they are unusable,
// typically a nil pointer held in a non-nil Curve.
type Validator interface {
	Valid() bool
}

// Sampler wraps a Curve and validates indexed queries.
type Sampler struct {
	c Curve
}

// NewSampler returns a Sampler for c. It fails if c is nil, reports itself
// invalid through Validator, or has no points.
func NewSampler(c Curve) (*Sampler, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	if v, ok := c.(Validator); ok && !v.Valid() {
		return nil, ErrNilCurve
	}
	if c.NumPoints() < 1 {
		return nil, ErrNoPoints
	}
	return &Sampler{c: c}, nil
}

// Curve returns the wrapped curve.
func (s *Sampler) Curve() Curve { return s.c }

// PointCount returns the number of control points.
func (s *Sampler) PointCount() int { return s.c.NumPoints() }

// Length returns the total arc length.
func (s *Sampler) Length() float32 { return s.c.Length() }

// Duration returns the parametric time span.
func (s *Sampler) Duration() float32 { return s.c.Duration() }

// PointPosition returns the position of control point i.
func (s *Sampler) PointPosition(i int) (math.Vec3, error) {
	if err := s.checkIndex(i); err != nil {
		return math.Vec3{}, err
	}
	return s.c.PointPosition(i), nil
}

// DistanceAtPoint returns the arc length at control point i.
func (s *Sampler) DistanceAtPoint(i int) (float32, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}
	return s.c.DistanceAtPoint(i), nil
}

// PointToTime converts control point i to parametric time using its share of
// the total arc length.
func (s *Sampler) PointToTime(i int) (float32, error) {
	d, err := s.DistanceAtPoint(i)
	if err != nil {
		return 0, err
	}
	l := s.c.Length()
	if l <= 0 {
		return 0, nil
	}
	return d / l * s.c.Duration(), nil
}

// Points returns a copy of all control point positions.
func (s *Sampler) Points() []math.Vec3 {
	n := s.c.NumPoints()
	pts := make([]math.Vec3, n)
	for i := range pts {
		pts[i] = s.c.PointPosition(i)
	}
	return pts
}

// Distances returns the arc length at every control point.
func (s *Sampler) Distances() []float32 {
	n := s.c.NumPoints()
	d := make([]float32, n)
	for i := range d {
		d[i] = s.c.DistanceAtPoint(i)
	}
	return d
}

// PositionAtDistance samples the curve position at arc length d.
func (s *Sampler) PositionAtDistance(d float32) math.Vec3 { return s.c.PositionAtDistance(d) }

// TangentAtDistance samples the curve tangent at arc length d.
func (s *Sampler) TangentAtDistance(d float32) math.Vec3 { return s.c.TangentAtDistance(d) }

// PositionAtTime samples the curve position at time t.
func (s *Sampler) PositionAtTime(t float32) math.Vec3 { return s.c.PositionAtTime(t) }

// TangentAtTime samples the curve tangent at time t.
func (s *Sampler) TangentAtTime(t float32) math.Vec3 { return s.c.TangentAtTime(t) }

// ScaleAtTime samples the curve scale at time t.
func (s *Sampler) ScaleAtTime(t float32) math.Vec3 { return s.c.ScaleAtTime(t) }

// RollAtTime samples the curve roll, in degrees, at time t.
func (s *Sampler) RollAtTime(t float32) float32 { return s.c.RollAtTime(t) }

func (s *Sampler) checkIndex(i int) error {
	if i < 0 || i >= s.c.NumPoints() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, s.c.NumPoints())
	}
	return nil
}

// Replace clears c and appends pts in order, then updates it once.
func Replace(c Mutable, pts []math.Vec3) {
	c.ClearPoints()
	for _, p := range pts {
		c.AddPoint(p)
	}
	c.UpdateSpline()
}
