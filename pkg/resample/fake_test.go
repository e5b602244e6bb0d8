package resample

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/splinekit/pkg/math"
)

// fakeCurve is a polyline host curve that records mutations.
type fakeCurve struct {
	pts     []math.Vec3
	clears  int
	updates int
}

func newFake(pts ...math.Vec3) *fakeCurve {
	return &fakeCurve{pts: append([]math.Vec3(nil), pts...)}
}

// line returns n points spaced one unit apart along X.
func line(n int) *fakeCurve {
	f := &fakeCurve{}
	for i := 0; i < n; i++ {
		f.pts = append(f.pts, math.Vec3{X: float32(i)})
	}
	return f
}

func (f *fakeCurve) NumPoints() int                { return len(f.pts) }
func (f *fakeCurve) PointPosition(i int) math.Vec3 { return f.pts[i] }
func (f *fakeCurve) Duration() float32             { return 1 }

func (f *fakeCurve) DistanceAtPoint(i int) float32 {
	var d float32
	for j := 1; j <= i; j++ {
		d += f.pts[j].Distance(f.pts[j-1])
	}
	return d
}

func (f *fakeCurve) Length() float32 { return f.DistanceAtPoint(len(f.pts) - 1) }

func (f *fakeCurve) PositionAtDistance(d float32) math.Vec3 {
	for j := 1; j < len(f.pts); j++ {
		seg := f.pts[j].Distance(f.pts[j-1])
		if d <= seg {
			return f.pts[j-1].Lerp(f.pts[j], d/seg)
		}
		d -= seg
	}
	return f.pts[len(f.pts)-1]
}

func (f *fakeCurve) TangentAtDistance(float32) math.Vec3 { return math.Vec3{X: 1} }
func (f *fakeCurve) PositionAtTime(t float32) math.Vec3 {
	return f.PositionAtDistance(t * f.Length())
}
func (f *fakeCurve) TangentAtTime(float32) math.Vec3 { return math.Vec3{X: 1} }
func (f *fakeCurve) ScaleAtTime(float32) math.Vec3   { return math.Vec3{X: 1, Y: 1, Z: 1} }
func (f *fakeCurve) RollAtTime(float32) float32      { return 0 }

func (f *fakeCurve) ClearPoints()         { f.pts = nil; f.clears++ }
func (f *fakeCurve) AddPoint(p math.Vec3) { f.pts = append(f.pts, p) }
func (f *fakeCurve) UpdateSpline()        { f.updates++ }

var approx = cmpopts.EquateApprox(0, 1e-4)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// onPolyline reports whether p lies on a segment between adjacent points.
func onPolyline(p math.Vec3, pts []math.Vec3) bool {
	for j := 1; j < len(pts); j++ {
		a, b := pts[j-1], pts[j]
		if p.Distance(a)+p.Distance(b)-a.Distance(b) < 1e-4 {
			return true
		}
	}
	return false
}
