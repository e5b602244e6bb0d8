package meshgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/spline"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func mustSampler(t *testing.T, c spline.Curve) *spline.Sampler {
	t.Helper()
	s, err := spline.NewSampler(c)
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}
	return s
}

// straight is a linear spline along X from 0 to 10.
func straight() *spline.Spline {
	return spline.FromPositions(spline.Linear, 1,
		math.Vec3{}, math.Vec3{X: 5}, math.Vec3{X: 10})
}

// corner turns 90 degrees at its middle point, reached at t=0.5.
func corner() *spline.Spline {
	return spline.FromPositions(spline.Linear, 1,
		math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 1, Y: 1})
}
