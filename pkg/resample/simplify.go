package resample

import (
	gomath "math"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/spline"
)

// Simplify reduces a curve of N points to max(N-k, 2) points by resampling
// the control polyline uniformly by index. The first and last points are kept
// exactly; interior points are either original points or lie on the segment
// between two adjacent original points.
func (e *Engine) Simplify(c spline.Mutable, k int) bool {
	if k < 1 {
		return false
	}
	s := sampler(c)
	if s == nil {
		return false
	}
	n := s.PointCount()
	if n <= 2 || n <= k+1 {
		return false
	}

	pts := simplifyPoints(s.Points(), k)
	e.log.Debug("simplify",
		zap.Int("simplifications", k),
		zap.Int("before", n),
		zap.Int("after", len(pts)))
	spline.Replace(c, pts)
	return true
}

func simplifyPoints(pts []math.Vec3, k int) []math.Vec3 {
	n := len(pts)
	keep := max(n-k, 2)
	step := float32(n-1) / float32(keep-1)

	out := make([]math.Vec3, 0, keep)
	out = append(out, pts[0])
	for i := 1; i < keep-1; i++ {
		idx := float32(i) * step
		lo := int(gomath.Floor(float64(idx)))
		hi := int(gomath.Ceil(float64(idx)))
		if lo == hi {
			out = append(out, pts[lo])
			continue
		}
		out = append(out, pts[lo].Lerp(pts[hi], idx-float32(lo)))
	}
	return append(out, pts[n-1])
}

// SimplifyBetweenKeys removes every point strictly between two consecutive
// selected keys, leaving only the keys themselves in those ranges.
func (e *Engine) SimplifyBetweenKeys(c spline.Mutable, keys []int) bool {
	s := sampler(c)
	if s == nil {
		return false
	}
	n := s.PointCount()
	sorted := normalizeKeys(keys, n)
	if len(sorted) < 2 {
		return false
	}

	pts, removed := collapseBetween(s.Points(), sorted)
	if removed == 0 {
		return false
	}
	e.log.Debug("simplify between keys",
		zap.Ints("keys", sorted),
		zap.Int("removed", removed),
		zap.Int("after", len(pts)))
	spline.Replace(c, pts)
	return true
}

// collapseBetween drops the points strictly inside each gap of sorted keys.
func collapseBetween(pts []math.Vec3, sorted []int) ([]math.Vec3, int) {
	removed := 0
	for i := 0; i < len(sorted)-1; i++ {
		start := sorted[i] - removed
		end := sorted[i+1] - removed
		if gap := end - start - 1; gap > 0 {
			pts = slices.Delete(pts, start+1, end)
			removed += gap
		}
	}
	return pts, removed
}
