package resample

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/spline"
)

// Subdivide inserts n points between every pair of consecutive control
// points. The inserted points are sampled on the curve at evenly spaced arc
// lengths between the pair. Original points are kept as they are.
func (e *Engine) Subdivide(c spline.Mutable, n int) bool {
	if n < 1 {
		return false
	}
	s := sampler(c)
	if s == nil || s.PointCount() < 2 {
		return false
	}

	pts := subdividePoints(s.Points(), s.Distances(), n, s.PositionAtDistance)
	e.log.Debug("subdivide",
		zap.Int("subdivisions", n),
		zap.Int("before", s.PointCount()),
		zap.Int("after", len(pts)))
	spline.Replace(c, pts)
	return true
}

func subdividePoints(pts []math.Vec3, dist []float32, n int, at func(float32) math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, 0, (len(pts)-1)*(n+1)+1)
	for i := 0; i < len(pts)-1; i++ {
		out = append(out, pts[i])
		out = append(out, interior(dist[i], dist[i+1], n, at)...)
	}
	return append(out, pts[len(pts)-1])
}

// interior samples n points strictly between arc lengths d0 and d1.
func interior(d0, d1 float32, n int, at func(float32) math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, n)
	for j := 1; j <= n; j++ {
		alpha := float32(j) / float32(n+1)
		out[j-1] = at(d0 + alpha*(d1-d0))
	}
	return out
}

// SubdivideBetweenKeys inserts BetweenKeysSubdivisions points into every unit
// segment [j, j+1] lying between two consecutive selected keys. Keys may be
// given in any order; duplicates and out-of-range keys are ignored.
func (e *Engine) SubdivideBetweenKeys(c spline.Mutable, keys []int) bool {
	s := sampler(c)
	if s == nil {
		return false
	}
	n := s.PointCount()
	sorted := normalizeKeys(keys, n)
	if len(sorted) < 2 {
		return false
	}

	var segments [][2]int
	for i := 0; i < len(sorted)-1; i++ {
		for j := sorted[i]; j < sorted[i+1]; j++ {
			if j+1 < n {
				segments = append(segments, [2]int{j, j + 1})
			}
		}
	}
	if len(segments) == 0 {
		return false
	}

	pts := s.Points()
	dist := s.Distances()
	added := 0
	for _, seg := range segments {
		mid := interior(dist[seg[0]], dist[seg[1]], BetweenKeysSubdivisions, s.PositionAtDistance)
		pts = slices.Insert(pts, seg[0]+1+added, mid...)
		added += BetweenKeysSubdivisions
	}

	e.log.Debug("subdivide between keys",
		zap.Ints("keys", sorted),
		zap.Int("segments", len(segments)),
		zap.Int("before", n),
		zap.Int("after", len(pts)))
	spline.Replace(c, pts)
	return true
}
