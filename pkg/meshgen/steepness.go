package meshgen

import (
	"slices"

	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/spline"
)

// Bisection cutoffs used when a Segmenter leaves them unset.
const (
	DefaultMaxDepth    = 16
	DefaultMinInterval = 1e-4
)

// TangentSource is the part of a curve the Segmenter reads.
type TangentSource interface {
	TangentAtTime(t float32) math.Vec3
}

// BreakSet is a duplicate-free set of break times.
type BreakSet struct {
	times map[float32]struct{}
}

// NewBreakSet returns a set holding the given times.
func NewBreakSet(times ...float32) *BreakSet {
	b := &BreakSet{times: make(map[float32]struct{}, len(times))}
	for _, t := range times {
		b.Add(t)
	}
	return b
}

// Add inserts t and reports whether it was new.
func (b *BreakSet) Add(t float32) bool {
	if _, ok := b.times[t]; ok {
		return false
	}
	b.times[t] = struct{}{}
	return true
}

// Contains reports whether t is in the set.
func (b *BreakSet) Contains(t float32) bool {
	_, ok := b.times[t]
	return ok
}

// Len returns the number of times in the set.
func (b *BreakSet) Len() int { return len(b.times) }

// Sorted returns the times in ascending order.
func (b *BreakSet) Sorted() []float32 {
	out := make([]float32, 0, len(b.times))
	for t := range b.times {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Segmenter finds where a curve bends more than MaxAngle degrees.
//
// An interval whose end tangents differ by more than MaxAngle is split at
// its midpoint, and both halves are examined in turn. Splitting stops at
// MaxDepth levels or once a half is shorter than MinInterval.
type Segmenter struct {
	MaxAngle    float32
	MaxDepth    int
	MinInterval float32
}

type span struct {
	start, end float32
	depth      int
}

// FindBreakPoints adds the split times found in [start, end] to acc.
func (sg Segmenter) FindBreakPoints(c TangentSource, start, end float32, acc *BreakSet) {
	maxDepth := sg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	minInterval := sg.MinInterval
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}

	stack := []span{{start: start, end: end}}
	for len(stack) > 0 {
		sp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if sp.start == sp.end {
			continue
		}
		angle := math.AngleBetween(c.TangentAtTime(sp.start), c.TangentAtTime(sp.end))
		if angle <= sg.MaxAngle {
			continue
		}

		mid := (sp.start + sp.end) * 0.5
		acc.Add(mid)

		if sp.depth+1 >= maxDepth || mid-sp.start < minInterval {
			continue
		}
		stack = append(stack,
			span{start: mid, end: sp.end, depth: sp.depth + 1},
			span{start: sp.start, end: mid, depth: sp.depth + 1},
		)
	}
}

// BreakTimes walks the curve in steps of interval, bisecting each step, and
// returns the sorted break times. The result always starts at 0 and ends at
// the curve's duration.
func (sg Segmenter) BreakTimes(c spline.Curve, interval float32) []float32 {
	duration := c.Duration()
	set := NewBreakSet(0)
	if interval > 0 {
		for i := 0; ; i++ {
			t0 := float32(i) * interval
			if t0 >= duration {
				break
			}
			t1 := min(t0+interval, duration)
			sg.FindBreakPoints(c, t0, t1, set)
		}
	}
	set.Add(duration)
	return set.Sorted()
}

// SegmentsBySteepness cuts the curve at its break times.
func (sg Segmenter) SegmentsBySteepness(s *spline.Sampler, interval float32) []Segment {
	return SegmentsBetween(s, sg.BreakTimes(s.Curve(), interval))
}
