// Package resample rewrites the control points of a host curve: subdivision
// inserts points sampled along the curve, simplification removes them.
//
// Every operation reads the whole point list, builds the replacement list,
// and only then clears and refills the curve with a single update. Invalid
// input (nil curve, too few points or keys, non-positive counts) leaves the
// curve untouched and reports false.
package resample

import (
	"go.uber.org/zap"

	"github.com/Faultbox/splinekit/pkg/spline"
)

// BetweenKeysSubdivisions is the number of points inserted into every unit
// segment by SubdivideBetweenKeys.
const BetweenKeysSubdivisions = 2

// Op selects a resampling operation for Request.
type Op int

const (
	OpSubdivide Op = iota
	OpSimplify
)

func (op Op) String() string {
	switch op {
	case OpSubdivide:
		return "subdivide"
	case OpSimplify:
		return "simplify"
	default:
		return "unknown"
	}
}

// Selection supplies the indices of the currently selected control points.
type Selection interface {
	SelectedKeys() []int
}

// Keys is a Selection backed by a slice of point indices.
type Keys []int

// SelectedKeys returns the selected indices.
func (k Keys) SelectedKeys() []int { return k }

// Engine runs resampling operations and logs what they changed.
type Engine struct {
	log *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine returns an Engine. Without options it logs nothing.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Request runs op on c. With fewer than two selected keys the whole curve is
// resampled using steps; otherwise only the ranges between selected keys are.
func (e *Engine) Request(c spline.Mutable, sel Selection, op Op, steps int) bool {
	var keys []int
	if sel != nil {
		keys = sel.SelectedKeys()
	}
	scoped := len(keys) >= 2
	e.log.Debug("resample request",
		zap.Stringer("op", op),
		zap.Int("steps", steps),
		zap.Ints("keys", keys),
		zap.Bool("scoped", scoped))

	switch {
	case op == OpSubdivide && scoped:
		return e.SubdivideBetweenKeys(c, keys)
	case op == OpSubdivide:
		return e.Subdivide(c, steps)
	case op == OpSimplify && scoped:
		return e.SimplifyBetweenKeys(c, keys)
	case op == OpSimplify:
		return e.Simplify(c, steps)
	}
	return false
}

// Request runs op on c with a non-logging Engine.
func Request(c spline.Mutable, sel Selection, op Op, steps int) bool {
	return defaultEngine.Request(c, sel, op, steps)
}

// Subdivide inserts n points between every pair of consecutive points with a
// non-logging Engine.
func Subdivide(c spline.Mutable, n int) bool { return defaultEngine.Subdivide(c, n) }

// SubdivideBetweenKeys subdivides the unit segments between selected keys
// with a non-logging Engine.
func SubdivideBetweenKeys(c spline.Mutable, keys []int) bool {
	return defaultEngine.SubdivideBetweenKeys(c, keys)
}

// Simplify removes k points from the curve with a non-logging Engine.
func Simplify(c spline.Mutable, k int) bool { return defaultEngine.Simplify(c, k) }

// SimplifyBetweenKeys collapses the points between selected keys with a
// non-logging Engine.
func SimplifyBetweenKeys(c spline.Mutable, keys []int) bool {
	return defaultEngine.SimplifyBetweenKeys(c, keys)
}

// sampler returns a Sampler for c, or nil when c cannot be sampled.
func sampler(c spline.Mutable) *spline.Sampler {
	if c == nil {
		return nil
	}
	s, err := spline.NewSampler(c)
	if err != nil {
		return nil
	}
	return s
}
