package meshgen

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/splinekit/pkg/spline"
)

// ErrNilInstancer is returned by Refresh when no instancer is given.
var ErrNilInstancer = errors.New("meshgen: nil instancer")

// Config controls segment generation and additional meshes.
type Config struct {
	Mode         Mode
	TimeInterval float32
	// MaxSteepness is the bend, in degrees, above which a steepness
	// interval is split.
	MaxSteepness float32
	MaxDepth     int
	MinInterval  float32
	Additional   []AdditionalMesh
}

// DefaultConfig returns point mode with a 0.1 time interval and a 20 degree
// steepness threshold.
func DefaultConfig() Config {
	return Config{
		Mode:         ModePoint,
		TimeInterval: 0.1,
		MaxSteepness: 20,
		MaxDepth:     DefaultMaxDepth,
		MinInterval:  DefaultMinInterval,
	}
}

// CreatedFunc receives additional meshes whose TriggerCreationEvent is set.
// maxIndex is Placement.MaxIndex of the mesh's range.
type CreatedFunc func(index, maxIndex int, identifier string, h Handle)

// Generator rebuilds the meshes of a curve.
type Generator struct {
	cfg Config
	log *zap.Logger

	// OnMeshCreated, if set, is called for every additional mesh that asks
	// for a creation event.
	OnMeshCreated CreatedFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithCreatedFunc sets OnMeshCreated.
func WithCreatedFunc(fn CreatedFunc) Option {
	return func(g *Generator) { g.OnMeshCreated = fn }
}

// New returns a Generator for cfg.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Segmenter returns the steepness segmenter built from the configuration.
func (g *Generator) Segmenter() Segmenter {
	return Segmenter{
		MaxAngle:    g.cfg.MaxSteepness,
		MaxDepth:    g.cfg.MaxDepth,
		MinInterval: g.cfg.MinInterval,
	}
}

// Segments cuts the curve according to the configured mode.
func (g *Generator) Segments(s *spline.Sampler) []Segment {
	switch g.cfg.Mode {
	case ModeTimeBased:
		return SegmentsByTime(s, g.cfg.TimeInterval)
	case ModeSteepness:
		return g.Segmenter().SegmentsBySteepness(s, g.cfg.TimeInterval)
	default:
		return SegmentsByPoints(s)
	}
}

// Refresh clears inst and regenerates every segment and additional mesh of
// c. A curve that cannot be sampled leaves inst empty. Failures reported by
// inst are collected and returned together; generation carries on past them.
func (g *Generator) Refresh(c spline.Curve, inst Instancer) error {
	if inst == nil {
		return ErrNilInstancer
	}
	inst.Clear()

	s, err := spline.NewSampler(c)
	if err != nil {
		g.log.Debug("refresh skipped", zap.Error(err))
		return nil
	}

	var errs error
	segs := g.Segments(s)
	for i, seg := range segs {
		if err := inst.CreateSegment(seg); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("segment %d: %w", i, err))
		}
	}

	placed := 0
	for _, m := range g.cfg.Additional {
		for _, p := range Placements(s, m) {
			h, err := inst.CreateMesh(p)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("mesh %q #%d: %w", m.Identifier, p.Index, err))
				continue
			}
			placed++
			if m.TriggerCreationEvent && g.OnMeshCreated != nil {
				g.OnMeshCreated(p.Index, p.MaxIndex, m.Identifier, h)
			}
		}
	}

	g.log.Debug("refreshed meshes",
		zap.Stringer("mode", g.cfg.Mode),
		zap.Int("points", s.PointCount()),
		zap.Int("segments", len(segs)),
		zap.Int("placements", placed),
		zap.Int("errors", len(multierr.Errors(errs))))
	return errs
}
