// Package editor holds an editing session: one spline, the keys selected on
// it, and the meshes generated along it.
package editor

import (
	"errors"
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/splinekit/internal/config"
	"github.com/Faultbox/splinekit/internal/logger"
	"github.com/Faultbox/splinekit/pkg/meshgen"
	"github.com/Faultbox/splinekit/pkg/resample"
	"github.com/Faultbox/splinekit/pkg/spline"
	"github.com/Faultbox/splinekit/pkg/splinefile"
)

// ErrNoPath is returned by Save for a session that has never been saved.
var ErrNoPath = errors.New("editor: session has no file path")

// Session edits a single spline. It is not safe for concurrent use.
type Session struct {
	path   string
	spline *spline.Spline
	keys   []int
	steps  int

	engine *resample.Engine
	gen    *meshgen.Generator
	rec    *meshgen.Recorder
	log    *zap.Logger
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	created meshgen.CreatedFunc
}

// WithCreatedFunc forwards mesh creation events to fn.
func WithCreatedFunc(fn meshgen.CreatedFunc) Option {
	return func(o *sessionOptions) { o.created = fn }
}

// New starts a session on s using cfg.
func New(cfg *config.Config, s *spline.Spline, opts ...Option) *Session {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		spline: s,
		steps:  cfg.Resample.Steps,
		engine: resample.NewEngine(resample.WithLogger(logger.Named("resample"))),
		gen: meshgen.New(cfg.Generator(),
			meshgen.WithLogger(logger.Named("meshgen")),
			meshgen.WithCreatedFunc(o.created)),
		rec: &meshgen.Recorder{},
		log: logger.Named("editor"),
	}
}

// Open loads the spline document at path and starts a session on it.
func Open(cfg *config.Config, path string, opts ...Option) (*Session, error) {
	s, err := splinefile.Load(path)
	if err != nil {
		return nil, err
	}
	sess := New(cfg, s, opts...)
	sess.path = path
	sess.log.Info("opened spline",
		zap.String("path", path),
		zap.Int("points", s.NumPoints()),
		zap.Stringer("type", s.Type()))
	return sess, nil
}

// Path returns the file the session was opened from or last saved to.
func (s *Session) Path() string { return s.path }

// Spline returns the edited spline.
func (s *Session) Spline() *spline.Spline { return s.spline }

// Recorder returns the meshes produced by the last Refresh.
func (s *Session) Recorder() *meshgen.Recorder { return s.rec }

// Generator returns the session's mesh generator.
func (s *Session) Generator() *meshgen.Generator { return s.gen }

// Steps returns the count used for whole-curve resampling.
func (s *Session) Steps() int { return s.steps }

// SetSteps changes the count used for whole-curve resampling.
func (s *Session) SetSteps(n int) {
	s.steps = min(max(n, config.MinSteps), config.MaxSteps)
}

// Select replaces the selected keys.
func (s *Session) Select(keys ...int) {
	s.keys = slices.Clone(keys)
}

// ClearSelection deselects every key.
func (s *Session) ClearSelection() { s.keys = nil }

// SelectedKeys implements resample.Selection.
func (s *Session) SelectedKeys() []int { return s.keys }

// Resample runs op on the spline and, when it changed, regenerates the
// meshes. A scoped request clears the selection since the selected indices
// no longer name the same points.
func (s *Session) Resample(op resample.Op) (bool, error) {
	before := s.spline.NumPoints()
	scoped := len(s.keys) >= 2
	if !s.engine.Request(s.spline, s, op, s.steps) {
		s.log.Debug("resample had no effect", zap.Stringer("op", op))
		return false, nil
	}
	if scoped {
		s.ClearSelection()
	}
	s.log.Info("resampled",
		zap.Stringer("op", op),
		zap.Int("before", before),
		zap.Int("after", s.spline.NumPoints()))
	return true, s.Refresh()
}

// Refresh regenerates every mesh along the spline.
func (s *Session) Refresh() error {
	return s.gen.Refresh(s.spline, s.rec)
}

// BreakTimes returns where the steepness segmenter would cut the spline.
func (s *Session) BreakTimes() []float32 {
	return s.gen.Segmenter().BreakTimes(s.spline, s.gen.Config().TimeInterval)
}

// Save writes the spline back to the file it came from.
func (s *Session) Save() error {
	if s.path == "" {
		return ErrNoPath
	}
	return s.SaveAs(s.path)
}

// SaveAs writes the spline to path and remembers it.
func (s *Session) SaveAs(path string) error {
	if err := splinefile.Save(path, s.spline); err != nil {
		return err
	}
	s.path = path
	s.log.Info("saved spline", zap.String("path", path))
	return nil
}

// Encode writes the spline document to w.
func (s *Session) Encode(w io.Writer) error {
	return splinefile.Encode(w, s.spline)
}

// ExportInstances writes the recorded meshes to w.
func (s *Session) ExportInstances(w io.Writer) error {
	return splinefile.ExportInstances(w, s.rec)
}
