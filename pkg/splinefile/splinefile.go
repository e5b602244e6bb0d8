// Package splinefile reads and writes splines as YAML documents.
//
// A document looks like:
//
//	type: curve
//	duration: 2
//	points:
//	  - position: [0, 0, 0]
//	  - position: [10, 0, 0]
//	    scale: [1, 2, 2]
//	    roll: 45
//
// Scale defaults to [1, 1, 1] and roll, in degrees, to 0.
package splinefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/spline"
)

var (
	// ErrNoPoints is returned for documents without control points.
	ErrNoPoints = errors.New("splinefile: document has no points")
	// ErrUnknownType is returned for an unrecognised spline type.
	ErrUnknownType = errors.New("splinefile: unknown spline type")
)

// Vec is a vector written as a flow sequence.
type Vec [3]float32

func vecOf(v math.Vec3) Vec { return Vec{v.X, v.Y, v.Z} }

// Vec3 converts v back to a math.Vec3.
func (v Vec) Vec3() math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} }

// Document is the on-disk form of a spline.
type Document struct {
	Type     string  `yaml:"type"`
	Duration float32 `yaml:"duration,omitempty"`
	Points   []Point `yaml:"points"`
}

// Point is one control point of a Document.
type Point struct {
	Position Vec     `yaml:"position,flow"`
	Scale    *Vec    `yaml:"scale,omitempty,flow"`
	Roll     float32 `yaml:"roll,omitempty"`
}

// Spline builds the spline the document describes.
func (d *Document) Spline() (*spline.Spline, error) {
	typ, err := spline.ParseType(d.Type)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, d.Type)
	}
	if len(d.Points) == 0 {
		return nil, ErrNoPoints
	}

	points := make([]spline.Point, len(d.Points))
	for i, p := range d.Points {
		points[i] = spline.NewPoint(p.Position.Vec3())
		if p.Scale != nil {
			points[i].Scale = p.Scale.Vec3()
		}
		points[i].Roll = p.Roll
	}
	return spline.New(typ, d.Duration, points...), nil
}

// pointSource is implemented by curves that keep per-point scale and roll.
type pointSource interface {
	Type() spline.Type
	ControlPoint(i int) spline.Point
}

// NewDocument captures c. Curves other than *spline.Spline are written as
// Catmull-Rom with their scale and roll sampled at each point.
func NewDocument(c spline.Curve) (*Document, error) {
	s, err := spline.NewSampler(c)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Type:     spline.CatmullRom.String(),
		Duration: s.Duration(),
		Points:   make([]Point, 0, s.PointCount()),
	}
	src, hasPoints := c.(pointSource)
	if hasPoints {
		doc.Type = src.Type().String()
	}

	unit := math.Vec3{X: 1, Y: 1, Z: 1}
	for i := 0; i < s.PointCount(); i++ {
		var cp spline.Point
		if hasPoints {
			cp = src.ControlPoint(i)
		} else {
			t, _ := s.PointToTime(i)
			cp = spline.Point{
				Position: c.PointPosition(i),
				Scale:    s.ScaleAtTime(t),
				Roll:     s.RollAtTime(t),
			}
		}

		p := Point{Position: vecOf(cp.Position), Roll: cp.Roll}
		if cp.Scale != unit {
			sc := vecOf(cp.Scale)
			p.Scale = &sc
		}
		doc.Points = append(doc.Points, p)
	}
	return doc, nil
}

// Decode reads one document from r.
func Decode(r io.Reader) (*spline.Spline, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoPoints
		}
		return nil, fmt.Errorf("splinefile: %w", err)
	}
	return doc.Spline()
}

// Read parses a document held in memory.
func Read(data []byte) (*spline.Spline, error) {
	return Decode(bytes.NewReader(data))
}

// Load reads the document at path.
func Load(path string) (*spline.Spline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode writes c to w.
func Encode(w io.Writer, c spline.Curve) error {
	doc, err := NewDocument(c)
	if err != nil {
		return err
	}
	return writeYAML(w, doc)
}

// Save writes c to path, creating parent directories as needed.
func Save(path string, c spline.Curve) error {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
