package splinefile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/meshgen"
	"github.com/Faultbox/splinekit/pkg/spline"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

const doc = `
type: linear
duration: 2
points:
  - position: [0, 0, 0]
  - position: [10, 0, 0]
    scale: [1, 2, 3]
    roll: 45
  - position: [10, 5, 0]
`

func TestRead(t *testing.T) {
	s, err := Read([]byte(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Type() != spline.Linear {
		t.Errorf("type = %v, want linear", s.Type())
	}
	if s.Duration() != 2 {
		t.Errorf("duration = %v, want 2", s.Duration())
	}
	if s.NumPoints() != 3 {
		t.Fatalf("got %d points, want 3", s.NumPoints())
	}
	diff(t, spline.NewPoint(math.Vec3{}), s.ControlPoint(0))
	diff(t, spline.Point{
		Position: math.Vec3{X: 10},
		Scale:    math.Vec3{X: 1, Y: 2, Z: 3},
		Roll:     45,
	}, s.ControlPoint(1))
	diff(t, float32(15), s.Length(), approx)
}

func TestReadDefaults(t *testing.T) {
	s, err := Read([]byte("points:\n  - position: [1, 2, 3]\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Type() != spline.CatmullRom {
		t.Errorf("type = %v, want curve", s.Type())
	}
	if s.Duration() != 1 {
		t.Errorf("duration = %v, want 1", s.Duration())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrNoPoints},
		{"no points", "type: curve\n", ErrNoPoints},
		{"unknown type", "type: bezier\npoints:\n  - position: [0, 0, 0]\n", ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read([]byte(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	for _, bad := range []string{
		"points: [[[",
		"points:\n  - position: [1, 2]\n",
	} {
		if _, err := Read([]byte(bad)); err == nil {
			t.Errorf("Read(%q) succeeded", bad)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	p1 := spline.NewPoint(math.Vec3{X: 4, Y: 1})
	p1.Scale = math.Vec3{X: 1, Y: 0.5, Z: 0.5}
	p1.Roll = -30
	orig := spline.New(spline.CatmullRom, 3,
		spline.NewPoint(math.Vec3{}), p1, spline.NewPoint(math.Vec3{X: 8}))

	path := filepath.Join(t.TempDir(), "out", "road.yaml")
	if err := Save(path, orig); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Type() != orig.Type() || got.Duration() != orig.Duration() {
		t.Errorf("got %v/%v, want %v/%v", got.Type(), got.Duration(), orig.Type(), orig.Duration())
	}
	for i := 0; i < orig.NumPoints(); i++ {
		diff(t, orig.ControlPoint(i), got.ControlPoint(i))
	}

	// Unit scale and zero roll are left out
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "scale:"); n != 1 {
		t.Errorf("got %d scale entries, want 1:\n%s", n, data)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want not-exist error", err)
	}
}

func TestEncodeGenericCurve(t *testing.T) {
	// Hides ControlPoint so only the Curve methods are visible.
	c := struct{ spline.Curve }{spline.FromPositions(spline.Linear, 1, math.Vec3{}, math.Vec3{Y: 2})}

	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var got Document
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	diff(t, Document{
		Type:     "curve",
		Duration: 1,
		Points: []Point{
			{Position: Vec{0, 0, 0}},
			{Position: Vec{0, 2, 0}},
		},
	}, got)
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, spline.New(spline.Linear, 1)); !errors.Is(err, spline.ErrNoPoints) {
		t.Errorf("got %v, want spline.ErrNoPoints", err)
	}
}

func TestExportInstances(t *testing.T) {
	rec := &meshgen.Recorder{}
	g := meshgen.New(meshgen.Config{
		Mode: meshgen.ModePoint,
		Additional: []meshgen.AdditionalMesh{{
			Identifier: "posts",
			Instance:   meshgen.MeshInfo{Mesh: "post", Scale: math.Vec3{X: 1, Y: 1, Z: 1}},
			Repetition: meshgen.Repetition{Every: 0.5},
		}},
	})
	end := spline.NewPoint(math.Vec3{X: 10})
	end.Scale = math.Vec3{X: 1, Y: 2, Z: 3}
	s := spline.New(spline.Linear, 1, spline.NewPoint(math.Vec3{}), end)
	if err := g.Refresh(s, rec); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportInstances(&buf, rec); err != nil {
		t.Fatalf("ExportInstances: %v", err)
	}
	var got Instances
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, buf.String())
	}

	if len(got.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(got.Segments))
	}
	diff(t, [2]float32{1, 1}, got.Segments[0].Start.CrossSection, approx)
	diff(t, SegmentEnd{
		Time:         1,
		Position:     Vec{10, 0, 0},
		Tangent:      Vec{10, 0, 0},
		Scale:        Vec{1, 2, 3},
		CrossSection: [2]float32{2, 3},
	}, got.Segments[0].End, approx)

	at := func(x float32) [16]float32 {
		return [16]float32{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			x, 0, 0, 1,
		}
	}
	diff(t, []Placement{
		{Identifier: "posts", Mesh: "post", Index: 0, Count: 2, MaxIndex: 2, Time: 0,
			Location: Vec{0, 0, 0}, Scale: Vec{1, 1, 1}, Transform: at(0)},
		{Identifier: "posts", Mesh: "post", Index: 1, Count: 2, MaxIndex: 2, Time: 0.5,
			Location: Vec{5, 0, 0}, Scale: Vec{1, 1, 1}, Transform: at(5)},
	}, got.Placements, approx)
}
