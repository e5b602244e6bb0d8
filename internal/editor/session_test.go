package editor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/splinekit/internal/config"
	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/meshgen"
	"github.com/Faultbox/splinekit/pkg/resample"
	"github.com/Faultbox/splinekit/pkg/spline"
	"github.com/Faultbox/splinekit/pkg/splinefile"
)

func line(n int) *spline.Spline {
	pts := make([]math.Vec3, n)
	for i := range pts {
		pts[i] = math.Vec3{X: float32(i)}
	}
	return spline.FromPositions(spline.Linear, 1, pts...)
}

func TestResampleWholeCurve(t *testing.T) {
	cfg := config.Default()
	cfg.Resample.Steps = 3
	sess := New(cfg, line(3))

	changed, err := sess.Resample(resample.OpSubdivide)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if !changed {
		t.Fatal("expected subdivide to change the spline")
	}
	// 2 spans * 3 new points + 3 originals
	if n := sess.Spline().NumPoints(); n != 9 {
		t.Errorf("got %d points, want 9", n)
	}
	// point mode: one segment per span
	if n := len(sess.Recorder().Segments); n != 8 {
		t.Errorf("got %d segments, want 8", n)
	}

	changed, err = sess.Resample(resample.OpSimplify)
	if err != nil || !changed {
		t.Fatalf("Resample(simplify) = %v, %v", changed, err)
	}
	if n := sess.Spline().NumPoints(); n != 6 {
		t.Errorf("got %d points after simplify, want 6", n)
	}
	if n := len(sess.Recorder().Segments); n != 5 {
		t.Errorf("got %d segments after simplify, want 5", n)
	}
}

func TestResampleBetweenKeys(t *testing.T) {
	sess := New(config.Default(), line(4))
	sess.Select(2, 1)

	changed, err := sess.Resample(resample.OpSubdivide)
	if err != nil || !changed {
		t.Fatalf("Resample = %v, %v", changed, err)
	}
	if n := sess.Spline().NumPoints(); n != 4+resample.BetweenKeysSubdivisions {
		t.Errorf("got %d points, want %d", n, 4+resample.BetweenKeysSubdivisions)
	}
	if len(sess.SelectedKeys()) != 0 {
		t.Errorf("selection kept after scoped request: %v", sess.SelectedKeys())
	}
}

func TestResampleNoOp(t *testing.T) {
	var rec meshgen.Recorder
	sess := New(config.Default(), line(2))
	sess.rec = &rec

	changed, err := sess.Resample(resample.OpSimplify)
	if err != nil || changed {
		t.Errorf("Resample = %v, %v; want no change", changed, err)
	}
	if rec.Clears != 0 {
		t.Error("meshes refreshed although nothing changed")
	}
}

func TestSelectCopies(t *testing.T) {
	sess := New(config.Default(), line(4))
	keys := []int{0, 3}
	sess.Select(keys...)
	keys[0] = 2
	if sess.SelectedKeys()[0] != 0 {
		t.Error("Select kept a reference to the caller's slice")
	}
}

func TestSetSteps(t *testing.T) {
	sess := New(config.Default(), line(2))
	for _, tt := range []struct{ in, want int }{{0, 2}, {5, 5}, {99, 20}} {
		sess.SetSteps(tt.in)
		if sess.Steps() != tt.want {
			t.Errorf("SetSteps(%d) gave %d, want %d", tt.in, sess.Steps(), tt.want)
		}
	}
}

func TestCreationEvents(t *testing.T) {
	cfg := config.Default()
	cfg.Mesh.Additional = []meshgen.AdditionalMesh{{
		Identifier:           "posts",
		TriggerCreationEvent: true,
		Instance:             meshgen.MeshInfo{Mesh: "post", Scale: math.Vec3{X: 1, Y: 1, Z: 1}},
		Repetition:           meshgen.Repetition{Every: 0.25},
	}}

	var ids []string
	sess := New(cfg, line(3), WithCreatedFunc(func(index, count int, id string, h meshgen.Handle) {
		ids = append(ids, id)
	}))
	if err := sess.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(ids) != 4 {
		t.Errorf("got %d creation events, want 4", len(ids))
	}
}

func TestBreakTimes(t *testing.T) {
	cfg := config.Default()
	cfg.Mesh.TimeInterval = 1
	cfg.Mesh.MaxDepth = 3
	corner := spline.FromPositions(spline.Linear, 1,
		math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 1, Y: 1})

	got := New(cfg, corner).BreakTimes()
	want := []float32{0, 0.5, 0.625, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("break %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOpenSave(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "road.yaml")
	if err := splinefile.Save(src, line(3)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sess, err := Open(config.Default(), src)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if sess.Path() != src {
		t.Errorf("path = %s, want %s", sess.Path(), src)
	}
	if _, err := sess.Resample(resample.OpSubdivide); err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if err := sess.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := splinefile.Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.NumPoints() != 7 {
		t.Errorf("saved spline has %d points, want 7", reloaded.NumPoints())
	}

	dst := filepath.Join(dir, "copy", "road.yaml")
	if err := sess.SaveAs(dst); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if sess.Path() != dst {
		t.Errorf("path after SaveAs = %s, want %s", sess.Path(), dst)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("SaveAs did not write: %v", err)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(config.Default(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error opening a missing file")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New(config.Default(), line(2)).Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("got %v, want ErrNoPath", err)
	}
}

func TestEncodeAndExport(t *testing.T) {
	sess := New(config.Default(), line(3))
	if err := sess.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	var doc, inst bytes.Buffer
	if err := sess.Encode(&doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(doc.String(), "type: linear") {
		t.Errorf("document missing type:\n%s", doc.String())
	}
	if err := sess.ExportInstances(&inst); err != nil {
		t.Fatalf("ExportInstances: %v", err)
	}
	if n := strings.Count(inst.String(), "start:"); n != 2 {
		t.Errorf("got %d exported segments, want 2:\n%s", n, inst.String())
	}
}
