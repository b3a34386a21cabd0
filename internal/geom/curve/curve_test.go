package curve

import (
	"math"
	"testing"

	"github.com/ifc-lite/ifclite/internal/geom"
)

func TestLineEndpoints(t *testing.T) {
	pts := Line(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0}, 0, 5)
	if len(pts) != 2 {
		t.Fatalf("len(pts) = %d, want 2", len(pts))
	}
	if pts[1] != (geom.Vec3{X: 5, Y: 0, Z: 0}) {
		t.Fatalf("pts[1] = %+v, want {5 0 0}", pts[1])
	}
}

func TestPolylineReturnsPointsVerbatim(t *testing.T) {
	in := []geom.Vec3{{X: 1}, {X: 2}, {X: 3}}
	out := Polyline(in)
	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
}

func TestCircleClosesLoop(t *testing.T) {
	pts := Circle(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0}, 2)
	if len(pts) < 17 {
		t.Fatalf("len(pts) = %d, want at least 17 (16-segment floor + closing point)", len(pts))
	}
	first, last := pts[0], pts[len(pts)-1]
	if first.Sub(last).Length() > 1e-9 {
		t.Fatalf("circle does not close: first=%+v last=%+v", first, last)
	}
	for _, p := range pts {
		if math.Abs(p.Length()-2) > 1e-9 {
			t.Fatalf("point %+v not on radius-2 circle", p)
		}
	}
}

func TestTrimmedCircleHonorsSense(t *testing.T) {
	fwd := TrimmedCircle(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0}, 1, 0, math.Pi/2, true)
	rev := TrimmedCircle(geom.Vec3{}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0}, 1, 0, math.Pi/2, false)
	if len(fwd) == 0 || len(rev) == 0 {
		t.Fatal("TrimmedCircle() returned no points")
	}
	if fwd[0].Sub(rev[0]).Length() < 1e-9 && fwd[len(fwd)-1].Sub(rev[len(rev)-1]).Length() < 1e-9 {
		t.Fatal("forward and reversed sense produced identical arcs")
	}
}

func TestBSplineWithKnotsPassesThroughDegenerateInput(t *testing.T) {
	ctrl := []geom.Vec3{{X: 0}, {X: 1}}
	out := BSplineWithKnots(3, ctrl, nil, nil)
	if len(out) != len(ctrl) {
		t.Fatalf("degenerate spline (fewer control points than degree) should return control points verbatim, got len=%d", len(out))
	}
}

func TestBSplineWithKnotsSamplesWithinHull(t *testing.T) {
	ctrl := []geom.Vec3{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: -1}, {X: 3, Y: 0}}
	knots := []float64{0, 1, 2, 3, 4, 5}
	mult := []int{4, 1, 1, 4}
	out := BSplineWithKnots(3, ctrl, knots, mult)
	if len(out) < 32 {
		t.Fatalf("len(out) = %d, want at least 32 samples", len(out))
	}
	for _, p := range out {
		if p.Y > 3 || p.Y < -2 {
			t.Fatalf("sample %+v outside control polygon's convex hull bound", p)
		}
	}
}

func TestCompositeConcatenatesAdjacentSegments(t *testing.T) {
	segA := []geom.Vec3{{X: 0}, {X: 1}}
	segB := []geom.Vec3{{X: 1}, {X: 2}}
	out, err := Composite([][]geom.Vec3{segA, segB})
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	want := []geom.Vec3{{X: 0}, {X: 1}, {X: 2}}
	if len(out) != len(want) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %+v, want %+v", i, out[i], want[i])
		}
	}
}

func TestCompositeFailsOnGap(t *testing.T) {
	segA := []geom.Vec3{{X: 0}, {X: 1}}
	segB := []geom.Vec3{{X: 5}, {X: 6}}
	if _, err := Composite([][]geom.Vec3{segA, segB}); err == nil {
		t.Fatal("Composite() error = nil, want CurveGap for disjoint segments")
	}
}
