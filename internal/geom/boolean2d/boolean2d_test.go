package boolean2d

import (
	"testing"

	"github.com/ifc-lite/ifclite/internal/geom"
	"github.com/ifc-lite/ifclite/internal/geom/profile"
)

func TestCoplanarParallelAndAntiparallel(t *testing.T) {
	dir := geom.Vec3{X: 0, Y: 0, Z: 1}
	if !Coplanar(geom.Vec3{X: 0, Y: 0, Z: 1}, dir) {
		t.Error("Coplanar() = false, want true for parallel normal")
	}
	if !Coplanar(geom.Vec3{X: 0, Y: 0, Z: -1}, dir) {
		t.Error("Coplanar() = false, want true for antiparallel normal")
	}
	if Coplanar(geom.Vec3{X: 1, Y: 0, Z: 0}, dir) {
		t.Error("Coplanar() = true, want false for a perpendicular normal")
	}
}

func TestSubtractAddsContainedOpeningAsHole(t *testing.T) {
	host := profile.Rectangle(10, 10)
	opening := VoidFootprint{Loop: []geom.Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}}
	out, applied, rejected := Subtract(host, []VoidFootprint{opening})
	if len(applied) != 1 || len(rejected) != 0 {
		t.Fatalf("applied=%d rejected=%d, want 1 applied, 0 rejected", len(applied), len(rejected))
	}
	if len(out.Holes) != 1 {
		t.Fatalf("len(Holes) = %d, want 1", len(out.Holes))
	}
	hostArea := host.Area()
	if out.Area() >= hostArea {
		t.Fatalf("Area() = %v, want less than host area %v after subtraction", out.Area(), hostArea)
	}
}

func TestSubtractRejectsOutOfBoundsOpening(t *testing.T) {
	host := profile.Rectangle(2, 2)
	opening := VoidFootprint{Loop: []geom.Vec2{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}}
	out, applied, rejected := Subtract(host, []VoidFootprint{opening})
	if len(applied) != 0 || len(rejected) != 1 {
		t.Fatalf("applied=%d rejected=%d, want 0 applied, 1 rejected", len(applied), len(rejected))
	}
	if len(out.Holes) != 0 {
		t.Fatalf("len(Holes) = %d, want 0", len(out.Holes))
	}
}

func TestSubtractRejectsOverlappingSecondOpening(t *testing.T) {
	host := profile.Rectangle(10, 10)
	// a and b are offset so their boundaries literally cross, not merely nest.
	a := VoidFootprint{Loop: []geom.Vec2{{X: -2, Y: -2}, {X: 0, Y: -2}, {X: 0, Y: 0}, {X: -2, Y: 0}}}
	b := VoidFootprint{Loop: []geom.Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}}
	_, applied, rejected := Subtract(host, []VoidFootprint{a, b})
	if len(applied) != 1 || len(rejected) != 1 {
		t.Fatalf("applied=%d rejected=%d, want 1 applied, 1 rejected (overlapping second opening)", len(applied), len(rejected))
	}
}

func TestThroughThicknessSpansFullDepth(t *testing.T) {
	if !ThroughThickness(VoidFootprint{ZStart: 0, ZEnd: 3}, 3) {
		t.Error("ThroughThickness() = false, want true when range matches host depth exactly")
	}
	if ThroughThickness(VoidFootprint{ZStart: 0.5, ZEnd: 2}, 3) {
		t.Error("ThroughThickness() = true, want false for a partial-depth opening")
	}
}
