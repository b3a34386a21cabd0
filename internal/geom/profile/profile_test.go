package profile

import (
	"math"
	"testing"

	"github.com/ifc-lite/ifclite/internal/geom"
)

func TestRectangleAreaAndWinding(t *testing.T) {
	p := Rectangle(4, 2)
	if got, want := p.Area(), 8.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Area() = %v, want %v", got, want)
	}
	if SignedArea(p.Outer) <= 0 {
		t.Fatal("outer loop is not counter-clockwise after fixWinding")
	}
}

func TestCircleSegmentCountHasFloor(t *testing.T) {
	if n := circleSegmentCount(0.01, 0.5); n < 16 {
		t.Fatalf("circleSegmentCount() = %d, want floor of 16", n)
	}
	if n := circleSegmentCount(1000, 0.0001); n < 16 {
		t.Fatalf("circleSegmentCount() = %d, want at least 16", n)
	}
}

func TestCircleHollowHasOneHole(t *testing.T) {
	p := CircleHollow(5, 1)
	if len(p.Holes) != 1 {
		t.Fatalf("len(Holes) = %d, want 1", len(p.Holes))
	}
	if p.Area() <= 0 {
		t.Fatal("Area() <= 0, want positive annulus area")
	}
	outerArea := math.Pi * 5 * 5
	innerArea := math.Pi * 4 * 4
	if got, want := p.Area(), outerArea-innerArea; math.Abs(got-want)/want > 0.01 {
		t.Fatalf("Area() = %v, want ~%v", got, want)
	}
}

func TestArbitraryClosedRejectsDegenerateLoop(t *testing.T) {
	if _, err := ArbitraryClosed([]geom.Vec2{{X: 0, Y: 0}, {X: 0, Y: 0}}); err == nil {
		t.Fatal("ArbitraryClosed() error = nil, want error for fewer than 3 distinct points")
	}
}

func TestArbitraryWithVoidsDropsDegenerateHole(t *testing.T) {
	outer := []geom.Vec2{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}
	holes := [][]geom.Vec2{{{X: 0, Y: 0}, {X: 0, Y: 0}}}
	p, err := ArbitraryWithVoids(outer, holes)
	if err != nil {
		t.Fatalf("ArbitraryWithVoids() error = %v", err)
	}
	if len(p.Holes) != 0 {
		t.Fatalf("len(Holes) = %d, want 0 (degenerate hole dropped)", len(p.Holes))
	}
}

func TestTriangulateRectangleProducesTwoTriangles(t *testing.T) {
	p := Rectangle(2, 2)
	verts, tris, err := p.Triangulate()
	if err != nil {
		t.Fatalf("Triangulate() error = %v", err)
	}
	if len(verts) != 4 {
		t.Fatalf("len(verts) = %d, want 4", len(verts))
	}
	if len(tris) != 2 {
		t.Fatalf("len(tris) = %d, want 2", len(tris))
	}
}

func TestTriangulateSquareWithHoleBridgesLoop(t *testing.T) {
	outer := []geom.Vec2{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}
	hole := []geom.Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	p, err := ArbitraryWithVoids(outer, [][]geom.Vec2{hole})
	if err != nil {
		t.Fatalf("ArbitraryWithVoids() error = %v", err)
	}
	_, tris, err := p.Triangulate()
	if err != nil {
		t.Fatalf("Triangulate() error = %v", err)
	}
	// bridged loop has outer(4) + hole(4) + 2 bridge vertices = 10 verts,
	// ear clipping a simple polygon of n verts yields n-2 triangles.
	if len(tris) != 8 {
		t.Fatalf("len(tris) = %d, want 8", len(tris))
	}
}

func TestApplyTransformsPoints(t *testing.T) {
	p := Rectangle(2, 2)
	moved := p.Apply(geom.Vec2{X: 10, Y: 0}, geom.Vec2{X: 1, Y: 0}, geom.Vec2{X: 0, Y: 1})
	for i, v := range moved.Outer {
		want := geom.Vec2{X: p.Outer[i].X + 10, Y: p.Outer[i].Y}
		if v != want {
			t.Fatalf("Outer[%d] = %+v, want %+v", i, v, want)
		}
	}
}

func TestRectangleHollowHasOneHole(t *testing.T) {
	p := RectangleHollow(10, 6, 1)
	if len(p.Holes) != 1 {
		t.Fatalf("len(Holes) = %d, want 1", len(p.Holes))
	}
	if got, want := p.Area(), 10.0*6-8.0*4; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Area() = %v, want %v", got, want)
	}
}

func TestIShapeAreaMatchesWebPlusFlanges(t *testing.T) {
	p := IShape(10, 20, 2, 1)
	want := 2*(10.0*1) + 2*(20-2*1)
	if got := p.Area(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("Area() = %v, want %v", got, want)
	}
	if SignedArea(p.Outer) <= 0 {
		t.Fatal("outer loop is not counter-clockwise after fixWinding")
	}
}

func TestLShapeIsSimplePositiveAreaLoop(t *testing.T) {
	p := LShape(8, 6, 1)
	if len(p.Outer) != 6 {
		t.Fatalf("len(Outer) = %d, want 6", len(p.Outer))
	}
	if p.Area() <= 0 {
		t.Fatal("Area() <= 0, want a positive angle-section area")
	}
}

func TestUShapeIsSimplePositiveAreaLoop(t *testing.T) {
	p := UShape(10, 4, 1, 1)
	if len(p.Outer) != 8 {
		t.Fatalf("len(Outer) = %d, want 8", len(p.Outer))
	}
	if p.Area() <= 0 {
		t.Fatal("Area() <= 0, want a positive channel-section area")
	}
}

func TestTShapeIsSimplePositiveAreaLoop(t *testing.T) {
	p := TShape(10, 6, 1, 1)
	if len(p.Outer) != 8 {
		t.Fatalf("len(Outer) = %d, want 8", len(p.Outer))
	}
	if p.Area() <= 0 {
		t.Fatal("Area() <= 0, want a positive T-section area")
	}
}

func TestCShapeDefaultsGirthWhenOmitted(t *testing.T) {
	p := CShape(10, 1, 0)
	if len(p.Outer) != 8 {
		t.Fatalf("len(Outer) = %d, want 8", len(p.Outer))
	}
	if p.Area() <= 0 {
		t.Fatal("Area() <= 0, want a positive lipped-channel area")
	}
}

func TestZShapeIsSimplePositiveAreaLoop(t *testing.T) {
	p := ZShape(10, 4, 1, 1)
	if len(p.Outer) != 12 {
		t.Fatalf("len(Outer) = %d, want 12", len(p.Outer))
	}
	if p.Area() <= 0 {
		t.Fatal("Area() <= 0, want a positive Z-section area")
	}
}
