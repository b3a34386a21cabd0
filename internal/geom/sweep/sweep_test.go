package sweep

import (
	"math"
	"testing"

	"github.com/ifc-lite/ifclite/internal/geom"
	"github.com/ifc-lite/ifclite/internal/geom/profile"
)

func TestExtrudeRectangleWallBounds(t *testing.T) {
	p := profile.Rectangle(4, 0.2)
	mesh, err := Extrude(p, geom.Vec3{X: 0, Y: 0, Z: 1}, 3, geom.Identity4())
	if err != nil {
		t.Fatalf("Extrude() error = %v", err)
	}
	if mesh.VertexCount() != 8 {
		t.Fatalf("VertexCount() = %d, want 8 (4 bottom + 4 top)", mesh.VertexCount())
	}
	// 2 triangles per cap (bottom+top) + 4 side walls * 2 triangles each
	if mesh.TriangleCount() != 12 {
		t.Fatalf("TriangleCount() = %d, want 12", mesh.TriangleCount())
	}
	if got, want := mesh.BoundsMax.Z-mesh.BoundsMin.Z, 3.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Z extent = %v, want %v", got, want)
	}
	if len(mesh.Normals) != mesh.VertexCount() {
		t.Fatalf("len(Normals) = %d, want one per vertex (%d)", len(mesh.Normals), mesh.VertexCount())
	}
}

func TestExtrudePropagatesTriangulateError(t *testing.T) {
	bad := &profile.Profile{Outer: []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	if _, err := Extrude(bad, geom.Vec3{X: 0, Y: 0, Z: 1}, 1, geom.Identity4()); err == nil {
		t.Fatal("Extrude() error = nil, want propagated triangulation failure")
	}
}

func TestRevolveFullCircleClosesRing(t *testing.T) {
	p := profile.Rectangle(1, 1)
	mesh, err := Revolve(p, geom.Vec3{}, geom.Vec3{X: 0, Y: 0, Z: 1}, 2*math.Pi, geom.Identity4())
	if err != nil {
		t.Fatalf("Revolve() error = %v", err)
	}
	if mesh.VertexCount() == 0 || mesh.TriangleCount() == 0 {
		t.Fatal("Revolve() produced an empty mesh")
	}
	if len(mesh.Normals) != mesh.VertexCount() {
		t.Fatalf("len(Normals) = %d, want %d", len(mesh.Normals), mesh.VertexCount())
	}
}

func TestSweptDiskShortDirectrixIsEmpty(t *testing.T) {
	mesh, err := SweptDisk([]geom.Vec3{{X: 0, Y: 0, Z: 0}}, 0.5, 0, 16)
	if err != nil {
		t.Fatalf("SweptDisk() error = %v", err)
	}
	if mesh.VertexCount() != 0 {
		t.Fatalf("VertexCount() = %d, want 0 for a single-point directrix", mesh.VertexCount())
	}
}

func TestSweptDiskStraightSegmentRadius(t *testing.T) {
	directrix := []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 10}}
	mesh, err := SweptDisk(directrix, 0.5, 0, 16)
	if err != nil {
		t.Fatalf("SweptDisk() error = %v", err)
	}
	for _, p := range mesh.Positions {
		r := math.Hypot(p.X, p.Y)
		if math.Abs(r-0.5) > 1e-9 {
			t.Fatalf("ring point %+v has radius %v, want 0.5", p, r)
		}
	}
}

func TestSweptDiskLowSegmentsClampedToDefault(t *testing.T) {
	directrix := []geom.Vec3{{X: 0}, {X: 0, Z: 1}}
	mesh, err := SweptDisk(directrix, 1, 0, 2)
	if err != nil {
		t.Fatalf("SweptDisk() error = %v", err)
	}
	if mesh.VertexCount() != 2*16 {
		t.Fatalf("VertexCount() = %d, want %d (segments clamped to 16)", mesh.VertexCount(), 2*16)
	}
}
