package tessellate

import (
	"testing"

	"github.com/ifc-lite/ifclite/internal/geom"
)

func TestTriangulatedFaceSetSingleTriangleFastPath(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	idx := [][3]int{{1, 2, 3}}
	mesh := TriangulatedFaceSet(coords, idx, nil, geom.Identity4())
	if mesh.VertexCount() != 3 {
		t.Fatalf("VertexCount() = %d, want 3", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount() = %d, want 1", mesh.TriangleCount())
	}
	if mesh.Triangles[0] != (geom.Triangle{0, 1, 2}) {
		t.Fatalf("Triangles[0] = %v, want {0 1 2} (1-based index converted to 0-based)", mesh.Triangles[0])
	}
	if len(mesh.Normals) != 3 {
		t.Fatalf("len(Normals) = %d, want 3", len(mesh.Normals))
	}
}

func TestTriangulatedFaceSetUsesSuppliedNormals(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	idx := [][3]int{{1, 2, 3}}
	normals := [][3]float64{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	mesh := TriangulatedFaceSet(coords, idx, normals, geom.Identity4())
	for _, n := range mesh.Normals {
		if n != (geom.Vec3{X: 0, Y: 0, Z: 1}) {
			t.Fatalf("normal = %+v, want supplied {0 0 1}", n)
		}
	}
}

func TestTriangulatedFaceSetAppliesPlacement(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	idx := [][3]int{{1, 2, 3}}
	placement := geom.Translation4(geom.Vec3{X: 10, Y: 0, Z: 0})
	mesh := TriangulatedFaceSet(coords, idx, nil, placement)
	if mesh.Positions[0] != (geom.Vec3{X: 10, Y: 0, Z: 0}) {
		t.Fatalf("Positions[0] = %+v, want {10 0 0}", mesh.Positions[0])
	}
}

func TestPolygonalFaceSetFansConcaveFace(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0}}
	faces := [][]int{{1, 2, 3, 4}}
	mesh := PolygonalFaceSet(coords, faces, nil, geom.Identity4())
	if mesh.TriangleCount() != 2 {
		t.Fatalf("TriangleCount() = %d, want 2 (quad fan)", mesh.TriangleCount())
	}
}

func TestPolygonalFaceSetHonorsPnIndexRemap(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	faces := [][]int{{1, 2, 3}}
	pnIndex := []int{3, 1, 2}
	mesh := PolygonalFaceSet(coords, faces, pnIndex, geom.Identity4())
	if mesh.Triangles[0] != (geom.Triangle{2, 0, 1}) {
		t.Fatalf("Triangles[0] = %v, want remapped {2 0 1}", mesh.Triangles[0])
	}
}

func TestPolygonalFaceSetSkipsDegenerateFace(t *testing.T) {
	coords := [][3]float64{{0, 0, 0}, {1, 0, 0}}
	faces := [][]int{{1, 2}}
	mesh := PolygonalFaceSet(coords, faces, nil, geom.Identity4())
	if mesh.TriangleCount() != 0 {
		t.Fatalf("TriangleCount() = %d, want 0 for a two-point face", mesh.TriangleCount())
	}
}

func TestFacetedBrepFansEachFaceIndependently(t *testing.T) {
	faces := []Face{
		{Loop: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}},
		{Loop: [][3]float64{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}}},
	}
	mesh := FacetedBrep(faces, geom.Identity4())
	if mesh.VertexCount() != 7 {
		t.Fatalf("VertexCount() = %d, want 7 (4 + 3, unshared per face)", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 3 {
		t.Fatalf("TriangleCount() = %d, want 3 (2 for quad + 1 for triangle)", mesh.TriangleCount())
	}
}

func TestFacetedBrepSkipsSubTriangleFace(t *testing.T) {
	faces := []Face{{Loop: [][3]float64{{0, 0, 0}, {1, 0, 0}}}}
	mesh := FacetedBrep(faces, geom.Identity4())
	if mesh.VertexCount() != 0 {
		t.Fatalf("VertexCount() = %d, want 0", mesh.VertexCount())
	}
}
