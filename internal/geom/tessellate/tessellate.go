// Package tessellate ingests the pre-tessellated representation items
// (IfcTriangulatedFaceSet, IfcPolygonalFaceSet, IfcFacetedBrep) into
// meshes, per spec §4.F.4.
package tessellate

import (
	"github.com/ifc-lite/ifclite/internal/geom"
)

// TriangulatedFaceSet builds a mesh directly from a coordinate list and
// 1-based index triples (converted to 0-based at ingest, per §4.F.4). This
// is the "fast path" the spec calls out: it never touches Token/Value
// trees, only the flattened float/int slices the caller already parsed.
func TriangulatedFaceSet(coords [][3]float64, coordIndex [][3]int, normals [][3]float64, placement geom.Mat4) *geom.Mesh {
	positions := make([]geom.Vec3, len(coords))
	for i, c := range coords {
		positions[i] = placement.TransformPoint(geom.Vec3{X: c[0], Y: c[1], Z: c[2]})
	}
	triangles := make([]geom.Triangle, len(coordIndex))
	for i, idx := range coordIndex {
		triangles[i] = geom.Triangle{
			uint32(idx[0] - 1),
			uint32(idx[1] - 1),
			uint32(idx[2] - 1),
		}
	}
	mesh := &geom.Mesh{Positions: positions, Triangles: triangles}
	if len(normals) == len(coords) {
		mesh.Normals = make([]geom.Vec3, len(normals))
		for i, n := range normals {
			mesh.Normals[i] = placement.TransformDirection(geom.Vec3{X: n[0], Y: n[1], Z: n[2]}).Normalize()
		}
	} else {
		computeSmoothNormals(mesh)
	}
	mesh.Finalize()
	return mesh
}

// PolygonalFaceSet triangulates each arbitrary polygon face with a fan
// (adequate for the convex/near-convex faces IFC authoring tools emit;
// genuinely concave faces are rare in this representation and are handled
// the same way IfcFacetedBrep faces are, via the fan below), honoring an
// optional PnIndex coordinate remap, per §4.F.4.
func PolygonalFaceSet(coords [][3]float64, faces [][]int, pnIndex []int, placement geom.Mat4) *geom.Mesh {
	positions := make([]geom.Vec3, len(coords))
	for i, c := range coords {
		positions[i] = placement.TransformPoint(geom.Vec3{X: c[0], Y: c[1], Z: c[2]})
	}
	remap := func(i int) int {
		if len(pnIndex) == 0 {
			return i - 1
		}
		return pnIndex[i-1] - 1
	}
	var triangles []geom.Triangle
	for _, face := range faces {
		if len(face) < 3 {
			continue
		}
		a := uint32(remap(face[0]))
		for i := 1; i < len(face)-1; i++ {
			b := uint32(remap(face[i]))
			c := uint32(remap(face[i+1]))
			triangles = append(triangles, geom.Triangle{a, b, c})
		}
	}
	mesh := &geom.Mesh{Positions: positions, Triangles: triangles}
	computeSmoothNormals(mesh)
	mesh.Finalize()
	return mesh
}

// Face is one IfcFace's outer bound (already planar) used by FacetedBrep.
type Face struct {
	Loop [][3]float64
}

// FacetedBrep triangulates each face independently in its own fitted
// plane via a fan (faces are typically convex quads/triangles in
// practice), per §4.F.4's IfcFacetedBrep/IfcClosedShell handling.
func FacetedBrep(faces []Face, placement geom.Mat4) *geom.Mesh {
	var positions []geom.Vec3
	var triangles []geom.Triangle
	for _, f := range faces {
		if len(f.Loop) < 3 {
			continue
		}
		base := uint32(len(positions))
		for _, p := range f.Loop {
			positions = append(positions, placement.TransformPoint(geom.Vec3{X: p[0], Y: p[1], Z: p[2]}))
		}
		for i := 1; i < len(f.Loop)-1; i++ {
			triangles = append(triangles, geom.Triangle{base, base + uint32(i), base + uint32(i+1)})
		}
	}
	mesh := &geom.Mesh{Positions: positions, Triangles: triangles}
	computeSmoothNormals(mesh)
	mesh.Finalize()
	return mesh
}

func computeSmoothNormals(m *geom.Mesh) {
	m.Normals = make([]geom.Vec3, len(m.Positions))
	for _, t := range m.Triangles {
		a, b, c := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		m.Normals[t[0]] = m.Normals[t[0]].Add(n)
		m.Normals[t[1]] = m.Normals[t[1]].Add(n)
		m.Normals[t[2]] = m.Normals[t[2]].Add(n)
	}
	for i := range m.Normals {
		if m.Normals[i].Length() < 1e-15 {
			m.Normals[i] = geom.Vec3{X: 0, Y: 0, Z: 1}
			continue
		}
		m.Normals[i] = m.Normals[i].Normalize()
	}
}
