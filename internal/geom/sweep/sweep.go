// Package sweep turns triangulated 2-D profiles and curves into 3-D solid
// meshes: extrusion, revolution and disk-sweeping, per spec §4.F.3.
package sweep

import (
	"math"

	"github.com/ifc-lite/ifclite/internal/geom"
	"github.com/ifc-lite/ifclite/internal/geom/profile"
)

const thetaErr = 0.01

// to3D lifts a 2-D profile vertex into the extrusion plane (Z=0 locally),
// letting the caller's placement matrix carry it into world space.
func to3D(v geom.Vec2) geom.Vec3 { return geom.Vec3{X: v.X, Y: v.Y, Z: 0} }

// Extrude sweeps a profile along direction by depth, producing bottom cap
// (reversed), top cap (translated) and side quads, per §4.F.3.
func Extrude(p *profile.Profile, direction geom.Vec3, depth float64, placement geom.Mat4) (*geom.Mesh, error) {
	verts2D, tris, err := p.Triangulate()
	if err != nil {
		return nil, err
	}
	dir := direction.Normalize()
	offset := dir.Scale(depth)

	n := len(verts2D)
	positions := make([]geom.Vec3, 0, 2*n)
	for _, v := range verts2D {
		positions = append(positions, placement.TransformPoint(to3D(v)))
	}
	for _, v := range verts2D {
		positions = append(positions, placement.TransformPoint(to3D(v).Add(offset)))
	}

	var triangles []geom.Triangle
	// bottom cap, reversed winding so it faces -offset
	for _, t := range tris {
		triangles = append(triangles, geom.Triangle{t[2], t[1], t[0]})
	}
	// top cap
	for _, t := range tris {
		triangles = append(triangles, geom.Triangle{t[0] + uint32(n), t[1] + uint32(n), t[2] + uint32(n)})
	}
	// side walls: loop outer boundary edges of the (unbridged) outer loop and each hole
	appendSideWalls(&triangles, p.Outer, uint32(0), uint32(n), n)
	base := len(p.Outer)
	for _, h := range p.Holes {
		appendSideWalls(&triangles, h, uint32(base), uint32(n), n)
		base += len(h)
	}

	mesh := &geom.Mesh{Positions: positions, Triangles: triangles}
	computeNormals(mesh)
	mesh.Finalize()
	return mesh, nil
}

// appendSideWalls emits quads (as two triangles) along a loop's edges,
// connecting the bottom ring [base,base+len) to the top ring offset by n.
func appendSideWalls(triangles *[]geom.Triangle, loop []geom.Vec2, base, topOffset uint32, n int) {
	m := len(loop)
	if m < 2 {
		return
	}
	for i := 0; i < m; i++ {
		a := base + uint32(i)
		b := base + uint32((i+1)%m)
		at, bt := a+topOffset, b+topOffset
		*triangles = append(*triangles, geom.Triangle{a, b, bt})
		*triangles = append(*triangles, geom.Triangle{a, bt, at})
	}
}

// Revolve sweeps a profile around an axis by angle radians, per §4.F.3.
// Segment count follows max(24, ceil(angle/thetaErr)).
func Revolve(p *profile.Profile, axisOrigin, axisDir geom.Vec3, angle float64, placement geom.Mat4) (*geom.Mesh, error) {
	verts2D, _, err := p.Triangulate()
	if err != nil {
		return nil, err
	}
	axisDir = axisDir.Normalize()
	segs := int(math.Ceil(angle / thetaErr))
	if segs < 24 {
		segs = 24
	}

	n := len(verts2D)
	positions := make([]geom.Vec3, 0, n*(segs+1))
	for s := 0; s <= segs; s++ {
		theta := angle * float64(s) / float64(segs)
		rot := rotateAroundAxis(axisOrigin, axisDir, theta)
		for _, v := range verts2D {
			positions = append(positions, placement.TransformPoint(rot.TransformPoint(to3D(v))))
		}
	}

	var triangles []geom.Triangle
	for s := 0; s < segs; s++ {
		ringA := uint32(s * n)
		ringB := uint32((s + 1) * n)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			a, b := ringA+uint32(i), ringA+uint32(j)
			c, d := ringB+uint32(i), ringB+uint32(j)
			triangles = append(triangles, geom.Triangle{a, b, d})
			triangles = append(triangles, geom.Triangle{a, d, c})
		}
	}

	mesh := &geom.Mesh{Positions: positions, Triangles: triangles}
	computeNormals(mesh)
	mesh.Finalize()
	return mesh, nil
}

func rotateAroundAxis(origin, axis geom.Vec3, theta float64) geom.Mat4 {
	toOrigin := geom.Translation4(geom.Vec3{X: -origin.X, Y: -origin.Y, Z: -origin.Z})
	fromOrigin := geom.Translation4(origin)
	c, s := math.Cos(theta), math.Sin(theta)
	x, y, z := axis.X, axis.Y, axis.Z
	rot := geom.Mat4{
		c + x*x*(1-c), x*y*(1-c) - z*s, x*z*(1-c) + y*s, 0,
		y*x*(1-c) + z*s, c + y*y*(1-c), y*z*(1-c) - x*s, 0,
		z*x*(1-c) - y*s, z*y*(1-c) + x*s, c + z*z*(1-c), 0,
		0, 0, 0, 1,
	}
	return fromOrigin.Mul(rot).Mul(toOrigin)
}

// SweptDisk sweeps a disk of radius along a directrix polyline, with a
// stabilized up-vector to avoid the classic Frenet-frame flip at
// near-straight segments, per §4.F.3.
func SweptDisk(directrix []geom.Vec3, radius float64, innerRadius float64, segments int) (*geom.Mesh, error) {
	if segments < 8 {
		segments = 16
	}
	if len(directrix) < 2 {
		return &geom.Mesh{}, nil
	}
	up := geom.Vec3{X: 0, Y: 0, Z: 1}
	rings := make([][]geom.Vec3, len(directrix))
	for i, center := range directrix {
		var tangent geom.Vec3
		switch {
		case i == 0:
			tangent = directrix[1].Sub(directrix[0])
		case i == len(directrix)-1:
			tangent = directrix[i].Sub(directrix[i-1])
		default:
			tangent = directrix[i+1].Sub(directrix[i-1])
		}
		tangent = tangent.Normalize()
		ref := up
		if math.Abs(tangent.Dot(up)) > 0.99 {
			ref = geom.Vec3{X: 1, Y: 0, Z: 0}
		}
		side := tangent.Cross(ref).Normalize()
		normal := side.Cross(tangent).Normalize()
		ring := make([]geom.Vec3, segments)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			offset := side.Scale(radius * math.Cos(theta)).Add(normal.Scale(radius * math.Sin(theta)))
			ring[s] = center.Add(offset)
		}
		rings[i] = ring
	}

	var positions []geom.Vec3
	for _, r := range rings {
		positions = append(positions, r...)
	}
	var triangles []geom.Triangle
	for i := 0; i < len(rings)-1; i++ {
		base := uint32(i * segments)
		next := uint32((i + 1) * segments)
		for s := 0; s < segments; s++ {
			s2 := (s + 1) % segments
			a, b := base+uint32(s), base+uint32(s2)
			c, d := next+uint32(s), next+uint32(s2)
			triangles = append(triangles, geom.Triangle{a, b, d})
			triangles = append(triangles, geom.Triangle{a, d, c})
		}
	}
	mesh := &geom.Mesh{Positions: positions, Triangles: triangles}
	computeNormals(mesh)
	mesh.Finalize()
	return mesh, nil
}

// computeNormals derives per-vertex smooth normals by averaging adjacent
// face normals, matching the "at least one normal per vertex" contract
// from spec §6.
func computeNormals(m *geom.Mesh) {
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
