// Package boolean3d implements the tier-2 fallback of spec §4.F.5's void
// subtraction: a general triangle-mesh-against-box clip used whenever an
// opening isn't coplanar with its host's extrusion axis (or its footprint
// doesn't fully sit inside the host profile), so tier-1's 2-D profile
// subtraction in internal/geom/boolean2d can't apply.
//
// The routing (fast-path outside/inside AABB tests, then a full
// separating-axis test before paying for the per-plane clip) and the
// clip-and-collect algorithm itself are ported from the opening router in
// the original IFC-Lite geometry engine, not invented here.
package boolean3d

import (
	"math"

	"github.com/ifc-lite/ifclite/internal/geom"
)

const epsilon = 1e-6

// Box is an axis-aligned bounding box in the host mesh's coordinate frame.
type Box struct {
	Min, Max geom.Vec3
}

type plane struct {
	point, normal geom.Vec3
}

// boxPlanes returns the box's six faces as half-spaces whose normal points
// into the box interior. Only the normal's own axis of point matters,
// since clipTriangle only ever projects (v - point) onto normal.
func boxPlanes(box Box) [6]plane {
	return [6]plane{
		{geom.Vec3{X: box.Min.X}, geom.Vec3{X: 1}},
		{geom.Vec3{X: box.Max.X}, geom.Vec3{X: -1}},
		{geom.Vec3{Y: box.Min.Y}, geom.Vec3{Y: 1}},
		{geom.Vec3{Y: box.Max.Y}, geom.Vec3{Y: -1}},
		{geom.Vec3{Z: box.Min.Z}, geom.Vec3{Z: 1}},
		{geom.Vec3{Z: box.Max.Z}, geom.Vec3{Z: -1}},
	}
}

type clipKind int

const (
	kindBehind clipKind = iota
	kindFront
	kindSplit
)

// clipTriangle cuts a triangle against a half-space (point, normal), where
// front means (v-point).Dot(normal) >= -epsilon. All-front and all-behind
// triangles pass through unchanged; a triangle straddling the plane is
// split into either one (one vertex front) or two (two vertices front)
// triangles covering just the front portion.
func clipTriangle(v0, v1, v2, point, normal geom.Vec3) (clipKind, [][3]geom.Vec3) {
	d0 := v0.Sub(point).Dot(normal)
	d1 := v1.Sub(point).Dot(normal)
	d2 := v2.Sub(point).Dot(normal)

	front := 0
	if d0 >= -epsilon {
		front++
	}
	if d1 >= -epsilon {
		front++
	}
	if d2 >= -epsilon {
		front++
	}

	switch front {
	case 0:
		return kindBehind, nil
	case 3:
		return kindFront, [][3]geom.Vec3{{v0, v1, v2}}
	case 1:
		var f, b1, b2 geom.Vec3
		var df, db1, db2 float64
		switch {
		case d0 >= -epsilon:
			f, b1, b2, df, db1, db2 = v0, v1, v2, d0, d1, d2
		case d1 >= -epsilon:
			f, b1, b2, df, db1, db2 = v1, v2, v0, d1, d2, d0
		default:
			f, b1, b2, df, db1, db2 = v2, v0, v1, d2, d0, d1
		}
		t1 := df / (df - db1)
		t2 := df / (df - db2)
		p1 := f.Add(b1.Sub(f).Scale(t1))
		p2 := f.Add(b2.Sub(f).Scale(t2))
		return kindSplit, [][3]geom.Vec3{{f, p1, p2}}
	default:
		var back, f1, f2 geom.Vec3
		var db, df1, df2 float64
		switch {
		case d0 < -epsilon:
			back, f1, f2, db, df1, df2 = v0, v1, v2, d0, d1, d2
		case d1 < -epsilon:
			back, f1, f2, db, df1, df2 = v1, v2, v0, d1, d2, d0
		default:
			back, f1, f2, db, df1, df2 = v2, v0, v1, d2, d0, d1
		}
		t1 := df1 / (df1 - db)
		t2 := df2 / (df2 - db)
		p1 := f1.Add(back.Sub(f1).Scale(t1))
		p2 := f2.Add(back.Sub(f2).Scale(t2))
		return kindSplit, [][3]geom.Vec3{{f1, f2, p1}, {f2, p2, p1}}
	}
}

// clipAgainstBox clips one triangle against all six box faces in turn,
// keeping only the portion outside the box: whatever survives every face's
// front side (fully inside the box) is discarded, and each face's clip
// additionally contributes back the geometric complement it cut away.
func clipAgainstBox(v0, v1, v2 geom.Vec3, box Box) [][3]geom.Vec3 {
	remaining := [][3]geom.Vec3{{v0, v1, v2}}
	var result [][3]geom.Vec3
	for _, p := range boxPlanes(box) {
		var next [][3]geom.Vec3
		for _, tri := range remaining {
			kind, out := clipTriangle(tri[0], tri[1], tri[2], p.point, p.normal)
			switch kind {
			case kindFront:
				next = append(next, out...)
			case kindBehind:
				result = append(result, tri)
			case kindSplit:
				next = append(next, out...)
				outsideKind, outside := clipTriangle(tri[0], tri[1], tri[2], p.point, p.normal.Scale(-1))
				if outsideKind != kindBehind {
					result = append(result, outside...)
				}
			}
		}
		remaining = next
	}
	return result
}

// intersectsBox is a separating-axis test between a triangle and a box:
// the box's three axes, the triangle's own face normal, and the nine
// cross products of triangle edges with box axes.
func intersectsBox(v0, v1, v2 geom.Vec3, box Box) bool {
	center := box.Min.Add(box.Max).Scale(0.5)
	half := box.Max.Sub(box.Min).Scale(0.5)
	halfArr := [3]float64{half.X, half.Y, half.Z}

	t0 := v0.Sub(center)
	t1 := v1.Sub(center)
	t2 := v2.Sub(center)

	axes := [3]geom.Vec3{{X: 1}, {Y: 1}, {Z: 1}}

	overlapsOn := func(axis geom.Vec3, boxRadius float64) bool {
		p0, p1, p2 := t0.Dot(axis), t1.Dot(axis), t2.Dot(axis)
		lo := math.Min(p0, math.Min(p1, p2))
		hi := math.Max(p0, math.Max(p1, p2))
		return lo <= boxRadius && hi >= -boxRadius
	}

	for i, axis := range axes {
		if !overlapsOn(axis, halfArr[i]) {
			return false
		}
	}

	e0 := t1.Sub(t0)
	e1 := t2.Sub(t1)
	e2 := t0.Sub(t2)

	normal := e0.Cross(e1)
	if l := normal.Length(); l > 1e-10 {
		normal = normal.Scale(1 / l)
	} else {
		normal = geom.Vec3{Z: 1}
	}
	boxProjection := halfArr[0]*math.Abs(normal.X) + halfArr[1]*math.Abs(normal.Y) + halfArr[2]*math.Abs(normal.Z)
	if !overlapsOn(normal, boxProjection) {
		return false
	}

	for _, edge := range [3]geom.Vec3{e0, e1, e2} {
		for _, axis := range axes {
			cross := edge.Cross(axis)
			l := cross.Length()
			if l < 1e-10 {
				continue
			}
			cross = cross.Scale(1 / l)
			boxRadius := halfArr[0]*math.Abs(cross.X) + halfArr[1]*math.Abs(cross.Y) + halfArr[2]*math.Abs(cross.Z)
			if !overlapsOn(cross, boxRadius) {
				return false
			}
		}
	}
	return true
}

// CutOpening removes the portion of a mesh that falls inside box, splitting
// boundary-straddling triangles so the hole's edge is clean. Triangles
// wholly outside the box pass through untouched; triangles wholly inside
// are dropped; everything else goes through a full SAT test before paying
// for the six-plane clip, since the two fast paths cover the overwhelming
// majority of a typical wall or slab's triangles.
func CutOpening(positions, normals []geom.Vec3, triangles []geom.Triangle, box Box) ([]geom.Vec3, []geom.Vec3, []geom.Triangle) {
	hasNormals := len(normals) >= len(positions)

	var outPositions, outNormals []geom.Vec3
	var outTriangles []geom.Triangle

	emit := func(tri [3]geom.Vec3, normal geom.Vec3) {
		base := uint32(len(outPositions))
		outPositions = append(outPositions, tri[0], tri[1], tri[2])
		outNormals = append(outNormals, normal, normal, normal)
		outTriangles = append(outTriangles, geom.Triangle{base, base + 1, base + 2})
	}

	for _, t := range triangles {
		v0, v1, v2 := positions[t[0]], positions[t[1]], positions[t[2]]

		var normal geom.Vec3
		if hasNormals {
			normal = normals[t[0]]
		} else {
			n := v1.Sub(v0).Cross(v2.Sub(v1))
			if l := n.Length(); l > 1e-10 {
				normal = n.Scale(1 / l)
			} else {
				normal = geom.Vec3{Z: 1}
			}
		}

		triMin := geom.Vec3{
			X: math.Min(v0.X, math.Min(v1.X, v2.X)),
			Y: math.Min(v0.Y, math.Min(v1.Y, v2.Y)),
			Z: math.Min(v0.Z, math.Min(v1.Z, v2.Z)),
		}
		triMax := geom.Vec3{
			X: math.Max(v0.X, math.Max(v1.X, v2.X)),
			Y: math.Max(v0.Y, math.Max(v1.Y, v2.Y)),
			Z: math.Max(v0.Z, math.Max(v1.Z, v2.Z)),
		}

		fullyOutside := triMax.X <= box.Min.X-epsilon || triMin.X >= box.Max.X+epsilon ||
			triMax.Y <= box.Min.Y-epsilon || triMin.Y >= box.Max.Y+epsilon ||
			triMax.Z <= box.Min.Z-epsilon || triMin.Z >= box.Max.Z+epsilon
		if fullyOutside {
			emit([3]geom.Vec3{v0, v1, v2}, normal)
			continue
		}

		fullyInside := triMin.X >= box.Min.X+epsilon && triMax.X <= box.Max.X-epsilon &&
			triMin.Y >= box.Min.Y+epsilon && triMax.Y <= box.Max.Y-epsilon &&
			triMin.Z >= box.Min.Z+epsilon && triMax.Z <= box.Max.Z-epsilon
		if fullyInside {
			continue
		}

		if !intersectsBox(v0, v1, v2, box) {
			emit([3]geom.Vec3{v0, v1, v2}, normal)
			continue
		}

		for _, tri := range clipAgainstBox(v0, v1, v2, box) {
			emit(tri, normal)
		}
	}

	return outPositions, outNormals, outTriangles
}
