// Package boolean2d implements the tier-1 planar profile-level void
// subtraction from spec §4.F.5: a void coplanar with a host's extrusion
// profile is projected onto the profile plane and subtracted as a hole,
// instead of falling through to a full 3-D mesh difference.
package boolean2d

import (
	"math"

	"github.com/ifc-lite/ifclite/internal/geom"
	"github.com/ifc-lite/ifclite/internal/geom/profile"
)

// EpsPlane is the coplanarity tolerance from §4.F.5.
const EpsPlane = 1e-3

// Coplanar reports whether a void's normal is (anti)parallel enough to the
// host's extrusion direction to qualify for tier-1 subtraction.
func Coplanar(voidNormal, extrusionDirection geom.Vec3) bool {
	n := voidNormal.Normalize()
	d := extrusionDirection.Normalize()
	return math.Abs(n.Dot(d)) >= 1-EpsPlane
}

// VoidFootprint is one opening's footprint already projected into the
// host profile's local 2-D plane, plus its depth range along the
// extrusion axis (used to decide through-thickness vs. internal caps).
// OpeningID lets a caller that mixes tier-1 and tier-2 voiding figure out
// which express ID a rejected footprint belongs to.
type VoidFootprint struct {
	OpeningID uint32
	Loop      []geom.Vec2
	ZStart    float64
	ZEnd      float64
}

// Subtract punches each footprint into the host profile as an additional
// hole. Voids fully contained within the outer loop and not overlapping
// an existing hole are added directly (the common case: rectangular
// openings in a planar wall/slab profile). A footprint that is not
// contained, or would overlap another hole, is rejected by the caller's
// fallback to tier 2 rather than produce an invalid profile.
func Subtract(host *profile.Profile, voids []VoidFootprint) (*profile.Profile, []VoidFootprint, []VoidFootprint) {
	out := &profile.Profile{Outer: host.Outer, Holes: append([][]geom.Vec2(nil), host.Holes...)}
	var applied, rejected []VoidFootprint
	for _, v := range voids {
		if len(v.Loop) < 3 || !containedIn(v.Loop, out.Outer) || overlapsAny(v.Loop, out.Holes) {
			rejected = append(rejected, v)
			continue
		}
		hole := append([]geom.Vec2(nil), v.Loop...)
		if profile.SignedArea(hole) > 0 {
			for i, j := 0, len(hole)-1; i < j; i, j = i+1, j-1 {
				hole[i], hole[j] = hole[j], hole[i]
			}
		}
		out.Holes = append(out.Holes, hole)
		applied = append(applied, v)
	}
	return out, applied, rejected
}

// ThroughThickness reports whether a void's depth range fully spans the
// host's extrusion depth, per §4.F.5's "generate internal caps at the
// interior depths" branch.
func ThroughThickness(v VoidFootprint, hostDepth float64) bool {
	const eps = 1e-6
	return v.ZStart <= eps && v.ZEnd >= hostDepth-eps
}

func containedIn(loop, boundary []geom.Vec2) bool {
	for _, p := range loop {
		if !pointInPolygon(p, boundary) {
			return false
		}
	}
	return true
}

func overlapsAny(loop []geom.Vec2, holes [][]geom.Vec2) bool {
	for _, h := range holes {
		if polygonsIntersect(loop, h) {
			return true
		}
	}
	return false
}

func pointInPolygon(p geom.Vec2, poly []geom.Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xIntersect := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

func polygonsIntersect(a, b []geom.Vec2) bool {
	for i := range a {
		a1, a2 := a[i], a[(i+1)%len(a)]
		for j := range b {
			b1, b2 := b[j], b[(j+1)%len(b)]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(p1, p2, p3, p4 geom.Vec2) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func direction(a, b, c geom.Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}
