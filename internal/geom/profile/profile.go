// Package profile builds and triangulates the planar profiles named in
// spec §4.F.1: parametric shapes (rectangle, circle, hollow circle) and
// arbitrary closed curves with voids, all reduced to an outer loop plus
// zero or more hole loops in profile-local 2-D coordinates.
package profile

import (
	"math"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/geom"
)

// ChordTolerance is the relative chord-deviation tolerance used to pick
// segment counts for circular arcs, per spec §4.F.1. A stream.Options.Quality
// level overrides it for the duration of one Run.
var ChordTolerance = 0.01

// degenerateLen is the edge-length collapse threshold (ε_len) from §4.F.1.
const degenerateLen = 1e-9

// Profile is an outer loop plus holes, both counter-clockwise/clockwise
// per the winding convention required by §4.F.1.
type Profile struct {
	Outer []geom.Vec2
	Holes [][]geom.Vec2
}

// SignedArea returns twice the signed area of a polygon loop (positive for
// counter-clockwise).
func SignedArea(loop []geom.Vec2) float64 {
	var a float64
	n := len(loop)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += loop[i].X*loop[j].Y - loop[j].X*loop[i].Y
	}
	return a
}

// fixWinding enforces outer-CCW, holes-CW by reversing loops whose signed
// area has the wrong sign.
func fixWinding(p *Profile) {
	if SignedArea(p.Outer) < 0 {
		reverse(p.Outer)
	}
	for _, h := range p.Holes {
		if SignedArea(h) > 0 {
			reverse(h)
		}
	}
}

func reverse(pts []geom.Vec2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func collapseDegenerate(loop []geom.Vec2) []geom.Vec2 {
	if len(loop) < 2 {
		return loop
	}
	out := loop[:0:0]
	for i, p := range loop {
		if i == 0 {
			out = append(out, p)
			continue
		}
		prev := out[len(out)-1]
		if math.Hypot(p.X-prev.X, p.Y-prev.Y) > degenerateLen {
			out = append(out, p)
		}
	}
	if len(out) > 1 {
		first, last := out[0], out[len(out)-1]
		if math.Hypot(first.X-last.X, first.Y-last.Y) <= degenerateLen {
			out = out[:len(out)-1]
		}
	}
	return out
}

// Rectangle builds an axis-aligned rectangle centered at origin, per
// IfcRectangleProfileDef.
func Rectangle(xDim, yDim float64) *Profile {
	hx, hy := xDim/2, yDim/2
	p := &Profile{Outer: []geom.Vec2{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
	}}
	fixWinding(p)
	return p
}

// circleSegmentCount picks the segment count so chord deviation stays
// within tolerance*radius, with a floor of 16 per §4.F.1.
func circleSegmentCount(radius, tolerance float64) int {
	if radius <= 0 {
		return 16
	}
	if tolerance <= 0 {
		tolerance = ChordTolerance
	}
	// chord deviation d = r(1-cos(theta/2)); solve for theta given d = tolerance*r
	half := math.Acos(1 - tolerance)
	n := int(math.Ceil(2 * math.Pi / (2 * half)))
	if n < 16 {
		n = 16
	}
	return n
}

func circleLoop(radius float64, segments int) []geom.Vec2 {
	loop := make([]geom.Vec2, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		loop[i] = geom.Vec2{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return loop
}

// Circle builds a solid disk profile, per IfcCircleProfileDef.
func Circle(radius float64) *Profile {
	n := circleSegmentCount(radius, ChordTolerance)
	p := &Profile{Outer: circleLoop(radius, n)}
	fixWinding(p)
	return p
}

// CircleHollow builds an annulus, per IfcCircleHollowProfileDef.
func CircleHollow(radius, wallThickness float64) *Profile {
	n := circleSegmentCount(radius, ChordTolerance)
	inner := radius - wallThickness
	p := &Profile{
		Outer: circleLoop(radius, n),
		Holes: [][]geom.Vec2{circleLoop(math.Max(inner, 0), n)},
	}
	fixWinding(p)
	return p
}

// RectangleHollow builds a rectangular tube profile, per
// IfcRectangleHollowProfileDef.
func RectangleHollow(xDim, yDim, wallThickness float64) *Profile {
	hx, hy := xDim/2, yDim/2
	ihx, ihy := hx-wallThickness, hy-wallThickness
	if ihx < 0 {
		ihx = 0
	}
	if ihy < 0 {
		ihy = 0
	}
	p := &Profile{
		Outer: []geom.Vec2{{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy}},
		Holes: [][]geom.Vec2{{{X: -ihx, Y: -ihy}, {X: -ihx, Y: ihy}, {X: ihx, Y: ihy}, {X: ihx, Y: -ihy}}},
	}
	fixWinding(p)
	return p
}

// IShape builds a wide-flange/I-beam profile centered at origin, per
// IfcIShapeProfileDef.
func IShape(overallWidth, overallDepth, webThickness, flangeThickness float64) *Profile {
	hw, hd, halfWeb := overallWidth/2, overallDepth/2, webThickness/2
	p := &Profile{Outer: []geom.Vec2{
		{X: -hw, Y: -hd},
		{X: hw, Y: -hd},
		{X: hw, Y: -hd + flangeThickness},
		{X: halfWeb, Y: -hd + flangeThickness},
		{X: halfWeb, Y: hd - flangeThickness},
		{X: hw, Y: hd - flangeThickness},
		{X: hw, Y: hd},
		{X: -hw, Y: hd},
		{X: -hw, Y: hd - flangeThickness},
		{X: -halfWeb, Y: hd - flangeThickness},
		{X: -halfWeb, Y: -hd + flangeThickness},
		{X: -hw, Y: -hd + flangeThickness},
	}}
	fixWinding(p)
	return p
}

// LShape builds an angle profile with its corner at the local origin, per
// IfcLShapeProfileDef.
func LShape(depth, width, thickness float64) *Profile {
	p := &Profile{Outer: []geom.Vec2{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: thickness},
		{X: thickness, Y: thickness},
		{X: thickness, Y: depth},
		{X: 0, Y: depth},
	}}
	fixWinding(p)
	return p
}

// UShape builds a channel profile, per IfcUShapeProfileDef.
func UShape(depth, flangeWidth, webThickness, flangeThickness float64) *Profile {
	hd := depth / 2
	p := &Profile{Outer: []geom.Vec2{
		{X: 0, Y: -hd},
		{X: flangeWidth, Y: -hd},
		{X: flangeWidth, Y: -hd + flangeThickness},
		{X: webThickness, Y: -hd + flangeThickness},
		{X: webThickness, Y: hd - flangeThickness},
		{X: flangeWidth, Y: hd - flangeThickness},
		{X: flangeWidth, Y: hd},
		{X: 0, Y: hd},
	}}
	fixWinding(p)
	return p
}

// TShape builds a T-section profile, per IfcTShapeProfileDef.
func TShape(depth, flangeWidth, webThickness, flangeThickness float64) *Profile {
	halfFlange, halfWeb := flangeWidth/2, webThickness/2
	p := &Profile{Outer: []geom.Vec2{
		{X: -halfWeb, Y: 0},
		{X: -halfWeb, Y: depth - flangeThickness},
		{X: -halfFlange, Y: depth - flangeThickness},
		{X: -halfFlange, Y: depth},
		{X: halfFlange, Y: depth},
		{X: halfFlange, Y: depth - flangeThickness},
		{X: halfWeb, Y: depth - flangeThickness},
		{X: halfWeb, Y: 0},
	}}
	fixWinding(p)
	return p
}

// CShape builds a lipped-channel profile, per IfcCShapeProfileDef. Girth
// defaults to twice the wall thickness when the entity omits it, matching
// the original engine's fallback for the same optional attribute.
func CShape(depth, wallThickness, girth float64) *Profile {
	if girth <= 0 {
		girth = wallThickness * 2
	}
	hd := depth / 2
	p := &Profile{Outer: []geom.Vec2{
		{X: girth, Y: -hd},
		{X: 0, Y: -hd},
		{X: 0, Y: hd},
		{X: girth, Y: hd},
		{X: girth, Y: hd - wallThickness},
		{X: wallThickness, Y: hd - wallThickness},
		{X: wallThickness, Y: -hd + wallThickness},
		{X: girth, Y: -hd + wallThickness},
	}}
	fixWinding(p)
	return p
}

// ZShape builds a Z-section profile, per IfcZShapeProfileDef.
func ZShape(depth, flangeWidth, webThickness, flangeThickness float64) *Profile {
	hd, halfWeb := depth/2, webThickness/2
	p := &Profile{Outer: []geom.Vec2{
		{X: -halfWeb, Y: -hd},
		{X: -halfWeb - flangeWidth, Y: -hd},
		{X: -halfWeb - flangeWidth, Y: -hd + flangeThickness},
		{X: -halfWeb, Y: -hd + flangeThickness},
		{X: -halfWeb, Y: hd - flangeThickness},
		{X: halfWeb, Y: hd - flangeThickness},
		{X: halfWeb, Y: hd},
		{X: halfWeb + flangeWidth, Y: hd},
		{X: halfWeb + flangeWidth, Y: hd - flangeThickness},
		{X: halfWeb, Y: hd - flangeThickness},
		{X: halfWeb, Y: -hd + flangeThickness},
		{X: -halfWeb, Y: -hd + flangeThickness},
	}}
	fixWinding(p)
	return p
}

// ArbitraryClosed builds a profile from an already-flattened outer loop
// (produced by curve evaluation), per IfcArbitraryClosedProfileDef.
func ArbitraryClosed(outer []geom.Vec2) (*Profile, error) {
	outer = collapseDegenerate(outer)
	if len(outer) < 3 {
		return nil, errors.NewDiagnostic(errors.ErrProfileInvalid, "outer loop has fewer than 3 distinct points")
	}
	p := &Profile{Outer: outer}
	fixWinding(p)
	return p, nil
}

// ArbitraryWithVoids adds inner loops (already flattened) to an outer
// loop, per IfcArbitraryProfileDefWithVoids.
func ArbitraryWithVoids(outer []geom.Vec2, inner [][]geom.Vec2) (*Profile, error) {
	p, err := ArbitraryClosed(outer)
	if err != nil {
		return nil, err
	}
	for _, h := range inner {
		h = collapseDegenerate(h)
		if len(h) < 3 {
			continue
		}
		p.Holes = append(p.Holes, h)
	}
	fixWinding(p)
	return p, nil
}

// Apply returns a copy of the profile with a 2-D transform applied to
// every point, used for the profile's own Position placement.
func (p *Profile) Apply(origin, xAxis, yAxis geom.Vec2) *Profile {
	xform := func(v geom.Vec2) geom.Vec2 {
		return geom.Vec2{
			X: origin.X + v.X*xAxis.X + v.Y*yAxis.X,
			Y: origin.Y + v.X*xAxis.Y + v.Y*yAxis.Y,
		}
	}
	out := &Profile{Outer: make([]geom.Vec2, len(p.Outer))}
	for i, v := range p.Outer {
		out.Outer[i] = xform(v)
	}
	for _, h := range p.Holes {
		nh := make([]geom.Vec2, len(h))
		for i, v := range h {
			nh[i] = xform(v)
		}
		out.Holes = append(out.Holes, nh)
	}
	return out
}

// Area returns the outer loop's area minus its holes' areas.
func (p *Profile) Area() float64 {
	a := SignedArea(p.Outer) / 2
	for _, h := range p.Holes {
		a += SignedArea(h) / 2 // holes are already CW, i.e. negative area
	}
	return math.Abs(a)
}

// mergedLoop bridges holes into the outer loop via the standard
// hole-bridging method: each hole is spliced in at the vertex pair with
// minimal connecting distance, producing a single simple polygon that
// ear-clipping can consume.
func (p *Profile) mergedLoop() []geom.Vec2 {
	loop := append([]geom.Vec2(nil), p.Outer...)
	for _, hole := range p.Holes {
		if len(hole) == 0 {
			continue
		}
		loop = bridgeHole(loop, hole)
	}
	return loop
}

func bridgeHole(loop, hole []geom.Vec2) []geom.Vec2 {
	bestI, bestJ := 0, 0
	bestDist := math.Inf(1)
	for i, lp := range loop {
		for j, hp := range hole {
			d := math.Hypot(lp.X-hp.X, lp.Y-hp.Y)
			if d < bestDist {
				bestDist, bestI, bestJ = d, i, j
			}
		}
	}
	out := make([]geom.Vec2, 0, len(loop)+len(hole)+2)
	out = append(out, loop[:bestI+1]...)
	out = append(out, hole[bestJ:]...)
	out = append(out, hole[:bestJ+1]...)
	out = append(out, loop[bestI:]...)
	return out
}

// Triangulate ear-clips the profile (outer loop with holes bridged in)
// into triangles, returning 2-D vertices and index triples. Self
// intersections in the merged loop fail with ErrProfileInvalid.
func (p *Profile) Triangulate() ([]geom.Vec2, []geom.Triangle, error) {
	verts := p.mergedLoop()
	if len(verts) < 3 {
		return nil, nil, errors.NewDiagnostic(errors.ErrProfileInvalid, "profile has fewer than 3 vertices after bridging")
	}
	idx := make([]int, len(verts))
	for i := range idx {
		idx[i] = i
	}
	var tris []geom.Triangle
	guard := 0
	maxGuard := len(idx) * len(idx)
	for len(idx) > 3 {
		guard++
		if guard > maxGuard {
			return nil, nil, errors.NewDiagnostic(errors.ErrProfileInvalid, "ear clipping failed to converge (likely self-intersecting loop)")
		}
		earFound := false
		for k := 0; k < len(idx); k++ {
			a := idx[(k-1+len(idx))%len(idx)]
			b := idx[k]
			c := idx[(k+1)%len(idx)]
			if !isConvex(verts[a], verts[b], verts[c]) {
				continue
			}
			if triangleContainsAny(verts[a], verts[b], verts[c], verts, idx, a, b, c) {
				continue
			}
			tris = append(tris, geom.Triangle{uint32(a), uint32(b), uint32(c)})
			idx = append(idx[:k], idx[k+1:]...)
			earFound = true
			break
		}
		if !earFound {
			return nil, nil, errors.NewDiagnostic(errors.ErrProfileInvalid, "no ear found (likely self-intersecting loop)")
		}
	}
	if len(idx) == 3 {
		tris = append(tris, geom.Triangle{uint32(idx[0]), uint32(idx[1]), uint32(idx[2])})
	}
	return verts, tris, nil
}

func isConvex(a, b, c geom.Vec2) bool {
	return b.Sub(a).Cross(c.Sub(b)) > 0
}

func triangleContainsAny(a, b, c geom.Vec2, verts []geom.Vec2, idx []int, ia, ib, ic int) bool {
	for _, k := range idx {
		if k == ia || k == ib || k == ic {
			continue
		}
		if pointInTriangle(verts[k], a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c geom.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
