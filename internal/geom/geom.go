// Package geom implements the geometry kernel (spec component F): profiles,
// curves, swept solids, tessellated face sets, planar voiding, mapped-item
// instancing and style resolution, turning decoded representation items
// into triangulated meshes.
//
// Internal precision is f64 throughout; Mesh materializes to f32 only at
// its Vertices/Normals fields, mirroring the columnar tables' own
// build-then-freeze shape in internal/model.
package geom

import "math"

// Vec3 is a 3-D point or direction in project-local f64 coordinates.
type Vec3 struct{ X, Y, Z float64 }

func (a Vec3) Add(b Vec3) Vec3   { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3   { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Length() float64 { return math.Sqrt(a.Dot(a)) }

func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l < 1e-15 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// Vec2 is a 2-D point in a profile's local plane.
type Vec2 struct{ X, Y float64 }

func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Mat4 is a row-major 4x4 affine transform, matching the wire layout named
// in spec §3 ("transform: [f64;16] row-major").
type Mat4 [16]float64

// Identity4 returns the identity transform.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two row-major matrices, m*n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[r*4+k] * n[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// TransformPoint applies the matrix to a point (w=1).
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// TransformDirection applies only the rotation/scale block (w=0).
func (m Mat4) TransformDirection(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// InverseRigid returns the inverse of a rotation+translation matrix (no
// scale/shear), which is all IfcAxis2Placement3D/IfcLocalPlacement chains
// produce. Callers needing to invert a IfcCartesianTransformationOperator
// with nonuniform scale must not use this.
func (m Mat4) InverseRigid() Mat4 {
	// rotation block transposed
	r := Mat4{
		m[0], m[4], m[8], 0,
		m[1], m[5], m[9], 0,
		m[2], m[6], m[10], 0,
		0, 0, 0, 1,
	}
	t := Vec3{X: m[3], Y: m[7], Z: m[11]}
	nt := r.TransformDirection(t).Scale(-1)
	r[3], r[7], r[11] = nt.X, nt.Y, nt.Z
	return r
}

// Translation4 builds a pure translation matrix.
func Translation4(v Vec3) Mat4 {
	m := Identity4()
	m[3], m[7], m[11] = v.X, v.Y, v.Z
	return m
}

// AxesToMat4 builds a transform from an origin and orthonormal x/y/z axes,
// matching IfcAxis2Placement3D's Location/RefDirection/Axis triple.
func AxesToMat4(origin, x, y, z Vec3) Mat4 {
	return Mat4{
		x.X, y.X, z.X, origin.X,
		x.Y, y.Y, z.Y, origin.Y,
		x.Z, y.Z, z.Z, origin.Z,
		0, 0, 0, 1,
	}
}

// RGBA is a color in [0,1] per channel.
type RGBA struct{ R, G, B, A float32 }

// Triangle is a triple of 0-based vertex indices.
type Triangle [3]uint32

// Mesh is one triangulated solid attributed to a single product, per
// spec §3's Mesh type and §6's output layout.
type Mesh struct {
	ExpressID uint32
	IFCType   string

	Positions []Vec3 // project-local f64, pre-RTC
	Normals   []Vec3 // unit, one per vertex
	Triangles []Triangle
	Color     RGBA

	RTCOffset  Vec3
	HasRTC     bool
	BoundsMin  Vec3
	BoundsMax  Vec3
}

// VertexCount and TriangleCount name the omission thresholds from spec §6
// ("Meshes with V < 3 or T < 1 are omitted").
func (m *Mesh) VertexCount() int   { return len(m.Positions) }
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }

// Omit reports whether the mesh is too small to emit.
func (m *Mesh) Omit() bool { return m.VertexCount() < 3 || m.TriangleCount() < 1 }

// RTCThreshold is the |centroid component| above which an RTC shift
// applies. A stream.Options.CoordinateShiftThreshold overrides it for the
// duration of one Run.
var RTCThreshold = 1e4

// Finalize computes bounds and, if needed, an RTC offset, per §4.F.6.
func (m *Mesh) Finalize() {
	if len(m.Positions) == 0 {
		return
	}
	min, max := m.Positions[0], m.Positions[0]
	var centroid Vec3
	for _, p := range m.Positions {
		centroid = centroid.Add(p)
		min = Vec3{math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z)}
		max = Vec3{math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z)}
	}
	m.BoundsMin, m.BoundsMax = min, max
	centroid = centroid.Scale(1 / float64(len(m.Positions)))
	if math.Abs(centroid.X) > RTCThreshold || math.Abs(centroid.Y) > RTCThreshold || math.Abs(centroid.Z) > RTCThreshold {
		m.HasRTC = true
		m.RTCOffset = centroid
		for i := range m.Positions {
			m.Positions[i] = m.Positions[i].Sub(centroid)
		}
	}
}

// Instance is one placement of shared instanced geometry, per spec §3's
// InstancedGeometry.instances entry.
type Instance struct {
	Transform Mat4
	Color     RGBA
	ExpressID uint32
	IFCType   string
}

// InstancedGeometry groups one shared mesh with the placements that
// reference it, produced by mapped-item deduplication (§4.F.7).
type InstancedGeometry struct {
	Positions []Vec3
	Normals   []Vec3
	Triangles []Triangle
	Instances []Instance
}

// GeoReference is the extracted map-conversion georeferencing, per §3.
type GeoReference struct {
	CRSName              string
	Eastings             float64
	Northings            float64
	OrthogonalHeight     float64
	RotationRadians      float64
	Scale                float64
	LengthUnitScaleToM   float64
}

// Helmert applies the map conversion transform from §4.F.6 to a
// project-local point, returning easting/northing/height.
func (g GeoReference) Helmert(p Vec3) (easting, northing, height float64) {
	s := g.Scale
	if s == 0 {
		s = 1
	}
	cos, sin := math.Cos(g.RotationRadians), math.Sin(g.RotationRadians)
	easting = s*(cos*p.X-sin*p.Y) + g.Eastings
	northing = s*(sin*p.X+cos*p.Y) + g.Northings
	height = p.Z + g.OrthogonalHeight
	return
}
