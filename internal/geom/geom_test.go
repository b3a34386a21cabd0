package geom

import (
	"math"
	"testing"
)

func TestMeshFinalizeBounds(t *testing.T) {
	m := &Mesh{Positions: []Vec3{
		{X: -1, Y: -2, Z: -3},
		{X: 4, Y: 5, Z: 6},
		{X: 0, Y: 0, Z: 0},
	}}
	m.Finalize()
	if m.BoundsMin != (Vec3{X: -1, Y: -2, Z: -3}) {
		t.Fatalf("BoundsMin = %+v, want {-1 -2 -3}", m.BoundsMin)
	}
	if m.BoundsMax != (Vec3{X: 4, Y: 5, Z: 6}) {
		t.Fatalf("BoundsMax = %+v, want {4 5 6}", m.BoundsMax)
	}
	if m.HasRTC {
		t.Fatal("HasRTC = true, want false for coordinates below threshold")
	}
}

func TestMeshFinalizeAppliesRTCOffsetAboveThreshold(t *testing.T) {
	orig := RTCThreshold
	RTCThreshold = 10
	defer func() { RTCThreshold = orig }()

	m := &Mesh{Positions: []Vec3{
		{X: 100, Y: 100, Z: 0},
		{X: 102, Y: 100, Z: 0},
		{X: 101, Y: 102, Z: 0},
	}}
	m.Finalize()
	if !m.HasRTC {
		t.Fatal("HasRTC = false, want true for centroid above threshold")
	}
	for _, p := range m.Positions {
		if math.Abs(p.X) > 5 || math.Abs(p.Y) > 5 {
			t.Fatalf("position %+v not re-centered near origin after RTC shift", p)
		}
	}
}

func TestMeshOmitThreshold(t *testing.T) {
	tests := []struct {
		name string
		mesh Mesh
		want bool
	}{
		{"empty", Mesh{}, true},
		{"two vertices one triangle", Mesh{Positions: []Vec3{{}, {}}, Triangles: []Triangle{{0, 0, 1}}}, true},
		{"three vertices no triangles", Mesh{Positions: []Vec3{{}, {}, {}}}, true},
		{"three vertices one triangle", Mesh{Positions: []Vec3{{}, {}, {}}, Triangles: []Triangle{{0, 1, 2}}}, false},
	}
	for _, tt := range tests {
		if got := tt.mesh.Omit(); got != tt.want {
			t.Errorf("%s: Omit() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMat4TranslationRoundTrip(t *testing.T) {
	m := Translation4(Vec3{X: 1, Y: 2, Z: 3})
	p := m.TransformPoint(Vec3{X: 0, Y: 0, Z: 0})
	if p != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("TransformPoint() = %+v, want {1 2 3}", p)
	}
	inv := m.InverseRigid()
	back := inv.TransformPoint(p)
	if back.Sub(Vec3{}).Length() > 1e-9 {
		t.Fatalf("InverseRigid() round trip = %+v, want origin", back)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := AxesToMat4(Vec3{X: 1, Y: 2, Z: 3}, Vec3{X: 1, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}, Vec3{X: 0, Y: 0, Z: 1})
	if got := m.Mul(Identity4()); got != m {
		t.Fatalf("m*I = %+v, want %+v", got, m)
	}
}

func TestGeoReferenceHelmert(t *testing.T) {
	g := GeoReference{Eastings: 1000, Northings: 2000, OrthogonalHeight: 50, RotationRadians: math.Pi / 2, Scale: 1}
	e, n, h := g.Helmert(Vec3{X: 1, Y: 0, Z: 5})
	if math.Abs(e-1000) > 1e-9 {
		t.Errorf("easting = %v, want ~1000 (rotated x lands on cos(90)=0 offset)", e)
	}
	if math.Abs(n-2001) > 1e-9 {
		t.Errorf("northing = %v, want ~2001", n)
	}
	if math.Abs(h-55) > 1e-9 {
		t.Errorf("height = %v, want 55", h)
	}
}
