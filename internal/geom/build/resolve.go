package build

import (
	"sync"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/decode"
	"github.com/ifc-lite/ifclite/internal/geom"
	"github.com/ifc-lite/ifclite/internal/geom/curve"
	"github.com/ifc-lite/ifclite/internal/geom/profile"
	"github.com/ifc-lite/ifclite/internal/model"
)

type builder struct {
	dec  *decode.Decoder
	m    *model.Model
	opts Options

	// styledItemFor maps a representation item's express id to the
	// IfcStyledItem targeting it, scanned once up front.
	styledItemFor map[uint32]uint32

	mu              sync.Mutex
	sourceMeshCache map[uint32]*geom.Mesh
}

func (b *builder) decode(id uint32) (*decode.DecodedEntity, error) {
	return b.dec.Decode(id)
}

func vec3FromPoint(e *decode.DecodedEntity) geom.Vec3 {
	coords, _ := e.Attr("Coordinates")
	list, _ := coords.AsList()
	var v geom.Vec3
	if len(list) > 0 {
		v.X, _ = list[0].AsFloat64()
	}
	if len(list) > 1 {
		v.Y, _ = list[1].AsFloat64()
	}
	if len(list) > 2 {
		v.Z, _ = list[2].AsFloat64()
	}
	return v
}

func (b *builder) resolvePoint(ref uint32) geom.Vec3 {
	e, err := b.decode(ref)
	if err != nil {
		return geom.Vec3{}
	}
	return vec3FromPoint(e)
}

func dirFromDirection(e *decode.DecodedEntity) geom.Vec3 {
	ratios, _ := e.Attr("DirectionRatios")
	list, _ := ratios.AsList()
	var v geom.Vec3
	if len(list) > 0 {
		v.X, _ = list[0].AsFloat64()
	}
	if len(list) > 1 {
		v.Y, _ = list[1].AsFloat64()
	}
	if len(list) > 2 {
		v.Z, _ = list[2].AsFloat64()
	}
	return v
}

func (b *builder) resolveDirection(ref uint32, fallback geom.Vec3) geom.Vec3 {
	e, err := b.decode(ref)
	if err != nil {
		return fallback
	}
	return dirFromDirection(e)
}

// resolveAxis2Placement3D builds a rigid transform from an
// IfcAxis2Placement3D, defaulting to the world axes when Axis/RefDirection
// are absent, per IFC's own placement defaulting rule.
func (b *builder) resolveAxis2Placement3D(id uint32) geom.Mat4 {
	e, err := b.decode(id)
	if err != nil {
		return geom.Identity4()
	}
	origin := geom.Vec3{}
	if locRef, ok := attrRef(e, "Location"); ok {
		origin = b.resolvePoint(locRef)
	}
	z := geom.Vec3{X: 0, Y: 0, Z: 1}
	if axisRef, ok := attrRef(e, "Axis"); ok {
		z = b.resolveDirection(axisRef, z).Normalize()
	}
	x := geom.Vec3{X: 1, Y: 0, Z: 0}
	if refRef, ok := attrRef(e, "RefDirection"); ok {
		x = b.resolveDirection(refRef, x)
	}
	x = orthogonalize(x, z).Normalize()
	y := z.Cross(x).Normalize()
	return geom.AxesToMat4(origin, x, y, z)
}

func orthogonalize(x, z geom.Vec3) geom.Vec3 {
	proj := z.Scale(x.Dot(z))
	out := x.Sub(proj)
	if out.Length() < 1e-9 {
		if abs(z.X) < 0.9 {
			out = geom.Vec3{X: 1, Y: 0, Z: 0}
		} else {
			out = geom.Vec3{X: 0, Y: 1, Z: 0}
		}
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// resolveAxis2Placement2D returns a profile-local 2-D placement as
// origin/xAxis/yAxis vectors for profile.Apply.
func (b *builder) resolveAxis2Placement2D(id uint32) (geom.Vec2, geom.Vec2, geom.Vec2) {
	e, err := b.decode(id)
	if err != nil {
		return geom.Vec2{}, geom.Vec2{X: 1}, geom.Vec2{Y: 1}
	}
	origin := geom.Vec2{}
	if locRef, ok := attrRef(e, "Location"); ok {
		p := b.resolvePoint(locRef)
		origin = geom.Vec2{X: p.X, Y: p.Y}
	}
	x := geom.Vec2{X: 1, Y: 0}
	if refRef, ok := attrRef(e, "RefDirection"); ok {
		d := b.resolveDirection(refRef, geom.Vec3{X: 1})
		x = geom.Vec2{X: d.X, Y: d.Y}
	}
	y := geom.Vec2{X: -x.Y, Y: x.X}
	return origin, x, y
}

// resolveObjectPlacement walks IfcLocalPlacement.PlacementRelTo chains
// into a single composed world transform.
func (b *builder) resolveObjectPlacement(ref uint32) geom.Mat4 {
	e, err := b.decode(ref)
	if err != nil {
		return geom.Identity4()
	}
	local := geom.Identity4()
	if relRef, ok := attrRef(e, "RelativePlacement"); ok {
		local = b.resolveAxis2Placement3D(relRef)
	}
	if parentRef, ok := attrRef(e, "PlacementRelTo"); ok {
		return b.resolveObjectPlacement(parentRef).Mul(local)
	}
	return local
}

func attrRef(e *decode.DecodedEntity, name string) (uint32, bool) {
	v, ok := e.Attr(name)
	if !ok || v.IsNull() {
		return 0, false
	}
	return v.AsRef()
}

func attrFloat(e *decode.DecodedEntity, name string, def float64) float64 {
	v, ok := e.Attr(name)
	if !ok || v.IsNull() {
		return def
	}
	f, ok := v.AsFloat64()
	if !ok {
		return def
	}
	return f
}

// resolveProfile dispatches on a profile definition's concrete type.
func (b *builder) resolveProfile(id uint32) (*profile.Profile, error) {
	e, err := b.decode(id)
	if err != nil {
		return nil, err
	}
	var p *profile.Profile
	switch e.TypeUpper {
	case "IFCRECTANGLEPROFILEDEF":
		p = profile.Rectangle(attrFloat(e, "XDim", 0), attrFloat(e, "YDim", 0))
	case "IFCCIRCLEPROFILEDEF":
		p = profile.Circle(attrFloat(e, "Radius", 0))
	case "IFCCIRCLEHOLLOWPROFILEDEF":
		p = profile.CircleHollow(attrFloat(e, "Radius", 0), attrFloat(e, "WallThickness", 0))
	case "IFCRECTANGLEHOLLOWPROFILEDEF":
		p = profile.RectangleHollow(attrFloat(e, "XDim", 0), attrFloat(e, "YDim", 0), attrFloat(e, "WallThickness", 0))
	case "IFCISHAPEPROFILEDEF":
		p = profile.IShape(attrFloat(e, "OverallWidth", 0), attrFloat(e, "OverallDepth", 0), attrFloat(e, "WebThickness", 0), attrFloat(e, "FlangeThickness", 0))
	case "IFCLSHAPEPROFILEDEF":
		width := attrFloat(e, "Width", 0)
		if width == 0 {
			width = attrFloat(e, "Depth", 0)
		}
		p = profile.LShape(attrFloat(e, "Depth", 0), width, attrFloat(e, "Thickness", 0))
	case "IFCUSHAPEPROFILEDEF":
		p = profile.UShape(attrFloat(e, "Depth", 0), attrFloat(e, "FlangeWidth", 0), attrFloat(e, "WebThickness", 0), attrFloat(e, "FlangeThickness", 0))
	case "IFCTSHAPEPROFILEDEF":
		p = profile.TShape(attrFloat(e, "Depth", 0), attrFloat(e, "FlangeWidth", 0), attrFloat(e, "WebThickness", 0), attrFloat(e, "FlangeThickness", 0))
	case "IFCCSHAPEPROFILEDEF":
		p = profile.CShape(attrFloat(e, "Depth", 0), attrFloat(e, "WallThickness", 0), attrFloat(e, "Girth", 0))
	case "IFCZSHAPEPROFILEDEF":
		p = profile.ZShape(attrFloat(e, "Depth", 0), attrFloat(e, "FlangeWidth", 0), attrFloat(e, "WebThickness", 0), attrFloat(e, "FlangeThickness", 0))
	case "IFCARBITRARYCLOSEDPROFILEDEF":
		outer, err := b.resolveCurve2D(mustRef(e, "OuterCurve"))
		if err != nil {
			return nil, err
		}
		p, err = profile.ArbitraryClosed(outer)
		if err != nil {
			return nil, err
		}
	case "IFCARBITRARYPROFILEDEFWITHVOIDS":
		outer, err := b.resolveCurve2D(mustRef(e, "OuterCurve"))
		if err != nil {
			return nil, err
		}
		var inner [][]geom.Vec2
		if v, ok := e.Attr("InnerCurves"); ok {
			if list, ok := v.AsList(); ok {
				for _, item := range list {
					if ref, ok := item.AsRef(); ok {
						loop, err := b.resolveCurve2D(ref)
						if err == nil {
							inner = append(inner, loop)
						}
					}
				}
			}
		}
		p, err = profile.ArbitraryWithVoids(outer, inner)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.NewDiagnostic(errors.ErrProfileInvalid, "unsupported profile type "+e.TypeUpper)
	}
	if posRef, ok := attrRef(e, "Position"); ok {
		origin, x, y := b.resolveAxis2Placement2D(posRef)
		p = p.Apply(origin, x, y)
	}
	return p, nil
}

func mustRef(e *decode.DecodedEntity, name string) uint32 {
	r, _ := attrRef(e, name)
	return r
}

// resolveCurve2D flattens a 2-D-plane curve (used for arbitrary profile
// boundaries) into a loop of Vec2 points, ignoring the Z coordinate of
// its (nominally planar) 3-D control points.
func (b *builder) resolveCurve2D(id uint32) ([]geom.Vec2, error) {
	pts, err := b.resolveCurve3D(id)
	if err != nil {
		return nil, err
	}
	out := make([]geom.Vec2, len(pts))
	for i, p := range pts {
		out[i] = geom.Vec2{X: p.X, Y: p.Y}
	}
	return out, nil
}

func (b *builder) resolveCurve3D(id uint32) ([]geom.Vec3, error) {
	e, err := b.decode(id)
	if err != nil {
		return nil, err
	}
	switch e.TypeUpper {
	case "IFCPOLYLINE":
		var pts []geom.Vec3
		if v, ok := e.Attr("Points"); ok {
			if list, ok := v.AsList(); ok {
				for _, item := range list {
					if ref, ok := item.AsRef(); ok {
						pts = append(pts, b.resolvePoint(ref))
					}
				}
			}
		}
		return curve.Polyline(pts), nil
	case "IFCCIRCLE":
		placementRef, _ := attrRef(e, "Position")
		placement := b.resolveAxis2Placement3D(placementRef)
		radius := attrFloat(e, "Radius", 0)
		origin := placement.TransformPoint(geom.Vec3{})
		x := placement.TransformDirection(geom.Vec3{X: 1})
		y := placement.TransformDirection(geom.Vec3{Y: 1})
		return curve.Circle(origin, x, y, radius), nil
	case "IFCCOMPOSITECURVE":
		var segs [][]geom.Vec3
		if v, ok := e.Attr("Segments"); ok {
			if list, ok := v.AsList(); ok {
				for _, item := range list {
					ref, ok := item.AsRef()
					if !ok {
						continue
					}
					seg, err := b.decode(ref)
					if err != nil {
						continue
					}
					parentRef, ok := attrRef(seg, "ParentCurve")
					if !ok {
						continue
					}
					pts, err := b.resolveCurve3D(parentRef)
					if err != nil {
						continue
					}
					segs = append(segs, pts)
				}
			}
		}
		return curve.Composite(segs)
	case "IFCBSPLINECURVEWITHKNOTS":
		degree := int(attrFloat(e, "Degree", 3))
		var ctrl []geom.Vec3
		if v, ok := e.Attr("ControlPointsList"); ok {
			if list, ok := v.AsList(); ok {
				for _, item := range list {
					if ref, ok := item.AsRef(); ok {
						ctrl = append(ctrl, b.resolvePoint(ref))
					}
				}
			}
		}
		var mult []int
		if v, ok := e.Attr("KnotMultiplicities"); ok {
			if list, ok := v.AsList(); ok {
				for _, item := range list {
					if n, ok := item.AsFloat64(); ok {
						mult = append(mult, int(n))
					}
				}
			}
		}
		var knots []float64
		if v, ok := e.Attr("Knots"); ok {
			if list, ok := v.AsList(); ok {
				for _, item := range list {
					if n, ok := item.AsFloat64(); ok {
						knots = append(knots, n)
					}
				}
			}
		}
		return curve.BSplineWithKnots(degree, ctrl, knots, mult), nil
	default:
		return nil, nil
	}
}
