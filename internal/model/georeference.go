package model

import (
	"math"

	"github.com/ifc-lite/ifclite/internal/decode"
	"github.com/ifc-lite/ifclite/internal/geom"
	"github.com/ifc-lite/ifclite/internal/stepindex"
)

// BuildGeoReference extracts the map-conversion georeferencing of spec
// §4.F.6. IFC4 and IFC4X3 carry it as an IfcMapConversion attached to the
// geometric representation context; IFC2X3 has no such entity, so this
// falls back to a best-effort read of a property set literally named
// ePSet_MapConversion, tolerant of any subset of its fields being present.
// Fields never found are left at the GeoReference zero value.
func BuildGeoReference(dec *decode.Decoder, m *Model) geom.GeoReference {
	scale := lengthUnitScale(dec)
	if g, ok := fromMapConversion(dec); ok {
		g.LengthUnitScaleToM = scale
		return g
	}
	g := fromMapConversionPset(m)
	g.LengthUnitScaleToM = scale
	return g
}

func fromMapConversion(dec *decode.Decoder) (geom.GeoReference, bool) {
	idx := dec.Index()
	ids := idx.IDsOfType("IFCMAPCONVERSION")
	if len(ids) == 0 {
		return geom.GeoReference{}, false
	}
	e, err := dec.Decode(ids[0])
	if err != nil {
		return geom.GeoReference{}, false
	}

	var g geom.GeoReference
	if v, ok := e.Attr("Eastings"); ok {
		g.Eastings, _ = v.AsFloat64()
	}
	if v, ok := e.Attr("Northings"); ok {
		g.Northings, _ = v.AsFloat64()
	}
	if v, ok := e.Attr("OrthogonalHeight"); ok {
		g.OrthogonalHeight, _ = v.AsFloat64()
	}

	xAbs, xOrd := 1.0, 0.0
	if v, ok := e.Attr("XAxisAbscissa"); ok {
		if f, ok := v.AsFloat64(); ok {
			xAbs = f
		}
	}
	if v, ok := e.Attr("XAxisOrdinate"); ok {
		if f, ok := v.AsFloat64(); ok {
			xOrd = f
		}
	}
	g.RotationRadians = math.Atan2(xOrd, xAbs)

	g.Scale = 1
	if v, ok := e.Attr("Scale"); ok {
		if f, ok := v.AsFloat64(); ok && f != 0 {
			g.Scale = f
		}
	}

	if target, ok := e.Attr("TargetCRS"); ok {
		if crsID, ok := target.AsRef(); ok {
			if crs, err := dec.Decode(crsID); err == nil {
				if n, ok := crs.Attr("Name"); ok {
					if s, ok := n.AsString(); ok {
						g.CRSName = s
					}
				}
			}
		}
	}
	return g, true
}

// fromMapConversionPset is the IFC2X3 fallback: no IfcMapConversion entity
// exists in that schema, so georeferencing is conventionally carried as an
// extended property set named ePSet_MapConversion, wherever it is attached.
func fromMapConversionPset(m *Model) geom.GeoReference {
	g := geom.GeoReference{Scale: 1}
	psetName := m.Strings.Lookup([]byte("ePSet_MapConversion"))
	if psetName == 0 {
		return g
	}

	xAbs, xOrd := 1.0, 0.0
	haveRotation := false
	for _, row := range m.Properties.Rows {
		if row.PSetNameID != psetName || row.PropType != PropReal {
			continue
		}
		switch m.Strings.String(row.PropNameID) {
		case "Eastings":
			g.Eastings = row.RealVal
		case "Northings":
			g.Northings = row.RealVal
		case "OrthogonalHeight":
			g.OrthogonalHeight = row.RealVal
		case "XAxisAbscissa":
			xAbs, haveRotation = row.RealVal, true
		case "XAxisOrdinate":
			xOrd, haveRotation = row.RealVal, true
		case "Scale":
			if row.RealVal != 0 {
				g.Scale = row.RealVal
			}
		}
	}
	if haveRotation {
		g.RotationRadians = math.Atan2(xOrd, xAbs)
	}
	return g
}

var siPrefixScale = map[string]float64{
	"EXA": 1e18, "PETA": 1e15, "TERA": 1e12, "GIGA": 1e9, "MEGA": 1e6,
	"KILO": 1e3, "HECTO": 1e2, "DECA": 1e1, "DECI": 1e-1, "CENTI": 1e-2,
	"MILLI": 1e-3, "MICRO": 1e-6, "NANO": 1e-9, "PICO": 1e-12,
	"FEMTO": 1e-15, "ATTO": 1e-18,
}

func siUnitScale(e *decode.DecodedEntity) float64 {
	if p, ok := e.Attr("Prefix"); ok && p.Kind == decode.VEnum {
		if f, ok := siPrefixScale[p.Enum]; ok {
			return f
		}
	}
	return 1
}

// lengthUnitScale resolves the model's length unit against IfcProject's
// UnitsInContext, returning the multiplier that converts one model length
// unit into meters. Defaults to 1 (already meters) when unresolvable.
func lengthUnitScale(dec *decode.Decoder) float64 {
	idx := dec.Index()
	projectIDs := idx.IDsOfType("IFCPROJECT")
	if len(projectIDs) != 1 {
		return 1
	}
	proj, err := dec.Decode(projectIDs[0])
	if err != nil {
		return 1
	}
	unitsAttr, ok := proj.Attr("UnitsInContext")
	if !ok {
		return 1
	}
	uaID, ok := unitsAttr.AsRef()
	if !ok {
		return 1
	}
	ua, err := dec.Decode(uaID)
	if err != nil {
		return 1
	}
	unitsList, ok := ua.Attr("Units")
	if !ok {
		return 1
	}
	items, ok := unitsList.AsList()
	if !ok {
		return 1
	}

	for _, item := range items {
		id, ok := item.AsRef()
		if !ok {
			continue
		}
		ref, ok := idx.Lookup(id)
		if !ok {
			continue
		}
		u, err := dec.Decode(id)
		if err != nil {
			continue
		}
		ut, ok := u.Attr("UnitType")
		if !ok || ut.Kind != decode.VEnum || ut.Enum != "LENGTHUNIT" {
			continue
		}
		switch ref.TypeUpper {
		case "IFCSIUNIT":
			return siUnitScale(u)
		case "IFCCONVERSIONBASEDUNIT":
			return conversionBasedUnitScale(dec, idx, u)
		}
	}
	return 1
}

func conversionBasedUnitScale(dec *decode.Decoder, idx *stepindex.Index, u *decode.DecodedEntity) float64 {
	cf, ok := u.Attr("ConversionFactor")
	if !ok {
		return 1
	}
	cfID, ok := cf.AsRef()
	if !ok {
		return 1
	}
	mwu, err := dec.Decode(cfID)
	if err != nil {
		return 1
	}
	val, _ := mwu.Attr("ValueComponent")
	factor, _ := val.AsFloat64()

	if comp, ok := mwu.Attr("UnitComponent"); ok {
		if compID, ok := comp.AsRef(); ok {
			if compRef, ok := idx.Lookup(compID); ok && compRef.TypeUpper == "IFCSIUNIT" {
				if compE, err := dec.Decode(compID); err == nil {
					factor *= siUnitScale(compE)
				}
			}
		}
	}
	if factor == 0 {
		return 1
	}
	return factor
}
