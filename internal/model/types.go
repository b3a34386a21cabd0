// Package model builds the columnar data model (spec component E): the
// EntityTable, RelationshipGraph, PropertyTable, QuantityTable and
// SpatialHierarchy, in one forward pass over a decoder and schema.
package model

// TypeEnum is a per-schema closed enumeration of the IFC types this
// implementation classifies. Types outside this set still get a row (if
// they are schema-known IfcRoot subtypes) tagged TypeGeneric.
type TypeEnum uint16

const (
	TypeUnknown TypeEnum = iota
	TypeProject
	TypeSite
	TypeBuilding
	TypeBuildingStorey
	TypeSpace
	TypeWall
	TypeSlab
	TypeColumn
	TypeBeam
	TypeDoor
	TypeWindow
	TypeRoof
	TypeStair
	TypeRailing
	TypeCovering
	TypeFurnishingElement
	TypeMember
	TypePlate
	TypeBuildingElementProxy
	TypeOpeningElement
	TypeGeneric
)

var typeEnumByName = map[string]TypeEnum{
	"IFCPROJECT":              TypeProject,
	"IFCSITE":                 TypeSite,
	"IFCBUILDING":             TypeBuilding,
	"IFCBUILDINGSTOREY":       TypeBuildingStorey,
	"IFCSPACE":                TypeSpace,
	"IFCWALL":                 TypeWall,
	"IFCWALLSTANDARDCASE":     TypeWall,
	"IFCSLAB":                 TypeSlab,
	"IFCCOLUMN":               TypeColumn,
	"IFCBEAM":                 TypeBeam,
	"IFCDOOR":                 TypeDoor,
	"IFCWINDOW":               TypeWindow,
	"IFCROOF":                 TypeRoof,
	"IFCSTAIR":                TypeStair,
	"IFCRAILING":              TypeRailing,
	"IFCCOVERING":             TypeCovering,
	"IFCFURNISHINGELEMENT":    TypeFurnishingElement,
	"IFCMEMBER":               TypeMember,
	"IFCPLATE":                TypePlate,
	"IFCBUILDINGELEMENTPROXY": TypeBuildingElementProxy,
	"IFCOPENINGELEMENT":       TypeOpeningElement,
}

// classify maps an upper-case IFC type name to its TypeEnum, defaulting to
// TypeGeneric for any schema-known IfcRoot subtype outside the curated set.
func classify(typeUpper string) TypeEnum {
	if e, ok := typeEnumByName[typeUpper]; ok {
		return e
	}
	return TypeGeneric
}
