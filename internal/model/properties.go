package model

import "github.com/ifc-lite/ifclite/internal/strtab"

// PropType tags the uniform encoding of the six IfcProperty subtypes.
type PropType uint8

const (
	PropString PropType = iota
	PropReal
	PropInteger
	PropBoolean
	PropEnum
	PropList
	PropBounded
	PropTable
	PropReference
)

// PropertyRow is one flattened property, resolved from a walk of
// IfcPropertySet/IfcProperty* entities reached via DefinesByProperties.
type PropertyRow struct {
	EntityID     uint32
	PSetNameID   strtab.ID
	PSetGlobalID strtab.ID
	PropNameID   strtab.ID
	PropType     PropType
	StringVal    strtab.ID
	RealVal      float64
	IntVal       int64
	BoolVal      bool
	UnitID       strtab.ID
}

// PropertyTable is the flat set of extracted property rows.
type PropertyTable struct {
	Rows []PropertyRow
}

func (t *PropertyTable) add(row PropertyRow) { t.Rows = append(t.Rows, row) }

// ForEntity returns every property row belonging to entityID.
func (t *PropertyTable) ForEntity(entityID uint32) []PropertyRow {
	var out []PropertyRow
	for _, r := range t.Rows {
		if r.EntityID == entityID {
			out = append(out, r)
		}
	}
	return out
}
