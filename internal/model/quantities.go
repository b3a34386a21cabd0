package model

import "github.com/ifc-lite/ifclite/internal/strtab"

// QuantType tags the six IfcQuantity* subtypes uniformly.
type QuantType uint8

const (
	QuantLength QuantType = iota
	QuantArea
	QuantVolume
	QuantCount
	QuantWeight
	QuantTime
)

// QuantityRow is one flattened quantity, resolved from a walk of
// IfcElementQuantity/IfcQuantity* entities reached via DefinesByProperties.
type QuantityRow struct {
	EntityID     uint32
	QSetNameID   strtab.ID
	QSetGlobalID strtab.ID
	QNameID      strtab.ID
	QType        QuantType
	Value        float64
	UnitID       strtab.ID
}

// QuantityTable is the flat set of extracted quantity rows.
type QuantityTable struct {
	Rows []QuantityRow
}

func (t *QuantityTable) add(row QuantityRow) { t.Rows = append(t.Rows, row) }

// ForEntity returns every quantity row belonging to entityID.
func (t *QuantityTable) ForEntity(entityID uint32) []QuantityRow {
	var out []QuantityRow
	for _, r := range t.Rows {
		if r.EntityID == entityID {
			out = append(out, r)
		}
	}
	return out
}
