package model

import "github.com/ifc-lite/ifclite/internal/strtab"

// EntityTable is the columnar table of every IfcRoot-subtype entity
// extracted from the file. Parallel arrays, indexed by row.
type EntityTable struct {
	ExpressID   []uint32
	TypeEnum    []TypeEnum
	GlobalID    []strtab.ID // 0 means absent (see DESIGN.md: Go's zero value replaces spec's -1 sentinel)
	Name        []strtab.ID
	Description []strtab.ID
	ObjectType  []strtab.ID
	Flags       []Flags

	rowOf map[uint32]int
}

func newEntityTable() *EntityTable {
	return &EntityTable{rowOf: make(map[uint32]int)}
}

func (t *EntityTable) add(id uint32, te TypeEnum, globalID, name, desc, objType strtab.ID, flags Flags) {
	t.rowOf[id] = len(t.ExpressID)
	t.ExpressID = append(t.ExpressID, id)
	t.TypeEnum = append(t.TypeEnum, te)
	t.GlobalID = append(t.GlobalID, globalID)
	t.Name = append(t.Name, name)
	t.Description = append(t.Description, desc)
	t.ObjectType = append(t.ObjectType, objType)
	t.Flags = append(t.Flags, flags)
}

// Row returns the row index for express id, or (-1, false) if absent.
func (t *EntityTable) Row(id uint32) (int, bool) {
	r, ok := t.rowOf[id]
	return r, ok
}

// Count returns the number of rows.
func (t *EntityTable) Count() int { return len(t.ExpressID) }

// Contains reports whether id was extracted into the table.
func (t *EntityTable) Contains(id uint32) bool {
	_, ok := t.rowOf[id]
	return ok
}
