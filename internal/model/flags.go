package model

// Flags is a small fixed-purpose bitset attached to each EntityTable row,
// shaped like the word-slice bitsets used elsewhere in this codebase's
// lineage (one word suffices for the handful of cached predicates below).
type Flags uint64

const (
	HasGeometry Flags = 1 << iota
	IsTypeObject
	IsSpatialElement
	HasOpenings
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }
func (f *Flags) Set(bit Flags)     { *f |= bit }
