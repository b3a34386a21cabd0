// Package schema implements the schema registry (spec component D): a
// static, per-IFC-version table of entity definitions, their flattened
// attribute lists, and the subtype DAG used for is_subtype_of queries.
package schema

import "github.com/ifc-lite/ifclite/internal/stepindex"

// AttrKind is the declared EXPRESS type tag of an attribute.
type AttrKind uint8

const (
	AttrInteger AttrKind = iota
	AttrReal
	AttrBoolean
	AttrLogical
	AttrString
	AttrEnum
	AttrEntity
	AttrList
	AttrSet
	AttrSelect
	AttrTypeDef
)

// AttrType describes one attribute's declared EXPRESS type.
type AttrType struct {
	Kind        AttrKind
	EnumValues  []string  // AttrEnum
	TargetType  string    // AttrEntity: upper-case name of the referenced entity
	Of          *AttrType // AttrList/AttrSet: element type
	Variants    []string  // AttrSelect: upper-case member type names
	TypeDefName string    // AttrTypeDef: named EXPRESS defined type
}

// AttrDef is one positional attribute of an entity.
type AttrDef struct {
	Name     string
	Type     AttrType
	Optional bool
}

// EntityDef is a flattened (parent attributes first) entity definition.
type EntityDef struct {
	Name       string
	Supertype  string // "" for root entities
	Attributes []AttrDef
}

// Schema is the static per-version registry.
type Schema struct {
	Version    stepindex.SchemaVersion
	Entities   map[string]*EntityDef
	subtypeMemo map[string]map[string]bool
}

// Lookup returns the EntityDef for an upper-cased type name.
func (s *Schema) Lookup(typeUpper string) (*EntityDef, bool) {
	d, ok := s.Entities[typeUpper]
	return d, ok
}

// IsSubtypeOf reports whether a is b or a transitively derives from b, by
// walking the supertype chain (the "DAG" of spec §3 degenerates to a chain
// per entity since EXPRESS single inheritance applies to IFC entities).
func (s *Schema) IsSubtypeOf(a, b string) bool {
	if a == b {
		return true
	}
	if s.subtypeMemo == nil {
		s.subtypeMemo = make(map[string]map[string]bool)
	}
	if m, ok := s.subtypeMemo[a]; ok {
		if v, ok2 := m[b]; ok2 {
			return v
		}
	} else {
		s.subtypeMemo[a] = make(map[string]bool)
	}

	cur := a
	seen := make(map[string]bool)
	for {
		d, ok := s.Entities[cur]
		if !ok || d.Supertype == "" || seen[cur] {
			s.subtypeMemo[a][b] = false
			return false
		}
		seen[cur] = true
		if d.Supertype == b {
			s.subtypeMemo[a][b] = true
			return true
		}
		cur = d.Supertype
	}
}

// For registers the correct static registry for a schema version. Unknown
// versions return (nil, false).
func For(v stepindex.SchemaVersion) (*Schema, bool) {
	switch v {
	case stepindex.SchemaIFC2X3:
		return ifc2x3, true
	case stepindex.SchemaIFC4:
		return ifc4, true
	case stepindex.SchemaIFC4X3:
		return ifc4x3, true
	default:
		return nil, false
	}
}

// entity is a compact constructor used by the per-version data files.
func entity(name, supertype string, attrs ...AttrDef) *EntityDef {
	return &EntityDef{Name: name, Supertype: supertype, Attributes: attrs}
}

func attr(name string, t AttrType) AttrDef      { return AttrDef{Name: name, Type: t} }
func attrOpt(name string, t AttrType) AttrDef    { return AttrDef{Name: name, Type: t, Optional: true} }
func tInt() AttrType                             { return AttrType{Kind: AttrInteger} }
func tReal() AttrType                            { return AttrType{Kind: AttrReal} }
func tBool() AttrType                            { return AttrType{Kind: AttrBoolean} }
func tLogical() AttrType                         { return AttrType{Kind: AttrLogical} }
func tString() AttrType                          { return AttrType{Kind: AttrString} }
func tEnum(values ...string) AttrType            { return AttrType{Kind: AttrEnum, EnumValues: values} }
func tEntity(target string) AttrType             { return AttrType{Kind: AttrEntity, TargetType: target} }
func tList(of AttrType) AttrType                 { return AttrType{Kind: AttrList, Of: &of} }
func tSelect(variants ...string) AttrType        { return AttrType{Kind: AttrSelect, Variants: variants} }

// buildRegistry flattens each entity's own attributes with its ancestors',
// parent attributes first, and returns the finished map.
func buildRegistry(version stepindex.SchemaVersion, defs []*EntityDef) *Schema {
	byName := make(map[string]*EntityDef, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	flattened := make(map[string]*EntityDef, len(defs))
	var flatten func(name string) []AttrDef
	memo := make(map[string][]AttrDef)
	flatten = func(name string) []AttrDef {
		if v, ok := memo[name]; ok {
			return v
		}
		d, ok := byName[name]
		if !ok {
			return nil
		}
		var out []AttrDef
		if d.Supertype != "" {
			out = append(out, flatten(d.Supertype)...)
		}
		out = append(out, d.Attributes...)
		memo[name] = out
		return out
	}
	for _, d := range defs {
		flattened[d.Name] = &EntityDef{
			Name:       d.Name,
			Supertype:  d.Supertype,
			Attributes: flatten(d.Name),
		}
	}
	return &Schema{Version: version, Entities: flattened}
}
