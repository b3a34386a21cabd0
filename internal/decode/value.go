// Package decode implements the lazy entity decoder (spec component C): on
// demand, it retokenizes one entity's argument list into a DecodedEntity
// whose attributes are positionally (and, via the schema, by name) aligned
// with its type's attribute list, and caches the result.
package decode

// ValueKind is the tag of the AttributeValue sum type from spec §3.
type ValueKind uint8

const (
	VInteger ValueKind = iota
	VReal
	VBoolean
	VLogical
	VString
	VEnum
	VRef
	VTyped
	VList
	VNull
	VDerived
)

// Logical is the three-valued XSD/STEP logical: .T./.F./.U.
type Logical uint8

const (
	LogicalUnknown Logical = iota
	LogicalTrue
	LogicalFalse
)

// Value is one AttributeValue as defined in spec §3.
type Value struct {
	Kind ValueKind

	Int     int64
	Real    float64
	Bool    bool
	Logic   Logical
	Str     string
	Enum    string
	Ref     uint32
	Wrapper string // VTyped: the upper-case wrapper name, e.g. IFCLABEL
	Inner   *Value // VTyped: the wrapped value
	List    []Value
}

// IsNull reports whether the value is the STEP "$" absent marker.
func (v Value) IsNull() bool { return v.Kind == VNull }

// AsFloat64 returns the value as a float64 for VInteger/VReal, unwrapping a
// VTyped measure value transparently (IFC wraps most numeric measures in a
// named type, e.g. IFCPOSITIVELENGTHMEASURE(3.0)).
func (v Value) AsFloat64() (float64, bool) {
	switch v.Kind {
	case VReal:
		return v.Real, true
	case VInteger:
		return float64(v.Int), true
	case VTyped:
		if v.Inner != nil {
			return v.Inner.AsFloat64()
		}
	}
	return 0, false
}

// AsString returns the value as a string for VString, unwrapping VTyped.
func (v Value) AsString() (string, bool) {
	switch v.Kind {
	case VString:
		return v.Str, true
	case VTyped:
		if v.Inner != nil {
			return v.Inner.AsString()
		}
	}
	return "", false
}

// AsRef returns the express id for VRef values.
func (v Value) AsRef() (uint32, bool) {
	if v.Kind == VRef {
		return v.Ref, true
	}
	return 0, false
}

// AsList returns the element slice for VList values.
func (v Value) AsList() ([]Value, bool) {
	if v.Kind == VList {
		return v.List, true
	}
	return nil, false
}

// AsBool interprets VBoolean and VEnum(".T."/".F.") uniformly.
func (v Value) AsBool() (bool, bool) {
	switch v.Kind {
	case VBoolean:
		return v.Bool, true
	case VEnum:
		switch v.Enum {
		case "T":
			return true, true
		case "F":
			return false, true
		}
	}
	return false, false
}
