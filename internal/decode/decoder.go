package decode

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/schema"
	"github.com/ifc-lite/ifclite/internal/stepindex"
)

// DecodedEntity is one decoded entity: its attributes, positionally aligned
// with the schema's flattened attribute list when the type is known.
type DecodedEntity struct {
	ExpressID uint32
	TypeUpper string
	Attrs     []Value
	def       *schema.EntityDef // nil for unknown/proxy types
}

// IsProxy reports whether the entity's type is unknown to the schema
// registry: it was decoded positionally with no attribute names.
func (e *DecodedEntity) IsProxy() bool { return e.def == nil }

// Attr returns the named attribute's value. Returns (Value{}, false) if the
// type is a proxy, the name is unknown, or the attribute was elided (STEP
// permits omitting trailing optional attributes).
func (e *DecodedEntity) Attr(name string) (Value, bool) {
	if e.def == nil {
		return Value{}, false
	}
	for i, a := range e.def.Attributes {
		if a.Name == name {
			if i >= len(e.Attrs) {
				return Value{}, false
			}
			return e.Attrs[i], true
		}
	}
	return Value{}, false
}

// At returns the attribute at positional index i.
func (e *DecodedEntity) At(i int) (Value, bool) {
	if i < 0 || i >= len(e.Attrs) {
		return Value{}, false
	}
	return e.Attrs[i], true
}

// AttrName returns the schema attribute name at positional index i, or ""
// for a proxy entity or an out-of-range index.
func (e *DecodedEntity) AttrName(i int) string {
	if e.def == nil || i < 0 || i >= len(e.def.Attributes) {
		return ""
	}
	return e.def.Attributes[i].Name
}

// DefaultCacheEntries is the default number of decoded entities retained in
// the decoder's LRU cache (spec §5: "decoded cache, bounded by LRU").
const DefaultCacheEntries = 4096

// Decoder produces DecodedEntity values on demand from an EntityIndex,
// caching them by express id. Decoding never follows references.
type Decoder struct {
	idx    *stepindex.Index
	schema *schema.Schema
	cache  *lru.Cache[uint32, *DecodedEntity]
}

// New builds a Decoder over idx, resolving attribute names against sch
// (which may be nil, in which case every entity decodes as a proxy).
// cacheEntries <= 0 selects DefaultCacheEntries.
func New(idx *stepindex.Index, sch *schema.Schema, cacheEntries int) (*Decoder, error) {
	if cacheEntries <= 0 {
		cacheEntries = DefaultCacheEntries
	}
	cache, err := lru.New[uint32, *DecodedEntity](cacheEntries)
	if err != nil {
		return nil, err
	}
	return &Decoder{idx: idx, schema: sch, cache: cache}, nil
}

// Decode returns the DecodedEntity for id, decoding and caching it on the
// first request.
func (d *Decoder) Decode(id uint32) (*DecodedEntity, error) {
	if v, ok := d.cache.Get(id); ok {
		return v, nil
	}
	ref, ok := d.idx.Lookup(id)
	if !ok {
		return nil, errors.DiagnosticList{errors.NewDiagnosticf(errors.ErrDanglingReference, "no entity #%d", id).AtEntity(id)}
	}

	vals, err := parseTopLevelArgs(d.idx.Data, ref.ArgsStart, ref.ArgsEnd, ref.Line)
	if err != nil {
		return nil, err
	}

	var def *schema.EntityDef
	if d.schema != nil {
		def, _ = d.schema.Lookup(ref.TypeUpper)
	}
	if def != nil && len(vals) > len(def.Attributes) {
		return nil, errors.DiagnosticList{errors.NewDiagnosticf(errors.ErrArityMismatch,
			"entity #%d (%s): got %d attributes, schema declares %d", id, ref.TypeUpper, len(vals), len(def.Attributes)).AtEntity(id)}
	}

	entity := &DecodedEntity{ExpressID: id, TypeUpper: ref.TypeUpper, Attrs: vals, def: def}
	d.cache.Add(id, entity)
	return entity, nil
}

// IsSubtypeOf is a convenience passthrough used by callers that only hold a
// Decoder (e.g. the model builder) rather than a *schema.Schema directly.
func (d *Decoder) IsSubtypeOf(typeUpper, ancestor string) bool {
	if d.schema == nil {
		return false
	}
	return d.schema.IsSubtypeOf(typeUpper, ancestor)
}

// Schema returns the underlying schema registry, or nil.
func (d *Decoder) Schema() *schema.Schema { return d.schema }

// Index returns the underlying entity index.
func (d *Decoder) Index() *stepindex.Index { return d.idx }

// TypeIsUpper is a small helper kept for readability at call sites that
// build type names from mixed-case IFC identifiers found in configuration.
func TypeIsUpper(name string) string { return strings.ToUpper(name) }
