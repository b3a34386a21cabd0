// Package ifclite reads buildingSMART IFC/STEP files into a queryable
// columnar data model plus triangulated 3D meshes. It is a thin, host-
// facing wrapper around internal/bridge's model handles (spec §4.H): every
// exported method here forwards to a bridge call and translates internal
// types to the small, stable public shapes below.
package ifclite

import (
	"context"
	"fmt"
	"iter"

	"github.com/ifc-lite/ifclite/internal/bridge"
	"github.com/ifc-lite/ifclite/internal/decode"
	geombuild "github.com/ifc-lite/ifclite/internal/geom/build"
	"github.com/ifc-lite/ifclite/internal/model"
	"github.com/ifc-lite/ifclite/internal/stream"
)

// Model is one open IFC/STEP file. It owns a bridge.Handle and must be
// closed with Close when no longer needed.
type Model struct {
	handle bridge.Handle
}

// Open indexes, decodes, and builds the columnar model for data. The
// geometry pass runs lazily on the first DataTables call.
func Open(data []byte, opts LoadOptions) (*Model, error) {
	h, err := bridge.OpenModel(data, opts.resolved())
	if err != nil {
		return nil, err
	}
	return &Model{handle: h}, nil
}

// Close releases every buffer owned by m. Idempotent.
func (m *Model) Close() {
	bridge.CloseModel(m.handle)
}

func errClosed(bridge.Handle) error {
	return fmt.Errorf("ifclite: model is closed")
}

// EntityCount returns the total number of entities in the STEP index.
func (m *Model) EntityCount() (uint32, error) {
	n, ok := bridge.IndexedEntityCount(m.handle)
	if !ok {
		return 0, errClosed(m.handle)
	}
	return n, nil
}

// AttrKind tags the union of shapes an Attr can hold, independent of the
// internal decode.Value representation crossed here.
type AttrKind uint8

const (
	AttrNull AttrKind = iota
	AttrString
	AttrReal
	AttrInteger
	AttrBoolean
	AttrEnum
	AttrRef
	AttrList
)

// Attr is one decoded attribute value, recursively unwrapping named
// measure types (VTyped) and reporting lists of Attr for VList.
type Attr struct {
	Kind    AttrKind
	Str     string
	Real    float64
	Int     int64
	Bool    bool
	Ref     uint32
	Wrapper string
	List    []Attr
}

func convertAttr(v decode.Value) Attr {
	switch v.Kind {
	case decode.VString:
		return Attr{Kind: AttrString, Str: v.Str}
	case decode.VReal:
		return Attr{Kind: AttrReal, Real: v.Real}
	case decode.VInteger:
		return Attr{Kind: AttrInteger, Int: v.Int}
	case decode.VBoolean:
		return Attr{Kind: AttrBoolean, Bool: v.Bool}
	case decode.VEnum:
		return Attr{Kind: AttrEnum, Str: v.Enum}
	case decode.VRef:
		return Attr{Kind: AttrRef, Ref: v.Ref}
	case decode.VTyped:
		a := Attr{Kind: AttrNull, Wrapper: v.Wrapper}
		if v.Inner != nil {
			inner := convertAttr(*v.Inner)
			inner.Wrapper = v.Wrapper
			return inner
		}
		return a
	case decode.VList:
		list := make([]Attr, len(v.List))
		for i, e := range v.List {
			list[i] = convertAttr(e)
		}
		return Attr{Kind: AttrList, List: list}
	default:
		return Attr{Kind: AttrNull}
	}
}

// Entity is one decoded entity's attributes, projected for host
// consumption. AttrNames[i] is "" when the type is unknown to the schema
// registry (a proxy entity, decoded positionally).
type Entity struct {
	ExpressID uint32
	Type      string
	AttrNames []string
	Attrs     []Attr
}

// EntityAttrs decodes one entity by express id, per spec §4.H's
// get_entity_attrs.
func (m *Model) EntityAttrs(expressID uint32) (*Entity, error) {
	e, err := bridge.GetEntityAttrs(m.handle, expressID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(e.Attrs))
	attrs := make([]Attr, len(e.Attrs))
	for i, v := range e.Attrs {
		names[i] = e.AttrName(i)
		attrs[i] = convertAttr(v)
	}
	return &Entity{ExpressID: e.ExpressID, Type: e.TypeUpper, AttrNames: names, Attrs: attrs}, nil
}

// DataTables bundles the columnar model with the triangulated geometry
// pass's output, per spec §4.H's get_data_tables.
type DataTables struct {
	Model    *model.Model
	Geometry *geombuild.Result
}

// DataTables returns the model's columnar tables and geometry, running the
// geometry kernel on first call and caching the result for subsequent
// calls on the same Model.
func (m *Model) DataTables(opts GeometryOptions) (*DataTables, error) {
	mm, geo, err := bridge.GetDataTables(context.Background(), m.handle, opts.resolved())
	if err != nil {
		return nil, err
	}
	return &DataTables{Model: mm, Geometry: geo}, nil
}

// StreamProcess walks the model through the full pipeline, returning a
// push iterator of Events in the order fixed by spec §4.G, per §4.H's
// stream_process. Each call re-runs the pipeline independently over the
// model's original bytes; it does not share cached state with DataTables.
func (m *Model) StreamProcess(opts StreamOptions) (iter.Seq[stream.Event], error) {
	resolved, ctx := opts.resolved()
	return bridge.StreamProcess(ctx, m.handle, resolved)
}
