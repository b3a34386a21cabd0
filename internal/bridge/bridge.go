// Package bridge implements the host bridge of spec §4.H: a narrow, flat
// API over an opaque per-model Handle, meant to be exported thinly by the
// root ifclite package to whatever cgo/wasm/FFI layer eventually crosses
// into a host language. Handles are minted with google/uuid rather than
// reused pointers because they must survive a trip across that boundary as
// a plain value.
package bridge

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/google/uuid"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/decode"
	geombuild "github.com/ifc-lite/ifclite/internal/geom/build"
	"github.com/ifc-lite/ifclite/internal/model"
	"github.com/ifc-lite/ifclite/internal/schema"
	"github.com/ifc-lite/ifclite/internal/stepindex"
	"github.com/ifc-lite/ifclite/internal/stream"
)

// Handle is an opaque, process-unique reference to an open model, distinct
// from any IFC GlobalId (its own 22-character base64 codec, per spec §3).
type Handle string

// LoadOptions configures open_model.
type LoadOptions struct {
	// CacheEntries bounds the lazy decoder's LRU cache; <= 0 selects
	// decode.DefaultCacheEntries.
	CacheEntries int
}

// Warning is a per-entity geometry or decode failure that did not abort
// the pass, surfaced to callers via Warnings.
type Warning struct {
	ExpressID uint32
	Kind      errors.ErrorKind
	Message   string
}

type entry struct {
	mu sync.RWMutex

	data  []byte
	idx   *stepindex.Index
	dec   *decode.Decoder
	model *model.Model

	geometry *geombuild.Result
	warnings []Warning

	closed bool
}

var registry sync.Map // Handle -> *entry

// OpenModel indexes, decodes, and builds the columnar model for data,
// storing the result under a freshly minted Handle. The geometry pass is
// deferred to the first GetDataTables call.
func OpenModel(data []byte, opts LoadOptions) (Handle, error) {
	idx, err := stepindex.Build(data)
	if err != nil {
		return "", err
	}
	sch, _ := schema.For(idx.Header.Schema)
	dec, err := decode.New(idx, sch, opts.CacheEntries)
	if err != nil {
		return "", err
	}
	m, err := model.Build(dec)
	if err != nil {
		return "", err
	}

	h := Handle(uuid.NewString())
	registry.Store(h, &entry{data: data, idx: idx, dec: dec, model: m})
	return h, nil
}

func lookup(h Handle) (*entry, bool) {
	v, ok := registry.Load(h)
	if !ok {
		return nil, false
	}
	e := v.(*entry)
	e.mu.RLock()
	closed := e.closed
	e.mu.RUnlock()
	if closed {
		return nil, false
	}
	return e, true
}

func errUnknownHandle(h Handle) error {
	return fmt.Errorf("ifclite: handle %q is closed or unknown", string(h))
}

// IndexedEntityCount reports the total entity count from the STEP index.
func IndexedEntityCount(h Handle) (uint32, bool) {
	e, ok := lookup(h)
	if !ok {
		return 0, false
	}
	return uint32(e.idx.Count()), true
}

// GetEntityAttrs decodes one entity's attributes on demand, per §4.C's lazy
// decode contract.
func GetEntityAttrs(h Handle, expressID uint32) (*decode.DecodedEntity, error) {
	e, ok := lookup(h)
	if !ok {
		return nil, errUnknownHandle(h)
	}
	return e.dec.Decode(expressID)
}

// GetDataTables returns the columnar model, running the geometry kernel on
// first call and caching its result for subsequent calls with the same
// handle. Per-entity geometry warnings accumulate into the handle's
// Warnings.
func GetDataTables(ctx context.Context, h Handle, geomOpts geombuild.Options) (*model.Model, *geombuild.Result, error) {
	e, ok := lookup(h)
	if !ok {
		return nil, nil, errUnknownHandle(h)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.geometry == nil {
		result, err := geombuild.Build(ctx, e.dec, e.model, geomOpts)
		if err != nil {
			return nil, nil, err
		}
		e.geometry = result
		for _, w := range result.Warnings {
			e.warnings = append(e.warnings, Warning{ExpressID: w.ExpressID, Kind: w.Kind, Message: w.Message})
		}
	}
	return e.model, e.geometry, nil
}

// StreamProcess re-runs the full pipeline over the handle's original bytes
// as a push iterator of events, per §4.G. It does not reuse the eagerly
// built model or any cached geometry: a stream_process call is expected to
// carry its own StreamOptions (quality, batch sizing) independent of what
// OpenModel or GetDataTables already computed.
func StreamProcess(ctx context.Context, h Handle, opts stream.Options) (iter.Seq[stream.Event], error) {
	e, ok := lookup(h)
	if !ok {
		return nil, errUnknownHandle(h)
	}
	e.mu.RLock()
	data := e.data
	e.mu.RUnlock()
	return stream.Run(ctx, data, opts), nil
}

// Warnings returns a snapshot of every warning accumulated so far for h.
func Warnings(h Handle) ([]Warning, bool) {
	e, ok := lookup(h)
	if !ok {
		return nil, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Warning(nil), e.warnings...), true
}

// CloseModel releases every buffer owned by h. Idempotent: closing an
// already-closed or unknown handle is a no-op.
func CloseModel(h Handle) {
	v, ok := registry.LoadAndDelete(h)
	if !ok {
		return
	}
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.data, e.idx, e.dec, e.model, e.geometry, e.warnings = nil, nil, nil, nil, nil, nil
}
