// Package build orchestrates the geometry kernel's sub-packages
// (profile, curve, sweep, tessellate, boolean2d, instance, style) into
// the per-product mesh pass described in spec §4.F: walk each product's
// representation, dispatch on item type, apply tier-1 voiding, dedup
// mapped items, resolve color, and finalize RTC/bounds.
//
// When the caller supplies a positive WorkerLimit, products are
// processed concurrently via an errgroup, one goroutine per product,
// each reading the shared immutable decoder/model and writing to its own
// result slot; this is the concrete "caller-supplied executor" of
// spec.md §5.
package build

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/decode"
	"github.com/ifc-lite/ifclite/internal/geom"
	"github.com/ifc-lite/ifclite/internal/geom/instance"
	"github.com/ifc-lite/ifclite/internal/model"
)

// Options controls the geometry pass.
type Options struct {
	// WorkerLimit bounds concurrent product processing. 0 means run
	// single-threaded (spec's "no background threads" default); a
	// negative value means runtime.GOMAXPROCS(0).
	WorkerLimit int

	// EnableInstancing controls whether IfcMappedItem occurrences are
	// deduplicated into InstancedGeometry (spec §4.F.7); when false, each
	// occurrence is inlined as its own standalone mesh.
	EnableInstancing bool

	// EnableVoids controls whether the tier-1 planar-void subtraction of
	// spec §4.F.5 is attempted; when false, hosts keep their unvoided
	// extrusion and openings are ignored.
	EnableVoids bool
}

// Warning records a per-entity geometry failure that did not abort the
// pass, per spec §7's "recoverable per-entity errors" policy.
type Warning struct {
	ExpressID uint32
	Kind      errors.ErrorKind
	Message   string
}

// Result is the geometry kernel's output for one model.
type Result struct {
	Meshes    []*geom.Mesh
	Instances []geom.InstancedGeometry
	Warnings  []Warning
}

// Build walks every entity flagged HasGeometry in m.Entities, producing
// triangulated meshes and deduplicated instanced geometry.
func Build(ctx context.Context, dec *decode.Decoder, m *model.Model, opts Options) (*Result, error) {
	b := &builder{dec: dec, m: m, opts: opts, sourceMeshCache: map[uint32]*geom.Mesh{}, styledItemFor: map[uint32]uint32{}}
	for _, id := range dec.Index().IDsOfType("IFCSTYLEDITEM") {
		e, err := dec.Decode(id)
		if err != nil {
			continue
		}
		if itemRef, ok := attrRef(e, "Item"); ok {
			b.styledItemFor[itemRef] = id
		}
	}

	limit := opts.WorkerLimit
	if limit < 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	type slot struct {
		meshes []*geom.Mesh
		refs   []instance.Reference
		warns  []Warning
	}
	var ids []uint32
	for i, eid := range m.Entities.ExpressID {
		if m.Entities.Flags[i].Has(model.HasGeometry) {
			ids = append(ids, eid)
		}
	}
	slots := make([]slot, len(ids))

	process := func(i int) error {
		meshes, refs, warns := b.processProduct(ids[i])
		slots[i] = slot{meshes: meshes, refs: refs, warns: warns}
		return nil
	}

	if limit == 0 {
		for i := range ids {
			if err := process(i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(limit)
		for i := range ids {
			i := i
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				return process(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	res := &Result{}
	sourceMeshes := map[uint32]*geom.Mesh{}
	var refs []instance.Reference
	for _, s := range slots {
		res.Meshes = append(res.Meshes, s.meshes...)
		res.Warnings = append(res.Warnings, s.warns...)
		refs = append(refs, s.refs...)
	}
	b.mu.Lock()
	for k, v := range b.sourceMeshCache {
		sourceMeshes[k] = v
	}
	b.mu.Unlock()
	if len(refs) > 0 {
		res.Instances = instance.Dedup(refs, sourceMeshes)
	}
	return res, nil
}
