// Package stream implements the streaming driver (spec component G): a
// single-threaded, cooperatively cancellable pump that walks a STEP-21 file
// through indexing, decoding, model construction, and the geometry kernel,
// yielding a deterministic sequence of Events along the way. It never
// spawns a background goroutine; Run's iterator executes entirely on the
// caller's own goroutine, suspending only where it yields an Event.
package stream

import (
	"context"
	"iter"
	"time"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/decode"
	"github.com/ifc-lite/ifclite/internal/geom"
	geombuild "github.com/ifc-lite/ifclite/internal/geom/build"
	"github.com/ifc-lite/ifclite/internal/geom/curve"
	"github.com/ifc-lite/ifclite/internal/geom/profile"
	"github.com/ifc-lite/ifclite/internal/model"
	"github.com/ifc-lite/ifclite/internal/schema"
	"github.com/ifc-lite/ifclite/internal/stepindex"
)

// Quality selects the tessellation chord-tolerance tier of spec §6.
type Quality uint8

const (
	QualityFast Quality = iota
	QualityBalanced
	QualityHigh
)

// chordToleranceFor maps a Quality level to the chord tolerance shared by
// the curve and profile packages' circle/arc discretization.
func chordToleranceFor(q Quality) float64 {
	switch q {
	case QualityFast:
		return 0.05
	case QualityHigh:
		return 0.0025
	default:
		return 0.01
	}
}

// Options controls one Run, per spec §6's StreamOptions.
type Options struct {
	Quality                  Quality
	SizeThresholdBytes       int64
	InitialBatchSize         int
	MaxBatchSize             int
	CoordinateShiftThreshold float64
	EnableInstancing         bool
	EnableVoids              bool

	// WorkerLimit is passed through to the geometry kernel's per-product
	// fan-out (0 = serial, negative = runtime.GOMAXPROCS(0)).
	WorkerLimit int

	// CacheEntries bounds the decoder's LRU cache; <= 0 selects
	// decode.DefaultCacheEntries.
	CacheEntries int
}

// DefaultOptions returns the spec's documented defaults.
func DefaultOptions() Options {
	return Options{
		Quality:                  QualityBalanced,
		SizeThresholdBytes:       2 << 20,
		InitialBatchSize:         50,
		MaxBatchSize:             500,
		CoordinateShiftThreshold: 1e4,
		EnableInstancing:         true,
		EnableVoids:              true,
	}
}

func (o Options) resolved() Options {
	if o.SizeThresholdBytes <= 0 {
		o.SizeThresholdBytes = 2 << 20
	}
	if o.InitialBatchSize <= 0 {
		o.InitialBatchSize = 50
	}
	if o.MaxBatchSize <= 0 {
		o.MaxBatchSize = 500
	}
	if o.CoordinateShiftThreshold <= 0 {
		o.CoordinateShiftThreshold = 1e4
	}
	return o
}

// Kind tags the union of events a Run emits, per spec §4.G/§6.
type Kind uint8

const (
	KindStarted Kind = iota
	KindIndexed
	KindEntityBatch
	KindMeshBatch
	KindPropertiesReady
	KindRelationshipsReady
	KindSpatialHierarchyReady
	KindProgress
	KindCompleted
	KindError
)

// Phase names the coarse stage a Progress event reports on.
type Phase string

const (
	PhaseIndexing      Phase = "indexing"
	PhaseEntities      Phase = "entities"
	PhaseProperties    Phase = "properties"
	PhaseRelationships Phase = "relationships"
	PhaseSpatial       Phase = "spatial"
	PhaseGeometry      Phase = "geometry"
)

// Event is one point in the ordered sequence a Run produces. Only the
// fields relevant to Kind are populated; the rest are zero.
type Event struct {
	Kind Kind

	// KindStarted
	FileSize uint64

	// KindIndexed
	EntityCount int

	// KindEntityBatch: express ids in textual order.
	Entities []uint32

	// KindMeshBatch
	Meshes      []*geom.Mesh
	MeshesTotal int

	// KindPropertiesReady / KindRelationshipsReady / KindSpatialHierarchyReady
	Model *model.Model

	// KindProgress
	Phase   Phase
	Percent float64

	// KindCompleted
	DurationMs int64
	Geometry   *geombuild.Result

	// KindError
	ErrKind errors.ErrorKind
	Message string
}

// Run walks data through the full pipeline, returning a push iterator of
// Events in the order spec §4.G fixes: Started, Indexed, EntityBatch*,
// PropertiesReady, RelationshipsReady, SpatialHierarchyReady, MeshBatch*,
// Progress interleaved throughout, and a terminal Completed or Error.
// Cancellation is checked at every batch boundary; the caller cancels ctx
// to request it, and Run yields a single Error{Kind: ErrCancelled} in
// response before returning.
func Run(ctx context.Context, data []byte, opts Options) iter.Seq[Event] {
	opts = opts.resolved()
	return func(yield func(Event) bool) {
		start := time.Now()
		restoreTol := setChordTolerance(chordToleranceFor(opts.Quality))
		defer restoreTol()
		restoreRTC := setRTCThreshold(opts.CoordinateShiftThreshold)
		defer restoreRTC()

		if !yield(Event{Kind: KindStarted, FileSize: uint64(len(data))}) {
			return
		}

		idx, err := stepindex.Build(data)
		if err != nil {
			yield(errEvent(err))
			return
		}
		if !yield(Event{Kind: KindIndexed, EntityCount: idx.Count()}) {
			return
		}

		if canceled(ctx, yield) {
			return
		}

		if !emitEntityBatches(ctx, idx, int64(len(data)), opts, yield) {
			return
		}

		sch, _ := schema.For(idx.Header.Schema)
		dec, err := decode.New(idx, sch, opts.CacheEntries)
		if err != nil {
			yield(errEvent(err))
			return
		}

		if !yield(Event{Kind: KindProgress, Phase: PhaseProperties, Percent: 40}) {
			return
		}
		m, err := model.Build(dec)
		if err != nil {
			yield(errEvent(err))
			return
		}
		if !yield(Event{Kind: KindPropertiesReady, Model: m}) {
			return
		}
		if !yield(Event{Kind: KindRelationshipsReady, Model: m}) {
			return
		}
		if !yield(Event{Kind: KindSpatialHierarchyReady, Model: m}) {
			return
		}

		if canceled(ctx, yield) {
			return
		}

		if !yield(Event{Kind: KindProgress, Phase: PhaseGeometry, Percent: 70}) {
			return
		}
		result, err := geombuild.Build(ctx, dec, m, geombuild.Options{
				WorkerLimit:      opts.WorkerLimit,
				EnableInstancing: opts.EnableInstancing,
				EnableVoids:      opts.EnableVoids,
			})
		if err != nil {
			yield(errEvent(err))
			return
		}

		if !emitMeshBatches(ctx, result.Meshes, int64(len(data)), opts, yield) {
			return
		}

		if !yield(Event{Kind: KindProgress, Phase: PhaseGeometry, Percent: 100}) {
			return
		}
		yield(Event{Kind: KindCompleted, DurationMs: time.Since(start).Milliseconds(), Geometry: result})
	}
}

// setChordTolerance overrides the profile/curve packages' shared circle
// tolerance for the duration of one Run, returning a func that restores the
// previous value. This is a deliberately narrow hook: quality only affects
// arc discretization, so a package-level var suffices without threading a
// tolerance parameter through every profile/curve/sweep call.
func setChordTolerance(tol float64) func() {
	prevProfile, prevCurve := profile.ChordTolerance, curve.ChordTolerance
	profile.ChordTolerance, curve.ChordTolerance = tol, tol
	return func() {
		profile.ChordTolerance, curve.ChordTolerance = prevProfile, prevCurve
	}
}

func setRTCThreshold(threshold float64) func() {
	prev := geom.RTCThreshold
	geom.RTCThreshold = threshold
	return func() { geom.RTCThreshold = prev }
}

func canceled(ctx context.Context, yield func(Event) bool) bool {
	select {
	case <-ctx.Done():
		yield(Event{Kind: KindError, ErrKind: errors.ErrCancelled, Message: ctx.Err().Error()})
		return true
	default:
		return false
	}
}

func errEvent(err error) Event {
	if diags, ok := errors.AsDiagnostics(err); ok && len(diags) > 0 {
		return Event{Kind: KindError, ErrKind: diags[0].Kind, Message: err.Error()}
	}
	return Event{Kind: KindError, ErrKind: errors.ErrMalformed, Message: err.Error()}
}

// batchSizes computes the growing batch-size sequence of spec §4.G:
// initial_batch_size, doubling per batch, capped at max_batch_size, until
// total items are covered. Files at or under sizeThreshold collapse to a
// single batch, per §6's "may skip batching" allowance.
func batchSizes(total int, fileSize, sizeThreshold int64, initial, max int) []int {
	if total == 0 {
		return nil
	}
	if fileSize <= sizeThreshold {
		return []int{total}
	}
	var sizes []int
	remaining, size := total, initial
	for remaining > 0 {
		n := size
		if n > remaining {
			n = remaining
		}
		sizes = append(sizes, n)
		remaining -= n
		size *= 2
		if size > max {
			size = max
		}
	}
	return sizes
}

func emitEntityBatches(ctx context.Context, idx *stepindex.Index, fileSize int64, opts Options, yield func(Event) bool) bool {
	sizes := batchSizes(len(idx.Order), fileSize, opts.SizeThresholdBytes, opts.InitialBatchSize, opts.MaxBatchSize)
	pos := 0
	for _, n := range sizes {
		if canceled(ctx, yield) {
			return false
		}
		batch := idx.Order[pos : pos+n]
		pos += n
		if !yield(Event{Kind: KindEntityBatch, Entities: batch}) {
			return false
		}
		pct := 10 + 20*float64(pos)/float64(len(idx.Order))
		if !yield(Event{Kind: KindProgress, Phase: PhaseEntities, Percent: pct}) {
			return false
		}
	}
	return true
}

func emitMeshBatches(ctx context.Context, meshes []*geom.Mesh, fileSize int64, opts Options, yield func(Event) bool) bool {
	visible := make([]*geom.Mesh, 0, len(meshes))
	for _, mesh := range meshes {
		if !mesh.Omit() {
			visible = append(visible, mesh)
		}
	}
	sizes := batchSizes(len(visible), fileSize, opts.SizeThresholdBytes, opts.InitialBatchSize, opts.MaxBatchSize)
	pos := 0
	for _, n := range sizes {
		if canceled(ctx, yield) {
			return false
		}
		batch := visible[pos : pos+n]
		pos += n
		if !yield(Event{Kind: KindMeshBatch, Meshes: batch, MeshesTotal: pos}) {
			return false
		}
	}
	return true
}
