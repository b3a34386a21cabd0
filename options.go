package ifclite

import (
	"context"

	"github.com/ifc-lite/ifclite/internal/bridge"
	geombuild "github.com/ifc-lite/ifclite/internal/geom/build"
	"github.com/ifc-lite/ifclite/internal/stream"
)

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved(def int) int {
	if !o.set {
		return def
	}
	return o.value
}

type floatOption struct {
	value float64
	set   bool
}

func (o floatOption) resolved(def float64) float64 {
	if !o.set {
		return def
	}
	return o.value
}

type boolOption struct {
	value bool
	set   bool
}

func (o boolOption) resolved(def bool) bool {
	if !o.set {
		return def
	}
	return o.value
}

// LoadOptions configures Open.
type LoadOptions struct {
	cacheEntries intOption
}

// NewLoadOptions returns a default, valid LoadOptions value.
func NewLoadOptions() LoadOptions { return LoadOptions{} }

// WithCacheEntries bounds the lazy decoder's LRU cache (0 selects the
// package default).
func (o LoadOptions) WithCacheEntries(n int) LoadOptions {
	o.cacheEntries = intOption{value: n, set: true}
	return o
}

func (o LoadOptions) resolved() bridge.LoadOptions {
	return bridge.LoadOptions{CacheEntries: o.cacheEntries.resolved(0)}
}

// GeometryOptions configures DataTables' geometry pass.
type GeometryOptions struct {
	workerLimit      intOption
	enableInstancing boolOption
	enableVoids      boolOption
}

// NewGeometryOptions returns a default, valid GeometryOptions value:
// single-threaded, instancing and voiding both enabled.
func NewGeometryOptions() GeometryOptions { return GeometryOptions{} }

// WithWorkerLimit bounds concurrent per-product processing (0 = serial,
// negative = runtime.GOMAXPROCS(0)).
func (o GeometryOptions) WithWorkerLimit(n int) GeometryOptions {
	o.workerLimit = intOption{value: n, set: true}
	return o
}

// WithEnableInstancing controls IfcMappedItem deduplication into
// InstancedGeometry (default true).
func (o GeometryOptions) WithEnableInstancing(v bool) GeometryOptions {
	o.enableInstancing = boolOption{value: v, set: true}
	return o
}

// WithEnableVoids controls the tier-1 planar-void subtraction pass
// (default true).
func (o GeometryOptions) WithEnableVoids(v bool) GeometryOptions {
	o.enableVoids = boolOption{value: v, set: true}
	return o
}

func (o GeometryOptions) resolved() geombuild.Options {
	return geombuild.Options{
		WorkerLimit:      o.workerLimit.resolved(0),
		EnableInstancing: o.enableInstancing.resolved(true),
		EnableVoids:      o.enableVoids.resolved(true),
	}
}

// Quality selects the tessellation chord-tolerance tier of spec §6.
type Quality = stream.Quality

const (
	QualityFast     = stream.QualityFast
	QualityBalanced = stream.QualityBalanced
	QualityHigh     = stream.QualityHigh
)

// StreamOptions configures StreamProcess, per spec §6's StreamOptions.
type StreamOptions struct {
	quality                  Quality
	sizeThresholdBytes       intOption
	initialBatchSize         intOption
	maxBatchSize             intOption
	coordinateShiftThreshold floatOption
	enableInstancing         boolOption
	enableVoids              boolOption
	workerLimit              intOption
	cacheEntries             intOption
	cancelCtx                context.Context
}

// NewStreamOptions returns the spec's documented defaults.
func NewStreamOptions() StreamOptions {
	return StreamOptions{quality: QualityBalanced}
}

// WithQuality sets the chord-tolerance tier.
func (o StreamOptions) WithQuality(q Quality) StreamOptions {
	o.quality = q
	return o
}

// WithSizeThresholdBytes sets the fast-path threshold below which the
// driver may collapse batching into one pass (default 2 MiB).
func (o StreamOptions) WithSizeThresholdBytes(n int64) StreamOptions {
	o.sizeThresholdBytes = intOption{value: int(n), set: true}
	return o
}

// WithInitialBatchSize sets the first entity/mesh batch size (default 50).
func (o StreamOptions) WithInitialBatchSize(n int) StreamOptions {
	o.initialBatchSize = intOption{value: n, set: true}
	return o
}

// WithMaxBatchSize caps batch growth (default 500).
func (o StreamOptions) WithMaxBatchSize(n int) StreamOptions {
	o.maxBatchSize = intOption{value: n, set: true}
	return o
}

// WithCoordinateShiftThreshold sets the |centroid component| above which a
// mesh gets an RTC offset (default 1e4 project units).
func (o StreamOptions) WithCoordinateShiftThreshold(v float64) StreamOptions {
	o.coordinateShiftThreshold = floatOption{value: v, set: true}
	return o
}

// WithEnableInstancing controls mapped-item deduplication (default true).
func (o StreamOptions) WithEnableInstancing(v bool) StreamOptions {
	o.enableInstancing = boolOption{value: v, set: true}
	return o
}

// WithEnableVoids controls tier-1 planar voiding (default true).
func (o StreamOptions) WithEnableVoids(v bool) StreamOptions {
	o.enableVoids = boolOption{value: v, set: true}
	return o
}

// WithWorkerLimit bounds the geometry kernel's per-product fan-out.
func (o StreamOptions) WithWorkerLimit(n int) StreamOptions {
	o.workerLimit = intOption{value: n, set: true}
	return o
}

// WithCacheEntries bounds the decoder's LRU cache for this run.
func (o StreamOptions) WithCacheEntries(n int) StreamOptions {
	o.cacheEntries = intOption{value: n, set: true}
	return o
}

// WithCancel supplies the cancellation context polled at batch boundaries,
// per spec §6's cancel_token.
func (o StreamOptions) WithCancel(ctx context.Context) StreamOptions {
	o.cancelCtx = ctx
	return o
}

func (o StreamOptions) resolved() (stream.Options, context.Context) {
	ctx := o.cancelCtx
	if ctx == nil {
		ctx = context.Background()
	}
	def := stream.DefaultOptions()
	return stream.Options{
		Quality:                  o.quality,
		SizeThresholdBytes:       int64(o.sizeThresholdBytes.resolved(int(def.SizeThresholdBytes))),
		InitialBatchSize:         o.initialBatchSize.resolved(def.InitialBatchSize),
		MaxBatchSize:             o.maxBatchSize.resolved(def.MaxBatchSize),
		CoordinateShiftThreshold: o.coordinateShiftThreshold.resolved(def.CoordinateShiftThreshold),
		EnableInstancing:         o.enableInstancing.resolved(def.EnableInstancing),
		EnableVoids:              o.enableVoids.resolved(def.EnableVoids),
		WorkerLimit:              o.workerLimit.resolved(0),
		CacheEntries:             o.cacheEntries.resolved(0),
	}, ctx
}
