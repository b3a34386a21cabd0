// Command ifcdump is a diagnostic tool for IFC/STEP files: it opens a
// file through the ifclite package and reports entity counts, a single
// entity's decoded attributes, geometry-kernel output, or a trace of the
// streaming pipeline's events.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ifc-lite/ifclite"
	"github.com/ifc-lite/ifclite/internal/stream"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ifcdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	entityID := fs.Uint64("entity", 0, "print decoded attributes for one express id and exit")
	geometry := fs.Bool("geometry", false, "run the geometry kernel and report mesh/instance counts")
	stream := fs.Bool("stream", false, "trace stream_process events instead of running a single pass")
	quality := fs.String("quality", "balanced", "tessellation quality for -geometry/-stream: fast, balanced, high")
	noInstancing := fs.Bool("no-instancing", false, "disable IfcMappedItem instancing")
	noVoids := fs.Bool("no-voids", false, "disable tier-1 planar void subtraction")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [flags] <file.ifc>\n\n", os.Args[0]),
			writeln(stderr, "Reports diagnostics for an IFC/STEP file."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	path := remaining[0]

	q, err := parseQuality(*quality)
	if err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 2
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if writeErr := writef(stderr, "error reading %s: %v\n", path, err); writeErr != nil {
			return 1
		}
		return 1
	}

	m, err := ifclite.Open(data, ifclite.NewLoadOptions())
	if err != nil {
		if writeErr := writef(stderr, "error opening %s: %v\n", path, err); writeErr != nil {
			return 1
		}
		return 1
	}
	defer m.Close()

	switch {
	case *stream:
		return runStream(m, q, *noInstancing, *noVoids, stdout, stderr)
	case *entityID != 0:
		return runEntity(m, uint32(*entityID), stdout, stderr)
	case *geometry:
		return runGeometry(m, *noInstancing, *noVoids, stdout, stderr)
	default:
		return runSummary(m, path, stdout, stderr)
	}
}

func parseQuality(s string) (ifclite.Quality, error) {
	switch s {
	case "fast":
		return ifclite.QualityFast, nil
	case "balanced":
		return ifclite.QualityBalanced, nil
	case "high":
		return ifclite.QualityHigh, nil
	default:
		return 0, fmt.Errorf("unknown -quality %q, want fast, balanced, or high", s)
	}
}

func runSummary(m *ifclite.Model, path string, stdout, stderr io.Writer) int {
	n, err := m.EntityCount()
	if err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	if err := writef(stdout, "%s: %d entities\n", path, n); err != nil {
		return 1
	}
	return 0
}

func runEntity(m *ifclite.Model, id uint32, stdout, stderr io.Writer) int {
	e, err := m.EntityAttrs(id)
	if err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	if err := writef(stdout, "#%d = %s\n", e.ExpressID, e.Type); err != nil {
		return 1
	}
	for i, a := range e.Attrs {
		name := e.AttrNames[i]
		if name == "" {
			name = fmt.Sprintf("[%d]", i)
		}
		if err := writef(stdout, "  %s = %s\n", name, formatAttr(a)); err != nil {
			return 1
		}
	}
	return 0
}

func formatAttr(a ifclite.Attr) string {
	switch a.Kind {
	case ifclite.AttrNull:
		return "$"
	case ifclite.AttrString:
		return fmt.Sprintf("%q", a.Str)
	case ifclite.AttrReal:
		return fmt.Sprintf("%g", a.Real)
	case ifclite.AttrInteger:
		return fmt.Sprintf("%d", a.Int)
	case ifclite.AttrBoolean:
		return fmt.Sprintf("%t", a.Bool)
	case ifclite.AttrEnum:
		return "." + a.Str + "."
	case ifclite.AttrRef:
		return fmt.Sprintf("#%d", a.Ref)
	case ifclite.AttrList:
		parts := make([]string, len(a.List))
		for i, e := range a.List {
			parts[i] = formatAttr(e)
		}
		return fmt.Sprintf("%v", parts)
	default:
		return "?"
	}
}

func runGeometry(m *ifclite.Model, noInstancing, noVoids bool, stdout, stderr io.Writer) int {
	opts := ifclite.NewGeometryOptions().
		WithEnableInstancing(!noInstancing).
		WithEnableVoids(!noVoids)
	dt, err := m.DataTables(opts)
	if err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	var vertices, triangles int
	for _, mesh := range dt.Geometry.Meshes {
		vertices += mesh.VertexCount()
		triangles += mesh.TriangleCount()
	}
	if err := writef(stdout, "entities: %d\n", dt.Model.Entities.Count()); err != nil {
		return 1
	}
	if err := writef(stdout, "meshes: %d, instances: %d\n", len(dt.Geometry.Meshes), len(dt.Geometry.Instances)); err != nil {
		return 1
	}
	if err := writef(stdout, "vertices: %d, triangles: %d\n", vertices, triangles); err != nil {
		return 1
	}
	if err := writef(stdout, "geometry warnings: %d\n", len(dt.Geometry.Warnings)); err != nil {
		return 1
	}
	warnings, err := m.Warnings()
	if err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	if err := writef(stdout, "total warnings: %d\n", len(warnings)); err != nil {
		return 1
	}
	return 0
}

func runStream(m *ifclite.Model, q ifclite.Quality, noInstancing, noVoids bool, stdout, stderr io.Writer) int {
	opts := ifclite.NewStreamOptions().
		WithQuality(q).
		WithEnableInstancing(!noInstancing).
		WithEnableVoids(!noVoids)
	seq, err := m.StreamProcess(opts)
	if err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	var failed bool
	for ev := range seq {
		if err := writef(stdout, "%s\n", describeEvent(ev)); err != nil {
			return 1
		}
		if ev.Kind == stream.KindError {
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}

func describeEvent(ev stream.Event) string {
	switch ev.Kind {
	case stream.KindStarted:
		return fmt.Sprintf("started: %d bytes", ev.FileSize)
	case stream.KindIndexed:
		return fmt.Sprintf("indexed: %d entities", ev.EntityCount)
	case stream.KindEntityBatch:
		return fmt.Sprintf("entity batch: %d entities", len(ev.Entities))
	case stream.KindMeshBatch:
		return fmt.Sprintf("mesh batch: %d meshes (%d total)", len(ev.Meshes), ev.MeshesTotal)
	case stream.KindPropertiesReady:
		return "properties ready"
	case stream.KindRelationshipsReady:
		return "relationships ready"
	case stream.KindSpatialHierarchyReady:
		return "spatial hierarchy ready"
	case stream.KindProgress:
		return fmt.Sprintf("progress: %s %.0f%%", ev.Phase, ev.Percent)
	case stream.KindCompleted:
		return fmt.Sprintf("completed in %dms", ev.DurationMs)
	case stream.KindError:
		return fmt.Sprintf("error: %s: %s", ev.ErrKind, ev.Message)
	default:
		return "unknown event"
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
