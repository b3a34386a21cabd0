package bridge_test

import (
	"context"
	"testing"

	"github.com/ifc-lite/ifclite/internal/bridge"
	geombuild "github.com/ifc-lite/ifclite/internal/geom/build"
	"github.com/ifc-lite/ifclite/internal/stream"
)

const wallFixture = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('x'),'2;1');
FILE_NAME('a','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('0YvctVUKr0kugbFTf53O9L',$,'Proj',$,$,$,(#90),#91);
#5=IFCWALL('4YvctVUKr0kugbFTf53O9L',$,'Wall-01',$,$,$,$,$);
ENDSEC;
END-ISO-10303-21;
`

func TestOpenModelGetEntityAttrsCloseModel(t *testing.T) {
	h, err := bridge.OpenModel([]byte(wallFixture), bridge.LoadOptions{})
	if err != nil {
		t.Fatalf("OpenModel() error: %v", err)
	}

	count, ok := bridge.IndexedEntityCount(h)
	if !ok {
		t.Fatal("IndexedEntityCount() ok = false")
	}
	if count != 2 {
		t.Fatalf("IndexedEntityCount() = %d, want 2", count)
	}

	e, err := bridge.GetEntityAttrs(h, 5)
	if err != nil {
		t.Fatalf("GetEntityAttrs() error: %v", err)
	}
	if e.TypeUpper != "IFCWALL" {
		t.Fatalf("TypeUpper = %q, want IFCWALL", e.TypeUpper)
	}

	bridge.CloseModel(h)
	if _, ok := bridge.IndexedEntityCount(h); ok {
		t.Fatal("IndexedEntityCount() ok = true after close, want false")
	}
	if _, err := bridge.GetEntityAttrs(h, 5); err == nil {
		t.Fatal("GetEntityAttrs() error = nil after close, want error")
	}

	// closing an already-closed handle must not panic.
	bridge.CloseModel(h)
}

func TestOpenModelUnknownHandleOperations(t *testing.T) {
	var h bridge.Handle = "not-a-real-handle"
	if _, ok := bridge.IndexedEntityCount(h); ok {
		t.Fatal("IndexedEntityCount() ok = true for unknown handle")
	}
	if _, err := bridge.GetEntityAttrs(h, 1); err == nil {
		t.Fatal("GetEntityAttrs() error = nil for unknown handle")
	}
	if _, _, err := bridge.GetDataTables(context.Background(), h, geombuild.Options{}); err == nil {
		t.Fatal("GetDataTables() error = nil for unknown handle")
	}
	if _, err := bridge.StreamProcess(context.Background(), h, stream.DefaultOptions()); err == nil {
		t.Fatal("StreamProcess() error = nil for unknown handle")
	}
	if _, ok := bridge.Warnings(h); ok {
		t.Fatal("Warnings() ok = true for unknown handle")
	}
}

func TestGetDataTablesCachesGeometry(t *testing.T) {
	h, err := bridge.OpenModel([]byte(wallFixture), bridge.LoadOptions{})
	if err != nil {
		t.Fatalf("OpenModel() error: %v", err)
	}
	defer bridge.CloseModel(h)

	m1, g1, err := bridge.GetDataTables(context.Background(), h, geombuild.Options{})
	if err != nil {
		t.Fatalf("GetDataTables() error: %v", err)
	}
	m2, g2, err := bridge.GetDataTables(context.Background(), h, geombuild.Options{})
	if err != nil {
		t.Fatalf("GetDataTables() second call error: %v", err)
	}
	if m1 != m2 {
		t.Fatal("GetDataTables() returned a different *model.Model on second call")
	}
	if g1 != g2 {
		t.Fatal("GetDataTables() rebuilt geometry on second call, want cached result")
	}
}

func TestStreamProcessRunsIndependentlyOfCachedState(t *testing.T) {
	h, err := bridge.OpenModel([]byte(wallFixture), bridge.LoadOptions{})
	if err != nil {
		t.Fatalf("OpenModel() error: %v", err)
	}
	defer bridge.CloseModel(h)

	seq, err := bridge.StreamProcess(context.Background(), h, stream.DefaultOptions())
	if err != nil {
		t.Fatalf("StreamProcess() error: %v", err)
	}

	var kinds []stream.Kind
	for ev := range seq {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == stream.KindCompleted || ev.Kind == stream.KindError {
			break
		}
	}
	if len(kinds) == 0 || kinds[0] != stream.KindStarted {
		t.Fatalf("first event kind = %v, want KindStarted", kinds)
	}
	last := kinds[len(kinds)-1]
	if last != stream.KindCompleted && last != stream.KindError {
		t.Fatalf("last event kind = %v, want Completed or Error", last)
	}
}
