package ifclite_test

import (
	"testing"

	"github.com/ifc-lite/ifclite"
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

func TestOpenEntityAttrsClose(t *testing.T) {
	m, err := ifclite.Open([]byte(wallFixture), ifclite.NewLoadOptions())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer m.Close()

	n, err := m.EntityCount()
	if err != nil {
		t.Fatalf("EntityCount() error: %v", err)
	}
	if n != 2 {
		t.Fatalf("EntityCount() = %d, want 2", n)
	}

	e, err := m.EntityAttrs(5)
	if err != nil {
		t.Fatalf("EntityAttrs() error: %v", err)
	}
	if e.Type != "IFCWALL" {
		t.Fatalf("Type = %q, want IFCWALL", e.Type)
	}
	if len(e.Attrs) == 0 {
		t.Fatal("Attrs is empty, want at least one attribute")
	}
	if e.Attrs[0].Kind != ifclite.AttrString || e.Attrs[0].Str != "4YvctVUKr0kugbFTf53O9L" {
		t.Fatalf("Attrs[0] = %+v, want GlobalId string", e.Attrs[0])
	}
}

func TestOpenRejectsMalformedInput(t *testing.T) {
	if _, err := ifclite.Open([]byte("not a step file"), ifclite.NewLoadOptions()); err == nil {
		t.Fatal("Open() error = nil, want error for malformed input")
	}
}

func TestDataTablesRunsGeometryOnce(t *testing.T) {
	m, err := ifclite.Open([]byte(wallFixture), ifclite.NewLoadOptions())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer m.Close()

	dt1, err := m.DataTables(ifclite.NewGeometryOptions())
	if err != nil {
		t.Fatalf("DataTables() error: %v", err)
	}
	dt2, err := m.DataTables(ifclite.NewGeometryOptions())
	if err != nil {
		t.Fatalf("DataTables() second call error: %v", err)
	}
	if dt1.Geometry != dt2.Geometry {
		t.Fatal("DataTables() rebuilt geometry on second call, want cached result")
	}
	if dt1.Model.Entities.Count() != 2 {
		t.Fatalf("Model.Entities.Count() = %d, want 2", dt1.Model.Entities.Count())
	}
}

func TestStreamProcessTerminates(t *testing.T) {
	m, err := ifclite.Open([]byte(wallFixture), ifclite.NewLoadOptions())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer m.Close()

	seq, err := m.StreamProcess(ifclite.NewStreamOptions())
	if err != nil {
		t.Fatalf("StreamProcess() error: %v", err)
	}

	var kinds []stream.Kind
	for ev := range seq {
		kinds = append(kinds, ev.Kind)
	}
	if len(kinds) == 0 || kinds[0] != stream.KindStarted {
		t.Fatalf("first event kind = %v, want KindStarted", kinds)
	}
	last := kinds[len(kinds)-1]
	if last != stream.KindCompleted && last != stream.KindError {
		t.Fatalf("last event kind = %v, want Completed or Error", last)
	}
}

func TestWarningsEmptyOnCleanFixture(t *testing.T) {
	m, err := ifclite.Open([]byte(wallFixture), ifclite.NewLoadOptions())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer m.Close()

	if _, err := m.DataTables(ifclite.NewGeometryOptions()); err != nil {
		t.Fatalf("DataTables() error: %v", err)
	}
	warnings, err := m.Warnings()
	if err != nil {
		t.Fatalf("Warnings() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Warnings() = %v, want none for this fixture", warnings)
	}
}
