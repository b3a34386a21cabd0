package model

import (
	"reflect"
	"testing"

	"github.com/ifc-lite/ifclite/internal/decode"
	"github.com/ifc-lite/ifclite/internal/schema"
	"github.com/ifc-lite/ifclite/internal/stepindex"
)

// s1Fixture is the "empty project header only" scenario from the streaming
// driver's test suite, reused here to exercise the whole model build.
const s1Fixture = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('x'),'2;1');
FILE_NAME('a','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('0YvctVUKr0kugbFTf53O9L',$,'P',$,$,$,(#2),#3);
#2=IFCUNITASSIGNMENT((#4));
ENDSEC;
END-ISO-10303-21;
`

// hierarchyFixture nests a site/building/storey/wall under one project and
// attaches one property set to the wall, for exercising relationship and
// property extraction end to end.
const hierarchyFixture = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('x'),'2;1');
FILE_NAME('a','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('0YvctVUKr0kugbFTf53O9L',$,'Proj',$,$,$,(#90),#91);
#2=IFCSITE('1YvctVUKr0kugbFTf53O9L',$,'Site',$,$,$,$,$,$,$,$,$,$);
#3=IFCBUILDING('2YvctVUKr0kugbFTf53O9L',$,'Bldg',$,$,$,$,$,$,$,$,$);
#4=IFCBUILDINGSTOREY('3YvctVUKr0kugbFTf53O9L',$,'L1',$,$,$,$,$,$,3.5);
#5=IFCWALL('4YvctVUKr0kugbFTf53O9L',$,'Wall-01',$,$,$,$,$);
#6=IFCRELAGGREGATES('5YvctVUKr0kugbFTf53O9L',$,$,$,#1,(#2));
#7=IFCRELAGGREGATES('6YvctVUKr0kugbFTf53O9L',$,$,$,#2,(#3));
#8=IFCRELAGGREGATES('7YvctVUKr0kugbFTf53O9L',$,$,$,#3,(#4));
#9=IFCRELCONTAINEDINSPATIALSTRUCTURE('8YvctVUKr0kugbFTf53O9L',$,$,$,(#5),#4);
#10=IFCPROPERTYSET('9YvctVUKr0kugbFTf53O9L',$,'Pset_WallCommon',$,(#11));
#11=IFCPROPERTYSINGLEVALUE('IsExternal',$,IFCBOOLEAN(.T.),$);
#12=IFCRELDEFINESBYPROPERTIES('AYvctVUKr0kugbFTf53O9L',$,$,$,(#5),#10);
ENDSEC;
END-ISO-10303-21;
`

func mustBuildDecoder(t *testing.T, src string) *decode.Decoder {
	t.Helper()
	idx, err := stepindex.Build([]byte(src))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	sch, ok := schema.For(idx.Header.Schema)
	if !ok {
		t.Fatalf("schema.For(%v) not found", idx.Header.Schema)
	}
	dec, err := decode.New(idx, sch, 0)
	if err != nil {
		t.Fatalf("decode.New() error: %v", err)
	}
	return dec
}

// TestBuildS1EmptyProject exercises scenario S1: a project with no
// elements still produces a well-formed model with a single-node hierarchy.
func TestBuildS1EmptyProject(t *testing.T) {
	dec := mustBuildDecoder(t, s1Fixture)
	m, err := Build(dec)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if m.Entities.Count() != 1 {
		t.Fatalf("Entities.Count() = %d, want 1", m.Entities.Count())
	}
	if m.Spatial.RootID != 1 {
		t.Fatalf("Spatial.RootID = %d, want 1", m.Spatial.RootID)
	}
	if len(m.Spatial.Nodes) != 1 {
		t.Fatalf("expected single-node hierarchy, got %d nodes", len(m.Spatial.Nodes))
	}
}

// TestRelationshipInverseSymmetry checks invariant 2: every forward edge
// has exactly one matching inverse edge.
func TestRelationshipInverseSymmetry(t *testing.T) {
	dec := mustBuildDecoder(t, hierarchyFixture)
	m, err := Build(dec)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	for kind := RelContainedIn; kind < relKindCount; kind++ {
		forward := m.Relationships.Forward(kind)
		for _, e := range forward {
			inv := m.Relationships.Inverse(kind)
			count := 0
			for _, ie := range inv {
				if ie.From == e.To && ie.To == e.From {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("kind %d: edge %+v has %d matching inverse edges, want 1", kind, e, count)
			}
		}
	}
}

// TestSpatialHierarchyPathConsistency checks invariant 3: every element's
// element->storey->building->site->project chain is consistent and acyclic.
func TestSpatialHierarchyPathConsistency(t *testing.T) {
	dec := mustBuildDecoder(t, hierarchyFixture)
	m, err := Build(dec)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	const wallID = 5
	storey, ok := m.Spatial.ElementToStorey[wallID]
	if !ok || storey != 4 {
		t.Fatalf("ElementToStorey[wall] = %d, %v; want 4, true", storey, ok)
	}
	building, ok := m.Spatial.ElementToBuilding[wallID]
	if !ok || building != 3 {
		t.Fatalf("ElementToBuilding[wall] = %d, %v; want 3, true", building, ok)
	}
	site, ok := m.Spatial.ElementToSite[wallID]
	if !ok || site != 2 {
		t.Fatalf("ElementToSite[wall] = %d, %v; want 2, true", site, ok)
	}
	if m.Spatial.RootID != 1 {
		t.Fatalf("RootID = %d, want 1 (the project)", m.Spatial.RootID)
	}
	seen := map[uint32]bool{}
	var walk func(id uint32) error
	walk = func(id uint32) error {
		if seen[id] {
			t.Fatalf("cycle detected at #%d", id)
		}
		seen[id] = true
		for _, c := range m.Spatial.Nodes[id].Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	_ = walk(m.Spatial.RootID)
}

// TestPropertyExtractionIdempotent checks invariant 7: running the build
// twice over the same decoder yields byte-identical PropertyTable rows.
func TestPropertyExtractionIdempotent(t *testing.T) {
	dec := mustBuildDecoder(t, hierarchyFixture)
	m1, err := Build(dec)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	dec2 := mustBuildDecoder(t, hierarchyFixture)
	m2, err := Build(dec2)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(m1.Properties.Rows) != len(m2.Properties.Rows) {
		t.Fatalf("row count differs: %d vs %d", len(m1.Properties.Rows), len(m2.Properties.Rows))
	}
	for i := range m1.Properties.Rows {
		r1, r2 := m1.Properties.Rows[i], m2.Properties.Rows[i]
		r1.PSetNameID, r1.PSetGlobalID, r1.PropNameID, r1.StringVal = 0, 0, 0, 0
		r2.PSetNameID, r2.PSetGlobalID, r2.PropNameID, r2.StringVal = 0, 0, 0, 0
		if !reflect.DeepEqual(r1, r2) {
			t.Fatalf("row %d differs (modulo string ids): %+v vs %+v", i, r1, r2)
		}
	}
	if len(m1.Properties.Rows) == 0 {
		t.Fatalf("expected at least one extracted property row")
	}
	row := m1.Properties.ForEntity(5)
	if len(row) != 1 {
		t.Fatalf("wall #5 should have exactly one property row, got %d", len(row))
	}
	if row[0].PropType != PropBoolean || !row[0].BoolVal {
		t.Fatalf("IsExternal row = %+v, want Boolean true", row[0])
	}
}

func TestNoProjectFails(t *testing.T) {
	const src = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCWALL($,$,$,$,$,$,$,$);
ENDSEC;
END-ISO-10303-21;
`
	dec := mustBuildDecoder(t, src)
	if _, err := Build(dec); err == nil {
		t.Fatalf("Build() error = nil, want NoProject error")
	}
}
