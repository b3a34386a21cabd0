package schema

import (
	"testing"

	"github.com/ifc-lite/ifclite/internal/stepindex"
)

func TestForKnownVersions(t *testing.T) {
	for _, v := range []stepindex.SchemaVersion{stepindex.SchemaIFC2X3, stepindex.SchemaIFC4, stepindex.SchemaIFC4X3} {
		s, ok := For(v)
		if !ok || s == nil {
			t.Fatalf("For(%s) = %v, %v", v, s, ok)
		}
	}
}

func TestFlattenedAttributesParentFirst(t *testing.T) {
	s, _ := For(stepindex.SchemaIFC4)
	wall, ok := s.Lookup("IFCWALL")
	if !ok {
		t.Fatalf("IFCWALL not found")
	}
	names := make([]string, len(wall.Attributes))
	for i, a := range wall.Attributes {
		names[i] = a.Name
	}
	// GlobalId comes from IfcRoot and must precede Tag from IfcElement.
	idxGlobalID, idxTag := -1, -1
	for i, n := range names {
		if n == "GlobalId" {
			idxGlobalID = i
		}
		if n == "Tag" {
			idxTag = i
		}
	}
	if idxGlobalID < 0 || idxTag < 0 || idxGlobalID > idxTag {
		t.Fatalf("attribute order = %v, want GlobalId before Tag", names)
	}
}

func TestIsSubtypeOf(t *testing.T) {
	s, _ := For(stepindex.SchemaIFC4)
	if !s.IsSubtypeOf("IFCWALL", "IFCROOT") {
		t.Fatalf("IFCWALL should be subtype of IFCROOT")
	}
	if s.IsSubtypeOf("IFCWALL", "IFCSPACE") {
		t.Fatalf("IFCWALL should not be subtype of IFCSPACE")
	}
	if !s.IsSubtypeOf("IFCWALL", "IFCWALL") {
		t.Fatalf("a type is a subtype of itself")
	}
}

func TestUnknownVersion(t *testing.T) {
	if _, ok := For(stepindex.SchemaUnknown); ok {
		t.Fatalf("For(unknown) should fail")
	}
}
