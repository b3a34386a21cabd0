package stepindex

import (
	"strings"
	"testing"

	"github.com/ifc-lite/ifclite/internal/token"
)

const s1Fixture = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('x'),'2;1');
FILE_NAME('a','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('0YvctVUKr0kugbFTf53O9L',$,'P',$,$,$,$,(#2),#3);
ENDSEC;
END-ISO-10303-21;
`

func TestBuildIndexS1(t *testing.T) {
	idx, err := Build([]byte(s1Fixture))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if idx.Header.Schema != SchemaIFC4 {
		t.Fatalf("Schema = %v, want IFC4", idx.Header.Schema)
	}
	if idx.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", idx.Count())
	}
	ref, ok := idx.Lookup(1)
	if !ok || ref.TypeUpper != "IFCPROJECT" {
		t.Fatalf("Lookup(1) = %+v, %v", ref, ok)
	}
}

func TestDuplicateID(t *testing.T) {
	src := `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCWALL($,$,$,$,$,$,$,$);
#1=IFCWALL($,$,$,$,$,$,$,$);
ENDSEC;
END-ISO-10303-21;
`
	_, err := Build([]byte(src))
	if err == nil {
		t.Fatalf("Build() error = nil, want duplicate id error")
	}
}

// TestRetokenizeInvariant checks spec property 1: re-tokenizing an indexed
// entity's byte range yields exactly one top-level TYPE(args) whose TYPE
// matches the indexed type.
func TestRetokenizeInvariant(t *testing.T) {
	idx, err := Build([]byte(s1Fixture))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	for _, id := range idx.Order {
		ref := idx.ByID[id]
		region := idx.Data[ref.ByteStart:ref.ByteEnd]

		l := token.NewLexer(region)
		tok, err := l.Next() // '#'
		if err != nil || tok.Kind != token.KindRef || tok.RefID != ref.ExpressID {
			t.Fatalf("expected leading ref token for #%d, got %+v, %v", id, tok, err)
		}

		typeIdx := strings.Index(string(region), ref.TypeUpper)
		if typeIdx < 0 {
			t.Fatalf("indexed type %q not found in its own byte range", ref.TypeUpper)
		}
	}
}
