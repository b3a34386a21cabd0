package decode

import (
	"testing"

	"github.com/ifc-lite/ifclite/internal/schema"
	"github.com/ifc-lite/ifclite/internal/stepindex"
)

const fixture = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('x'),'2;1');
FILE_NAME('a','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('0YvctVUKr0kugbFTf53O9L',$,'Proj',$,$,$,(#2),#3);
#2=IFCUNITASSIGNMENT((#4));
#9=IFCWEIRDPROXYTYPE(1,2,'three');
ENDSEC;
END-ISO-10303-21;
`

func buildDecoder(t *testing.T) *Decoder {
	t.Helper()
	idx, err := stepindex.Build([]byte(fixture))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	sch, ok := schema.For(idx.Header.Schema)
	if !ok {
		t.Fatalf("schema.For(%v) not found", idx.Header.Schema)
	}
	d, err := New(idx, sch, 0)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return d
}

func TestDecodeKnownEntity(t *testing.T) {
	d := buildDecoder(t)
	e, err := d.Decode(1)
	if err != nil {
		t.Fatalf("Decode(1) error: %v", err)
	}
	if e.IsProxy() {
		t.Fatalf("IFCPROJECT should not be a proxy")
	}
	name, ok := e.Attr("Name")
	if !ok {
		t.Fatalf("Attr(Name) not found")
	}
	s, ok := name.AsString()
	if !ok || s != "Proj" {
		t.Fatalf("Name = %+v, want %q", name, "Proj")
	}
	gid, ok := e.Attr("GlobalId")
	if !ok {
		t.Fatalf("Attr(GlobalId) not found")
	}
	if s, _ := gid.AsString(); s != "0YvctVUKr0kugbFTf53O9L" {
		t.Fatalf("GlobalId = %q", s)
	}
	desc, ok := e.Attr("Description")
	if !ok {
		t.Fatalf("Attr(Description) not found")
	}
	if !desc.IsNull() {
		t.Fatalf("Description should be $ (null)")
	}
}

func TestDecodeCaches(t *testing.T) {
	d := buildDecoder(t)
	e1, err := d.Decode(1)
	if err != nil {
		t.Fatalf("Decode(1) error: %v", err)
	}
	e2, err := d.Decode(1)
	if err != nil {
		t.Fatalf("Decode(1) second call error: %v", err)
	}
	if e1 != e2 {
		t.Fatalf("Decode(1) should return the cached pointer on the second call")
	}
}

func TestDecodeUnknownTypeIsProxy(t *testing.T) {
	d := buildDecoder(t)
	e, err := d.Decode(9)
	if err != nil {
		t.Fatalf("Decode(9) error: %v", err)
	}
	if !e.IsProxy() {
		t.Fatalf("IFCWEIRDPROXYTYPE should decode as a proxy")
	}
	v, ok := e.At(2)
	if !ok {
		t.Fatalf("At(2) not found")
	}
	if s, _ := v.AsString(); s != "three" {
		t.Fatalf("At(2) = %+v, want %q", v, "three")
	}
	if _, ok := e.Attr("Name"); ok {
		t.Fatalf("proxy entities have no named attributes")
	}
}

func TestDecodeDanglingReference(t *testing.T) {
	d := buildDecoder(t)
	if _, err := d.Decode(999); err == nil {
		t.Fatalf("Decode(999) error = nil, want dangling reference error")
	}
}

func TestDecodeListAttribute(t *testing.T) {
	d := buildDecoder(t)
	e, err := d.Decode(1)
	if err != nil {
		t.Fatalf("Decode(1) error: %v", err)
	}
	reps, ok := e.Attr("RepresentationContexts")
	if !ok {
		t.Fatalf("Attr(RepresentationContexts) not found")
	}
	items, ok := reps.AsList()
	if !ok || len(items) != 1 {
		t.Fatalf("RepresentationContexts = %+v", reps)
	}
	ref, ok := items[0].AsRef()
	if !ok || ref != 2 {
		t.Fatalf("RepresentationContexts[0] = %+v, want #2", items[0])
	}
	units, ok := e.Attr("UnitsInContext")
	if !ok {
		t.Fatalf("Attr(UnitsInContext) not found")
	}
	if r, ok := units.AsRef(); !ok || r != 3 {
		t.Fatalf("UnitsInContext = %+v, want #3", units)
	}
}
