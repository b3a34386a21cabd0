package model

import (
	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/decode"
	"github.com/ifc-lite/ifclite/internal/geom"
	"github.com/ifc-lite/ifclite/internal/strtab"
)

// Model bundles the frozen outputs of one Build pass.
type Model struct {
	Entities      *EntityTable
	Relationships *RelationshipGraph
	Properties    *PropertyTable
	Quantities    *QuantityTable
	Spatial       *SpatialHierarchy
	Strings       *strtab.Table
	Geo           geom.GeoReference
}

// Build performs the one-pass columnar model construction of spec §4.E,
// decoding only the entities the walk actually needs.
func Build(dec *decode.Decoder) (*Model, error) {
	interner := strtab.NewBuilder()
	entities := newEntityTable()
	rels := newRelationshipGraph()
	props := &PropertyTable{}
	quants := &QuantityTable{}

	if err := buildEntityTable(dec, interner, entities); err != nil {
		return nil, err
	}
	if err := buildRelationships(dec, rels); err != nil {
		return nil, err
	}
	if err := buildProperties(dec, interner, rels, props, quants); err != nil {
		return nil, err
	}
	spatial, err := buildSpatialHierarchy(dec, interner, rels, props)
	if err != nil {
		return nil, err
	}

	strings, err := interner.Build()
	if err != nil {
		return nil, err
	}

	m := &Model{
		Entities:      entities,
		Relationships: rels,
		Properties:    props,
		Quantities:    quants,
		Spatial:       spatial,
		Strings:       strings,
	}
	m.Geo = BuildGeoReference(dec, m)
	return m, nil
}

func internOpt(b *strtab.Builder, s string, ok bool) strtab.ID {
	if !ok || s == "" {
		return 0
	}
	return b.Intern(s)
}

// buildEntityTable is step 2 of spec §4.E: every schema-known IfcRoot
// subtype gets a row.
func buildEntityTable(dec *decode.Decoder, interner *strtab.Builder, out *EntityTable) error {
	idx := dec.Index()
	sch := dec.Schema()
	if sch == nil {
		return nil
	}
	for _, id := range idx.Order {
		ref, _ := idx.Lookup(id)
		if !sch.IsSubtypeOf(ref.TypeUpper, "IFCROOT") {
			continue
		}
		e, err := dec.Decode(id)
		if err != nil {
			return err
		}
		globalID, _ := e.Attr("GlobalId")
		name, _ := e.Attr("Name")
		desc, _ := e.Attr("Description")
		objType, _ := e.Attr("ObjectType")

		gStr, gOK := globalID.AsString()
		nStr, nOK := name.AsString()
		dStr, dOK := desc.AsString()
		oStr, oOK := objType.AsString()

		var flags Flags
		if sch.IsSubtypeOf(ref.TypeUpper, "IFCPRODUCT") {
			if rep, ok := e.Attr("Representation"); ok && !rep.IsNull() {
				flags.Set(HasGeometry)
			}
		}
		if sch.IsSubtypeOf(ref.TypeUpper, "IFCTYPEOBJECT") {
			flags.Set(IsTypeObject)
		}
		if sch.IsSubtypeOf(ref.TypeUpper, "IFCSPATIALSTRUCTUREELEMENT") {
			flags.Set(IsSpatialElement)
		}

		out.add(id, classify(ref.TypeUpper),
			internOpt(interner, gStr, gOK),
			internOpt(interner, nStr, nOK),
			internOpt(interner, dStr, dOK),
			internOpt(interner, oStr, oOK),
			flags,
		)
	}
	return nil
}

type relSpec struct {
	typeName string
	kind     RelKind
	extract  func(e *decode.DecodedEntity) []Edge
}

func refList(v decode.Value) []uint32 {
	items, ok := v.AsList()
	if !ok {
		return nil
	}
	out := make([]uint32, 0, len(items))
	for _, it := range items {
		if r, ok := it.AsRef(); ok {
			out = append(out, r)
		}
	}
	return out
}

func fanOut(one uint32, many []uint32, oneIsFrom bool) []Edge {
	out := make([]Edge, 0, len(many))
	for _, m := range many {
		if oneIsFrom {
			out = append(out, Edge{From: one, To: m})
		} else {
			out = append(out, Edge{From: m, To: one})
		}
	}
	return out
}

func relSpecs() []relSpec {
	return []relSpec{
		{"IFCRELCONTAINEDINSPATIALSTRUCTURE", RelContainedIn, func(e *decode.DecodedEntity) []Edge {
			structure, _ := e.Attr("RelatingStructure")
			related, _ := e.Attr("RelatedElements")
			from, ok := structure.AsRef()
			if !ok {
				return nil
			}
			return fanOut(from, refList(related), true)
		}},
		{"IFCRELAGGREGATES", RelAggregates, func(e *decode.DecodedEntity) []Edge {
			parent, _ := e.Attr("RelatingObject")
			children, _ := e.Attr("RelatedObjects")
			from, ok := parent.AsRef()
			if !ok {
				return nil
			}
			return fanOut(from, refList(children), true)
		}},
		{"IFCRELDEFINESBYTYPE", RelDefinesByType, func(e *decode.DecodedEntity) []Edge {
			ty, _ := e.Attr("RelatingType")
			objs, _ := e.Attr("RelatedObjects")
			to, ok := ty.AsRef()
			if !ok {
				return nil
			}
			return fanOut(to, refList(objs), false)
		}},
		{"IFCRELDEFINESBYPROPERTIES", RelDefinesByProperties, func(e *decode.DecodedEntity) []Edge {
			pset, _ := e.Attr("RelatingPropertyDefinition")
			objs, _ := e.Attr("RelatedObjects")
			to, ok := pset.AsRef()
			if !ok {
				return nil
			}
			return fanOut(to, refList(objs), false)
		}},
		{"IFCRELASSOCIATESMATERIAL", RelAssociatesMaterial, associatesEdges("RelatingMaterial")},
		{"IFCRELASSOCIATESCLASSIFICATION", RelAssociatesClassification, associatesEdges("RelatingClassification")},
		{"IFCRELASSOCIATESDOCUMENT", RelAssociatesDocument, associatesEdges("RelatingDocument")},
		{"IFCRELVOIDSELEMENT", RelVoidsElement, func(e *decode.DecodedEntity) []Edge {
			el, _ := e.Attr("RelatingBuildingElement")
			op, _ := e.Attr("RelatedOpeningElement")
			from, ok1 := el.AsRef()
			to, ok2 := op.AsRef()
			if !ok1 || !ok2 {
				return nil
			}
			return []Edge{{From: from, To: to}}
		}},
		{"IFCRELFILLSELEMENT", RelFillsElement, func(e *decode.DecodedEntity) []Edge {
			op, _ := e.Attr("RelatingOpeningElement")
			el, _ := e.Attr("RelatedBuildingElement")
			from, ok1 := op.AsRef()
			to, ok2 := el.AsRef()
			if !ok1 || !ok2 {
				return nil
			}
			return []Edge{{From: from, To: to}}
		}},
		{"IFCRELCONNECTSPATHELEMENTS", RelConnectsPathElements, func(e *decode.DecodedEntity) []Edge {
			a, _ := e.Attr("RelatingElement")
			b, _ := e.Attr("RelatedElement")
			from, ok1 := a.AsRef()
			to, ok2 := b.AsRef()
			if !ok1 || !ok2 {
				return nil
			}
			return []Edge{{From: from, To: to}}
		}},
	}
}

func associatesEdges(relatingAttr string) func(e *decode.DecodedEntity) []Edge {
	return func(e *decode.DecodedEntity) []Edge {
		relating, _ := e.Attr(relatingAttr)
		objs, _ := e.Attr("RelatedObjects")
		to, ok := relating.AsRef()
		if !ok {
			return nil
		}
		return fanOut(to, refList(objs), false)
	}
}

// buildRelationships is step 3 of spec §4.E.
func buildRelationships(dec *decode.Decoder, out *RelationshipGraph) error {
	idx := dec.Index()
	for _, spec := range relSpecs() {
		for _, id := range idx.IDsOfType(spec.typeName) {
			e, err := dec.Decode(id)
			if err != nil {
				return err
			}
			for _, edge := range spec.extract(e) {
				out.addEdge(spec.kind, edge.From, edge.To)
			}
		}
	}
	return nil
}

// buildProperties is steps 4-5 of spec §4.E: follow DefinesByProperties
// edges to IfcPropertySet/IfcElementQuantity and flatten their members.
func buildProperties(dec *decode.Decoder, interner *strtab.Builder, rels *RelationshipGraph, props *PropertyTable, quants *QuantityTable) error {
	idx := dec.Index()
	for _, edge := range rels.Forward(RelDefinesByProperties) {
		entityID, psetID := edge.From, edge.To
		ref, ok := idx.Lookup(psetID)
		if !ok {
			continue
		}
		pset, err := dec.Decode(psetID)
		if err != nil {
			return err
		}
		switch ref.TypeUpper {
		case "IFCPROPERTYSET":
			if err := flattenPropertySet(dec, interner, entityID, pset, props); err != nil {
				return err
			}
		case "IFCELEMENTQUANTITY":
			if err := flattenQuantitySet(dec, interner, entityID, pset, quants); err != nil {
				return err
			}
		}
	}
	return nil
}

func flattenPropertySet(dec *decode.Decoder, interner *strtab.Builder, entityID uint32, pset *decode.DecodedEntity, out *PropertyTable) error {
	nameVal, _ := pset.Attr("Name")
	nStr, nOK := nameVal.AsString()
	globalVal, _ := pset.Attr("GlobalId")
	gStr, gOK := globalVal.AsString()
	pSetName := internOpt(interner, nStr, nOK)
	pSetGlobal := internOpt(interner, gStr, gOK)

	propsAttr, _ := pset.Attr("HasProperties")
	for _, ref := range refList(propsAttr) {
		propRef, ok := dec.Index().Lookup(ref)
		if !ok {
			continue
		}
		prop, err := dec.Decode(ref)
		if err != nil {
			return err
		}
		row := PropertyRow{EntityID: entityID, PSetNameID: pSetName, PSetGlobalID: pSetGlobal}
		pn, _ := prop.Attr("Name")
		pnStr, pnOK := pn.AsString()
		row.PropNameID = internOpt(interner, pnStr, pnOK)

		switch propRef.TypeUpper {
		case "IFCPROPERTYSINGLEVALUE":
			v, _ := prop.Attr("NominalValue")
			setScalarValue(interner, &row, v)
			u, _ := prop.Attr("Unit")
			if id, ok := u.AsRef(); ok {
				row.UnitID = strtab.ID(id)
			}
		case "IFCPROPERTYENUMERATEDVALUE":
			row.PropType = PropEnum
		case "IFCPROPERTYBOUNDEDVALUE":
			row.PropType = PropBounded
		case "IFCPROPERTYLISTVALUE":
			row.PropType = PropList
		case "IFCPROPERTYTABLEVALUE":
			row.PropType = PropTable
		case "IFCPROPERTYREFERENCEVALUE":
			row.PropType = PropReference
			refVal, _ := prop.Attr("PropertyReference")
			if id, ok := refVal.AsRef(); ok {
				row.IntVal = int64(id)
			}
		default:
			continue
		}
		out.add(row)
	}
	return nil
}

// setScalarValue resolves an IfcValue select into the flat row encoding,
// unwrapping the measure-type wrapper (e.g. IFCPOSITIVELENGTHMEASURE).
func setScalarValue(interner *strtab.Builder, row *PropertyRow, v decode.Value) {
	inner := v
	if v.Kind == decode.VTyped && v.Inner != nil {
		inner = *v.Inner
	}
	switch inner.Kind {
	case decode.VString:
		row.PropType = PropString
		row.StringVal = interner.Intern(inner.Str)
	case decode.VReal:
		row.PropType = PropReal
		row.RealVal = inner.Real
	case decode.VInteger:
		row.PropType = PropInteger
		row.IntVal = inner.Int
	case decode.VBoolean:
		row.PropType = PropBoolean
		row.BoolVal = inner.Bool
	case decode.VEnum:
		row.PropType = PropEnum
		row.StringVal = interner.Intern(inner.Enum)
		if b, ok := inner.AsBool(); ok {
			row.PropType = PropBoolean
			row.BoolVal = b
		}
	}
}

var quantTypeByName = map[string]QuantType{
	"IFCQUANTITYLENGTH": QuantLength,
	"IFCQUANTITYAREA":   QuantArea,
	"IFCQUANTITYVOLUME": QuantVolume,
	"IFCQUANTITYCOUNT":  QuantCount,
	"IFCQUANTITYWEIGHT": QuantWeight,
	"IFCQUANTITYTIME":   QuantTime,
}

var quantValueAttr = map[QuantType]string{
	QuantLength: "LengthValue",
	QuantArea:   "AreaValue",
	QuantVolume: "VolumeValue",
	QuantCount:  "CountValue",
	QuantWeight: "WeightValue",
	QuantTime:   "TimeValue",
}

func flattenQuantitySet(dec *decode.Decoder, interner *strtab.Builder, entityID uint32, qset *decode.DecodedEntity, out *QuantityTable) error {
	nameVal, _ := qset.Attr("Name")
	nStr, nOK := nameVal.AsString()
	globalVal, _ := qset.Attr("GlobalId")
	gStr, gOK := globalVal.AsString()
	qSetName := internOpt(interner, nStr, nOK)
	qSetGlobal := internOpt(interner, gStr, gOK)

	quantsAttr, _ := qset.Attr("Quantities")
	for _, ref := range refList(quantsAttr) {
		qRef, ok := dec.Index().Lookup(ref)
		if !ok {
			continue
		}
		qt, ok := quantTypeByName[qRef.TypeUpper]
		if !ok {
			continue
		}
		q, err := dec.Decode(ref)
		if err != nil {
			return err
		}
		row := QuantityRow{EntityID: entityID, QSetNameID: qSetName, QSetGlobalID: qSetGlobal, QType: qt}
		qn, _ := q.Attr("Name")
		qnStr, qnOK := qn.AsString()
		row.QNameID = internOpt(interner, qnStr, qnOK)
		val, _ := q.Attr(quantValueAttr[qt])
		row.Value, _ = val.AsFloat64()
		if u, ok := q.Attr("Unit"); ok {
			if id, ok := u.AsRef(); ok {
				row.UnitID = strtab.ID(id)
			}
		}
		out.add(row)
	}
	return nil
}

// ancestry carries the nearest ancestor of each spatial-structure kind seen
// so far on the path down from IfcProject, so a leaf element's reverse maps
// can be filled in as soon as it is visited.
type ancestry struct {
	site, building, storey, space uint32 // 0 means "none yet"
}

// buildSpatialHierarchy is step 6 of spec §4.E: walk down from the unique
// IfcProject through Aggregates and ContainedInSpatialStructure edges.
func buildSpatialHierarchy(dec *decode.Decoder, interner *strtab.Builder, rels *RelationshipGraph, props *PropertyTable) (*SpatialHierarchy, error) {
	idx := dec.Index()
	projectIDs := idx.IDsOfType("IFCPROJECT")
	if len(projectIDs) != 1 {
		return nil, errors.DiagnosticList{errors.NewDiagnosticf(errors.ErrNoProject,
			"expected exactly one IFCPROJECT, found %d", len(projectIDs))}
	}
	root := projectIDs[0]

	h := newSpatialHierarchy()
	h.RootID = root
	h.node(root)

	visited := make(map[uint32]bool, len(idx.Order))
	visited[root] = true

	var walk func(id uint32, anc ancestry) error
	walk = func(id uint32, anc ancestry) error {
		children := append(append([]uint32{}, rels.Children(RelAggregates, id)...), rels.Children(RelContainedIn, id)...)
		for _, c := range children {
			if visited[c] {
				return errors.DiagnosticList{errors.NewDiagnosticf(errors.ErrSpatialCycle, "spatial cycle detected at #%d", c)}
			}
			visited[c] = true
			h.addChild(id, c)

			childAnc := anc
			if anc.site != 0 {
				h.ElementToSite[c] = anc.site
			}
			if anc.building != 0 {
				h.ElementToBuilding[c] = anc.building
			}
			if anc.storey != 0 {
				h.ElementToStorey[c] = anc.storey
			}
			if anc.space != 0 {
				h.ElementToSpace[c] = anc.space
			}

			if ref, ok := idx.Lookup(c); ok {
				switch ref.TypeUpper {
				case "IFCSITE":
					childAnc.site = c
				case "IFCBUILDING":
					childAnc.building = c
				case "IFCBUILDINGSTOREY":
					childAnc.storey = c
					recordStoreyElevation(dec, interner, props, c, h)
				case "IFCSPACE":
					childAnc.space = c
				}
			}
			if err := walk(c, childAnc); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, ancestry{}); err != nil {
		return nil, err
	}
	return h, nil
}

// recordStoreyElevation reads the storey's Elevation attribute, falling
// back to Pset_BuildingStoreyCommon.Elevation via the property walk.
func recordStoreyElevation(dec *decode.Decoder, interner *strtab.Builder, props *PropertyTable, storeyID uint32, h *SpatialHierarchy) {
	e, err := dec.Decode(storeyID)
	if err != nil {
		return
	}
	if elev, ok := e.Attr("Elevation"); ok {
		if v, ok := elev.AsFloat64(); ok {
			h.StoreyElevation[storeyID] = v
			return
		}
	}
	psetName := interner.Intern("Pset_BuildingStoreyCommon")
	elevName := interner.Intern("Elevation")
	for _, row := range props.ForEntity(storeyID) {
		if row.PSetNameID == psetName && row.PropNameID == elevName && row.PropType == PropReal {
			h.StoreyElevation[storeyID] = row.RealVal
			return
		}
	}
}
