package build

import (
	"math"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/decode"
	"github.com/ifc-lite/ifclite/internal/geom"
	"github.com/ifc-lite/ifclite/internal/geom/boolean2d"
	"github.com/ifc-lite/ifclite/internal/geom/boolean3d"
	"github.com/ifc-lite/ifclite/internal/geom/instance"
	"github.com/ifc-lite/ifclite/internal/geom/style"
	"github.com/ifc-lite/ifclite/internal/geom/sweep"
	"github.com/ifc-lite/ifclite/internal/geom/tessellate"
	"github.com/ifc-lite/ifclite/internal/model"
)

// processProduct resolves one product's representation into meshes and
// mapped-item instance references.
func (b *builder) processProduct(id uint32) ([]*geom.Mesh, []instance.Reference, []Warning) {
	e, err := b.decode(id)
	if err != nil {
		return nil, nil, []Warning{{ExpressID: id, Kind: errors.ErrDanglingReference, Message: err.Error()}}
	}

	placement := geom.Identity4()
	if plRef, ok := attrRef(e, "ObjectPlacement"); ok {
		placement = b.resolveObjectPlacement(plRef)
	}

	itemRefs := b.representationItemsFor(e)
	if len(itemRefs) == 0 {
		return nil, nil, nil
	}

	var meshes []*geom.Mesh
	var refs []instance.Reference
	var warns []Warning

	openings := b.m.Relationships.Children(model.RelVoidsElement, id)

	if b.opts.EnableVoids && len(itemRefs) == 1 && len(openings) > 0 {
		if mesh, w, handled, ok := b.voidedExtrusion(id, e.TypeUpper, itemRefs[0], placement, openings); ok {
			meshes = append(meshes, mesh)
			warns = append(warns, w...)
			b.applyStyle(mesh, itemRefs[0], e.TypeUpper)
			meshes, warns = b.applyTier2Voids(id, meshes, openings, handled, warns)
			return meshes, refs, warns
		}
	}

	for _, itemRef := range itemRefs {
		mesh, ref, w := b.itemToMesh(id, e.TypeUpper, itemRef, placement)
		if w != nil {
			warns = append(warns, *w)
		}
		if mesh != nil {
			b.applyStyle(mesh, itemRef, e.TypeUpper)
			meshes = append(meshes, mesh)
		}
		if ref != nil {
			refs = append(refs, *ref)
		}
	}

	if b.opts.EnableVoids && len(openings) > 0 && len(meshes) > 0 {
		meshes, warns = b.applyTier2Voids(id, meshes, openings, nil, warns)
	}
	return meshes, refs, warns
}

// representationItemsFor walks Representation -> IfcProductRepresentation
// -> Representations -> IfcShapeRepresentation -> Items.
func (b *builder) representationItemsFor(e *decode.DecodedEntity) []uint32 {
	repRef, ok := attrRef(e, "Representation")
	if !ok {
		return nil
	}
	prodRep, err := b.decode(repRef)
	if err != nil {
		return nil
	}
	reps, ok := prodRep.Attr("Representations")
	if !ok {
		return nil
	}
	repList, ok := reps.AsList()
	if !ok {
		return nil
	}
	var items []uint32
	for _, r := range repList {
		shapeRef, ok := r.AsRef()
		if !ok {
			continue
		}
		shape, err := b.decode(shapeRef)
		if err != nil {
			continue
		}
		itemsAttr, ok := shape.Attr("Items")
		if !ok {
			continue
		}
		itemList, ok := itemsAttr.AsList()
		if !ok {
			continue
		}
		for _, it := range itemList {
			if ref, ok := it.AsRef(); ok {
				items = append(items, ref)
			}
		}
	}
	return items
}

// itemToMesh dispatches a single representation item to its mesh builder,
// or returns an instance.Reference for IfcMappedItem.
func (b *builder) itemToMesh(hostID uint32, hostType string, itemRef uint32, placement geom.Mat4) (*geom.Mesh, *instance.Reference, *Warning) {
	item, err := b.decode(itemRef)
	if err != nil {
		return nil, nil, &Warning{ExpressID: hostID, Kind: errors.ErrDanglingReference, Message: err.Error()}
	}
	switch item.TypeUpper {
	case "IFCEXTRUDEDAREASOLID":
		mesh, err := b.buildExtrudedSolid(item, placement)
		if err != nil {
			return nil, nil, &Warning{ExpressID: hostID, Kind: errors.ErrProfileInvalid, Message: err.Error()}
		}
		mesh.ExpressID, mesh.IFCType = hostID, hostType
		return mesh, nil, nil
	case "IFCREVOLVEDAREASOLID":
		mesh, err := b.buildRevolvedSolid(item, placement)
		if err != nil {
			return nil, nil, &Warning{ExpressID: hostID, Kind: errors.ErrProfileInvalid, Message: err.Error()}
		}
		mesh.ExpressID, mesh.IFCType = hostID, hostType
		return mesh, nil, nil
	case "IFCSWEPTDISKSOLID":
		mesh, err := b.buildSweptDisk(item, placement)
		if err != nil {
			return nil, nil, &Warning{ExpressID: hostID, Kind: errors.ErrCurveGap, Message: err.Error()}
		}
		mesh.ExpressID, mesh.IFCType = hostID, hostType
		return mesh, nil, nil
	case "IFCTRIANGULATEDFACESET":
		mesh := b.buildTriangulatedFaceSet(item, placement)
		mesh.ExpressID, mesh.IFCType = hostID, hostType
		return mesh, nil, nil
	case "IFCPOLYGONALFACESET":
		mesh := b.buildPolygonalFaceSet(item, placement)
		mesh.ExpressID, mesh.IFCType = hostID, hostType
		return mesh, nil, nil
	case "IFCFACETEDBREP":
		mesh := b.buildFacetedBrep(item, placement)
		mesh.ExpressID, mesh.IFCType = hostID, hostType
		return mesh, nil, nil
	case "IFCMAPPEDITEM":
		if !b.opts.EnableInstancing {
			mesh, err := b.buildMappedItemInline(item, placement, hostID, hostType)
			if err != nil {
				return nil, nil, &Warning{ExpressID: hostID, Kind: errors.ErrDegenerateMesh, Message: err.Error()}
			}
			return mesh, nil, nil
		}
		ref, err := b.buildMappedItem(item, placement, hostID, hostType)
		if err != nil {
			return nil, nil, &Warning{ExpressID: hostID, Kind: errors.ErrDegenerateMesh, Message: err.Error()}
		}
		return nil, ref, nil
	default:
		return nil, nil, nil
	}
}

func (b *builder) buildExtrudedSolid(item *decode.DecodedEntity, placement geom.Mat4) (*geom.Mesh, error) {
	sweptAreaRef, _ := attrRef(item, "SweptArea")
	prof, err := b.resolveProfile(sweptAreaRef)
	if err != nil {
		return nil, err
	}
	solidPlacement := geom.Identity4()
	if posRef, ok := attrRef(item, "Position"); ok {
		solidPlacement = b.resolveAxis2Placement3D(posRef)
	}
	dir := geom.Vec3{X: 0, Y: 0, Z: 1}
	if dirRef, ok := attrRef(item, "ExtrudedDirection"); ok {
		dir = b.resolveDirection(dirRef, dir)
	}
	depth := attrFloat(item, "Depth", 0)
	return sweep.Extrude(prof, dir, depth, placement.Mul(solidPlacement))
}

func (b *builder) buildRevolvedSolid(item *decode.DecodedEntity, placement geom.Mat4) (*geom.Mesh, error) {
	sweptAreaRef, _ := attrRef(item, "SweptArea")
	prof, err := b.resolveProfile(sweptAreaRef)
	if err != nil {
		return nil, err
	}
	solidPlacement := geom.Identity4()
	if posRef, ok := attrRef(item, "Position"); ok {
		solidPlacement = b.resolveAxis2Placement3D(posRef)
	}
	axisOrigin, axisDir := geom.Vec3{}, geom.Vec3{X: 0, Y: 0, Z: 1}
	if axisRef, ok := attrRef(item, "Axis"); ok {
		axisOrigin, axisDir = b.resolveAxis1Placement(axisRef)
	}
	angle := attrFloat(item, "Angle", 0)
	return sweep.Revolve(prof, axisOrigin, axisDir, angle, placement.Mul(solidPlacement))
}

func (b *builder) resolveAxis1Placement(id uint32) (geom.Vec3, geom.Vec3) {
	e, err := b.decode(id)
	if err != nil {
		return geom.Vec3{}, geom.Vec3{X: 0, Y: 0, Z: 1}
	}
	origin := geom.Vec3{}
	if locRef, ok := attrRef(e, "Location"); ok {
		origin = b.resolvePoint(locRef)
	}
	axis := geom.Vec3{X: 0, Y: 0, Z: 1}
	if axisRef, ok := attrRef(e, "Axis"); ok {
		axis = b.resolveDirection(axisRef, axis)
	}
	return origin, axis
}

func (b *builder) buildSweptDisk(item *decode.DecodedEntity, placement geom.Mat4) (*geom.Mesh, error) {
	directrixRef, _ := attrRef(item, "Directrix")
	pts, err := b.resolveCurve3D(directrixRef)
	if err != nil {
		return nil, err
	}
	for i, p := range pts {
		pts[i] = placement.TransformPoint(p)
	}
	radius := attrFloat(item, "Radius", 0)
	return sweep.SweptDisk(pts, radius, attrFloat(item, "InnerRadius", 0), 16)
}

func (b *builder) coordList3D(coordinatesRef uint32) [][3]float64 {
	e, err := b.decode(coordinatesRef)
	if err != nil {
		return nil
	}
	v, ok := e.Attr("CoordList")
	if !ok {
		return nil
	}
	rows, ok := v.AsList()
	if !ok {
		return nil
	}
	var out [][3]float64
	for _, row := range rows {
		list, ok := row.AsList()
		if !ok {
			continue
		}
		var pt [3]float64
		for j := 0; j < 3 && j < len(list); j++ {
			pt[j], _ = list[j].AsFloat64()
		}
		out = append(out, pt)
	}
	return out
}

func (b *builder) buildTriangulatedFaceSet(item *decode.DecodedEntity, placement geom.Mat4) *geom.Mesh {
	coordsRef, _ := attrRef(item, "Coordinates")
	coords := b.coordList3D(coordsRef)

	var idx [][3]int
	if v, ok := item.Attr("CoordIndex"); ok {
		if rows, ok := v.AsList(); ok {
			for _, row := range rows {
				list, ok := row.AsList()
				if !ok || len(list) < 3 {
					continue
				}
				var tri [3]int
				for j := 0; j < 3; j++ {
					n, _ := list[j].AsFloat64()
					tri[j] = int(n)
				}
				idx = append(idx, tri)
			}
		}
	}

	var normals [][3]float64
	if v, ok := item.Attr("Normals"); ok {
		if rows, ok := v.AsList(); ok {
			for _, row := range rows {
				list, ok := row.AsList()
				if !ok || len(list) < 3 {
					normals = nil
					break
				}
				var n [3]float64
				for j := 0; j < 3; j++ {
					n[j], _ = list[j].AsFloat64()
				}
				normals = append(normals, n)
			}
		}
	}

	return tessellate.TriangulatedFaceSet(coords, idx, normals, placement)
}

func (b *builder) buildPolygonalFaceSet(item *decode.DecodedEntity, placement geom.Mat4) *geom.Mesh {
	coordsRef, _ := attrRef(item, "Coordinates")
	coords := b.coordList3D(coordsRef)

	var faces [][]int
	if v, ok := item.Attr("Faces"); ok {
		if list, ok := v.AsList(); ok {
			for _, f := range list {
				ref, ok := f.AsRef()
				if !ok {
					continue
				}
				faceEnt, err := b.decode(ref)
				if err != nil {
					continue
				}
				fv, ok := faceEnt.Attr("CoordIndex")
				if !ok {
					continue
				}
				idxList, ok := fv.AsList()
				if !ok {
					continue
				}
				var face []int
				for _, n := range idxList {
					f, _ := n.AsFloat64()
					face = append(face, int(f))
				}
				faces = append(faces, face)
			}
		}
	}

	var pnIndex []int
	if v, ok := item.Attr("PnIndex"); ok {
		if list, ok := v.AsList(); ok {
			for _, n := range list {
				f, _ := n.AsFloat64()
				pnIndex = append(pnIndex, int(f))
			}
		}
	}

	return tessellate.PolygonalFaceSet(coords, faces, pnIndex, placement)
}

func (b *builder) buildFacetedBrep(item *decode.DecodedEntity, placement geom.Mat4) *geom.Mesh {
	outerRef, _ := attrRef(item, "Outer")
	shell, err := b.decode(outerRef)
	if err != nil {
		return &geom.Mesh{}
	}
	facesAttr, ok := shell.Attr("CfsFaces")
	if !ok {
		return &geom.Mesh{}
	}
	faceRefs, ok := facesAttr.AsList()
	if !ok {
		return &geom.Mesh{}
	}
	var faces []tessellate.Face
	for _, fr := range faceRefs {
		ref, ok := fr.AsRef()
		if !ok {
			continue
		}
		faceEnt, err := b.decode(ref)
		if err != nil {
			continue
		}
		boundsAttr, ok := faceEnt.Attr("Bounds")
		if !ok {
			continue
		}
		boundRefs, ok := boundsAttr.AsList()
		if !ok || len(boundRefs) == 0 {
			continue
		}
		boundRef, ok := boundRefs[0].AsRef()
		if !ok {
			continue
		}
		boundEnt, err := b.decode(boundRef)
		if err != nil {
			continue
		}
		loopRef, ok := attrRef(boundEnt, "Bound")
		if !ok {
			continue
		}
		loopEnt, err := b.decode(loopRef)
		if err != nil {
			continue
		}
		polyAttr, ok := loopEnt.Attr("Polygon")
		if !ok {
			continue
		}
		ptRefs, ok := polyAttr.AsList()
		if !ok {
			continue
		}
		var loop [][3]float64
		for _, pr := range ptRefs {
			ref, ok := pr.AsRef()
			if !ok {
				continue
			}
			p := b.resolvePoint(ref)
			loop = append(loop, [3]float64{p.X, p.Y, p.Z})
		}
		faces = append(faces, tessellate.Face{Loop: loop})
	}
	return tessellate.FacetedBrep(faces, placement)
}

func (b *builder) buildMappedItem(item *decode.DecodedEntity, placement geom.Mat4, hostID uint32, hostType string) (*instance.Reference, error) {
	sourceRef, ok := attrRef(item, "MappingSource")
	if !ok {
		return nil, errors.NewDiagnostic(errors.ErrDegenerateMesh, "mapped item missing MappingSource")
	}
	repMap, err := b.decode(sourceRef)
	if err != nil {
		return nil, err
	}
	mappedRepRef, ok := attrRef(repMap, "MappedRepresentation")
	if !ok {
		return nil, errors.NewDiagnostic(errors.ErrDegenerateMesh, "mapping source missing MappedRepresentation")
	}
	originMat := geom.Identity4()
	if originRef, ok := attrRef(repMap, "MappingOrigin"); ok {
		originMat = b.resolveAxis2Placement3D(originRef)
	}

	b.mu.Lock()
	src, cached := b.sourceMeshCache[mappedRepRef]
	b.mu.Unlock()
	if !cached {
		src = b.buildSourceMesh(mappedRepRef)
		b.mu.Lock()
		b.sourceMeshCache[mappedRepRef] = src
		b.mu.Unlock()
	}

	targetMat := geom.Identity4()
	if targetRef, ok := attrRef(item, "MappingTarget"); ok {
		targetMat = b.resolveCartesianTransformOperator(targetRef)
	}

	return &instance.Reference{
		SourceID:  mappedRepRef,
		Transform: placement.Mul(targetMat).Mul(originMat),
		Color:     style.DefaultFor(hostType),
		ExpressID: hostID,
		IFCType:   hostType,
	}, nil
}

// buildSourceMesh materializes the mapped representation's own items in
// its local (un-instanced) coordinate space, used as the shared vertex
// data for every instance referencing it.
func (b *builder) buildSourceMesh(mappedRepRef uint32) *geom.Mesh {
	shape, err := b.decode(mappedRepRef)
	if err != nil {
		return &geom.Mesh{}
	}
	itemsAttr, ok := shape.Attr("Items")
	if !ok {
		return &geom.Mesh{}
	}
	itemList, ok := itemsAttr.AsList()
	if !ok {
		return &geom.Mesh{}
	}
	merged := &geom.Mesh{}
	for _, it := range itemList {
		ref, ok := it.AsRef()
		if !ok {
			continue
		}
		mesh, _, _ := b.itemToMesh(0, "", ref, geom.Identity4())
		if mesh == nil {
			continue
		}
		base := uint32(len(merged.Positions))
		merged.Positions = append(merged.Positions, mesh.Positions...)
		merged.Normals = append(merged.Normals, mesh.Normals...)
		for _, t := range mesh.Triangles {
			merged.Triangles = append(merged.Triangles, geom.Triangle{t[0] + base, t[1] + base, t[2] + base})
		}
	}
	return merged
}

// buildMappedItemInline resolves the same mapped-item chain as
// buildMappedItem but bakes the resulting transform directly into a fresh
// copy of the source mesh, used when EnableInstancing is off and every
// occurrence must stand alone rather than share vertex data.
func (b *builder) buildMappedItemInline(item *decode.DecodedEntity, placement geom.Mat4, hostID uint32, hostType string) (*geom.Mesh, error) {
	sourceRef, ok := attrRef(item, "MappingSource")
	if !ok {
		return nil, errors.NewDiagnostic(errors.ErrDegenerateMesh, "mapped item missing MappingSource")
	}
	repMap, err := b.decode(sourceRef)
	if err != nil {
		return nil, err
	}
	mappedRepRef, ok := attrRef(repMap, "MappedRepresentation")
	if !ok {
		return nil, errors.NewDiagnostic(errors.ErrDegenerateMesh, "mapping source missing MappedRepresentation")
	}
	originMat := geom.Identity4()
	if originRef, ok := attrRef(repMap, "MappingOrigin"); ok {
		originMat = b.resolveAxis2Placement3D(originRef)
	}

	b.mu.Lock()
	src, cached := b.sourceMeshCache[mappedRepRef]
	b.mu.Unlock()
	if !cached {
		src = b.buildSourceMesh(mappedRepRef)
		b.mu.Lock()
		b.sourceMeshCache[mappedRepRef] = src
		b.mu.Unlock()
	}

	targetMat := geom.Identity4()
	if targetRef, ok := attrRef(item, "MappingTarget"); ok {
		targetMat = b.resolveCartesianTransformOperator(targetRef)
	}

	full := placement.Mul(targetMat).Mul(originMat)
	mesh := &geom.Mesh{
		ExpressID: hostID,
		IFCType:   hostType,
		Color:     style.DefaultFor(hostType),
		Positions: make([]geom.Vec3, len(src.Positions)),
		Normals:   make([]geom.Vec3, len(src.Normals)),
		Triangles: append([]geom.Triangle(nil), src.Triangles...),
	}
	for i, p := range src.Positions {
		mesh.Positions[i] = full.TransformPoint(p)
	}
	for i, n := range src.Normals {
		mesh.Normals[i] = full.TransformDirection(n).Normalize()
	}
	mesh.Finalize()
	return mesh, nil
}

func (b *builder) resolveCartesianTransformOperator(id uint32) geom.Mat4 {
	e, err := b.decode(id)
	if err != nil {
		return geom.Identity4()
	}
	origin := geom.Vec3{}
	if locRef, ok := attrRef(e, "LocalOrigin"); ok {
		origin = b.resolvePoint(locRef)
	}
	x := geom.Vec3{X: 1}
	if ax1, ok := attrRef(e, "Axis1"); ok {
		x = b.resolveDirection(ax1, x)
	}
	y := geom.Vec3{Y: 1}
	if ax2, ok := attrRef(e, "Axis2"); ok {
		y = b.resolveDirection(ax2, y)
	}
	z := x.Cross(y).Normalize()
	x = x.Normalize()
	y = z.Cross(x).Normalize()
	scale := attrFloat(e, "Scale", 1)
	m := geom.AxesToMat4(origin, x, y, z)
	for i := 0; i < 3; i++ {
		m[i*4+0] *= scale
		m[i*4+1] *= scale
		m[i*4+2] *= scale
	}
	return m
}

// voidedExtrusion attempts the tier-1 planar subtraction path for a host
// whose sole representation item is an extruded solid, per spec §4.F.5.
// Openings that don't qualify for tier 1 (not coplanar with the host
// extrusion axis, or rejected by boolean2d.Subtract) are reported back as
// unhandled rather than warned about here; the caller routes them through
// the tier-2 mesh clip in applyTier2Voids instead of giving up on them.
func (b *builder) voidedExtrusion(hostID uint32, hostType string, itemRef uint32, placement geom.Mat4, openings []uint32) (*geom.Mesh, []Warning, map[uint32]bool, bool) {
	item, err := b.decode(itemRef)
	if err != nil || item.TypeUpper != "IFCEXTRUDEDAREASOLID" {
		return nil, nil, nil, false
	}
	sweptAreaRef, _ := attrRef(item, "SweptArea")
	hostProfile, err := b.resolveProfile(sweptAreaRef)
	if err != nil {
		return nil, nil, nil, false
	}
	solidPlacement := geom.Identity4()
	if posRef, ok := attrRef(item, "Position"); ok {
		solidPlacement = b.resolveAxis2Placement3D(posRef)
	}
	hostWorld := placement.Mul(solidPlacement)
	dir := geom.Vec3{X: 0, Y: 0, Z: 1}
	if dirRef, ok := attrRef(item, "ExtrudedDirection"); ok {
		dir = b.resolveDirection(dirRef, dir)
	}
	depth := attrFloat(item, "Depth", 0)
	worldDir := hostWorld.TransformDirection(dir).Normalize()
	hostInv := hostWorld.InverseRigid()

	var footprints []boolean2d.VoidFootprint
	for _, openingID := range openings {
		fp, ok := b.openingFootprint(openingID, worldDir, hostInv)
		if !ok {
			continue
		}
		fp.OpeningID = openingID
		footprints = append(footprints, fp)
	}
	if len(footprints) == 0 {
		return nil, nil, nil, false
	}

	// rejected footprints are simply left out of handled, so the caller
	// routes them through applyTier2Voids instead.
	voided, applied, _ := boolean2d.Subtract(hostProfile, footprints)
	handled := make(map[uint32]bool, len(applied))
	for _, fp := range applied {
		handled[fp.OpeningID] = true
	}

	mesh, err := sweep.Extrude(voided, dir, depth, hostWorld)
	if err != nil {
		return nil, []Warning{{ExpressID: hostID, Kind: errors.ErrBooleanFailed, Message: err.Error()}}, handled, false
	}
	mesh.ExpressID, mesh.IFCType = hostID, hostType
	return mesh, nil, handled, true
}

func (b *builder) openingFootprint(openingID uint32, hostWorldDir geom.Vec3, hostInv geom.Mat4) (boolean2d.VoidFootprint, bool) {
	opening, err := b.decode(openingID)
	if err != nil {
		return boolean2d.VoidFootprint{}, false
	}
	openingPlacement := geom.Identity4()
	if plRef, ok := attrRef(opening, "ObjectPlacement"); ok {
		openingPlacement = b.resolveObjectPlacement(plRef)
	}
	items := b.representationItemsFor(opening)
	if len(items) != 1 {
		return boolean2d.VoidFootprint{}, false
	}
	item, err := b.decode(items[0])
	if err != nil || item.TypeUpper != "IFCEXTRUDEDAREASOLID" {
		return boolean2d.VoidFootprint{}, false
	}
	sweptAreaRef, _ := attrRef(item, "SweptArea")
	prof, err := b.resolveProfile(sweptAreaRef)
	if err != nil {
		return boolean2d.VoidFootprint{}, false
	}
	solidPlacement := geom.Identity4()
	if posRef, ok := attrRef(item, "Position"); ok {
		solidPlacement = b.resolveAxis2Placement3D(posRef)
	}
	openingWorld := openingPlacement.Mul(solidPlacement)
	dir := geom.Vec3{X: 0, Y: 0, Z: 1}
	if dirRef, ok := attrRef(item, "ExtrudedDirection"); ok {
		dir = b.resolveDirection(dirRef, dir)
	}
	depth := attrFloat(item, "Depth", 0)
	worldDir := openingWorld.TransformDirection(dir).Normalize()
	if !boolean2d.Coplanar(worldDir, hostWorldDir) {
		return boolean2d.VoidFootprint{}, false
	}

	loop2D := make([]geom.Vec2, len(prof.Outer))
	minZ, maxZ := 0.0, depth
	for i, p := range prof.Outer {
		world := openingWorld.TransformPoint(geom.Vec3{X: p.X, Y: p.Y})
		local := hostInv.TransformPoint(world)
		loop2D[i] = geom.Vec2{X: local.X, Y: local.Y}
	}
	// depth range along the opening's own extrusion axis, expressed in
	// host-local Z by transforming both end caps.
	bottom := hostInv.TransformPoint(openingWorld.TransformPoint(geom.Vec3{}))
	top := hostInv.TransformPoint(openingWorld.TransformPoint(dir.Scale(depth)))
	if bottom.Z < top.Z {
		minZ, maxZ = bottom.Z, top.Z
	} else {
		minZ, maxZ = top.Z, bottom.Z
	}
	return boolean2d.VoidFootprint{Loop: loop2D, ZStart: minZ, ZEnd: maxZ}, true
}

// worldPositions undoes a mesh's RTC recentering, returning positions in
// the same project-local frame every mesh started in before Finalize.
func worldPositions(mesh *geom.Mesh) []geom.Vec3 {
	if !mesh.HasRTC {
		return mesh.Positions
	}
	out := make([]geom.Vec3, len(mesh.Positions))
	for i, p := range mesh.Positions {
		out[i] = p.Add(mesh.RTCOffset)
	}
	return out
}

// openingWorldBounds computes an opening's project-local axis-aligned
// bounding box by building its own representation items exactly as any
// other product's would be, then unioning their positions. This covers
// any opening shape, not just extrusions, since the tier-2 clip in
// boolean3d only needs a box.
func (b *builder) openingWorldBounds(openingID uint32) (boolean3d.Box, bool) {
	opening, err := b.decode(openingID)
	if err != nil {
		return boolean3d.Box{}, false
	}
	placement := geom.Identity4()
	if plRef, ok := attrRef(opening, "ObjectPlacement"); ok {
		placement = b.resolveObjectPlacement(plRef)
	}
	items := b.representationItemsFor(opening)
	if len(items) == 0 {
		return boolean3d.Box{}, false
	}
	var box boolean3d.Box
	found := false
	for _, itemRef := range items {
		mesh, _, _ := b.itemToMesh(0, "", itemRef, placement)
		if mesh == nil || len(mesh.Positions) == 0 {
			continue
		}
		for _, p := range worldPositions(mesh) {
			if !found {
				box.Min, box.Max = p, p
				found = true
				continue
			}
			box.Min = geom.Vec3{X: math.Min(box.Min.X, p.X), Y: math.Min(box.Min.Y, p.Y), Z: math.Min(box.Min.Z, p.Z)}
			box.Max = geom.Vec3{X: math.Max(box.Max.X, p.X), Y: math.Max(box.Max.Y, p.Y), Z: math.Max(box.Max.Z, p.Z)}
		}
	}
	if !found {
		return boolean3d.Box{}, false
	}
	return box, true
}

// applyTier2Voids is the fallback of last resort from spec §4.F.5: for
// every opening tier 1 didn't consume (non-coplanar with its host, or
// rejected as not fully contained in the host profile), clip the
// opening's world-space bounding box directly out of every mesh's
// triangles, per the plane-clip-and-collect routing in
// internal/geom/boolean3d. Only an opening whose own geometry can't be
// resolved at all still ends in ErrBooleanFailed.
func (b *builder) applyTier2Voids(hostID uint32, meshes []*geom.Mesh, openings []uint32, handled map[uint32]bool, warns []Warning) ([]*geom.Mesh, []Warning) {
	var touched bool
	for _, openingID := range openings {
		if handled[openingID] {
			continue
		}
		box, ok := b.openingWorldBounds(openingID)
		if !ok {
			warns = append(warns, Warning{ExpressID: hostID, Kind: errors.ErrBooleanFailed, Message: "opening geometry could not be resolved, tier 2 boolean not attempted"})
			continue
		}
		for _, mesh := range meshes {
			pos, norm, tri := boolean3d.CutOpening(worldPositions(mesh), mesh.Normals, mesh.Triangles, box)
			mesh.Positions, mesh.Normals, mesh.Triangles = pos, norm, tri
			mesh.HasRTC, mesh.RTCOffset = false, geom.Vec3{}
		}
		touched = true
	}
	if touched {
		for _, mesh := range meshes {
			mesh.Finalize()
		}
	}
	return meshes, warns
}

// applyStyle resolves and assigns a mesh's color per spec §4.F.8 /
// §10 open question 1. Layer-assignment resolution (the middle tier of
// the precedence chain) is not implemented — see DESIGN.md — so lookups
// fall from styled item straight to the per-type default.
func (b *builder) applyStyle(mesh *geom.Mesh, itemRef uint32, hostType string) {
	var styledColor *geom.RGBA
	if styledItemID, ok := b.styledItemFor[itemRef]; ok {
		styledColor = b.resolveStyledItemColor(styledItemID)
	}
	mesh.Color = style.Resolve(hostType, styledColor, nil).Color
}

func (b *builder) resolveStyledItemColor(styledItemID uint32) *geom.RGBA {
	styledItem, err := b.decode(styledItemID)
	if err != nil {
		return nil
	}
	stylesAttr, ok := styledItem.Attr("Styles")
	if !ok {
		return nil
	}
	styleRefs, ok := stylesAttr.AsList()
	if !ok {
		return nil
	}
	for _, sr := range styleRefs {
		ref, ok := sr.AsRef()
		if !ok {
			continue
		}
		surfaceStyle, err := b.decode(ref)
		if err != nil || surfaceStyle.TypeUpper != "IFCSURFACESTYLE" {
			continue
		}
		renderingsAttr, ok := surfaceStyle.Attr("Styles")
		if !ok {
			continue
		}
		renderingRefs, ok := renderingsAttr.AsList()
		if !ok || len(renderingRefs) == 0 {
			continue
		}
		renderingRef, ok := renderingRefs[0].AsRef()
		if !ok {
			continue
		}
		rendering, err := b.decode(renderingRef)
		if err != nil {
			continue
		}
		colourRef, ok := attrRef(rendering, "SurfaceColour")
		if !ok {
			continue
		}
		colour, err := b.decode(colourRef)
		if err != nil {
			continue
		}
		alpha := float32(1)
		if t := attrFloat(rendering, "Transparency", 0); t > 0 {
			alpha = float32(1 - t)
		}
		return &geom.RGBA{
			R: float32(attrFloat(colour, "Red", 0)),
			G: float32(attrFloat(colour, "Green", 0)),
			B: float32(attrFloat(colour, "Blue", 0)),
			A: alpha,
		}
	}
	return nil
}
