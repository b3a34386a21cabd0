// Package instance deduplicates IfcMappedItem references into shared
// InstancedGeometry blocks after streaming completes, per spec §4.F.7.
package instance

import "github.com/ifc-lite/ifclite/internal/geom"

// Reference is one mapped-item usage: which source mesh it points at, the
// combined transform (mapping source * mapping target * product
// placement), and the placement's owning product for the instance's
// express id/type.
type Reference struct {
	SourceID  uint32 // express id of the mapped source representation
	Transform geom.Mat4
	Color     geom.RGBA
	ExpressID uint32
	IFCType   string
}

// Dedup groups references sharing a SourceID into one InstancedGeometry
// per source, reusing sourceMeshes[id] as the shared vertex/index data so
// no vertex data is duplicated across instances.
func Dedup(refs []Reference, sourceMeshes map[uint32]*geom.Mesh) []geom.InstancedGeometry {
	order := make([]uint32, 0, len(sourceMeshes))
	grouped := make(map[uint32][]Reference)
	for _, r := range refs {
		if _, ok := grouped[r.SourceID]; !ok {
			order = append(order, r.SourceID)
		}
		grouped[r.SourceID] = append(grouped[r.SourceID], r)
	}
	out := make([]geom.InstancedGeometry, 0, len(order))
	for _, id := range order {
		src, ok := sourceMeshes[id]
		if !ok {
			continue
		}
		ig := geom.InstancedGeometry{
			Positions: src.Positions,
			Normals:   src.Normals,
			Triangles: src.Triangles,
		}
		for _, r := range grouped[id] {
			ig.Instances = append(ig.Instances, geom.Instance{
				Transform: r.Transform,
				Color:     r.Color,
				ExpressID: r.ExpressID,
				IFCType:   r.IFCType,
			})
		}
		out = append(out, ig)
	}
	return out
}
