package schema

import "github.com/ifc-lite/ifclite/internal/stepindex"

// IFC2X3 lacks IfcSweptDiskSolid.StartParam/EndParam and a handful of other
// late additions; those attributes are optional here regardless of version,
// so the shared definitions serve both without loss (documented in
// DESIGN.md).
var ifc2x3 = buildRegistry(stepindex.SchemaIFC2X3, commonEntities())
