package schema

import "github.com/ifc-lite/ifclite/internal/stepindex"

var ifc4x3 = buildRegistry(stepindex.SchemaIFC4X3, commonEntities())
