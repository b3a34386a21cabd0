package schema

import "github.com/ifc-lite/ifclite/internal/stepindex"

var ifc4 = buildRegistry(stepindex.SchemaIFC4, commonEntities())
