package schema

// commonEntities returns the curated entity definitions shared by all three
// supported schema versions. Real IFC2X3/IFC4/IFC4X3 differ in a handful of
// attributes (e.g. IfcSweptDiskSolid gained StartParam/EndParam after
// IFC2X3); those differences are not load-bearing for this implementation's
// property/relationship/geometry walkers and are intentionally not modeled
// per-version (documented in DESIGN.md).
func commonEntities() []*EntityDef {
	return []*EntityDef{
		// --- root / object hierarchy -----------------------------------
		entity("IFCROOT", "",
			attrOpt("GlobalId", tString()),
			attrOpt("OwnerHistory", tEntity("IFCOWNERHISTORY")),
			attrOpt("Name", tString()),
			attrOpt("Description", tString()),
		),
		entity("IFCOBJECTDEFINITION", "IFCROOT"),
		entity("IFCOBJECT", "IFCOBJECTDEFINITION",
			attrOpt("ObjectType", tString()),
		),
		entity("IFCPRODUCT", "IFCOBJECT",
			attrOpt("ObjectPlacement", tEntity("IFCOBJECTPLACEMENT")),
			attrOpt("Representation", tEntity("IFCPRODUCTREPRESENTATION")),
		),
		entity("IFCELEMENT", "IFCPRODUCT",
			attrOpt("Tag", tString()),
		),
		entity("IFCSPATIALSTRUCTUREELEMENT", "IFCPRODUCT",
			attrOpt("LongName", tString()),
			attrOpt("CompositionType", tEnum("COMPLEX", "ELEMENT", "PARTIAL")),
		),
		entity("IFCPROJECT", "IFCOBJECTDEFINITION",
			attrOpt("LongName", tString()),
			attrOpt("Phase", tString()),
			attrOpt("RepresentationContexts", tList(tEntity("IFCREPRESENTATIONCONTEXT"))),
			attrOpt("UnitsInContext", tEntity("IFCUNITASSIGNMENT")),
		),
		entity("IFCSITE", "IFCSPATIALSTRUCTUREELEMENT",
			attrOpt("RefLatitude", tList(tInt())),
			attrOpt("RefLongitude", tList(tInt())),
			attrOpt("RefElevation", tReal()),
			attrOpt("LandTitleNumber", tString()),
			attrOpt("SiteAddress", tEntity("IFCPOSTALADDRESS")),
		),
		entity("IFCBUILDING", "IFCSPATIALSTRUCTUREELEMENT",
			attrOpt("ElevationOfRefHeight", tReal()),
			attrOpt("ElevationOfTerrain", tReal()),
			attrOpt("BuildingAddress", tEntity("IFCPOSTALADDRESS")),
		),
		entity("IFCBUILDINGSTOREY", "IFCSPATIALSTRUCTUREELEMENT",
			attrOpt("Elevation", tReal()),
		),
		entity("IFCSPACE", "IFCSPATIALSTRUCTUREELEMENT",
			attrOpt("InteriorOrExteriorSpace", tEnum("INTERNAL", "EXTERNAL")),
			attrOpt("ElevationWithFlooring", tReal()),
		),
		entity("IFCWALL", "IFCELEMENT"),
		entity("IFCWALLSTANDARDCASE", "IFCWALL"),
		entity("IFCSLAB", "IFCELEMENT",
			attrOpt("PredefinedType", tEnum("FLOOR", "ROOF", "LANDING", "BASESLAB", "NOTDEFINED")),
		),
		entity("IFCDOOR", "IFCELEMENT",
			attrOpt("OverallHeight", tReal()),
			attrOpt("OverallWidth", tReal()),
		),
		entity("IFCWINDOW", "IFCELEMENT",
			attrOpt("OverallHeight", tReal()),
			attrOpt("OverallWidth", tReal()),
		),
		entity("IFCOPENINGELEMENT", "IFCELEMENT"),
		entity("IFCBUILDINGELEMENTPROXY", "IFCELEMENT"),
		entity("IFCCOLUMN", "IFCELEMENT"),
		entity("IFCBEAM", "IFCELEMENT"),
		entity("IFCROOF", "IFCELEMENT"),
		entity("IFCSTAIR", "IFCELEMENT"),
		entity("IFCRAILING", "IFCELEMENT"),
		entity("IFCCOVERING", "IFCELEMENT"),
		entity("IFCFURNISHINGELEMENT", "IFCELEMENT"),
		entity("IFCPLATE", "IFCELEMENT"),
		entity("IFCMEMBER", "IFCELEMENT"),

		// --- relationships ------------------------------------------------
		entity("IFCRELATIONSHIP", "IFCROOT"),
		entity("IFCRELDECOMPOSES", "IFCRELATIONSHIP"),
		entity("IFCRELCONTAINEDINSPATIALSTRUCTURE", "IFCRELATIONSHIP",
			attr("RelatedElements", tList(tEntity("IFCPRODUCT"))),
			attr("RelatingStructure", tEntity("IFCSPATIALSTRUCTUREELEMENT")),
		),
		entity("IFCRELAGGREGATES", "IFCRELDECOMPOSES",
			attr("RelatingObject", tEntity("IFCOBJECTDEFINITION")),
			attr("RelatedObjects", tList(tEntity("IFCOBJECTDEFINITION"))),
		),
		entity("IFCRELDEFINESBYTYPE", "IFCRELATIONSHIP",
			attr("RelatedObjects", tList(tEntity("IFCOBJECT"))),
			attr("RelatingType", tEntity("IFCTYPEOBJECT")),
		),
		entity("IFCRELDEFINESBYPROPERTIES", "IFCRELATIONSHIP",
			attr("RelatedObjects", tList(tEntity("IFCOBJECT"))),
			attr("RelatingPropertyDefinition", tSelect("IFCPROPERTYSETDEFINITION")),
		),
		entity("IFCRELASSOCIATES", "IFCRELATIONSHIP",
			attr("RelatedObjects", tList(tEntity("IFCROOT"))),
		),
		entity("IFCRELASSOCIATESMATERIAL", "IFCRELASSOCIATES",
			attr("RelatingMaterial", tSelect("IFCMATERIALSELECT")),
		),
		entity("IFCRELASSOCIATESCLASSIFICATION", "IFCRELASSOCIATES",
			attr("RelatingClassification", tSelect("IFCCLASSIFICATIONSELECT")),
		),
		entity("IFCRELASSOCIATESDOCUMENT", "IFCRELASSOCIATES",
			attr("RelatingDocument", tSelect("IFCDOCUMENTSELECT")),
		),
		entity("IFCRELVOIDSELEMENT", "IFCRELDECOMPOSES",
			attr("RelatingBuildingElement", tEntity("IFCELEMENT")),
			attr("RelatedOpeningElement", tEntity("IFCOPENINGELEMENT")),
		),
		entity("IFCRELFILLSELEMENT", "IFCRELDECOMPOSES",
			attr("RelatingOpeningElement", tEntity("IFCOPENINGELEMENT")),
			attr("RelatedBuildingElement", tEntity("IFCELEMENT")),
		),
		entity("IFCRELCONNECTSPATHELEMENTS", "IFCRELATIONSHIP",
			attr("RelatingElement", tEntity("IFCELEMENT")),
			attr("RelatedElement", tEntity("IFCELEMENT")),
		),

		// --- property / quantity sets --------------------------------------
		entity("IFCPROPERTYSETDEFINITION", "IFCROOT"),
		entity("IFCPROPERTYSET", "IFCPROPERTYSETDEFINITION",
			attr("HasProperties", tList(tEntity("IFCPROPERTY"))),
		),
		entity("IFCPROPERTY", "",
			attr("Name", tString()),
			attrOpt("Description", tString()),
		),
		entity("IFCPROPERTYSINGLEVALUE", "IFCPROPERTY",
			attrOpt("NominalValue", tSelect("IFCVALUE")),
			attrOpt("Unit", tEntity("IFCUNIT")),
		),
		entity("IFCPROPERTYENUMERATEDVALUE", "IFCPROPERTY",
			attrOpt("EnumerationValues", tList(tSelect("IFCVALUE"))),
			attrOpt("EnumerationReference", tEntity("IFCPROPERTYENUMERATION")),
		),
		entity("IFCPROPERTYBOUNDEDVALUE", "IFCPROPERTY",
			attrOpt("UpperBoundValue", tSelect("IFCVALUE")),
			attrOpt("LowerBoundValue", tSelect("IFCVALUE")),
			attrOpt("Unit", tEntity("IFCUNIT")),
		),
		entity("IFCPROPERTYLISTVALUE", "IFCPROPERTY",
			attrOpt("ListValues", tList(tSelect("IFCVALUE"))),
			attrOpt("Unit", tEntity("IFCUNIT")),
		),
		entity("IFCPROPERTYTABLEVALUE", "IFCPROPERTY",
			attrOpt("DefiningValues", tList(tSelect("IFCVALUE"))),
			attrOpt("DefinedValues", tList(tSelect("IFCVALUE"))),
		),
		entity("IFCPROPERTYREFERENCEVALUE", "IFCPROPERTY",
			attrOpt("UsageName", tString()),
			attrOpt("PropertyReference", tSelect("IFCOBJECTREFERENCESELECT")),
		),

		entity("IFCELEMENTQUANTITY", "IFCPROPERTYSETDEFINITION",
			attr("Quantities", tList(tEntity("IFCPHYSICALQUANTITY"))),
		),
		entity("IFCPHYSICALQUANTITY", "",
			attr("Name", tString()),
			attrOpt("Description", tString()),
		),
		entity("IFCQUANTITYLENGTH", "IFCPHYSICALQUANTITY",
			attrOpt("Unit", tEntity("IFCNAMEDUNIT")),
			attr("LengthValue", tReal()),
		),
		entity("IFCQUANTITYAREA", "IFCPHYSICALQUANTITY",
			attrOpt("Unit", tEntity("IFCNAMEDUNIT")),
			attr("AreaValue", tReal()),
		),
		entity("IFCQUANTITYVOLUME", "IFCPHYSICALQUANTITY",
			attrOpt("Unit", tEntity("IFCNAMEDUNIT")),
			attr("VolumeValue", tReal()),
		),
		entity("IFCQUANTITYCOUNT", "IFCPHYSICALQUANTITY",
			attrOpt("Unit", tEntity("IFCNAMEDUNIT")),
			attr("CountValue", tReal()),
		),
		entity("IFCQUANTITYWEIGHT", "IFCPHYSICALQUANTITY",
			attrOpt("Unit", tEntity("IFCNAMEDUNIT")),
			attr("WeightValue", tReal()),
		),
		entity("IFCQUANTITYTIME", "IFCPHYSICALQUANTITY",
			attrOpt("Unit", tEntity("IFCNAMEDUNIT")),
			attr("TimeValue", tReal()),
		),

		// --- geometry -------------------------------------------------------
		entity("IFCPROFILEDEF", "",
			attr("ProfileType", tEnum("CURVE", "AREA")),
			attrOpt("ProfileName", tString()),
		),
		entity("IFCPARAMETERIZEDPROFILEDEF", "IFCPROFILEDEF",
			attrOpt("Position", tEntity("IFCAXIS2PLACEMENT2D")),
		),
		entity("IFCRECTANGLEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF",
			attr("XDim", tReal()),
			attr("YDim", tReal()),
		),
		entity("IFCCIRCLEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF",
			attr("Radius", tReal()),
		),
		entity("IFCCIRCLEHOLLOWPROFILEDEF", "IFCCIRCLEPROFILEDEF",
			attr("WallThickness", tReal()),
		),
		entity("IFCARBITRARYCLOSEDPROFILEDEF", "IFCPROFILEDEF",
			attr("OuterCurve", tEntity("IFCCURVE")),
		),
		entity("IFCARBITRARYPROFILEDEFWITHVOIDS", "IFCARBITRARYCLOSEDPROFILEDEF",
			attr("InnerCurves", tList(tEntity("IFCCURVE"))),
		),
		entity("IFCRECTANGLEHOLLOWPROFILEDEF", "IFCRECTANGLEPROFILEDEF",
			attr("WallThickness", tReal()),
			attrOpt("InnerFilletRadius", tReal()),
			attrOpt("OuterFilletRadius", tReal()),
		),
		entity("IFCISHAPEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF",
			attr("OverallWidth", tReal()),
			attr("OverallDepth", tReal()),
			attr("WebThickness", tReal()),
			attr("FlangeThickness", tReal()),
			attrOpt("FilletRadius", tReal()),
		),
		entity("IFCLSHAPEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF",
			attr("Depth", tReal()),
			attrOpt("Width", tReal()),
			attr("Thickness", tReal()),
			attrOpt("FilletRadius", tReal()),
		),
		entity("IFCUSHAPEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF",
			attr("Depth", tReal()),
			attr("FlangeWidth", tReal()),
			attr("WebThickness", tReal()),
			attr("FlangeThickness", tReal()),
			attrOpt("FilletRadius", tReal()),
		),
		entity("IFCTSHAPEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF",
			attr("Depth", tReal()),
			attr("FlangeWidth", tReal()),
			attr("WebThickness", tReal()),
			attr("FlangeThickness", tReal()),
			attrOpt("FilletRadius", tReal()),
		),
		entity("IFCCSHAPEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF",
			attr("Depth", tReal()),
			attr("Width", tReal()),
			attr("WallThickness", tReal()),
			attrOpt("Girth", tReal()),
			attrOpt("InternalFilletRadius", tReal()),
		),
		entity("IFCZSHAPEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF",
			attr("Depth", tReal()),
			attr("FlangeWidth", tReal()),
			attr("WebThickness", tReal()),
			attr("FlangeThickness", tReal()),
			attrOpt("FilletRadius", tReal()),
		),

		entity("IFCREPRESENTATIONITEM", ""),
		entity("IFCGEOMETRICREPRESENTATIONITEM", "IFCREPRESENTATIONITEM"),
		entity("IFCSOLIDMODEL", "IFCGEOMETRICREPRESENTATIONITEM"),
		entity("IFCSWEPTAREASOLID", "IFCSOLIDMODEL",
			attr("SweptArea", tEntity("IFCPROFILEDEF")),
			attrOpt("Position", tEntity("IFCAXIS2PLACEMENT3D")),
		),
		entity("IFCEXTRUDEDAREASOLID", "IFCSWEPTAREASOLID",
			attr("ExtrudedDirection", tEntity("IFCDIRECTION")),
			attr("Depth", tReal()),
		),
		entity("IFCREVOLVEDAREASOLID", "IFCSWEPTAREASOLID",
			attr("Axis", tEntity("IFCAXIS1PLACEMENT")),
			attr("Angle", tReal()),
		),
		entity("IFCSWEPTDISKSOLID", "IFCSOLIDMODEL",
			attr("Directrix", tEntity("IFCCURVE")),
			attr("Radius", tReal()),
			attrOpt("InnerRadius", tReal()),
			attrOpt("StartParam", tReal()),
			attrOpt("EndParam", tReal()),
		),

		entity("IFCTESSELLATEDITEM", "IFCGEOMETRICREPRESENTATIONITEM"),
		entity("IFCTESSELLATEDFACESET", "IFCTESSELLATEDITEM",
			attr("Coordinates", tEntity("IFCCARTESIANPOINTLIST3D")),
		),
		entity("IFCTRIANGULATEDFACESET", "IFCTESSELLATEDFACESET",
			attrOpt("Normals", tList(tList(tReal()))),
			attrOpt("Closed", tBool()),
			attr("CoordIndex", tList(tList(tInt()))),
			attrOpt("PnIndex", tList(tInt())),
		),
		entity("IFCPOLYGONALFACESET", "IFCTESSELLATEDFACESET",
			attrOpt("Normals", tList(tList(tReal()))),
			attrOpt("Closed", tBool()),
			attr("Faces", tList(tEntity("IFCINDEXEDPOLYGONALFACE"))),
			attrOpt("PnIndex", tList(tInt())),
		),
		entity("IFCINDEXEDPOLYGONALFACE", "",
			attr("CoordIndex", tList(tInt())),
		),
		entity("IFCCARTESIANPOINTLIST3D", "",
			attr("CoordList", tList(tList(tReal()))),
		),
		entity("IFCCARTESIANPOINT", "",
			attr("Coordinates", tList(tReal())),
		),
		entity("IFCDIRECTION", "",
			attr("DirectionRatios", tList(tReal())),
		),
		entity("IFCAXIS2PLACEMENT3D", "",
			attr("Location", tEntity("IFCCARTESIANPOINT")),
			attrOpt("Axis", tEntity("IFCDIRECTION")),
			attrOpt("RefDirection", tEntity("IFCDIRECTION")),
		),
		entity("IFCAXIS2PLACEMENT2D", "",
			attr("Location", tEntity("IFCCARTESIANPOINT")),
			attrOpt("RefDirection", tEntity("IFCDIRECTION")),
		),
		entity("IFCAXIS1PLACEMENT", "",
			attr("Location", tEntity("IFCCARTESIANPOINT")),
			attrOpt("Axis", tEntity("IFCDIRECTION")),
		),
		entity("IFCOBJECTPLACEMENT", ""),
		entity("IFCLOCALPLACEMENT", "IFCOBJECTPLACEMENT",
			attrOpt("PlacementRelTo", tEntity("IFCOBJECTPLACEMENT")),
			attr("RelativePlacement", tEntity("IFCAXIS2PLACEMENT3D")),
		),
		entity("IFCMAPPEDITEM", "IFCREPRESENTATIONITEM",
			attr("MappingSource", tEntity("IFCREPRESENTATIONMAP")),
			attr("MappingTarget", tEntity("IFCCARTESIANTRANSFORMATIONOPERATOR")),
		),
		entity("IFCREPRESENTATIONMAP", "",
			attr("MappingOrigin", tEntity("IFCAXIS2PLACEMENT3D")),
			attr("MappedRepresentation", tEntity("IFCSHAPEREPRESENTATION")),
		),
		entity("IFCCARTESIANTRANSFORMATIONOPERATOR", "",
			attrOpt("Axis1", tEntity("IFCDIRECTION")),
			attrOpt("Axis2", tEntity("IFCDIRECTION")),
			attr("LocalOrigin", tEntity("IFCCARTESIANPOINT")),
			attrOpt("Scale", tReal()),
		),
		entity("IFCCARTESIANTRANSFORMATIONOPERATOR3D", "IFCCARTESIANTRANSFORMATIONOPERATOR",
			attrOpt("Axis3", tEntity("IFCDIRECTION")),
		),

		entity("IFCPRODUCTREPRESENTATION", "",
			attrOpt("Name", tString()),
			attrOpt("Description", tString()),
			attr("Representations", tList(tEntity("IFCREPRESENTATION"))),
		),
		entity("IFCPRODUCTDEFINITIONSHAPE", "IFCPRODUCTREPRESENTATION"),
		entity("IFCREPRESENTATION", "",
			attrOpt("ContextOfItems", tEntity("IFCREPRESENTATIONCONTEXT")),
			attrOpt("RepresentationIdentifier", tString()),
			attrOpt("RepresentationType", tString()),
			attr("Items", tList(tEntity("IFCREPRESENTATIONITEM"))),
		),
		entity("IFCSHAPEREPRESENTATION", "IFCREPRESENTATION"),
		entity("IFCSTYLEDITEM", "IFCREPRESENTATIONITEM",
			attrOpt("Item", tEntity("IFCREPRESENTATIONITEM")),
			attr("Styles", tList(tEntity("IFCPRESENTATIONSTYLE"))),
			attrOpt("Name", tString()),
		),
		entity("IFCPRESENTATIONSTYLE", "",
			attrOpt("Name", tString()),
		),
		entity("IFCSURFACESTYLE", "IFCPRESENTATIONSTYLE",
			attr("Side", tEnum("POSITIVE", "NEGATIVE", "BOTH")),
			attr("Styles", tList(tEntity("IFCSURFACESTYLERENDERING"))),
		),
		entity("IFCSURFACESTYLERENDERING", "",
			attr("SurfaceColour", tEntity("IFCCOLOURRGB")),
			attrOpt("Transparency", tReal()),
		),
		entity("IFCCOLOURRGB", "",
			attrOpt("Name", tString()),
			attr("Red", tReal()),
			attr("Green", tReal()),
			attr("Blue", tReal()),
		),

		entity("IFCCURVE", "IFCGEOMETRICREPRESENTATIONITEM"),
		entity("IFCLINE", "IFCCURVE",
			attr("Pnt", tEntity("IFCCARTESIANPOINT")),
			attr("Dir", tEntity("IFCVECTOR")),
		),
		entity("IFCVECTOR", "",
			attr("Orientation", tEntity("IFCDIRECTION")),
			attr("Magnitude", tReal()),
		),
		entity("IFCPOLYLINE", "IFCCURVE",
			attr("Points", tList(tEntity("IFCCARTESIANPOINT"))),
		),
		entity("IFCCIRCLE", "IFCCURVE",
			attr("Position", tEntity("IFCAXIS2PLACEMENT3D")),
			attr("Radius", tReal()),
		),
		entity("IFCTRIMMEDCURVE", "IFCCURVE",
			attr("BasisCurve", tEntity("IFCCURVE")),
			attr("Trim1", tList(tSelect("IFCTRIMMINGSELECT"))),
			attr("Trim2", tList(tSelect("IFCTRIMMINGSELECT"))),
			attrOpt("SenseAgreement", tBool()),
			attrOpt("MasterRepresentation", tEnum("CARTESIAN", "PARAMETER")),
		),
		entity("IFCCOMPOSITECURVE", "IFCCURVE",
			attr("Segments", tList(tEntity("IFCCOMPOSITECURVESEGMENT"))),
			attrOpt("SelfIntersect", tBool()),
		),
		entity("IFCCOMPOSITECURVESEGMENT", "",
			attr("Transition", tEnum("DISCONTINUOUS", "CONTINUOUS", "CONTSAMEGRADIENT", "CONTSAMEGRADIENTSAMECURVATURE")),
			attr("SameSense", tBool()),
			attr("ParentCurve", tEntity("IFCCURVE")),
		),
		entity("IFCBSPLINECURVEWITHKNOTS", "IFCCURVE",
			attr("Degree", tInt()),
			attr("ControlPointsList", tList(tEntity("IFCCARTESIANPOINT"))),
			attr("CurveForm", tEnum("POLYLINE_FORM", "CIRCULAR_ARC", "ELLIPTIC_ARC", "PARABOLIC_ARC", "HYPERBOLIC_ARC", "UNSPECIFIED")),
			attrOpt("ClosedCurve", tBool()),
			attrOpt("SelfIntersect", tBool()),
			attr("KnotMultiplicities", tList(tInt())),
			attr("Knots", tList(tReal())),
			attrOpt("KnotSpec", tEnum("UNIFORM_KNOTS", "QUASI_UNIFORM_KNOTS", "PIECEWISE_BEZIER_KNOTS", "UNSPECIFIED")),
		),

		// --- B-rep faces ----------------------------------------------------
		entity("IFCMANIFOLDSOLIDBREP", "IFCSOLIDMODEL",
			attr("Outer", tEntity("IFCCLOSEDSHELL")),
		),
		entity("IFCFACETEDBREP", "IFCMANIFOLDSOLIDBREP"),
		entity("IFCCONNECTEDFACESET", "",
			attr("CfsFaces", tList(tEntity("IFCFACE"))),
		),
		entity("IFCCLOSEDSHELL", "IFCCONNECTEDFACESET"),
		entity("IFCOPENSHELL", "IFCCONNECTEDFACESET"),
		entity("IFCFACE", "",
			attr("Bounds", tList(tEntity("IFCFACEBOUND"))),
		),
		entity("IFCFACEBOUND", "",
			attr("Bound", tEntity("IFCLOOP")),
			attr("Orientation", tBool()),
		),
		entity("IFCFACEOUTERBOUND", "IFCFACEBOUND"),
		entity("IFCLOOP", ""),
		entity("IFCPOLYLOOP", "IFCLOOP",
			attr("Polygon", tList(tEntity("IFCCARTESIANPOINT"))),
		),

		// --- units / georeferencing -----------------------------------------
		entity("IFCUNITASSIGNMENT", "",
			attr("Units", tList(tSelect("IFCUNIT"))),
		),
		entity("IFCNAMEDUNIT", "",
			attrOpt("Dimensions", tEntity("IFCDIMENSIONALEXPONENTS")),
			attr("UnitType", tEnum("LENGTHUNIT", "AREAUNIT", "VOLUMEUNIT", "MASSUNIT", "TIMEUNIT", "PLANEANGLEUNIT")),
		),
		entity("IFCSIUNIT", "IFCNAMEDUNIT",
			attrOpt("Prefix", tEnum("EXA", "PETA", "TERA", "GIGA", "MEGA", "KILO", "HECTO", "DECA", "DECI", "CENTI", "MILLI", "MICRO", "NANO", "PICO", "FEMTO", "ATTO")),
			attr("Name", tEnum("METRE", "SQUARE_METRE", "CUBIC_METRE", "GRAM", "SECOND", "RADIAN")),
		),
		entity("IFCCONVERSIONBASEDUNIT", "IFCNAMEDUNIT",
			attr("Name", tString()),
			attr("ConversionFactor", tEntity("IFCMEASUREWITHUNIT")),
		),
		entity("IFCMEASUREWITHUNIT", "",
			attr("ValueComponent", tReal()),
			attr("UnitComponent", tSelect("IFCUNIT")),
		),
		entity("IFCREPRESENTATIONCONTEXT", "",
			attrOpt("ContextIdentifier", tString()),
			attrOpt("ContextType", tString()),
		),
		entity("IFCGEOMETRICREPRESENTATIONCONTEXT", "IFCREPRESENTATIONCONTEXT",
			attr("CoordinateSpaceDimension", tInt()),
			attrOpt("Precision", tReal()),
			attr("WorldCoordinateSystem", tSelect("IFCAXIS2PLACEMENT")),
			attrOpt("TrueNorth", tEntity("IFCDIRECTION")),
			attrOpt("HasCoordinateOperation", tList(tEntity("IFCCOORDINATEOPERATION"))),
		),
		entity("IFCCOORDINATEOPERATION", "",
			attr("SourceCRS", tSelect("IFCCOORDINATEREFERENCESYSTEMSELECT")),
			attr("TargetCRS", tEntity("IFCPROJECTEDCRS")),
		),
		entity("IFCMAPCONVERSION", "IFCCOORDINATEOPERATION",
			attr("Eastings", tReal()),
			attr("Northings", tReal()),
			attrOpt("OrthogonalHeight", tReal()),
			attrOpt("XAxisAbscissa", tReal()),
			attrOpt("XAxisOrdinate", tReal()),
			attrOpt("Scale", tReal()),
		),
		entity("IFCPROJECTEDCRS", "",
			attr("Name", tString()),
			attrOpt("Description", tString()),
			attrOpt("GeodeticDatum", tString()),
			attrOpt("VerticalDatum", tString()),
			attrOpt("MapProjection", tString()),
			attrOpt("MapZone", tString()),
			attrOpt("MapUnit", tSelect("IFCUNIT")),
		),
		entity("IFCPRESENTATIONLAYERASSIGNMENT", "",
			attr("Name", tString()),
			attrOpt("Description", tString()),
			attr("AssignedItems", tList(tEntity("IFCREPRESENTATIONITEM"))),
			attrOpt("Identifier", tString()),
		),
	}
}
