package goedm

import (
	"github.com/reoring/goedm/internal/vmap"
)

// CoreNamespace is the namespace of the built-in types.
const CoreNamespace = "Edm"

type primitiveSpec struct {
	name       string
	kind       PrimitiveKind
	minVersion Version
}

var primitiveSpecs = []primitiveSpec{
	{"Binary", PrimitiveBinary, V4},
	{"Boolean", PrimitiveBoolean, V4},
	{"Byte", PrimitiveByte, V4},
	{"Date", PrimitiveDate, V4},
	{"DateTimeOffset", PrimitiveDateTimeOffset, V4},
	{"Decimal", PrimitiveDecimal, V4},
	{"Double", PrimitiveDouble, V4},
	{"Duration", PrimitiveDuration, V4},
	{"Guid", PrimitiveGuid, V4},
	{"Int16", PrimitiveInt16, V4},
	{"Int32", PrimitiveInt32, V4},
	{"Int64", PrimitiveInt64, V4},
	{"SByte", PrimitiveSByte, V4},
	{"Single", PrimitiveSingle, V4},
	{"Stream", PrimitiveStream, V4},
	{"String", PrimitiveString, V4},
	{"TimeOfDay", PrimitiveTimeOfDay, V4},

	{"Geography", PrimitiveGeography, V4},
	{"GeographyPoint", PrimitiveGeographyPoint, V4},
	{"GeographyLineString", PrimitiveGeographyLineString, V4},
	{"GeographyPolygon", PrimitiveGeographyPolygon, V4},
	{"GeographyMultiPoint", PrimitiveGeographyMultiPoint, V4},
	{"GeographyMultiLineString", PrimitiveGeographyMultiLineString, V4},
	{"GeographyMultiPolygon", PrimitiveGeographyMultiPolygon, V4},
	{"GeographyCollection", PrimitiveGeographyCollection, V4},
	{"Geometry", PrimitiveGeometry, V4},
	{"GeometryPoint", PrimitiveGeometryPoint, V4},
	{"GeometryLineString", PrimitiveGeometryLineString, V4},
	{"GeometryPolygon", PrimitiveGeometryPolygon, V4},
	{"GeometryMultiPoint", PrimitiveGeometryMultiPoint, V4},
	{"GeometryMultiLineString", PrimitiveGeometryMultiLineString, V4},
	{"GeometryMultiPolygon", PrimitiveGeometryMultiPolygon, V4},
	{"GeometryCollection", PrimitiveGeometryCollection, V4},

	{"PrimitiveType", PrimitiveAbstract, V4},
	{"AnnotationPath", PrimitiveAnnotationPath, V4},
	{"PropertyPath", PrimitivePropertyPath, V4},
	{"NavigationPropertyPath", PrimitiveNavigationPropertyPath, V4},
	{"AnyPropertyPath", PrimitiveAnyPropertyPath, V401},
	{"ModelElementPath", PrimitiveModelElementPath, V401},
}

// CoreModel holds the built-in Edm types. It is read-only once constructed;
// create one with NewCoreModel at startup and pass it to every Builder.
type CoreModel struct {
	types  vmap.Map[string, SchemaType]
	byKind map[PrimitiveKind]PrimitiveType
}

// NewCoreModel builds the Edm namespace.
func NewCoreModel() *CoreModel {
	c := &CoreModel{
		types:  vmap.NewString[SchemaType](),
		byKind: make(map[PrimitiveKind]PrimitiveType, len(primitiveSpecs)),
	}
	for _, s := range primitiveSpecs {
		p := &primitiveType{name: s.name, kind: s.kind, minVersion: s.minVersion}
		c.types = c.types.Set(p.FullName(), p)
		c.byKind[s.kind] = p
	}
	// Edm.Untyped was introduced with 4.01.
	u := &untypedType{minVersion: V401}
	c.types = c.types.Set(u.FullName(), u)
	return c
}

// FindType returns the built-in type with the given qualified name, or nil.
func (c *CoreModel) FindType(qname string) SchemaType {
	if c == nil {
		return nil
	}
	t, _ := c.types.TryGet(qname)
	return t
}

// Primitive returns the built-in type of the given kind, or nil for
// PrimitiveNone.
func (c *CoreModel) Primitive(kind PrimitiveKind) PrimitiveType {
	if c == nil {
		return nil
	}
	return c.byKind[kind]
}

// Types lists the built-in types ordered by name.
func (c *CoreModel) Types() []SchemaType {
	out := make([]SchemaType, 0, c.types.Len())
	for _, t := range c.types.All() {
		out = append(out, t)
	}
	return out
}

type primitiveType struct {
	name       string
	kind       PrimitiveKind
	minVersion Version
}

func (p *primitiveType) Errors() []ValidationError            { return nil }
func (p *primitiveType) Name() string                         { return p.name }
func (p *primitiveType) Namespace() string                    { return CoreNamespace }
func (p *primitiveType) FullName() string                     { return CoreNamespace + "." + p.name }
func (p *primitiveType) SchemaElementKind() SchemaElementKind { return SchemaElementKindTypeDefinition }
func (p *primitiveType) TypeKind() TypeKind                   { return TypeKindPrimitive }
func (p *primitiveType) MinVersion() Version                  { return p.minVersion }
func (p *primitiveType) PrimitiveKind() PrimitiveKind         { return p.kind }

type untypedType struct {
	minVersion Version
}

func (u *untypedType) Errors() []ValidationError            { return nil }
func (u *untypedType) Name() string                         { return "Untyped" }
func (u *untypedType) Namespace() string                    { return CoreNamespace }
func (u *untypedType) FullName() string                     { return CoreNamespace + ".Untyped" }
func (u *untypedType) SchemaElementKind() SchemaElementKind { return SchemaElementKindTypeDefinition }
func (u *untypedType) TypeKind() TypeKind                   { return TypeKindUntyped }
func (u *untypedType) MinVersion() Version                  { return u.minVersion }
