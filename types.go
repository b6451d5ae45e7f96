package goedm

import (
	"fmt"
	"strings"
)

// Severity expresses the severity level for validation errors.
type Severity int

const (
	Error Severity = iota
	Warn
)

func (s Severity) String() string {
	if s == Warn {
		return "warning"
	}
	return "error"
}

// Version is a protocol version. Types carry the minimum version they are
// available in.
type Version int

const (
	V4   Version = 40
	V401 Version = 41

	// MaxVersion is the newest version this package knows about.
	MaxVersion = V401
)

func (v Version) String() string {
	switch v {
	case V4:
		return "4.0"
	case V401:
		return "4.01"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// ParseVersion accepts "4.0", "4" and "4.01". The empty string is V4.
func ParseVersion(s string) (Version, error) {
	switch strings.TrimSpace(s) {
	case "", "4", "4.0":
		return V4, nil
	case "4.01":
		return V401, nil
	}
	return 0, fmt.Errorf("goedm: unsupported version %q", s)
}

// TypeKind classifies types.
type TypeKind int

const (
	TypeKindNone TypeKind = iota
	TypeKindPrimitive
	TypeKindEntity
	TypeKindComplex
	TypeKindEnum
	TypeKindTypeDefinition
	TypeKindCollection
	TypeKindUntyped
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindPrimitive:
		return "Primitive"
	case TypeKindEntity:
		return "Entity"
	case TypeKindComplex:
		return "Complex"
	case TypeKindEnum:
		return "Enum"
	case TypeKindTypeDefinition:
		return "TypeDefinition"
	case TypeKindCollection:
		return "Collection"
	case TypeKindUntyped:
		return "Untyped"
	}
	return "None"
}

// SchemaElementKind classifies top-level schema elements.
type SchemaElementKind int

const (
	SchemaElementKindNone SchemaElementKind = iota
	SchemaElementKindTypeDefinition
	SchemaElementKindTerm
	SchemaElementKindAction
	SchemaElementKindFunction
	SchemaElementKindEntityContainer
)

// PrimitiveKind identifies a built-in primitive type.
type PrimitiveKind int

const (
	PrimitiveNone PrimitiveKind = iota
	PrimitiveBinary
	PrimitiveBoolean
	PrimitiveByte
	PrimitiveDate
	PrimitiveDateTimeOffset
	PrimitiveDecimal
	PrimitiveDouble
	PrimitiveDuration
	PrimitiveGuid
	PrimitiveInt16
	PrimitiveInt32
	PrimitiveInt64
	PrimitiveSByte
	PrimitiveSingle
	PrimitiveStream
	PrimitiveString
	PrimitiveTimeOfDay
	PrimitiveGeography
	PrimitiveGeographyPoint
	PrimitiveGeographyLineString
	PrimitiveGeographyPolygon
	PrimitiveGeographyMultiPoint
	PrimitiveGeographyMultiLineString
	PrimitiveGeographyMultiPolygon
	PrimitiveGeographyCollection
	PrimitiveGeometry
	PrimitiveGeometryPoint
	PrimitiveGeometryLineString
	PrimitiveGeometryPolygon
	PrimitiveGeometryMultiPoint
	PrimitiveGeometryMultiLineString
	PrimitiveGeometryMultiPolygon
	PrimitiveGeometryCollection
	// Abstract types, usable only in vocabulary terms and type definitions.
	PrimitiveAbstract
	PrimitiveAnnotationPath
	PrimitivePropertyPath
	PrimitiveNavigationPropertyPath
	PrimitiveAnyPropertyPath
	PrimitiveModelElementPath
)

// IsIntegral reports whether values of the kind are integers.
func (k PrimitiveKind) IsIntegral() bool {
	switch k {
	case PrimitiveByte, PrimitiveSByte, PrimitiveInt16, PrimitiveInt32, PrimitiveInt64:
		return true
	}
	return false
}

// IsSpatial reports whether the kind is one of the Geography or Geometry
// types.
func (k PrimitiveKind) IsSpatial() bool {
	return k >= PrimitiveGeography && k <= PrimitiveGeometryCollection
}

// PropertyKind distinguishes structural from navigation properties.
type PropertyKind int

const (
	PropertyKindNone PropertyKind = iota
	PropertyKindStructural
	PropertyKindNavigation
)

// ContainerElementKind classifies entity container members.
type ContainerElementKind int

const (
	ContainerElementKindNone ContainerElementKind = iota
	ContainerElementKindEntitySet
	ContainerElementKindSingleton
	ContainerElementKindActionImport
	ContainerElementKindFunctionImport
)

// ExpressionKind classifies annotation expressions.
type ExpressionKind int

const (
	ExpressionKindNone ExpressionKind = iota
	ExpressionKindString
	ExpressionKindInt
	ExpressionKindFloat
	ExpressionKindBool
	ExpressionKindNull
	ExpressionKindPath
	ExpressionKindCollection
	ExpressionKindLabeled
	ExpressionKindLabeledReference
)

// BuildOpt bundles model construction options.
type BuildOpt struct {
	// Version applies when a document does not declare one. Zero means V4.
	Version Version
	// MaxAmbiguousBindings caps how many contributors an ambiguous binding
	// records; further colliding declarations are dropped. Zero means no cap.
	MaxAmbiguousBindings int
}

// ValidateOpt configures Validate.
type ValidateOpt struct {
	// FailFast stops the walk after the first Error-severity entry.
	FailFast bool
	// IncludeWarnings keeps Warn entries in the result.
	IncludeWarnings bool
}
