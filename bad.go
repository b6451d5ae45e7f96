package goedm

import (
	"slices"

	"github.com/reoring/goedm/internal/lazy"
)

// Bad elements stand in for declarations that could not be turned into a
// valid element. Each one satisfies the full contract of its kind and answers
// every accessor with a fixed placeholder: false for booleans, the supplied
// name (or "") for names, empty slices for collections, and a Bad element
// carrying the same errors for type-valued accessors. Only Errors tells them
// apart from valid elements.

var (
	_ Type               = (*BadType)(nil)
	_ TypeReference      = (*BadTypeReference)(nil)
	_ SchemaType         = (*BadSchemaType)(nil)
	_ PrimitiveType      = (*BadPrimitiveType)(nil)
	_ EntityType         = (*BadEntityType)(nil)
	_ ComplexType        = (*BadComplexType)(nil)
	_ EnumType           = (*BadEnumType)(nil)
	_ CollectionType     = (*BadCollectionType)(nil)
	_ StructuralProperty = (*BadProperty)(nil)
	_ NavigationProperty = (*BadNavigationProperty)(nil)
	_ Term               = (*BadTerm)(nil)
	_ Operation          = (*BadOperation)(nil)
	_ EntitySet          = (*BadEntitySet)(nil)
	_ EntityContainer    = (*BadEntityContainer)(nil)
	_ Expression         = (*BadExpression)(nil)
	_ LabeledExpression  = (*BadLabeledExpression)(nil)
)

// cycleSentinelType is returned by the lazy cells of Bad elements on
// re-entry. Their computations never re-enter, so it is never observed.
var cycleSentinelType = &BadType{badElement: badElement{errs: []ValidationError{{Code: CodeBadElement, Severity: Error}}}}

type badElement struct {
	errs []ValidationError
}

func newBadElement(errs []ValidationError) badElement {
	if len(errs) == 0 {
		errs = []ValidationError{ErrorAt("", CodeBadElement, nameData(""))}
	}
	return badElement{errs: slices.Clone(errs)}
}

func (b *badElement) Errors() []ValidationError { return b.errs }

type badNamed struct {
	namespace, name, full string
}

func newBadNamed(qname string) badNamed {
	ns, name := SplitQualifiedName(qname)
	return badNamed{namespace: ns, name: name, full: qname}
}

func (n *badNamed) Name() string      { return n.name }
func (n *badNamed) Namespace() string { return n.namespace }
func (n *badNamed) FullName() string  { return n.full }

// BadType is an anonymous invalid type.
type BadType struct {
	badElement
}

// NewBadType returns a BadType carrying errs.
func NewBadType(errs ...ValidationError) *BadType {
	return &BadType{badElement: newBadElement(errs)}
}

func (*BadType) TypeKind() TypeKind { return TypeKindNone }

// BadTypeReference refers to a BadType with the same errors.
type BadTypeReference struct {
	badElement
	def lazy.Cell[*BadTypeReference, Type]
}

// NewBadTypeReference returns a reference whose definition is a BadType
// carrying errs.
func NewBadTypeReference(errs ...ValidationError) *BadTypeReference {
	return &BadTypeReference{badElement: newBadElement(errs)}
}

func (r *BadTypeReference) Definition() Type {
	return r.def.Value(r, func(r *BadTypeReference) Type { return NewBadType(r.errs...) }, cycleSentinelType)
}

func (*BadTypeReference) IsNullable() bool { return false }

// BadSchemaType is an invalid named type of unknown kind.
type BadSchemaType struct {
	badElement
	badNamed
}

// NewBadSchemaType returns a named BadSchemaType.
func NewBadSchemaType(qname string, errs ...ValidationError) *BadSchemaType {
	return &BadSchemaType{badElement: newBadElement(errs), badNamed: newBadNamed(qname)}
}

func (*BadSchemaType) TypeKind() TypeKind                   { return TypeKindNone }
func (*BadSchemaType) SchemaElementKind() SchemaElementKind { return SchemaElementKindTypeDefinition }
func (*BadSchemaType) MinVersion() Version                  { return V4 }

// BadPrimitiveType is an invalid primitive type.
type BadPrimitiveType struct {
	BadSchemaType
}

// NewBadPrimitiveType returns a named BadPrimitiveType.
func NewBadPrimitiveType(qname string, errs ...ValidationError) *BadPrimitiveType {
	return &BadPrimitiveType{BadSchemaType: *NewBadSchemaType(qname, errs...)}
}

func (*BadPrimitiveType) TypeKind() TypeKind           { return TypeKindPrimitive }
func (*BadPrimitiveType) PrimitiveKind() PrimitiveKind { return PrimitiveNone }

// badStructuredType answers the StructuredType contract for Bad entity and
// complex types: no base type, no properties, neither abstract nor open.
type badStructuredType struct {
	BadSchemaType
}

func (*badStructuredType) BaseType() StructuredType       { return nil }
func (*badStructuredType) DeclaredProperties() []Property { return nil }
func (*badStructuredType) FindProperty(string) Property   { return nil }
func (*badStructuredType) IsAbstract() bool               { return false }
func (*badStructuredType) IsOpen() bool                   { return false }

// BadEntityType is an invalid entity type.
type BadEntityType struct {
	badStructuredType
}

// NewBadEntityType returns a named BadEntityType.
func NewBadEntityType(qname string, errs ...ValidationError) *BadEntityType {
	return &BadEntityType{badStructuredType: badStructuredType{BadSchemaType: *NewBadSchemaType(qname, errs...)}}
}

// NewCyclicEntityType returns the BadEntityType that replaces the base type of
// an entity type whose base type chain loops.
func NewCyclicEntityType(qname, loc string) *BadEntityType {
	return NewBadEntityType(qname, ErrorAt(loc, CodeBadCyclicEntity, nameData(qname)))
}

func (*BadEntityType) TypeKind() TypeKind                { return TypeKindEntity }
func (*BadEntityType) DeclaredKey() []StructuralProperty { return nil }
func (*BadEntityType) HasStream() bool                   { return false }

// BadComplexType is an invalid complex type.
type BadComplexType struct {
	badStructuredType
}

// NewBadComplexType returns a named BadComplexType.
func NewBadComplexType(qname string, errs ...ValidationError) *BadComplexType {
	return &BadComplexType{badStructuredType: badStructuredType{BadSchemaType: *NewBadSchemaType(qname, errs...)}}
}

// NewCyclicComplexType is the complex type counterpart of NewCyclicEntityType.
func NewCyclicComplexType(qname, loc string) *BadComplexType {
	return NewBadComplexType(qname, ErrorAt(loc, CodeBadCyclicComplex, nameData(qname)))
}

func (*BadComplexType) TypeKind() TypeKind { return TypeKindComplex }

// BadEnumType is an invalid enum type.
type BadEnumType struct {
	BadSchemaType
	underlying lazy.Cell[*BadEnumType, PrimitiveType]
}

// NewBadEnumType returns a named BadEnumType.
func NewBadEnumType(qname string, errs ...ValidationError) *BadEnumType {
	return &BadEnumType{BadSchemaType: *NewBadSchemaType(qname, errs...)}
}

func (*BadEnumType) TypeKind() TypeKind    { return TypeKindEnum }
func (*BadEnumType) IsFlags() bool         { return false }
func (*BadEnumType) Members() []EnumMember { return nil }

func (t *BadEnumType) UnderlyingType() PrimitiveType {
	return t.underlying.Value(t, func(t *BadEnumType) PrimitiveType {
		return NewBadPrimitiveType("", t.errs...)
	}, nil)
}

// BadCollectionType is an invalid collection type.
type BadCollectionType struct {
	badElement
	elem lazy.Cell[*BadCollectionType, TypeReference]
}

// NewBadCollectionType returns a BadCollectionType carrying errs.
func NewBadCollectionType(errs ...ValidationError) *BadCollectionType {
	return &BadCollectionType{badElement: newBadElement(errs)}
}

func (*BadCollectionType) TypeKind() TypeKind { return TypeKindCollection }

func (c *BadCollectionType) ElementType() TypeReference {
	return c.elem.Value(c, func(c *BadCollectionType) TypeReference {
		return NewBadTypeReference(c.errs...)
	}, nil)
}

// BadProperty is an invalid property. Its type is a BadTypeReference with the
// same errors.
type BadProperty struct {
	badElement
	name      string
	declaring StructuredType
	typ       lazy.Cell[*BadProperty, TypeReference]
}

// NewBadProperty returns a BadProperty. A nil declaring type is replaced by
// an anonymous BadComplexType carrying errs.
func NewBadProperty(declaring StructuredType, name string, errs ...ValidationError) *BadProperty {
	p := &BadProperty{}
	p.init(declaring, name, errs)
	return p
}

func (p *BadProperty) init(declaring StructuredType, name string, errs []ValidationError) {
	p.badElement = newBadElement(errs)
	p.name = name
	p.declaring = declaring
	if p.declaring == nil {
		p.declaring = NewBadComplexType("", p.errs...)
	}
}

func (p *BadProperty) Name() string                  { return p.name }
func (*BadProperty) PropertyKind() PropertyKind      { return PropertyKindNone }
func (p *BadProperty) DeclaringType() StructuredType { return p.declaring }
func (*BadProperty) DefaultValue() string            { return "" }

func (p *BadProperty) Type() TypeReference {
	return p.typ.Value(p, func(p *BadProperty) TypeReference {
		return NewBadTypeReference(p.errs...)
	}, nil)
}

// BadNavigationProperty is an invalid navigation property. It has no
// partner and targets a BadEntityType carrying the same errors.
type BadNavigationProperty struct {
	BadProperty
	target lazy.Cell[*BadNavigationProperty, EntityType]
}

// NewBadNavigationProperty returns a BadNavigationProperty.
func NewBadNavigationProperty(declaring StructuredType, name string, errs ...ValidationError) *BadNavigationProperty {
	p := &BadNavigationProperty{}
	p.init(declaring, name, errs)
	return p
}

func (*BadNavigationProperty) PropertyKind() PropertyKind  { return PropertyKindNavigation }
func (*BadNavigationProperty) Partner() NavigationProperty { return nil }
func (*BadNavigationProperty) ContainsTarget() bool        { return false }

func (p *BadNavigationProperty) ToEntityType() EntityType {
	return p.target.Value(p, func(p *BadNavigationProperty) EntityType {
		return NewBadEntityType("", p.errs...)
	}, nil)
}

// BadTerm is an invalid term.
type BadTerm struct {
	badElement
	badNamed
	typ lazy.Cell[*BadTerm, TypeReference]
}

// NewBadTerm returns a named BadTerm.
func NewBadTerm(qname string, errs ...ValidationError) *BadTerm {
	return &BadTerm{badElement: newBadElement(errs), badNamed: newBadNamed(qname)}
}

func (*BadTerm) SchemaElementKind() SchemaElementKind { return SchemaElementKindTerm }
func (*BadTerm) AppliesTo() string                    { return "" }
func (*BadTerm) DefaultValue() string                 { return "" }

func (t *BadTerm) Type() TypeReference {
	return t.typ.Value(t, func(t *BadTerm) TypeReference {
		return NewBadTypeReference(t.errs...)
	}, nil)
}

// BadOperation is an invalid action or function.
type BadOperation struct {
	badElement
	badNamed
	ret lazy.Cell[*BadOperation, TypeReference]
}

// NewBadOperation returns a named BadOperation.
func NewBadOperation(qname string, errs ...ValidationError) *BadOperation {
	return &BadOperation{badElement: newBadElement(errs), badNamed: newBadNamed(qname)}
}

func (*BadOperation) SchemaElementKind() SchemaElementKind    { return SchemaElementKindNone }
func (*BadOperation) Parameters() []OperationParameter        { return nil }
func (*BadOperation) FindParameter(string) OperationParameter { return nil }
func (*BadOperation) IsBound() bool                           { return false }
func (*BadOperation) IsComposable() bool                      { return false }
func (*BadOperation) EntitySetPath() string                   { return "" }

func (o *BadOperation) ReturnType() TypeReference {
	return o.ret.Value(o, func(o *BadOperation) TypeReference {
		return NewBadTypeReference(o.errs...)
	}, nil)
}

// BadEntityContainer is an invalid entity container with no members.
type BadEntityContainer struct {
	badElement
	badNamed
}

// NewBadEntityContainer returns a named BadEntityContainer.
func NewBadEntityContainer(qname string, errs ...ValidationError) *BadEntityContainer {
	return &BadEntityContainer{badElement: newBadElement(errs), badNamed: newBadNamed(qname)}
}

func (*BadEntityContainer) SchemaElementKind() SchemaElementKind {
	return SchemaElementKindEntityContainer
}
func (*BadEntityContainer) Elements() []ContainerElement                  { return nil }
func (*BadEntityContainer) FindEntitySet(string) EntitySet                { return nil }
func (*BadEntityContainer) FindSingleton(string) Singleton                { return nil }
func (*BadEntityContainer) FindOperationImports(string) []OperationImport { return nil }

// BadEntitySet is an invalid entity set.
type BadEntitySet struct {
	badElement
	name      string
	container EntityContainer
	entity    lazy.Cell[*BadEntitySet, EntityType]
}

// NewBadEntitySet returns a BadEntitySet. A nil container is replaced by an
// anonymous BadEntityContainer carrying errs.
func NewBadEntitySet(container EntityContainer, name string, errs ...ValidationError) *BadEntitySet {
	s := &BadEntitySet{badElement: newBadElement(errs), name: name, container: container}
	if s.container == nil {
		s.container = NewBadEntityContainer("", s.errs...)
	}
	return s
}

func (s *BadEntitySet) Name() string                             { return s.name }
func (*BadEntitySet) ContainerElementKind() ContainerElementKind { return ContainerElementKindEntitySet }
func (s *BadEntitySet) Container() EntityContainer               { return s.container }
func (*BadEntitySet) IncludeInServiceDocument() bool             { return false }

func (s *BadEntitySet) EntityType() EntityType {
	return s.entity.Value(s, func(s *BadEntitySet) EntityType {
		return NewBadEntityType("", s.errs...)
	}, nil)
}

// BadExpression is an invalid annotation expression.
type BadExpression struct {
	badElement
}

// NewBadExpression returns a BadExpression carrying errs.
func NewBadExpression(errs ...ValidationError) *BadExpression {
	return &BadExpression{badElement: newBadElement(errs)}
}

func (*BadExpression) ExpressionKind() ExpressionKind { return ExpressionKindNone }

// BadLabeledExpression stands in for a labeled expression that is missing or
// malformed. Its expression is a BadExpression with the same errors.
type BadLabeledExpression struct {
	badElement
	name string
	expr lazy.Cell[*BadLabeledExpression, Expression]
}

// NewBadLabeledExpression returns a named BadLabeledExpression.
func NewBadLabeledExpression(name string, errs ...ValidationError) *BadLabeledExpression {
	return &BadLabeledExpression{badElement: newBadElement(errs), name: name}
}

func (e *BadLabeledExpression) Name() string                 { return e.name }
func (*BadLabeledExpression) ExpressionKind() ExpressionKind { return ExpressionKindLabeled }

func (e *BadLabeledExpression) Expression() Expression {
	return e.expr.Value(e, func(e *BadLabeledExpression) Expression {
		return NewBadExpression(e.errs...)
	}, nil)
}
