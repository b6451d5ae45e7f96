package goedm

import (
	"slices"

	"github.com/reoring/goedm/internal/lazy"
	"github.com/reoring/goedm/internal/vmap"
)

var (
	_ EntityType         = (*entityType)(nil)
	_ ComplexType        = (*complexType)(nil)
	_ EnumType           = (*enumType)(nil)
	_ TypeDefinition     = (*typeDefinition)(nil)
	_ StructuralProperty = (*structuralProperty)(nil)
	_ NavigationProperty = (*navigationProperty)(nil)
)

// cycleSentinelReference is the cycle value of type reference cells whose
// computation only looks names up and cannot re-enter.
var cycleSentinelReference = &BadTypeReference{badElement: cycleSentinelType.badElement}

// schemaElement holds what every declared top-level element has: its model,
// its names and the errors found in its own declaration.
type schemaElement struct {
	m                     *Model
	namespace, name, full string
	errs                  []ValidationError
}

func newSchemaElement(m *Model, namespace, name string) schemaElement {
	e := schemaElement{m: m, namespace: namespace, name: name, full: fullName(namespace, name)}
	if !isSimpleIdentifier(name) {
		e.errs = append(e.errs, ErrorAt(e.full, CodeInvalidName, nameData(name)))
	}
	return e
}

func (e *schemaElement) Errors() []ValidationError { return e.errs }
func (e *schemaElement) Name() string              { return e.name }
func (e *schemaElement) Namespace() string         { return e.namespace }
func (e *schemaElement) FullName() string          { return e.full }

// structuredType is shared by entity and complex types.
type structuredType struct {
	schemaElement
	self     StructuredType
	kind     TypeKind
	baseName string
	abstract bool
	open     bool
	declared []Property
	props    vmap.Map[string, Property]
	base     lazy.Cell[*structuredType, StructuredType]
	cyclic   StructuredType
}

func (t *structuredType) TypeKind() TypeKind                 { return t.kind }
func (*structuredType) SchemaElementKind() SchemaElementKind { return SchemaElementKindTypeDefinition }
func (*structuredType) MinVersion() Version                  { return V4 }
func (t *structuredType) IsAbstract() bool                   { return t.abstract }
func (t *structuredType) IsOpen() bool                       { return t.open }
func (t *structuredType) DeclaredProperties() []Property     { return slices.Clone(t.declared) }
func (t *structuredType) declaredBaseName() string           { return t.baseName }

// addProperty binds p by name; a repeated name becomes an ambiguous binding.
func (t *structuredType) addProperty(p Property) {
	registerElement(&t.props, p.Name(), p, newAmbiguousPropertyBinding(t.m.limit))
}

// sealProperties lists the bound properties in declaration order, once per
// name.
func (t *structuredType) sealProperties(order []string) {
	t.declared = t.declared[:0]
	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if p, ok := t.props.TryGet(name); ok {
			t.declared = append(t.declared, p)
		}
	}
}

// BaseType resolves the declared base type on first use. A type whose base
// chain leads back to itself gets a cyclic Bad base type.
func (t *structuredType) BaseType() StructuredType {
	if t.baseName == "" {
		return nil
	}
	return t.base.Value(t, (*structuredType).computeBaseType, t.cyclic)
}

func (t *structuredType) computeBaseType() StructuredType {
	if t.inBaseCycle() {
		return t.cyclic
	}
	found := t.m.FindType(t.baseName)
	if found == nil {
		code := CodeBadUnresolvedComplexType
		if t.kind == TypeKindEntity {
			code = CodeBadUnresolvedEntityType
		}
		return t.badBase(ErrorAt(t.full, code, nameData(t.baseName)))
	}
	if a, ok := found.(*AmbiguousTypeBinding); ok {
		return t.badBase(a.Errors()...)
	}
	st, ok := found.(StructuredType)
	if !ok || found.TypeKind() != t.kind {
		return t.badBase(ErrorAt(t.full, CodeBaseTypeKindMismatch, nameData(t.baseName)))
	}
	return st
}

func (t *structuredType) badBase(errs ...ValidationError) StructuredType {
	if t.kind == TypeKindEntity {
		return NewBadEntityType(t.baseName, errs...)
	}
	return NewBadComplexType(t.baseName, errs...)
}

type baseDeclarer interface {
	declaredBaseName() string
}

// inBaseCycle follows the declared base names from t and reports whether the
// chain returns to t. Every member of a cycle answers true, whichever is asked
// first; types that merely derive from a cycle answer false.
func (t *structuredType) inBaseCycle() bool {
	seen := map[baseDeclarer]struct{}{}
	name := t.baseName
	for name != "" {
		d, ok := t.m.FindType(name).(baseDeclarer)
		if !ok {
			return false
		}
		if any(d) == any(t.self) {
			return true
		}
		if _, dup := seen[d]; dup {
			return false
		}
		seen[d] = struct{}{}
		name = d.declaredBaseName()
	}
	return false
}

// FindProperty searches the declared properties, then the base type chain.
func (t *structuredType) FindProperty(name string) Property {
	if p, ok := t.props.TryGet(name); ok {
		return p
	}
	if b := t.BaseType(); b != nil {
		return b.FindProperty(name)
	}
	return nil
}

type entityType struct {
	structuredType
	keyNames  []string
	hasStream bool
	key       lazy.Cell[*entityType, []StructuralProperty]
}

func newEntityType(m *Model, namespace, name, baseName string) *entityType {
	t := &entityType{}
	t.schemaElement = newSchemaElement(m, namespace, name)
	t.self = t
	t.kind = TypeKindEntity
	t.baseName = baseName
	t.props = vmap.NewString[Property]()
	t.cyclic = NewCyclicEntityType(t.full, t.full)
	return t
}

func (t *entityType) HasStream() bool { return t.hasStream }

// DeclaredKey resolves the key property names. A name that does not denote a
// structural property yields a BadProperty.
func (t *entityType) DeclaredKey() []StructuralProperty {
	if len(t.keyNames) == 0 {
		return nil
	}
	return slices.Clone(t.key.Value(t, (*entityType).computeKey, nil))
}

func (t *entityType) computeKey() []StructuralProperty {
	out := make([]StructuralProperty, 0, len(t.keyNames))
	for _, name := range t.keyNames {
		if sp, ok := t.FindProperty(name).(StructuralProperty); ok {
			out = append(out, sp)
			continue
		}
		out = append(out, NewBadProperty(t, name, ErrorAt(t.full, CodeBadUnresolvedProperty, nameData(name))))
	}
	return out
}

type complexType struct {
	structuredType
}

func newComplexType(m *Model, namespace, name, baseName string) *complexType {
	t := &complexType{}
	t.schemaElement = newSchemaElement(m, namespace, name)
	t.self = t
	t.kind = TypeKindComplex
	t.baseName = baseName
	t.props = vmap.NewString[Property]()
	t.cyclic = NewCyclicComplexType(t.full, t.full)
	return t
}

// defaultEnumUnderlyingType applies when an enum declares none.
const defaultEnumUnderlyingType = CoreNamespace + ".Int32"

type enumType struct {
	schemaElement
	underlyingName string
	flags          bool
	members        []EnumMember
	underlying     lazy.Cell[*enumType, PrimitiveType]
}

func newEnumType(m *Model, namespace, name, underlyingName string, flags bool) *enumType {
	return &enumType{schemaElement: newSchemaElement(m, namespace, name), underlyingName: underlyingName, flags: flags}
}

func (*enumType) TypeKind() TypeKind                   { return TypeKindEnum }
func (*enumType) SchemaElementKind() SchemaElementKind { return SchemaElementKindTypeDefinition }
func (*enumType) MinVersion() Version                  { return V4 }
func (t *enumType) IsFlags() bool                      { return t.flags }
func (t *enumType) Members() []EnumMember              { return slices.Clone(t.members) }

// UnderlyingType must be an integral primitive type; anything else yields a
// BadPrimitiveType.
func (t *enumType) UnderlyingType() PrimitiveType {
	return t.underlying.Value(t, func(t *enumType) PrimitiveType {
		name := t.underlyingName
		if name == "" {
			name = defaultEnumUnderlyingType
		}
		p, ok := t.m.FindType(name).(PrimitiveType)
		if !ok || p.TypeKind() != TypeKindPrimitive {
			return NewBadPrimitiveType(name, ErrorAt(t.full, CodeBadUnresolvedPrimitiveType, nameData(name)))
		}
		if !p.PrimitiveKind().IsIntegral() {
			return NewBadPrimitiveType(name, ErrorAt(t.full, CodeEnumUnderlyingTypeNotInteger, nameData(name)))
		}
		return p
	}, nil)
}

type enumMember struct {
	name      string
	value     int64
	declaring *enumType
	errs      []ValidationError
}

func (m *enumMember) Errors() []ValidationError { return m.errs }
func (m *enumMember) Name() string              { return m.name }
func (m *enumMember) Value() int64              { return m.value }
func (m *enumMember) DeclaringType() EnumType   { return m.declaring }

type typeDefinition struct {
	schemaElement
	underlyingName string
	underlying     lazy.Cell[*typeDefinition, PrimitiveType]
	cyclic         PrimitiveType
}

func newTypeDefinition(m *Model, namespace, name, underlyingName string) *typeDefinition {
	t := &typeDefinition{schemaElement: newSchemaElement(m, namespace, name), underlyingName: underlyingName}
	t.cyclic = NewBadPrimitiveType(t.full, ErrorAt(t.full, CodeBadCyclicTypeDefinition, nameData(t.full)))
	return t
}

func (*typeDefinition) TypeKind() TypeKind                   { return TypeKindTypeDefinition }
func (*typeDefinition) SchemaElementKind() SchemaElementKind { return SchemaElementKindTypeDefinition }
func (*typeDefinition) MinVersion() Version                  { return V4 }

// UnderlyingType resolves the declared underlying type, following other type
// definitions. When the chain loops back, the recovery pass retries the name
// against the built-in types alone before settling on a cyclic Bad type.
func (t *typeDefinition) UnderlyingType() PrimitiveType {
	return t.underlying.ValueTwoPass(t, (*typeDefinition).computeUnderlying, (*typeDefinition).builtinUnderlying, t.cyclic)
}

func (t *typeDefinition) computeUnderlying() PrimitiveType {
	switch found := t.m.FindType(t.underlyingName).(type) {
	case PrimitiveType:
		if found.TypeKind() == TypeKindPrimitive {
			return found
		}
	case TypeDefinition:
		if found.TypeKind() == TypeKindTypeDefinition {
			return found.UnderlyingType()
		}
	}
	return NewBadPrimitiveType(t.underlyingName, ErrorAt(t.full, CodeBadUnresolvedPrimitiveType, nameData(t.underlyingName)))
}

func (t *typeDefinition) builtinUnderlying() PrimitiveType {
	if p, ok := t.m.core.FindType(t.m.replaceAlias(t.underlyingName)).(PrimitiveType); ok {
		return p
	}
	return t.cyclic
}

// property is shared by structural and navigation properties.
type property struct {
	m         *Model
	declaring StructuredType
	name      string
	typeName  string
	nullable  bool
	errs      []ValidationError
	typ       lazy.Cell[*property, TypeReference]
}

func (p *property) init(m *Model, declaring StructuredType, name, typeName string, nullable bool) {
	p.m = m
	p.declaring = declaring
	p.name = name
	p.typeName = typeName
	p.nullable = nullable
	if !isSimpleIdentifier(name) {
		p.errs = append(p.errs, ErrorAt(p.location(), CodeInvalidName, nameData(name)))
	}
}

func (p *property) Errors() []ValidationError     { return p.errs }
func (p *property) Name() string                  { return p.name }
func (p *property) DeclaringType() StructuredType { return p.declaring }
func (p *property) location() string              { return TypeName(p.declaring) + "/" + p.name }

func (p *property) resolveType() TypeReference {
	return p.m.typeReference(p.typeName, p.nullable, p.location())
}

type structuralProperty struct {
	property
	defaultValue string
}

func newStructuralProperty(m *Model, declaring StructuredType, name, typeName string, nullable bool, defaultValue string) *structuralProperty {
	p := &structuralProperty{defaultValue: defaultValue}
	p.init(m, declaring, name, typeName, nullable)
	return p
}

func (*structuralProperty) PropertyKind() PropertyKind { return PropertyKindStructural }
func (p *structuralProperty) DefaultValue() string     { return p.defaultValue }

func (p *structuralProperty) Type() TypeReference {
	return p.typ.Value(&p.property, (*property).resolveType, cycleSentinelReference)
}

type navigationProperty struct {
	property
	partnerName    string
	containsTarget bool
	target         lazy.Cell[*navigationProperty, EntityType]
	partner        lazy.Cell[*navigationProperty, NavigationProperty]
}

func newNavigationProperty(m *Model, declaring StructuredType, name, typeName string, nullable bool, partner string, containsTarget bool) *navigationProperty {
	p := &navigationProperty{partnerName: partner, containsTarget: containsTarget}
	p.init(m, declaring, name, typeName, nullable)
	return p
}

func (*navigationProperty) PropertyKind() PropertyKind { return PropertyKindNavigation }
func (p *navigationProperty) ContainsTarget() bool     { return p.containsTarget }

// Type must refer to an entity type or a collection of entity types.
func (p *navigationProperty) Type() TypeReference {
	return p.typ.Value(&p.property, func(p *property) TypeReference {
		ref := p.resolveType()
		if _, ok := AsEntityType(ref.Definition()); ok || len(ref.Errors()) > 0 {
			return ref
		}
		return NewBadTypeReference(ErrorAt(p.location(), CodeNavigationTargetNotEntity, nameData(p.typeName)))
	}, cycleSentinelReference)
}

func (p *navigationProperty) ToEntityType() EntityType {
	return p.target.Value(p, func(p *navigationProperty) EntityType {
		ref := p.Type()
		if et, ok := AsEntityType(ref.Definition()); ok {
			return et
		}
		return NewBadEntityType(p.typeName, ref.Errors()...)
	}, nil)
}

// Partner resolves the partner name against the target entity type.
func (p *navigationProperty) Partner() NavigationProperty {
	if p.partnerName == "" {
		return nil
	}
	return p.partner.Value(p, func(p *navigationProperty) NavigationProperty {
		target := p.ToEntityType()
		if np, ok := target.FindProperty(p.partnerName).(NavigationProperty); ok {
			return np
		}
		return NewBadNavigationProperty(target, p.partnerName,
			ErrorAt(p.location(), CodeBadUnresolvedNavigationPartner, nameData(p.partnerName)))
	}, nil)
}
