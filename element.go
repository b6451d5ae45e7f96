package goedm

// Element is implemented by every node of the model. Errors is empty for
// well-formed elements; Bad elements and ambiguous bindings report why they
// exist. No accessor on any element panics or returns an error.
type Element interface {
	Errors() []ValidationError
}

// NamedElement is an element with a simple name.
type NamedElement interface {
	Element
	Name() string
}

// SchemaElement is a top-level element addressed by its qualified name.
type SchemaElement interface {
	NamedElement
	Namespace() string
	// FullName is Namespace + "." + Name, or Name when the namespace is empty.
	FullName() string
	SchemaElementKind() SchemaElementKind
}

// Type is any type: named schema types as well as collection types.
type Type interface {
	Element
	TypeKind() TypeKind
}

// TypeReference is a use of a type, with facets that belong to the use site.
type TypeReference interface {
	Element
	Definition() Type
	IsNullable() bool
}

// SchemaType is a named type declared in a schema or in the core model.
type SchemaType interface {
	Type
	SchemaElement
	// MinVersion is the first protocol version the type is available in.
	MinVersion() Version
}

// PrimitiveType is a built-in scalar type.
type PrimitiveType interface {
	SchemaType
	PrimitiveKind() PrimitiveKind
}

// StructuredType is implemented by entity and complex types.
type StructuredType interface {
	Type
	// BaseType is nil when the type does not derive from another type.
	BaseType() StructuredType
	DeclaredProperties() []Property
	// FindProperty searches the declared properties, then the base types.
	FindProperty(name string) Property
	IsAbstract() bool
	IsOpen() bool
}

// EntityType is a structured type with a key.
type EntityType interface {
	SchemaType
	StructuredType
	DeclaredKey() []StructuralProperty
	HasStream() bool
}

// ComplexType is a keyless structured type.
type ComplexType interface {
	SchemaType
	StructuredType
}

// EnumType is a named set of integral values.
type EnumType interface {
	SchemaType
	UnderlyingType() PrimitiveType
	IsFlags() bool
	Members() []EnumMember
}

// EnumMember is one named value of an enum type.
type EnumMember interface {
	NamedElement
	Value() int64
	DeclaringType() EnumType
}

// TypeDefinition gives a new name to a primitive type.
type TypeDefinition interface {
	SchemaType
	UnderlyingType() PrimitiveType
}

// CollectionType is written Collection(ElementType).
type CollectionType interface {
	Type
	ElementType() TypeReference
}

// Property is a member of a structured type.
type Property interface {
	NamedElement
	PropertyKind() PropertyKind
	Type() TypeReference
	DeclaringType() StructuredType
}

// StructuralProperty holds a value of a primitive, complex, enum or
// collection type.
type StructuralProperty interface {
	Property
	DefaultValue() string
}

// NavigationProperty points at an entity type or a collection of them.
type NavigationProperty interface {
	Property
	// Partner is nil when no partner is declared.
	Partner() NavigationProperty
	ContainsTarget() bool
	// ToEntityType is the target entity type, unwrapping collections.
	ToEntityType() EntityType
}

// Term is a named annotation vocabulary term.
type Term interface {
	SchemaElement
	Type() TypeReference
	AppliesTo() string
	DefaultValue() string
}

// OperationParameter is a parameter of an action or function.
type OperationParameter interface {
	NamedElement
	Type() TypeReference
	DeclaringOperation() Operation
}

// Operation is an action or a function. Its SchemaElementKind tells which.
type Operation interface {
	SchemaElement
	Parameters() []OperationParameter
	FindParameter(name string) OperationParameter
	// ReturnType is nil for actions without a return type.
	ReturnType() TypeReference
	IsBound() bool
	IsComposable() bool
	EntitySetPath() string
}

// EntityContainer groups the entity sets, singletons and operation imports a
// service exposes.
type EntityContainer interface {
	SchemaElement
	Elements() []ContainerElement
	FindEntitySet(name string) EntitySet
	FindSingleton(name string) Singleton
	FindOperationImports(name string) []OperationImport
}

// ContainerElement is a member of an entity container.
type ContainerElement interface {
	NamedElement
	ContainerElementKind() ContainerElementKind
	Container() EntityContainer
}

// NavigationSource is an entity set or a singleton.
type NavigationSource interface {
	ContainerElement
	EntityType() EntityType
}

// EntitySet is a collection of entities of one type.
type EntitySet interface {
	NavigationSource
	IncludeInServiceDocument() bool
}

// Singleton is a single named entity. It reports
// ContainerElementKindSingleton.
type Singleton interface {
	NavigationSource
}

// OperationImport exposes an action or function through the container.
type OperationImport interface {
	ContainerElement
	Operation() Operation
	// EntitySetName is the declared target entity set, or "".
	EntitySetName() string
}

// Expression is an annotation value.
type Expression interface {
	Element
	ExpressionKind() ExpressionKind
}

// ValueExpression is a constant or path expression carrying its literal text.
type ValueExpression interface {
	Expression
	Value() string
}

// CollectionExpression is an ordered list of expressions.
type CollectionExpression interface {
	Expression
	Items() []Expression
}

// LabeledExpression names an expression so other expressions can refer to it.
type LabeledExpression interface {
	Expression
	NamedElement
	Expression() Expression
}

// LabeledExpressionReference refers to a labeled expression by name.
type LabeledExpressionReference interface {
	Expression
	ReferencedName() string
	Referenced() LabeledExpression
}

// Annotation applies a term to a target.
type Annotation interface {
	Element
	Target() string
	Term() Term
	Qualifier() string
	Value() Expression
}
