package goedm

type typeReference struct {
	def      Type
	nullable bool
}

// NewTypeReference returns a reference to def. A nil def yields a Bad
// reference so that callers never hold a reference without a definition.
func NewTypeReference(def Type, nullable bool) TypeReference {
	if def == nil {
		return NewBadTypeReference(ErrorAt("", CodeBadUnresolvedType, nameData("")))
	}
	return &typeReference{def: def, nullable: nullable}
}

// Errors reports the errors of the definition, so a reference to a Bad type
// is itself recognizably bad.
func (r *typeReference) Errors() []ValidationError { return r.def.Errors() }
func (r *typeReference) Definition() Type          { return r.def }
func (r *typeReference) IsNullable() bool          { return r.nullable }

type collectionType struct {
	elem TypeReference
}

// NewCollectionType returns Collection(elem).
func NewCollectionType(elem TypeReference) CollectionType {
	if elem == nil {
		elem = NewBadTypeReference(ErrorAt("", CodeBadUnresolvedType, nameData("")))
	}
	return &collectionType{elem: elem}
}

func (c *collectionType) Errors() []ValidationError  { return nil }
func (c *collectionType) TypeKind() TypeKind         { return TypeKindCollection }
func (c *collectionType) ElementType() TypeReference { return c.elem }

// TypeName renders t the way it is written in a schema: the qualified name
// of a schema type or Collection(...) around the element type name.
func TypeName(t Type) string {
	switch tt := t.(type) {
	case nil:
		return ""
	case CollectionType:
		return collectionPrefix + TypeName(tt.ElementType().Definition()) + collectionSuffix
	case SchemaType:
		return tt.FullName()
	}
	return ""
}

// AsEntityType unwraps collections and returns the entity type t refers to.
func AsEntityType(t Type) (EntityType, bool) {
	if c, ok := t.(CollectionType); ok {
		t = c.ElementType().Definition()
	}
	if t == nil || t.TypeKind() != TypeKindEntity {
		return nil, false
	}
	et, ok := t.(EntityType)
	return et, ok
}
