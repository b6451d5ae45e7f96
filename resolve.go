package goedm

import (
	"fmt"
)

// CustomTypeResolver overrides type lookup for a user model. It receives the
// type the caller expects (nil when unknown) and the name to resolve, and
// must not return nil.
type CustomTypeResolver func(expected Type, name string) Type

// ResolveTypeName turns a textual type reference into a type of m.
//
// "Collection(inner)" is resolved element-wise: the kind is
// TypeKindCollection even when inner does not resolve, in which case the
// returned type is nil. Other names go to custom when it is set and m is a
// user model, otherwise to m.FindType. A type whose MinVersion is newer than
// v does not resolve.
//
// A nil type with TypeKindNone means nothing resolved. The only error is
// ErrCustomResolverReturnedNil.
func ResolveTypeName(m *Model, expected Type, name string, custom CustomTypeResolver, v Version) (Type, TypeKind, error) {
	if inner, ok := collectionElementName(name); ok {
		var expectedElem Type
		if c, ok := expected.(CollectionType); ok {
			expectedElem = c.ElementType().Definition()
		}
		elem, _, err := ResolveTypeName(m, expectedElem, inner, custom, v)
		if err != nil {
			return nil, TypeKindCollection, err
		}
		if elem == nil {
			return nil, TypeKindCollection, nil
		}
		return NewCollectionType(NewTypeReference(elem, true)), TypeKindCollection, nil
	}

	var t Type
	if custom != nil && m.IsUserModel() {
		t = custom(expected, name)
		if t == nil {
			return nil, TypeKindNone, fmt.Errorf("%w: %s", ErrCustomResolverReturnedNil, name)
		}
	} else if st := m.FindType(name); st != nil {
		if st.MinVersion() > v {
			return nil, TypeKindNone, nil
		}
		t = st
	}
	if t == nil {
		return nil, TypeKindNone, nil
	}
	return t, t.TypeKind(), nil
}

// ResolveTypeNameForWrite resolves name at MaxVersion, so that a writer
// recognizes every type it may later have to reject.
func ResolveTypeNameForWrite(m *Model, name string) (Type, TypeKind) {
	t, kind, _ := ResolveTypeName(m, nil, name, nil, MaxVersion)
	return t, kind
}

// ResolveTypeNameForRead resolves name at the version of the payload being
// read, consulting custom first for user models.
func ResolveTypeNameForRead(m *Model, expected Type, name string, custom CustomTypeResolver, v Version) (Type, TypeKind, error) {
	return ResolveTypeName(m, expected, name, custom, v)
}

// typeReference resolves name for an element declared in m. An unresolved
// name yields a Bad reference whose error explains the miss.
func (m *Model) typeReference(name string, nullable bool, loc string) TypeReference {
	if name == "" {
		return NewBadTypeReference(ErrorAt(loc, CodeBadUnresolvedType, nameData(name)))
	}
	t, _, _ := ResolveTypeName(m, nil, name, nil, m.version)
	if t != nil {
		return NewTypeReference(t, nullable)
	}
	if wt, _ := ResolveTypeNameForWrite(m, name); wt != nil {
		return NewBadTypeReference(ErrorAt(loc, CodeTypeNotSupportedInVersion, map[string]string{
			"name":    name,
			"version": m.version.String(),
		}))
	}
	return NewBadTypeReference(ErrorAt(loc, CodeBadUnresolvedType, nameData(name)))
}
