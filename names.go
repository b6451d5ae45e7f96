package goedm

import (
	"strings"
	"unicode"
)

const (
	collectionPrefix = "Collection("
	collectionSuffix = ")"
)

func fullName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// SplitQualifiedName splits "NS.Sub.Name" into ("NS.Sub", "Name"). A name
// without a dot has an empty namespace.
func SplitQualifiedName(qname string) (namespace, name string) {
	i := strings.LastIndexByte(qname, '.')
	if i < 0 {
		return "", qname
	}
	return qname[:i], qname[i+1:]
}

// collectionElementName returns the inner name of "Collection(inner)". The
// wrapper is matched case-sensitively and must enclose the whole string.
func collectionElementName(typeName string) (string, bool) {
	if !strings.HasPrefix(typeName, collectionPrefix) || !strings.HasSuffix(typeName, collectionSuffix) {
		return "", false
	}
	inner := typeName[len(collectionPrefix) : len(typeName)-len(collectionSuffix)]
	if inner == "" {
		return "", false
	}
	return inner, true
}

// isSimpleIdentifier reports whether s starts with a letter or underscore and
// continues with letters, digits or underscores.
func isSimpleIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// isNamespaceName reports whether s is a dotted sequence of simple identifiers.
func isNamespaceName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !isSimpleIdentifier(part) {
			return false
		}
	}
	return true
}
