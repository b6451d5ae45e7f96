package goedm

import (
	"slices"

	"github.com/reoring/goedm/internal/lazy"
)

// An ambiguous binding stands in for two or more distinct declarations that
// share a qualified name. It satisfies the contract of the elements it
// replaces, reports a single CodeBadAmbiguousElementBinding error, and answers
// descriptive accessors from the first contributor.
//
// Unlike the binding tables, an ambiguous binding grows in place: a further
// colliding declaration is appended to the existing binding rather than
// producing a new version. Snapshots taken before the append observe it.

var (
	_ SchemaType        = (*AmbiguousTypeBinding)(nil)
	_ Term              = (*AmbiguousTermBinding)(nil)
	_ Property          = (*AmbiguousPropertyBinding)(nil)
	_ EntitySet         = (*AmbiguousNavigationSourceBinding)(nil)
	_ Operation         = (*AmbiguousOperationBinding)(nil)
	_ LabeledExpression = (*AmbiguousLabeledExpressionBinding)(nil)
)

// ambiguous is implemented by every ambiguous binding of element type T.
type ambiguous[T any] interface {
	addBinding(el T)
}

type ambiguousBinding[T NamedElement] struct {
	qname    string
	limit    int
	bindings []T
	errs     []ValidationError
}

func (a *ambiguousBinding[T]) init(qname string, limit int, first, second T) {
	a.qname = qname
	a.limit = limit
	a.bindings = []T{first}
	a.errs = []ValidationError{ErrorAt(qname, CodeBadAmbiguousElementBinding, nameData(qname))}
	a.addBinding(second)
}

// addBinding records el unless it is already a contributor or the binding is
// at its limit.
func (a *ambiguousBinding[T]) addBinding(el T) {
	for _, b := range a.bindings {
		if any(b) == any(el) {
			return
		}
	}
	if a.limit > 0 && len(a.bindings) >= a.limit {
		return
	}
	a.bindings = append(a.bindings, el)
}

func (a *ambiguousBinding[T]) first() T { return a.bindings[0] }

// Bindings lists the contributing declarations in registration order.
func (a *ambiguousBinding[T]) Bindings() []T { return slices.Clone(a.bindings) }

func (a *ambiguousBinding[T]) Errors() []ValidationError { return a.errs }

func (a *ambiguousBinding[T]) contributors() []Element {
	out := make([]Element, len(a.bindings))
	for i, b := range a.bindings {
		out[i] = b
	}
	return out
}

func (a *ambiguousBinding[T]) Name() string { return a.first().Name() }

// AmbiguousTypeBinding replaces colliding schema types. Its kind is
// TypeKindNone whatever the contributors are.
type AmbiguousTypeBinding struct {
	ambiguousBinding[SchemaType]
}

func newAmbiguousTypeBinding(limit int) func(existing, el SchemaType) SchemaType {
	return func(existing, el SchemaType) SchemaType {
		b := &AmbiguousTypeBinding{}
		b.init(existing.FullName(), limit, existing, el)
		return b
	}
}

func (b *AmbiguousTypeBinding) Namespace() string                  { return b.first().Namespace() }
func (b *AmbiguousTypeBinding) FullName() string                   { return b.qname }
func (*AmbiguousTypeBinding) SchemaElementKind() SchemaElementKind { return SchemaElementKindTypeDefinition }
func (*AmbiguousTypeBinding) TypeKind() TypeKind                   { return TypeKindNone }
func (b *AmbiguousTypeBinding) MinVersion() Version                { return b.first().MinVersion() }

// AmbiguousTermBinding replaces colliding terms.
type AmbiguousTermBinding struct {
	ambiguousBinding[Term]
}

func newAmbiguousTermBinding(limit int) func(existing, el Term) Term {
	return func(existing, el Term) Term {
		b := &AmbiguousTermBinding{}
		b.init(existing.FullName(), limit, existing, el)
		return b
	}
}

func (b *AmbiguousTermBinding) Namespace() string                  { return b.first().Namespace() }
func (b *AmbiguousTermBinding) FullName() string                   { return b.qname }
func (*AmbiguousTermBinding) SchemaElementKind() SchemaElementKind { return SchemaElementKindTerm }
func (b *AmbiguousTermBinding) Type() TypeReference                { return b.first().Type() }
func (*AmbiguousTermBinding) AppliesTo() string                    { return "" }
func (*AmbiguousTermBinding) DefaultValue() string                 { return "" }

// AmbiguousPropertyBinding replaces properties of one structured type that
// share a name.
type AmbiguousPropertyBinding struct {
	ambiguousBinding[Property]
}

func newAmbiguousPropertyBinding(limit int) func(existing, el Property) Property {
	return func(existing, el Property) Property {
		b := &AmbiguousPropertyBinding{}
		b.init(propertyLocation(existing), limit, existing, el)
		return b
	}
}

func (*AmbiguousPropertyBinding) PropertyKind() PropertyKind      { return PropertyKindNone }
func (b *AmbiguousPropertyBinding) Type() TypeReference           { return b.first().Type() }
func (b *AmbiguousPropertyBinding) DeclaringType() StructuredType { return b.first().DeclaringType() }

// AmbiguousNavigationSourceBinding replaces entity sets and singletons of one
// container that share a name.
type AmbiguousNavigationSourceBinding struct {
	ambiguousBinding[NavigationSource]
}

func newAmbiguousNavigationSourceBinding(limit int) func(existing, el NavigationSource) NavigationSource {
	return func(existing, el NavigationSource) NavigationSource {
		b := &AmbiguousNavigationSourceBinding{}
		b.init(containerElementLocation(existing), limit, existing, el)
		return b
	}
}

func (*AmbiguousNavigationSourceBinding) ContainerElementKind() ContainerElementKind {
	return ContainerElementKindNone
}
func (b *AmbiguousNavigationSourceBinding) Container() EntityContainer { return b.first().Container() }
func (b *AmbiguousNavigationSourceBinding) EntityType() EntityType     { return b.first().EntityType() }
func (*AmbiguousNavigationSourceBinding) IncludeInServiceDocument() bool {
	return false
}

// AmbiguousOperationBinding is returned by Model.FindOperation when more
// than one overload matches. Operations are never merged at registration.
type AmbiguousOperationBinding struct {
	ambiguousBinding[Operation]
}

func newAmbiguousOperationBinding(ops []Operation) *AmbiguousOperationBinding {
	b := &AmbiguousOperationBinding{}
	b.init(ops[0].FullName(), 0, ops[0], ops[1])
	for _, op := range ops[2:] {
		b.addBinding(op)
	}
	return b
}

func (b *AmbiguousOperationBinding) Namespace() string { return b.first().Namespace() }
func (b *AmbiguousOperationBinding) FullName() string  { return b.qname }
func (b *AmbiguousOperationBinding) SchemaElementKind() SchemaElementKind {
	return b.first().SchemaElementKind()
}
func (b *AmbiguousOperationBinding) Parameters() []OperationParameter { return b.first().Parameters() }
func (b *AmbiguousOperationBinding) FindParameter(name string) OperationParameter {
	return b.first().FindParameter(name)
}
func (b *AmbiguousOperationBinding) ReturnType() TypeReference { return b.first().ReturnType() }
func (b *AmbiguousOperationBinding) IsBound() bool             { return b.first().IsBound() }
func (*AmbiguousOperationBinding) IsComposable() bool          { return false }
func (*AmbiguousOperationBinding) EntitySetPath() string       { return "" }

// AmbiguousLabeledExpressionBinding replaces labeled expressions that share a
// name. Its expression is a BadExpression carrying the ambiguity error.
type AmbiguousLabeledExpressionBinding struct {
	ambiguousBinding[LabeledExpression]
	expr lazy.Cell[*AmbiguousLabeledExpressionBinding, Expression]
}

func newAmbiguousLabeledExpressionBinding(limit int) func(existing, el LabeledExpression) LabeledExpression {
	return func(existing, el LabeledExpression) LabeledExpression {
		b := &AmbiguousLabeledExpressionBinding{}
		b.init(existing.Name(), limit, existing, el)
		return b
	}
}

func (*AmbiguousLabeledExpressionBinding) ExpressionKind() ExpressionKind {
	return ExpressionKindLabeled
}

func (b *AmbiguousLabeledExpressionBinding) Expression() Expression {
	return b.expr.Value(b, func(b *AmbiguousLabeledExpressionBinding) Expression {
		return NewBadExpression(b.errs...)
	}, nil)
}
