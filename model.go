package goedm

import (
	"slices"

	"github.com/reoring/goedm/internal/vmap"
)

// Model is a queryable set of schema elements. A Model returned by
// Builder.Build or Builder.Snapshot never changes its bindings, and its query
// methods are safe for concurrent use. Derived properties are computed on
// first use; Seal computes all of them up front.
type Model struct {
	core       *CoreModel
	version    Version
	limit      int
	types      vmap.Map[string, SchemaType]
	terms      vmap.Map[string, Term]
	operations vmap.Map[string, []Operation]
	containers vmap.Map[string, EntityContainer]
	labeled    vmap.Map[string, LabeledExpression]
	// annotations are keyed by target path.
	annotations vmap.Map[string, []Annotation]
	// aliases maps a schema alias to its namespace.
	aliases    vmap.Map[string, string]
	namespaces vmap.Map[string, struct{}]
	references []*Model
	errs       Errors
}

func newModel(core *CoreModel, opt BuildOpt) *Model {
	if core == nil {
		core = NewCoreModel()
	}
	v := opt.Version
	if v == 0 {
		v = V4
	}
	return &Model{
		core:        core,
		version:     v,
		limit:       opt.MaxAmbiguousBindings,
		types:       vmap.NewString[SchemaType](),
		terms:       vmap.NewString[Term](),
		operations:  vmap.NewString[[]Operation](),
		containers:  vmap.NewString[EntityContainer](),
		labeled:     vmap.NewString[LabeledExpression](),
		annotations: vmap.NewString[[]Annotation](),
		aliases:     vmap.NewString[string](),
		namespaces:  vmap.NewString[struct{}](),
	}
}

// Core returns the built-in types the model resolves against.
func (m *Model) Core() *CoreModel { return m.core }

// Version is the protocol version of the model.
func (m *Model) Version() Version { return m.version }

// References lists the models searched after the declared elements.
func (m *Model) References() []*Model { return slices.Clone(m.references) }

// Errors returns the construction errors recorded for the model itself, such
// as skipped declarations and loader warnings. Element errors are reported by
// the elements and collected by Validate.
func (m *Model) Errors() Errors { return slices.Clone(m.errs) }

// IsUserModel reports whether the model declares any element of its own.
func (m *Model) IsUserModel() bool {
	return m.types.Len()+m.terms.Len()+m.operations.Len()+m.containers.Len() > 0
}

// Namespaces lists the declared namespaces in sorted order.
func (m *Model) Namespaces() []string { return sortedKeys(m.namespaces) }

// sortedKeys lists the keys of t in order. Large tables iterate by hash
// bucket, so the order has to be restored.
func sortedKeys[V any](t vmap.Map[string, V]) []string {
	keys := t.Keys()
	slices.Sort(keys)
	return keys
}

// replaceAlias rewrites "Alias.Name" to "Namespace.Name".
func (m *Model) replaceAlias(qname string) string {
	ns, name := SplitQualifiedName(qname)
	if ns == "" {
		return qname
	}
	if real, ok := m.aliases.TryGet(ns); ok {
		return fullName(real, name)
	}
	return qname
}

// FindType looks qname up among the built-in types, then the declared types,
// then the referenced models. Distinct matches from several referenced models
// come back as an AmbiguousTypeBinding. The result is nil when nothing
// matches.
func (m *Model) FindType(qname string) SchemaType {
	qname = m.replaceAlias(qname)
	if t := m.core.FindType(qname); t != nil {
		return t
	}
	if t, ok := m.types.TryGet(qname); ok {
		return t
	}
	var matches []SchemaType
	for _, ref := range m.references {
		if t := ref.findDeclaredType(qname); t != nil && !slices.Contains(matches, t) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil
	case 1:
		return matches[0]
	}
	b := newAmbiguousTypeBinding(m.limit)(matches[0], matches[1])
	for _, t := range matches[2:] {
		b.(ambiguous[SchemaType]).addBinding(t)
	}
	return b
}

// FindDeclaredType looks qname up among the model's own declarations only.
func (m *Model) FindDeclaredType(qname string) SchemaType {
	return m.findDeclaredType(m.replaceAlias(qname))
}

func (m *Model) findDeclaredType(qname string) SchemaType {
	if t, ok := m.types.TryGet(qname); ok {
		return t
	}
	for _, ref := range m.references {
		if t := ref.findDeclaredType(qname); t != nil {
			return t
		}
	}
	return nil
}

// FindTerm returns the term named qname, or nil.
func (m *Model) FindTerm(qname string) Term {
	qname = m.replaceAlias(qname)
	if t, ok := m.terms.TryGet(qname); ok {
		return t
	}
	for _, ref := range m.references {
		if t := ref.FindTerm(qname); t != nil {
			return t
		}
	}
	return nil
}

// FindOperations returns every overload bound to qname, declared ones first.
func (m *Model) FindOperations(qname string) []Operation {
	qname = m.replaceAlias(qname)
	ops, _ := m.operations.TryGet(qname)
	out := slices.Clone(ops)
	for _, ref := range m.references {
		out = append(out, ref.FindOperations(qname)...)
	}
	return out
}

// FindOperation selects the overload of qname that applies to bindingType.
// A nil bindingType selects unbound overloads. It returns nil when nothing
// matches and an AmbiguousOperationBinding when several overloads do.
func (m *Model) FindOperation(qname string, bindingType Type) Operation {
	var matches []Operation
	want := TypeName(bindingType)
	for _, op := range m.FindOperations(qname) {
		if bindingType == nil {
			if !op.IsBound() {
				matches = append(matches, op)
			}
			continue
		}
		if !op.IsBound() || len(op.Parameters()) == 0 {
			continue
		}
		if TypeName(op.Parameters()[0].Type().Definition()) == want {
			matches = append(matches, op)
		}
	}
	switch len(matches) {
	case 0:
		return nil
	case 1:
		return matches[0]
	}
	return newAmbiguousOperationBinding(matches)
}

// EntityContainer returns the model's entity container, or nil.
func (m *Model) EntityContainer() EntityContainer {
	for _, c := range m.containers.All() {
		return c
	}
	return nil
}

// FindEntityContainer accepts the qualified or the bare container name.
func (m *Model) FindEntityContainer(name string) EntityContainer {
	if c, ok := m.containers.TryGet(m.replaceAlias(name)); ok {
		return c
	}
	for _, ref := range m.references {
		if c := ref.FindEntityContainer(name); c != nil {
			return c
		}
	}
	return nil
}

// FindLabeledExpression returns the labeled expression called name, or nil.
func (m *Model) FindLabeledExpression(name string) LabeledExpression {
	e, _ := m.labeled.TryGet(name)
	return e
}

// FindAnnotations lists the annotations applied to target.
func (m *Model) FindAnnotations(target string) []Annotation {
	a, _ := m.annotations.TryGet(m.replaceAlias(target))
	return slices.Clone(a)
}

// SchemaElements lists the declared types, terms, operations and the entity
// container, each group ordered by qualified name.
func (m *Model) SchemaElements() []SchemaElement {
	var out []SchemaElement
	for _, k := range sortedKeys(m.types) {
		t, _ := m.types.TryGet(k)
		out = append(out, t)
	}
	for _, k := range sortedKeys(m.terms) {
		t, _ := m.terms.TryGet(k)
		out = append(out, t)
	}
	for _, k := range sortedKeys(m.operations) {
		ops, _ := m.operations.TryGet(k)
		for _, op := range ops {
			out = append(out, op)
		}
	}
	if c := m.EntityContainer(); c != nil {
		out = append(out, c)
	}
	return out
}

// Annotations lists every annotation in target order.
func (m *Model) Annotations() []Annotation {
	var out []Annotation
	for _, k := range sortedKeys(m.annotations) {
		a, _ := m.annotations.TryGet(k)
		out = append(out, a...)
	}
	return out
}

// LabeledExpressions lists the labeled expressions bound in the model.
func (m *Model) LabeledExpressions() []LabeledExpression {
	var out []LabeledExpression
	for _, k := range sortedKeys(m.labeled) {
		e, _ := m.labeled.TryGet(k)
		out = append(out, e)
	}
	return out
}

// Seal computes every derived property reachable from the model so that
// later concurrent readers only observe computed cells. It returns the model.
func (m *Model) Seal() *Model {
	walkModel(m, func(Element) bool { return true })
	return m
}
