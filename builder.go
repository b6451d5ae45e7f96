package goedm

import (
	"fmt"
	"slices"

	"github.com/reoring/goedm/csdl"
)

// Builder turns declaration records into a Model. It registers elements as
// they are added; references between elements are resolved lazily, so
// declarations may come in any order and may refer forward.
//
// A Builder is not safe for concurrent use. Models obtained from Snapshot
// share no mutable state with the builder and may be read by other goroutines
// while more schemas are added.
type Builder struct {
	m             *Model
	opt           BuildOpt
	versionPinned bool
	err           error
	built         bool
	// replay holds the accepted input in order, for Snapshot.
	replay []func(*Builder) error
	snap   *Model
	snapAt int
}

// NewBuilder starts a model that resolves built-in names against core. A nil
// core gets a fresh NewCoreModel. When several options are passed, the last
// one wins.
func NewBuilder(core *CoreModel, opts ...BuildOpt) *Builder {
	var opt BuildOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return &Builder{m: newModel(core, opt), opt: opt, versionPinned: opt.Version != 0}
}

// BuildModel builds a model from one document.
func BuildModel(core *CoreModel, doc *csdl.Document, opts ...BuildOpt) (*Model, error) {
	b := NewBuilder(core, opts...)
	if err := b.AddDocument(doc); err != nil {
		return nil, err
	}
	return b.Build()
}

func (b *Builder) usable() error {
	if b.built {
		return ErrBuilderClosed
	}
	return b.err
}

// AddReference makes the declarations of ref visible to the model under
// construction. Declared elements win over referenced ones.
func (b *Builder) AddReference(ref *Model) error {
	if err := b.usable(); err != nil {
		return err
	}
	if ref == nil {
		return fmt.Errorf("%w: nil reference", ErrInvalidDeclaration)
	}
	b.m.references = append(b.m.references, ref)
	b.record(func(nb *Builder) error { return nb.AddReference(ref) })
	return nil
}

// AddDocument adds every schema of doc. The document version applies unless
// the builder was given one; loader warnings become Warn entries of
// Model.Errors.
func (b *Builder) AddDocument(doc *csdl.Document) error {
	if err := b.usable(); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDeclaration)
	}
	if err := b.addHeader(doc.Version, doc.Warnings); err != nil {
		return err
	}
	for _, s := range doc.Schemas {
		if err := b.AddSchema(s); err != nil {
			return err
		}
	}
	return nil
}

// addHeader applies the document version and loader warnings.
func (b *Builder) addHeader(version string, warnings []csdl.Warning) error {
	if version != "" && !b.versionPinned {
		v, err := ParseVersion(version)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDeclaration, err)
		}
		b.m.version = v
		b.versionPinned = true
	}
	for _, w := range warnings {
		if w.Code == csdl.CodeDuplicateKey {
			b.m.errs = AppendErrors(b.m.errs, WarningAt(w.Path, CodeDuplicateDocumentKey, nameData(w.Key)))
		}
	}
	b.record(func(nb *Builder) error { return nb.addHeader(version, warnings) })
	return nil
}

// AddSchema registers the declarations of one schema. A second entity
// container fails with ErrDuplicateContainer before anything of s is
// registered, and the builder stays failed. The builder keeps s for
// Snapshot; callers must not modify its slices afterwards.
func (b *Builder) AddSchema(s csdl.Schema) error {
	if err := b.usable(); err != nil {
		return err
	}
	m := b.m
	if n := len(s.EntityContainers); n > 1 || (n == 1 && m.containers.Len() > 0) {
		b.err = fmt.Errorf("%w: %s", ErrDuplicateContainer, fullName(s.Namespace, s.EntityContainers[n-1].Name))
		return b.err
	}

	ns := s.Namespace
	if !isNamespaceName(ns) {
		m.errs = AppendErrors(m.errs, ErrorAt(ns, CodeInvalidNamespaceName, nameData(ns)))
	}
	m.namespaces = m.namespaces.Set(ns, struct{}{})
	if s.Alias != "" {
		m.aliases = m.aliases.Set(s.Alias, ns)
	}

	mergeType := newAmbiguousTypeBinding(m.limit)
	for _, d := range s.EntityTypes {
		if b.skipped(d.Name, "EntityType", ns) {
			continue
		}
		t := newEntityType(m, ns, d.Name, d.BaseType)
		t.abstract, t.open, t.hasStream = d.Abstract, d.OpenType, d.HasStream
		t.keyNames = d.Key
		b.addProperties(&t.structuredType, t, d.Properties, d.NavigationProperties)
		registerElement(&m.types, t.full, SchemaType(t), mergeType)
	}
	for _, d := range s.ComplexTypes {
		if b.skipped(d.Name, "ComplexType", ns) {
			continue
		}
		t := newComplexType(m, ns, d.Name, d.BaseType)
		t.abstract, t.open = d.Abstract, d.OpenType
		b.addProperties(&t.structuredType, t, d.Properties, d.NavigationProperties)
		registerElement(&m.types, t.full, SchemaType(t), mergeType)
	}
	for _, d := range s.EnumTypes {
		if b.skipped(d.Name, "EnumType", ns) {
			continue
		}
		t := newEnumType(m, ns, d.Name, d.UnderlyingType, d.IsFlags)
		var next int64
		for _, md := range d.Members {
			if md.Value != nil {
				next = *md.Value
			}
			em := &enumMember{name: md.Name, value: next, declaring: t}
			if !isSimpleIdentifier(md.Name) {
				em.errs = append(em.errs, ErrorAt(t.full+"/"+md.Name, CodeInvalidName, nameData(md.Name)))
			}
			t.members = append(t.members, em)
			next++
		}
		registerElement(&m.types, t.full, SchemaType(t), mergeType)
	}
	for _, d := range s.TypeDefinitions {
		if b.skipped(d.Name, "TypeDefinition", ns) {
			continue
		}
		t := newTypeDefinition(m, ns, d.Name, d.UnderlyingType)
		registerElement(&m.types, t.full, SchemaType(t), mergeType)
	}

	mergeTerm := newAmbiguousTermBinding(m.limit)
	for _, d := range s.Terms {
		if b.skipped(d.Name, "Term", ns) {
			continue
		}
		t := &term{
			schemaElement: newSchemaElement(m, ns, d.Name),
			typeName:      d.Type,
			nullable:      nullable(d.Nullable),
			appliesTo:     d.AppliesTo,
			defaultValue:  d.DefaultValue,
		}
		registerElement(&m.terms, t.full, Term(t), mergeTerm)
	}

	for _, d := range s.Actions {
		if b.skipped(d.Name, "Action", ns) {
			continue
		}
		registerOperation(&m.operations, b.newOperation(ns, SchemaElementKindAction, d))
	}
	for _, d := range s.Functions {
		if b.skipped(d.Name, "Function", ns) {
			continue
		}
		registerOperation(&m.operations, b.newOperation(ns, SchemaElementKindFunction, d))
	}

	for _, d := range s.EntityContainers {
		if err := b.addContainer(ns, d); err != nil {
			b.err = err
			return err
		}
	}

	for _, group := range s.Annotations {
		target := m.replaceAlias(group.Target)
		for _, d := range group.Annotations {
			a := &annotation{m: m, target: target, termName: d.Term, qualifier: d.Qualifier}
			a.value = m.buildExpression(d.Expression, a.location())
			list, _ := m.annotations.TryGet(target)
			m.annotations = m.annotations.Set(target, append(slices.Clip(list), Annotation(a)))
		}
	}
	b.record(func(nb *Builder) error { return nb.AddSchema(s) })
	return nil
}

func (b *Builder) record(step func(*Builder) error) {
	b.replay = append(b.replay, step)
}

// skipped records a declaration that has no name to register it under.
func (b *Builder) skipped(name, kind, ns string) bool {
	if name != "" {
		return false
	}
	b.m.errs = AppendErrors(b.m.errs, ErrorAt(ns, CodeSkippedDeclaration, map[string]string{"kind": kind}))
	return true
}

func nullable(p *bool) bool { return p == nil || *p }

func (b *Builder) addProperties(t *structuredType, owner StructuredType, props []csdl.Property, navs []csdl.NavigationProperty) {
	order := make([]string, 0, len(props)+len(navs))
	for _, d := range props {
		if b.skipped(d.Name, "Property", t.full) {
			continue
		}
		t.addProperty(newStructuralProperty(b.m, owner, d.Name, d.Type, nullable(d.Nullable), d.DefaultValue))
		order = append(order, d.Name)
	}
	for _, d := range navs {
		if b.skipped(d.Name, "NavigationProperty", t.full) {
			continue
		}
		t.addProperty(newNavigationProperty(b.m, owner, d.Name, d.Type, nullable(d.Nullable), d.Partner, d.ContainsTarget))
		order = append(order, d.Name)
	}
	t.sealProperties(order)
}

func (b *Builder) newOperation(ns string, kind SchemaElementKind, d csdl.Operation) *operation {
	op := &operation{
		schemaElement: newSchemaElement(b.m, ns, d.Name),
		kind:          kind,
		bound:         d.IsBound,
		composable:    d.IsComposable,
		entitySetPath: d.EntitySetPath,
	}
	for _, p := range d.Parameters {
		op.params = append(op.params, newOperationParameter(op, p.Name, p.Type, nullable(p.Nullable)))
	}
	if d.ReturnType != nil {
		op.hasReturn = true
		op.returnName = d.ReturnType.Type
		op.returnNullable = nullable(d.ReturnType.Nullable)
	}
	return op
}

func (b *Builder) addContainer(ns string, d csdl.EntityContainer) error {
	if b.skipped(d.Name, "EntityContainer", ns) {
		return nil
	}
	c := newEntityContainer(b.m, ns, d.Name)
	for _, es := range d.EntitySets {
		c.addNavigationSource(newEntitySet(c, es.Name, es.EntityType, nullable(es.IncludeInServiceDocument)))
	}
	for _, s := range d.Singletons {
		c.addNavigationSource(newSingleton(c, s.Name, s.Type))
	}
	for _, imp := range d.ActionImports {
		c.addOperationImport(newOperationImport(c, ContainerElementKindActionImport, imp.Name, imp.Operation, imp.EntitySet))
	}
	for _, imp := range d.FunctionImports {
		c.addOperationImport(newOperationImport(c, ContainerElementKindFunctionImport, imp.Name, imp.Operation, imp.EntitySet))
	}
	return registerContainer(&b.m.containers, c)
}

// Snapshot returns a model holding the declarations accepted so far. The
// snapshot gets its own elements, bound to its own tables, so every lookup
// and every resolved reference agrees with what the snapshot contains. A
// forward reference to a declaration added later stays unresolved in the
// snapshot while it resolves in the builder's model. Later additions never
// touch the snapshot.
func (b *Builder) Snapshot() *Model {
	if b.snap != nil && b.snapAt == len(b.replay) {
		return b.snap
	}
	nb := &Builder{m: newModel(b.m.core, b.opt), opt: b.opt, versionPinned: b.opt.Version != 0}
	for _, step := range b.replay {
		// Each step succeeded once, in this order, on an identical builder.
		_ = step(nb)
	}
	b.snap, b.snapAt = nb.m, len(b.replay)
	return nb.m
}

// Build finishes construction. The builder accepts no further input.
func (b *Builder) Build() (*Model, error) {
	if err := b.usable(); err != nil {
		return nil, err
	}
	b.built = true
	return b.m, nil
}
