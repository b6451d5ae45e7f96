package goedm

import (
	"slices"

	"github.com/reoring/goedm/internal/lazy"
	"github.com/reoring/goedm/internal/vmap"
)

var (
	_ Term               = (*term)(nil)
	_ Operation          = (*operation)(nil)
	_ OperationParameter = (*operationParameter)(nil)
	_ EntityContainer    = (*entityContainer)(nil)
	_ EntitySet          = (*entitySet)(nil)
	_ Singleton          = (*singleton)(nil)
	_ OperationImport    = (*operationImport)(nil)
)

type term struct {
	schemaElement
	typeName     string
	nullable     bool
	appliesTo    string
	defaultValue string
	typ          lazy.Cell[*term, TypeReference]
}

func (*term) SchemaElementKind() SchemaElementKind { return SchemaElementKindTerm }
func (t *term) AppliesTo() string                  { return t.appliesTo }
func (t *term) DefaultValue() string               { return t.defaultValue }

func (t *term) Type() TypeReference {
	return t.typ.Value(t, func(t *term) TypeReference {
		return t.m.typeReference(t.typeName, t.nullable, t.full)
	}, cycleSentinelReference)
}

type operation struct {
	schemaElement
	kind           SchemaElementKind
	bound          bool
	composable     bool
	entitySetPath  string
	params         []OperationParameter
	hasReturn      bool
	returnName     string
	returnNullable bool
	ret            lazy.Cell[*operation, TypeReference]
}

func (o *operation) SchemaElementKind() SchemaElementKind { return o.kind }
func (o *operation) Parameters() []OperationParameter     { return slices.Clone(o.params) }
func (o *operation) IsBound() bool                        { return o.bound }
func (o *operation) IsComposable() bool                   { return o.composable }
func (o *operation) EntitySetPath() string                { return o.entitySetPath }

func (o *operation) FindParameter(name string) OperationParameter {
	for _, p := range o.params {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// ReturnType is nil when the operation declares no return type.
func (o *operation) ReturnType() TypeReference {
	if !o.hasReturn {
		return nil
	}
	return o.ret.Value(o, func(o *operation) TypeReference {
		return o.m.typeReference(o.returnName, o.returnNullable, o.full)
	}, cycleSentinelReference)
}

type operationParameter struct {
	op       *operation
	name     string
	typeName string
	nullable bool
	errs     []ValidationError
	typ      lazy.Cell[*operationParameter, TypeReference]
}

func newOperationParameter(op *operation, name, typeName string, nullable bool) *operationParameter {
	p := &operationParameter{op: op, name: name, typeName: typeName, nullable: nullable}
	if !isSimpleIdentifier(name) {
		p.errs = append(p.errs, ErrorAt(p.location(), CodeInvalidName, nameData(name)))
	}
	return p
}

func (p *operationParameter) Errors() []ValidationError     { return p.errs }
func (p *operationParameter) Name() string                  { return p.name }
func (p *operationParameter) DeclaringOperation() Operation { return p.op }
func (p *operationParameter) location() string              { return p.op.full + "/" + p.name }

func (p *operationParameter) Type() TypeReference {
	return p.typ.Value(p, func(p *operationParameter) TypeReference {
		return p.op.m.typeReference(p.typeName, p.nullable, p.location())
	}, cycleSentinelReference)
}

type entityContainer struct {
	schemaElement
	elements []ContainerElement
	sources  vmap.Map[string, NavigationSource]
	imports  vmap.Map[string, []OperationImport]
}

func newEntityContainer(m *Model, namespace, name string) *entityContainer {
	return &entityContainer{
		schemaElement: newSchemaElement(m, namespace, name),
		sources:       vmap.NewString[NavigationSource](),
		imports:       vmap.NewString[[]OperationImport](),
	}
}

func (*entityContainer) SchemaElementKind() SchemaElementKind { return SchemaElementKindEntityContainer }
func (c *entityContainer) Elements() []ContainerElement       { return slices.Clone(c.elements) }

func (c *entityContainer) addNavigationSource(s NavigationSource) {
	c.elements = append(c.elements, s)
	registerElement(&c.sources, s.Name(), s, newAmbiguousNavigationSourceBinding(c.m.limit))
}

func (c *entityContainer) addOperationImport(imp OperationImport) {
	c.elements = append(c.elements, imp)
	list, _ := c.imports.TryGet(imp.Name())
	c.imports = c.imports.Set(imp.Name(), append(slices.Clip(list), imp))
}

// FindEntitySet returns the entity set called name. Colliding entity sets and
// singletons come back as an AmbiguousNavigationSourceBinding.
func (c *entityContainer) FindEntitySet(name string) EntitySet {
	s, _ := c.sources.TryGet(name)
	if es, ok := s.(EntitySet); ok && s.ContainerElementKind() != ContainerElementKindSingleton {
		return es
	}
	return nil
}

func (c *entityContainer) FindSingleton(name string) Singleton {
	s, _ := c.sources.TryGet(name)
	if s != nil && s.ContainerElementKind() == ContainerElementKindSingleton {
		return s
	}
	return nil
}

func (c *entityContainer) FindOperationImports(name string) []OperationImport {
	list, _ := c.imports.TryGet(name)
	return slices.Clone(list)
}

// navigationSource is shared by entity sets and singletons.
type navigationSource struct {
	container *entityContainer
	kind      ContainerElementKind
	name      string
	typeName  string
	errs      []ValidationError
	entity    lazy.Cell[*navigationSource, EntityType]
}

func (s *navigationSource) init(c *entityContainer, kind ContainerElementKind, name, typeName string) {
	s.container = c
	s.kind = kind
	s.name = name
	s.typeName = typeName
	if !isSimpleIdentifier(name) {
		s.errs = append(s.errs, ErrorAt(s.location(), CodeInvalidName, nameData(name)))
	}
}

func (s *navigationSource) Errors() []ValidationError                  { return s.errs }
func (s *navigationSource) Name() string                               { return s.name }
func (s *navigationSource) ContainerElementKind() ContainerElementKind { return s.kind }
func (s *navigationSource) Container() EntityContainer                 { return s.container }
func (s *navigationSource) location() string                           { return s.container.full + "/" + s.name }

// EntityType resolves the declared entity type name.
func (s *navigationSource) EntityType() EntityType {
	return s.entity.Value(s, func(s *navigationSource) EntityType {
		found := s.container.m.FindType(s.typeName)
		if et, ok := found.(EntityType); ok && found.TypeKind() == TypeKindEntity {
			return et
		}
		return NewBadEntityType(s.typeName, ErrorAt(s.location(), CodeBadUnresolvedEntityType, nameData(s.typeName)))
	}, nil)
}

type entitySet struct {
	navigationSource
	includeInServiceDocument bool
}

func newEntitySet(c *entityContainer, name, typeName string, include bool) *entitySet {
	s := &entitySet{includeInServiceDocument: include}
	s.init(c, ContainerElementKindEntitySet, name, typeName)
	return s
}

func (s *entitySet) IncludeInServiceDocument() bool { return s.includeInServiceDocument }

type singleton struct {
	navigationSource
}

func newSingleton(c *entityContainer, name, typeName string) *singleton {
	s := &singleton{}
	s.init(c, ContainerElementKindSingleton, name, typeName)
	return s
}

type operationImport struct {
	container     *entityContainer
	kind          ContainerElementKind
	name          string
	operationName string
	entitySetName string
	errs          []ValidationError
	op            lazy.Cell[*operationImport, Operation]
}

func newOperationImport(c *entityContainer, kind ContainerElementKind, name, operationName, entitySet string) *operationImport {
	imp := &operationImport{container: c, kind: kind, name: name, operationName: operationName, entitySetName: entitySet}
	if !isSimpleIdentifier(name) {
		imp.errs = append(imp.errs, ErrorAt(imp.location(), CodeInvalidName, nameData(name)))
	}
	return imp
}

func (i *operationImport) Errors() []ValidationError                  { return i.errs }
func (i *operationImport) Name() string                               { return i.name }
func (i *operationImport) ContainerElementKind() ContainerElementKind { return i.kind }
func (i *operationImport) Container() EntityContainer                 { return i.container }
func (i *operationImport) EntitySetName() string                      { return i.entitySetName }
func (i *operationImport) location() string                           { return i.container.full + "/" + i.name }

// Operation resolves the imported operation among the unbound overloads of
// the matching kind. Function imports take the first overload; two unbound
// actions with one name are ambiguous.
func (i *operationImport) Operation() Operation {
	return i.op.Value(i, func(i *operationImport) Operation {
		want := SchemaElementKindAction
		if i.kind == ContainerElementKindFunctionImport {
			want = SchemaElementKindFunction
		}
		var matches []Operation
		for _, op := range i.container.m.FindOperations(i.operationName) {
			if op.SchemaElementKind() == want && !op.IsBound() {
				matches = append(matches, op)
			}
		}
		switch {
		case len(matches) == 0:
			return NewBadOperation(i.operationName, ErrorAt(i.location(), CodeBadUnresolvedOperation, nameData(i.operationName)))
		case len(matches) == 1 || want == SchemaElementKindFunction:
			return matches[0]
		}
		return newAmbiguousOperationBinding(matches)
	}, nil)
}
