package goedm

import (
	"cmp"
	"slices"
)

// Validate walks every element reachable from m and collects the errors they
// carry, together with m.Errors(). Each distinct entry appears once; the
// result is ordered by location, then code, then message. Warnings are kept
// only with IncludeWarnings. When several options are passed, the last one
// wins.
func Validate(m *Model, opts ...ValidateOpt) Errors {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	var out Errors
	seen := make(map[ValidationError]struct{})
	// add reports whether the walk should go on.
	add := func(e ValidationError) bool {
		if e.Severity == Warn && !opt.IncludeWarnings {
			return true
		}
		if _, dup := seen[e]; dup {
			return true
		}
		seen[e] = struct{}{}
		out = AppendErrors(out, e)
		return !(opt.FailFast && e.Severity == Error)
	}
	collect := func(errs []ValidationError) bool {
		for _, e := range errs {
			if !add(e) {
				return false
			}
		}
		return true
	}
	if collect(m.errs) {
		walkModel(m, func(el Element) bool { return collect(el.Errors()) })
	}
	slices.SortStableFunc(out, func(a, b ValidationError) int {
		return cmp.Or(
			cmp.Compare(a.Location, b.Location),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Message, b.Message),
		)
	})
	return out
}

// modelWalker visits each element once. Following the accessors forces every
// lazy cell on the way.
type modelWalker struct {
	visit   func(Element) bool
	seen    map[Element]struct{}
	stopped bool
}

func walkModel(m *Model, visit func(Element) bool) {
	w := &modelWalker{visit: visit, seen: make(map[Element]struct{})}
	for _, el := range m.SchemaElements() {
		w.walk(el)
	}
	for _, l := range m.LabeledExpressions() {
		w.walk(l)
	}
	for _, a := range m.Annotations() {
		w.walk(a)
	}
}

func (w *modelWalker) walk(el Element) {
	if w.stopped || el == nil {
		return
	}
	if _, ok := w.seen[el]; ok {
		return
	}
	w.seen[el] = struct{}{}
	if !w.visit(el) {
		w.stopped = true
		return
	}

	if c, ok := el.(interface{ contributors() []Element }); ok {
		for _, b := range c.contributors() {
			w.walk(b)
		}
	}

	switch e := el.(type) {
	case TypeReference:
		w.walk(e.Definition())
	case CollectionType:
		w.walk(e.ElementType())
	case Property:
		w.walk(e.Type())
		if np, ok := e.(NavigationProperty); ok {
			w.walk(np.ToEntityType())
			if p := np.Partner(); p != nil {
				w.walk(p)
			}
		}
	case Term:
		w.walk(e.Type())
	case Operation:
		for _, p := range e.Parameters() {
			w.walk(p)
		}
		if rt := e.ReturnType(); rt != nil {
			w.walk(rt)
		}
	case OperationParameter:
		w.walk(e.Type())
	case EntityContainer:
		for _, c := range e.Elements() {
			w.walk(c)
		}
	case NavigationSource:
		w.walk(e.EntityType())
	case OperationImport:
		w.walk(e.Operation())
	case Annotation:
		w.walk(e.Term())
		w.walk(e.Value())
	case CollectionExpression:
		for _, it := range e.Items() {
			w.walk(it)
		}
	case LabeledExpression:
		w.walk(e.Expression())
	case LabeledExpressionReference:
		w.walk(e.Referenced())
	}

	if st, ok := el.(StructuredType); ok {
		if b := st.BaseType(); b != nil {
			w.walk(b)
		}
		for _, p := range st.DeclaredProperties() {
			w.walk(p)
		}
	}
	if et, ok := el.(EntityType); ok {
		for _, k := range et.DeclaredKey() {
			w.walk(k)
		}
	}
	if u, ok := el.(interface{ UnderlyingType() PrimitiveType }); ok {
		w.walk(u.UnderlyingType())
	}
	if en, ok := el.(EnumType); ok {
		for _, mem := range en.Members() {
			w.walk(mem)
		}
	}
}
