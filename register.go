package goedm

import (
	"fmt"
	"slices"

	"github.com/reoring/goedm/internal/vmap"
)

// registerElement binds el to qname in table. A name collision never
// overwrites: a single existing entry is replaced by merge(existing, el), and
// an existing ambiguous binding absorbs el in place.
func registerElement[T any](table *vmap.Map[string, T], qname string, el T, merge func(existing, el T) T) {
	existing, ok := table.TryGet(qname)
	if !ok {
		*table = table.Set(qname, el)
		return
	}
	if a, ok := any(existing).(ambiguous[T]); ok {
		a.addBinding(el)
		return
	}
	if any(existing) == any(el) {
		return
	}
	*table = table.Set(qname, merge(existing, el))
}

// registerOperation groups op with the overloads already bound to its name.
// The list is copied so earlier versions of table keep their own list.
func registerOperation(table *vmap.Map[string, []Operation], op Operation) {
	qname := op.FullName()
	ops, _ := table.TryGet(qname)
	*table = table.Set(qname, append(slices.Clip(ops), op))
}

// registerContainer binds c under its qualified and its bare name. A table
// that already holds a container rejects c.
func registerContainer(table *vmap.Map[string, EntityContainer], c EntityContainer) error {
	if table.Len() > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateContainer, c.FullName())
	}
	*table = table.Set(c.FullName(), c)
	if c.Name() != c.FullName() {
		*table = table.Set(c.Name(), c)
	}
	return nil
}

func propertyLocation(p Property) string {
	if p.DeclaringType() == nil {
		return p.Name()
	}
	return TypeName(p.DeclaringType()) + "/" + p.Name()
}

func containerElementLocation(el ContainerElement) string {
	if el.Container() == nil {
		return el.Name()
	}
	return el.Container().FullName() + "/" + el.Name()
}
