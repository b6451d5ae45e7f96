package goedm

import (
	"errors"
	"testing"

	"github.com/reoring/goedm/internal/vmap"
)

func newTestTerms(n int) []Term {
	out := make([]Term, n)
	for i := range out {
		out[i] = &term{schemaElement: newSchemaElement(nil, "NS", "T"), typeName: "Edm.String"}
	}
	return out
}

func TestRegisterElement_AssociativeAndCommutative(t *testing.T) {
	terms := newTestTerms(3)
	orders := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, order := range orders {
		table := vmap.NewString[Term]()
		for _, i := range order {
			registerElement(&table, "NS.T", terms[i], newAmbiguousTermBinding(0))
		}
		got, _ := table.TryGet("NS.T")
		amb, ok := got.(*AmbiguousTermBinding)
		if !ok {
			t.Fatalf("order %v: expected an ambiguous binding, got %T", order, got)
		}
		bindings := amb.Bindings()
		if len(bindings) != 3 {
			t.Fatalf("order %v: expected 3 contributors, got %d", order, len(bindings))
		}
		for i, b := range bindings {
			if b != terms[order[i]] {
				t.Fatalf("order %v: contributor %d out of registration order", order, i)
			}
		}
	}
}

func TestRegisterElement_SameElementTwice(t *testing.T) {
	terms := newTestTerms(2)
	table := vmap.NewString[Term]()
	registerElement(&table, "NS.T", terms[0], newAmbiguousTermBinding(0))
	registerElement(&table, "NS.T", terms[0], newAmbiguousTermBinding(0))
	if got, _ := table.TryGet("NS.T"); got != terms[0] {
		t.Fatalf("re-registering an element must not create an ambiguity")
	}
	registerElement(&table, "NS.T", terms[1], newAmbiguousTermBinding(0))
	registerElement(&table, "NS.T", terms[1], newAmbiguousTermBinding(0))
	got, _ := table.TryGet("NS.T")
	if n := len(got.(*AmbiguousTermBinding).Bindings()); n != 2 {
		t.Fatalf("expected 2 contributors, got %d", n)
	}
}

func TestRegisterElement_EarlierVersionsKeepTheirBinding(t *testing.T) {
	terms := newTestTerms(2)
	table := vmap.NewString[Term]()
	registerElement(&table, "NS.T", terms[0], newAmbiguousTermBinding(0))
	before := table
	registerElement(&table, "NS.T", terms[1], newAmbiguousTermBinding(0))
	if got, _ := before.TryGet("NS.T"); got != terms[0] {
		t.Fatalf("the earlier version must keep the single binding")
	}
}

func TestRegisterOperation_ListsAreNotShared(t *testing.T) {
	ops := []*operation{
		{schemaElement: newSchemaElement(nil, "NS", "Op")},
		{schemaElement: newSchemaElement(nil, "NS", "Op")},
		{schemaElement: newSchemaElement(nil, "NS", "Op")},
	}
	table := vmap.NewString[[]Operation]()
	registerOperation(&table, ops[0])
	registerOperation(&table, ops[1])
	before := table
	registerOperation(&table, ops[2])
	old, _ := before.TryGet("NS.Op")
	cur, _ := table.TryGet("NS.Op")
	if len(old) != 2 || len(cur) != 3 || cur[2] != Operation(ops[2]) {
		t.Fatalf("unexpected lists %v / %v", old, cur)
	}
}

func TestRegisterContainer(t *testing.T) {
	table := vmap.NewString[EntityContainer]()
	c := newEntityContainer(nil, "NS", "Default")
	if err := registerContainer(&table, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byFull, _ := table.TryGet("NS.Default")
	byName, _ := table.TryGet("Default")
	if byFull != EntityContainer(c) || byName != EntityContainer(c) {
		t.Fatalf("container must be bound under both names")
	}
	err := registerContainer(&table, newEntityContainer(nil, "NS", "Other"))
	if !errors.Is(err, ErrDuplicateContainer) {
		t.Fatalf("expected ErrDuplicateContainer, got %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("a rejected container must not be bound")
	}
}

func TestCyclicPlaceholders(t *testing.T) {
	cyclicCode := func(st StructuredType) string {
		if errs := st.Errors(); len(errs) == 1 {
			return errs[0].Code
		}
		return ""
	}
	if cyclicCode(NewCyclicEntityType("NS.A", "NS.A")) != CodeBadCyclicEntity {
		t.Fatalf("entity placeholder must carry %s", CodeBadCyclicEntity)
	}
	if cyclicCode(NewCyclicComplexType("NS.C", "NS.C")) != CodeBadCyclicComplex {
		t.Fatalf("complex placeholder must carry %s", CodeBadCyclicComplex)
	}
	m := newModel(nil, BuildOpt{})
	a := newEntityType(m, "NS", "A", "NS.A")
	m.types = m.types.Set(a.full, SchemaType(a))
	if cyclicCode(a.BaseType()) != CodeBadCyclicEntity {
		t.Fatalf("a self-derived type gets the cyclic placeholder, got %v", a.BaseType().Errors())
	}
}
