package goedm_test

import (
	"errors"
	"testing"

	"github.com/reoring/goedm"
	"github.com/reoring/goedm/csdl"
)

func TestResolveTypeName_Primitive(t *testing.T) {
	m := buildModel(t)
	typ, kind, err := goedm.ResolveTypeName(m, nil, "Edm.String", nil, goedm.V4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != goedm.TypeKindPrimitive || typ != m.Core().Primitive(goedm.PrimitiveString) {
		t.Fatalf("got %v %v", typ, kind)
	}
}

func TestResolveTypeName_Collection(t *testing.T) {
	m := buildModel(t)
	typ, kind, err := goedm.ResolveTypeName(m, nil, "Collection(Edm.String)", nil, goedm.V4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != goedm.TypeKindCollection {
		t.Fatalf("kind = %v", kind)
	}
	ct, ok := typ.(goedm.CollectionType)
	if !ok {
		t.Fatalf("expected a collection type, got %T", typ)
	}
	if ct.ElementType().Definition() != m.Core().Primitive(goedm.PrimitiveString) {
		t.Fatalf("unexpected element type %v", ct.ElementType().Definition())
	}
	if got := goedm.TypeName(typ); got != "Collection(Edm.String)" {
		t.Fatalf("TypeName = %q", got)
	}
}

func TestResolveTypeName_NestedCollection(t *testing.T) {
	m := buildModel(t)
	typ, kind, _ := goedm.ResolveTypeName(m, nil, "Collection(Collection(Edm.Int32))", nil, goedm.V4)
	if kind != goedm.TypeKindCollection || goedm.TypeName(typ) != "Collection(Collection(Edm.Int32))" {
		t.Fatalf("got %q %v", goedm.TypeName(typ), kind)
	}
}

func TestResolveTypeName_UnknownCollectionElement(t *testing.T) {
	m := buildModel(t)
	typ, kind, err := goedm.ResolveTypeName(m, nil, "Collection(NS.Unknown)", nil, goedm.V4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ != nil || kind != goedm.TypeKindCollection {
		t.Fatalf("expected (nil, Collection), got (%v, %v)", typ, kind)
	}
}

func TestResolveTypeName_Unknown(t *testing.T) {
	m := buildModel(t)
	for _, name := range []string{"NS.Unknown", "collection(Edm.String)", "Collection()", ""} {
		typ, kind, err := goedm.ResolveTypeName(m, nil, name, nil, goedm.V4)
		if typ != nil || kind != goedm.TypeKindNone || err != nil {
			t.Fatalf("%q: expected nothing, got (%v, %v, %v)", name, typ, kind, err)
		}
	}
}

func TestResolveTypeName_VersionGating(t *testing.T) {
	m := buildModel(t)
	typ, kind, _ := goedm.ResolveTypeName(m, nil, "Edm.Untyped", nil, goedm.V4)
	if typ != nil || kind != goedm.TypeKindNone {
		t.Fatalf("Edm.Untyped must not resolve in 4.0, got (%v, %v)", typ, kind)
	}
	typ, kind, _ = goedm.ResolveTypeName(m, nil, "Edm.Untyped", nil, goedm.V401)
	if typ == nil || kind != goedm.TypeKindUntyped {
		t.Fatalf("Edm.Untyped must resolve in 4.01, got (%v, %v)", typ, kind)
	}
	if typ, kind := goedm.ResolveTypeNameForWrite(m, "Edm.Untyped"); typ == nil || kind != goedm.TypeKindUntyped {
		t.Fatalf("writers resolve every known type, got (%v, %v)", typ, kind)
	}
	if typ, _, _ := goedm.ResolveTypeNameForRead(m, nil, "Edm.Untyped", nil, goedm.V4); typ != nil {
		t.Fatalf("readers honor the payload version")
	}
}

func TestResolveTypeName_SpatialAndAbstract(t *testing.T) {
	m := buildModel(t)
	for _, tc := range []struct {
		name string
		kind goedm.PrimitiveKind
	}{
		{"Edm.GeographyPoint", goedm.PrimitiveGeographyPoint},
		{"Edm.GeometryCollection", goedm.PrimitiveGeometryCollection},
		{"Edm.PrimitiveType", goedm.PrimitiveAbstract},
		{"Edm.AnnotationPath", goedm.PrimitiveAnnotationPath},
		{"Edm.NavigationPropertyPath", goedm.PrimitiveNavigationPropertyPath},
	} {
		typ, kind, _ := goedm.ResolveTypeName(m, nil, tc.name, nil, goedm.V4)
		if kind != goedm.TypeKindPrimitive || typ != m.Core().Primitive(tc.kind) {
			t.Fatalf("%s: got (%v, %v)", tc.name, typ, kind)
		}
	}
	if !goedm.PrimitiveGeographyPoint.IsSpatial() || goedm.PrimitiveString.IsSpatial() || goedm.PrimitiveAbstract.IsSpatial() {
		t.Fatalf("IsSpatial must cover exactly the Geography and Geometry kinds")
	}
	if typ, _, _ := goedm.ResolveTypeName(m, nil, "Edm.AnyPropertyPath", nil, goedm.V4); typ != nil {
		t.Fatalf("Edm.AnyPropertyPath must not resolve in 4.0, got %v", typ)
	}
	if typ, _, _ := goedm.ResolveTypeName(m, nil, "Edm.ModelElementPath", nil, goedm.V401); typ == nil {
		t.Fatalf("Edm.ModelElementPath must resolve in 4.01")
	}
}

func TestModel_SpatialPropertyResolves(t *testing.T) {
	m := buildModel(t, csdl.Schema{Namespace: "Geo", ComplexTypes: []csdl.ComplexType{{
		Name: "Place", Properties: []csdl.Property{{Name: "Location", Type: "Edm.GeographyPoint"}},
	}}})
	ref := m.FindType("Geo.Place").(goedm.ComplexType).FindProperty("Location").Type()
	if len(ref.Errors()) != 0 || ref.Definition() != goedm.Type(m.Core().Primitive(goedm.PrimitiveGeographyPoint)) {
		t.Fatalf("Location must be Edm.GeographyPoint, got %v %v", ref.Definition(), ref.Errors())
	}
	if errs := goedm.Validate(m); len(errs) != 0 {
		t.Fatalf("unexpected validation errors %v", errs)
	}
}

func TestResolveTypeName_CustomResolver(t *testing.T) {
	m := buildModel(t, csdl.Schema{Namespace: "NS", ComplexTypes: []csdl.ComplexType{{Name: "C"}}})
	c := m.FindType("NS.C")
	var gotExpected goedm.Type
	var gotName string
	custom := func(expected goedm.Type, name string) goedm.Type {
		gotExpected, gotName = expected, name
		return c
	}
	expected := goedm.NewCollectionType(goedm.NewTypeReference(m.Core().Primitive(goedm.PrimitiveString), true))
	typ, kind, err := goedm.ResolveTypeNameForRead(m, expected, "Collection(Other.Thing)", custom, goedm.V4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != goedm.TypeKindCollection || goedm.TypeName(typ) != "Collection(NS.C)" {
		t.Fatalf("got %q %v", goedm.TypeName(typ), kind)
	}
	if gotName != "Other.Thing" || gotExpected != m.Core().Primitive(goedm.PrimitiveString) {
		t.Fatalf("resolver saw (%v, %q)", gotExpected, gotName)
	}
}

func TestResolveTypeName_CustomResolverReturnsNil(t *testing.T) {
	m := buildModel(t, csdl.Schema{Namespace: "NS", ComplexTypes: []csdl.ComplexType{{Name: "C"}}})
	custom := func(goedm.Type, string) goedm.Type { return nil }
	typ, kind, err := goedm.ResolveTypeName(m, nil, "NS.C", custom, goedm.V4)
	if !errors.Is(err, goedm.ErrCustomResolverReturnedNil) {
		t.Fatalf("expected ErrCustomResolverReturnedNil, got %v", err)
	}
	if typ != nil || kind != goedm.TypeKindNone {
		t.Fatalf("expected no type, got (%v, %v)", typ, kind)
	}
	_, kind, err = goedm.ResolveTypeName(m, nil, "Collection(NS.C)", custom, goedm.V4)
	if !errors.Is(err, goedm.ErrCustomResolverReturnedNil) || kind != goedm.TypeKindCollection {
		t.Fatalf("collection element failure must propagate, got (%v, %v)", kind, err)
	}
}

func TestResolveTypeName_CustomResolverIgnoredForCoreOnlyModel(t *testing.T) {
	m := buildModel(t)
	custom := func(goedm.Type, string) goedm.Type {
		t.Fatalf("custom resolver must not be consulted")
		return nil
	}
	typ, kind, err := goedm.ResolveTypeName(m, nil, "Edm.Guid", custom, goedm.V4)
	if err != nil || kind != goedm.TypeKindPrimitive || typ == nil {
		t.Fatalf("got (%v, %v, %v)", typ, kind, err)
	}
}

func TestResolveTypeName_DeclaredAndAliased(t *testing.T) {
	m := buildModel(t, salesSchema())
	typ, kind, _ := goedm.ResolveTypeName(m, nil, "Collection(S.Order)", nil, m.Version())
	if kind != goedm.TypeKindCollection || goedm.TypeName(typ) != "Collection(Sales.Order)" {
		t.Fatalf("got %q %v", goedm.TypeName(typ), kind)
	}
	if _, kind, _ := goedm.ResolveTypeName(m, nil, "Sales.Money", nil, m.Version()); kind != goedm.TypeKindTypeDefinition {
		t.Fatalf("kind = %v", kind)
	}
}

func TestModel_PropertyTypeNotSupportedInVersion(t *testing.T) {
	s := csdl.Schema{Namespace: "NS", ComplexTypes: []csdl.ComplexType{{
		Name: "Bag", Properties: []csdl.Property{{Name: "Any", Type: "Edm.Untyped"}},
	}}}
	m := buildModel(t, s)
	ref := m.FindType("NS.Bag").(goedm.ComplexType).FindProperty("Any").Type()
	errs := ref.Errors()
	if len(errs) != 1 || errs[0].Code != goedm.CodeTypeNotSupportedInVersion || errs[0].Location != "NS.Bag/Any" {
		t.Fatalf("unexpected errors %v", errs)
	}
	if ref.Definition() == nil {
		t.Fatalf("a Bad reference still has a definition")
	}

	m = buildModelWith(t, goedm.BuildOpt{Version: goedm.V401}, s)
	ref = m.FindType("NS.Bag").(goedm.ComplexType).FindProperty("Any").Type()
	if len(ref.Errors()) != 0 || ref.Definition().TypeKind() != goedm.TypeKindUntyped {
		t.Fatalf("Edm.Untyped must resolve in 4.01 models, got %v", ref.Errors())
	}
}
