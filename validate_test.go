package goedm_test

import (
	"strings"
	"testing"

	"github.com/reoring/goedm"
	"github.com/reoring/goedm/csdl"
)

func brokenSchema() csdl.Schema {
	return csdl.Schema{Namespace: "NS", ComplexTypes: []csdl.ComplexType{
		{Name: "B", Properties: []csdl.Property{{Name: "Y", Type: "NS.Missing"}, {Name: "X", Type: "NS.Missing"}}},
		{Name: "A", BaseType: "NS.Gone", Properties: []csdl.Property{{Name: "Z", Type: "NS.B"}}},
	}}
}

func TestValidate_OrderedByLocation(t *testing.T) {
	m := buildModel(t, brokenSchema())
	errs := goedm.Validate(m)
	var locs []string
	for _, e := range errs {
		locs = append(locs, e.Location)
	}
	want := []string{"NS.A", "NS.B/X", "NS.B/Y"}
	if strings.Join(locs, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", locs, want)
	}
	if !errs.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestValidate_Deduplicates(t *testing.T) {
	// Both properties refer to the ambiguous type and report its error; it
	// must appear once.
	m := buildModel(t, csdl.Schema{
		Namespace:    "NS",
		EntityTypes:  []csdl.EntityType{{Name: "X"}},
		ComplexTypes: []csdl.ComplexType{{Name: "X"}, {Name: "User", Properties: []csdl.Property{{Name: "P", Type: "NS.X"}, {Name: "Q", Type: "NS.X"}}}},
	})
	errs := goedm.Validate(m)
	if len(errs) != 1 || errs[0].Code != goedm.CodeBadAmbiguousElementBinding || errs[0].Location != "NS.X" {
		t.Fatalf("expected one ambiguity error, got %v", errs)
	}
	again := goedm.Validate(m)
	if len(again) != len(errs) || again[0] != errs[0] {
		t.Fatalf("validation must be repeatable")
	}
}

func TestValidate_FailFast(t *testing.T) {
	m := buildModel(t, brokenSchema())
	errs := goedm.Validate(m, goedm.ValidateOpt{FailFast: true})
	if len(errs) != 1 {
		t.Fatalf("expected a single error, got %v", errs)
	}
}

func TestValidate_ModelErrorsIncluded(t *testing.T) {
	m := buildModel(t, csdl.Schema{Namespace: "9bad", Terms: []csdl.Term{{Name: "T", Type: "Edm.String"}}})
	codes := goedm.Validate(m).Codes()
	if len(codes) != 1 || codes[0] != goedm.CodeInvalidNamespaceName {
		t.Fatalf("unexpected codes %v", codes)
	}
}

func TestValidate_LastOptionWins(t *testing.T) {
	m := buildModel(t, brokenSchema())
	errs := goedm.Validate(m, goedm.ValidateOpt{FailFast: true}, goedm.ValidateOpt{})
	if len(errs) != 3 {
		t.Fatalf("expected all errors, got %v", errs)
	}
}
