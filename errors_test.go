package goedm_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reoring/goedm"
)

func TestErrors_ErrorSummary(t *testing.T) {
	var errs goedm.Errors
	for i := 0; i < 5; i++ {
		errs = goedm.AppendErrors(errs, goedm.ErrorAt(fmt.Sprintf("NS.T%d", i), goedm.CodeBadUnresolvedType, nil))
	}
	msg := errs.Error()
	if !strings.HasPrefix(msg, "bad_unresolved_type at NS.T0; ") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.HasSuffix(msg, "(total 5)") {
		t.Fatalf("expected a total, got %q", msg)
	}
	if goedm.Errors(nil).Error() != "" {
		t.Fatalf("empty Errors must render as empty")
	}
}

func TestErrors_CodesAndAs(t *testing.T) {
	errs := goedm.Errors{
		goedm.ErrorAt("B", goedm.CodeInvalidName, nil),
		goedm.WarningAt("A", goedm.CodeDuplicateDocumentKey, nil),
		goedm.ErrorAt("C", goedm.CodeInvalidName, nil),
	}
	codes := errs.Codes()
	if len(codes) != 2 || codes[0] != goedm.CodeDuplicateDocumentKey || codes[1] != goedm.CodeInvalidName {
		t.Fatalf("unexpected codes %v", codes)
	}
	wrapped := fmt.Errorf("load: %w", errs)
	got, ok := goedm.AsErrors(wrapped)
	if !ok || len(got) != 3 {
		t.Fatalf("AsErrors failed: %v %v", got, ok)
	}
	if _, ok := goedm.AsErrors(errors.New("plain")); ok {
		t.Fatalf("plain errors are not Errors")
	}
}

func TestValidationError_String(t *testing.T) {
	e := goedm.ErrorAt("NS.T/p", goedm.CodeBadUnresolvedType, map[string]string{"name": "NS.X"})
	s := e.String()
	if !strings.Contains(s, "bad_unresolved_type at NS.T/p") || !strings.Contains(s, "'NS.X'") {
		t.Fatalf("unexpected rendering %q", s)
	}
}
