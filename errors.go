package goedm

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Validation error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeBadElement                     = "bad_element"
	CodeBadAmbiguousElementBinding     = "bad_ambiguous_element_binding"
	CodeBadUnresolvedType              = "bad_unresolved_type"
	CodeBadUnresolvedEntityType        = "bad_unresolved_entity_type"
	CodeBadUnresolvedComplexType       = "bad_unresolved_complex_type"
	CodeBadUnresolvedPrimitiveType     = "bad_unresolved_primitive_type"
	CodeBadUnresolvedProperty          = "bad_unresolved_property"
	CodeBadUnresolvedTerm              = "bad_unresolved_term"
	CodeBadUnresolvedOperation         = "bad_unresolved_operation"
	CodeBadUnresolvedLabeledElement    = "bad_unresolved_labeled_element"
	CodeBadUnresolvedNavigationPartner = "bad_unresolved_navigation_partner"
	CodeBadCyclicEntity                = "bad_cyclic_entity"
	CodeBadCyclicComplex               = "bad_cyclic_complex"
	CodeBadCyclicTypeDefinition        = "bad_cyclic_type_definition"
	CodeInvalidName                    = "invalid_name"
	CodeInvalidNamespaceName           = "invalid_namespace_name"
	CodeBaseTypeKindMismatch           = "base_type_kind_mismatch"
	CodeEnumUnderlyingTypeNotInteger   = "enum_underlying_type_not_integer"
	CodeNavigationTargetNotEntity      = "navigation_target_not_entity"
	CodeTypeNotSupportedInVersion      = "type_not_supported_in_version"
	CodeInvalidExpression              = "invalid_expression"
	CodeInvalidConstant                = "invalid_constant"
	CodeDuplicateDocumentKey           = "duplicate_document_key"
	CodeSkippedDeclaration             = "skipped_declaration"
)

// Hard failures. These abort construction or resolution and are returned as
// errors; everything else in the model is reported through ValidationError
// values attached to elements.
var (
	ErrDuplicateContainer        = errors.New("goedm: a model may declare at most one entity container")
	ErrCustomResolverReturnedNil = errors.New("goedm: custom type resolver returned nil")
	ErrBuilderClosed             = errors.New("goedm: builder already built")
	ErrInvalidDeclaration        = errors.New("goedm: invalid declaration")
)

// ValidationError represents a single problem found in a model element.
type ValidationError struct {
	Code     string // One of the codes listed above.
	Message  string
	Severity Severity
	// Location names the element the error is attached to (for example:
	// NS.Customer/Address).
	Location string
}

func (e ValidationError) String() string {
	if e.Location == "" {
		return fmt.Sprintf("%s: %s: %s", e.Severity, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s at %s: %s", e.Severity, e.Code, e.Location, e.Message)
}

// Errors is a collection of validation errors that implements error.
type Errors []ValidationError

// Error summarizes the first few errors.
func (errs Errors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(errs)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := errs[i]
		// e.g. bad_unresolved_type at NS.Customer/Address
		fmt.Fprintf(b, "%s at %s", it.Code, it.Location)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasErrors reports whether any entry has Error severity.
func (errs Errors) HasErrors() bool {
	for _, e := range errs {
		if e.Severity == Error {
			return true
		}
	}
	return false
}

// Codes returns the distinct codes in sorted order.
func (errs Errors) Codes() []string {
	set := make(map[string]struct{}, len(errs))
	for _, e := range errs {
		set[e.Code] = struct{}{}
	}
	codes := maps.Keys(set)
	slices.Sort(codes)
	return codes
}

// AppendErrors appends errors to the destination, initializing the slice when
// needed.
func AppendErrors(dst Errors, more ...ValidationError) Errors {
	if dst == nil {
		dst = Errors{}
	}
	dst = append(dst, more...)
	return dst
}

// AsErrors extracts Errors from an error using errors.As internally.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
