package goedm

import (
	"slices"
	"strconv"

	"github.com/reoring/goedm/csdl"
	"github.com/reoring/goedm/internal/lazy"
)

var (
	_ Annotation                 = (*annotation)(nil)
	_ ValueExpression            = (*valueExpression)(nil)
	_ CollectionExpression       = (*collectionExpression)(nil)
	_ LabeledExpression          = (*labeledExpression)(nil)
	_ LabeledExpressionReference = (*labeledExpressionReference)(nil)
)

type annotation struct {
	m         *Model
	target    string
	termName  string
	qualifier string
	value     Expression
	term      lazy.Cell[*annotation, Term]
}

func (a *annotation) Errors() []ValidationError { return nil }
func (a *annotation) Target() string            { return a.target }
func (a *annotation) Qualifier() string         { return a.qualifier }
func (a *annotation) Value() Expression         { return a.value }

func (a *annotation) location() string {
	loc := a.target + "@" + a.termName
	if a.qualifier != "" {
		loc += "#" + a.qualifier
	}
	return loc
}

// Term resolves the applied term, or returns a BadTerm.
func (a *annotation) Term() Term {
	return a.term.Value(a, func(a *annotation) Term {
		if t := a.m.FindTerm(a.termName); t != nil {
			return t
		}
		return NewBadTerm(a.termName, ErrorAt(a.location(), CodeBadUnresolvedTerm, nameData(a.termName)))
	}, nil)
}

type valueExpression struct {
	kind  ExpressionKind
	value string
}

func (*valueExpression) Errors() []ValidationError        { return nil }
func (e *valueExpression) ExpressionKind() ExpressionKind { return e.kind }
func (e *valueExpression) Value() string                  { return e.value }

type collectionExpression struct {
	items []Expression
}

func (*collectionExpression) Errors() []ValidationError      { return nil }
func (*collectionExpression) ExpressionKind() ExpressionKind { return ExpressionKindCollection }
func (e *collectionExpression) Items() []Expression          { return slices.Clone(e.items) }

type labeledExpression struct {
	name string
	expr Expression
	errs []ValidationError
}

func (e *labeledExpression) Errors() []ValidationError    { return e.errs }
func (e *labeledExpression) Name() string                 { return e.name }
func (*labeledExpression) ExpressionKind() ExpressionKind { return ExpressionKindLabeled }
func (e *labeledExpression) Expression() Expression       { return e.expr }

type labeledExpressionReference struct {
	m    *Model
	name string
	loc  string
	ref  lazy.Cell[*labeledExpressionReference, LabeledExpression]
}

func (*labeledExpressionReference) Errors() []ValidationError { return nil }
func (*labeledExpressionReference) ExpressionKind() ExpressionKind {
	return ExpressionKindLabeledReference
}
func (e *labeledExpressionReference) ReferencedName() string { return e.name }

// Referenced looks the label up in the model. A missing label yields a
// BadLabeledExpression.
func (e *labeledExpressionReference) Referenced() LabeledExpression {
	return e.ref.Value(e, func(e *labeledExpressionReference) LabeledExpression {
		if l := e.m.FindLabeledExpression(e.name); l != nil {
			return l
		}
		return NewBadLabeledExpression(e.name, ErrorAt(e.loc, CodeBadUnresolvedLabeledElement, nameData(e.name)))
	}, nil)
}

// buildExpression converts a declared expression. Labeled elements are
// registered in m as they are met, so references may point forward.
func (m *Model) buildExpression(rec *csdl.Expression, loc string) Expression {
	if rec == nil {
		return &valueExpression{kind: ExpressionKindNull}
	}
	switch rec.Kind {
	case csdl.ExprString:
		return &valueExpression{kind: ExpressionKindString, value: rec.Value}
	case csdl.ExprPath:
		return &valueExpression{kind: ExpressionKindPath, value: rec.Value}
	case csdl.ExprNull:
		return &valueExpression{kind: ExpressionKindNull}
	case csdl.ExprInt:
		if _, err := strconv.ParseInt(rec.Value, 10, 64); err != nil {
			return NewBadExpression(ErrorAt(loc, CodeInvalidConstant, nameData(rec.Value)))
		}
		return &valueExpression{kind: ExpressionKindInt, value: rec.Value}
	case csdl.ExprFloat:
		if _, err := strconv.ParseFloat(rec.Value, 64); err != nil {
			return NewBadExpression(ErrorAt(loc, CodeInvalidConstant, nameData(rec.Value)))
		}
		return &valueExpression{kind: ExpressionKindFloat, value: rec.Value}
	case csdl.ExprBool:
		if rec.Value != "true" && rec.Value != "false" {
			return NewBadExpression(ErrorAt(loc, CodeInvalidConstant, nameData(rec.Value)))
		}
		return &valueExpression{kind: ExpressionKindBool, value: rec.Value}
	case csdl.ExprCollection:
		c := &collectionExpression{items: make([]Expression, 0, len(rec.Items))}
		for i := range rec.Items {
			c.items = append(c.items, m.buildExpression(&rec.Items[i], loc))
		}
		return c
	case csdl.ExprLabeledElement:
		l := &labeledExpression{name: rec.Name, expr: m.buildExpression(rec.Expression, loc)}
		if !isSimpleIdentifier(rec.Name) {
			l.errs = append(l.errs, ErrorAt(loc, CodeInvalidName, nameData(rec.Name)))
		}
		registerElement(&m.labeled, l.name, LabeledExpression(l), newAmbiguousLabeledExpressionBinding(m.limit))
		return l
	case csdl.ExprLabeledElementReference:
		return &labeledExpressionReference{m: m, name: rec.Name, loc: loc}
	}
	return NewBadExpression(ErrorAt(loc, CodeInvalidExpression, nameData(rec.Kind)))
}
