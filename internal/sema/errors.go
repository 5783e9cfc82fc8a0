package sema

import (
	"fmt"

	"ssc/internal/diag"
	"ssc/internal/source"
	"ssc/internal/types"
)

// CheckError is a failure of the checking engine. Every error converts to
// exactly one diagnostic.
type CheckError interface {
	error
	Span() source.Span
	Code() diag.Code
	Diagnostic() *diag.Diagnostic
}

// IdentifierNotFoundError: a name has no binding in scope, or a definition
// has no type declaration (Definition is set).
type IdentifierNotFoundError struct {
	Name       string
	Where      source.Span
	Definition bool
}

func (e *IdentifierNotFoundError) Error() string {
	if e.Definition {
		return fmt.Sprintf("definition of `%s` has no type declaration", e.Name)
	}
	return fmt.Sprintf("identifier `%s` not found", e.Name)
}

func (e *IdentifierNotFoundError) Span() source.Span { return e.Where }

func (e *IdentifierNotFoundError) Code() diag.Code {
	if e.Definition {
		return diag.SemaMissingDeclaration
	}
	return diag.SemaUnresolvedSymbol
}

func (e *IdentifierNotFoundError) Diagnostic() *diag.Diagnostic {
	d := diag.NewError(e.Code(), e.Where, e.Error())
	if e.Definition {
		d.WithNote(e.Where, fmt.Sprintf("add a declaration such as `%s : <type>`", e.Name))
	}
	return d
}

// TypeMismatchError: the declared type of a definition is incompatible with
// its inferred type. Expected and Actual are the types as declared and as
// inferred, before any substitution; Inner* is the innermost conflicting
// pair after substitution. Arity marks procedure types that differ in
// parameter count.
type TypeMismatchError struct {
	Name          string
	Expected      types.TypeID
	Actual        types.TypeID
	InnerExpected types.TypeID
	InnerActual   types.TypeID
	Arity         bool
	Where         source.Span
	DeclSpan      source.Span

	labels mismatchLabels
}

type mismatchLabels struct {
	expected, actual           string
	innerExpected, innerActual string
	expectedArity, actualArity int
}

func newTypeMismatch(in *types.Interner, name string, expected, actual types.TypeID, f *unifyFailure, where, decl source.Span) *TypeMismatchError {
	e := &TypeMismatchError{
		Name:          name,
		Expected:      expected,
		Actual:        actual,
		InnerExpected: f.expected,
		InnerActual:   f.actual,
		Arity:         f.kind == failArity,
		Where:         where,
		DeclSpan:      decl,
	}
	e.labels = mismatchLabels{
		expected:      types.Label(in, expected),
		actual:        types.Label(in, actual),
		innerExpected: types.Label(in, f.expected),
		innerActual:   types.Label(in, f.actual),
	}
	if e.Arity {
		fe, _ := in.FnInfo(f.expected)
		fa, _ := in.FnInfo(f.actual)
		e.labels.expectedArity = fe.Arity()
		e.labels.actualArity = fa.Arity()
	}
	return e
}

func (e *TypeMismatchError) Error() string {
	if e.Arity {
		return fmt.Sprintf("arity mismatch in `%s`: expected a procedure of %s, found one of %s",
			e.Name, plural(e.labels.expectedArity, "parameter"), plural(e.labels.actualArity, "parameter"))
	}
	return fmt.Sprintf("type mismatch in `%s`: expected `%s`, found `%s`",
		e.Name, e.labels.expected, e.labels.actual)
}

func (e *TypeMismatchError) Span() source.Span { return e.Where }

func (e *TypeMismatchError) Code() diag.Code {
	if e.Arity {
		return diag.SemaArityMismatch
	}
	return diag.SemaTypeMismatch
}

func (e *TypeMismatchError) Diagnostic() *diag.Diagnostic {
	d := diag.NewError(e.Code(), e.Where, e.Error())
	if e.Arity {
		d.WithNote(e.Where, fmt.Sprintf("declared `%s`, inferred `%s`", e.labels.expected, e.labels.actual))
	} else if e.InnerExpected != e.Expected || e.InnerActual != e.Actual {
		d.WithNote(e.Where, fmt.Sprintf("`%s` is not compatible with `%s`", e.labels.innerActual, e.labels.innerExpected))
	}
	if !e.DeclSpan.Empty() {
		d.WithNote(e.DeclSpan, "declared here")
	}
	return d
}

// OccursCheckError: binding Var would make it contain itself.
type OccursCheckError struct {
	Name  string
	Var   types.TypeID
	Type  types.TypeID
	Where source.Span

	varLabel, typeLabel string
}

func newOccursCheck(in *types.Interner, name string, f *unifyFailure, where source.Span) *OccursCheckError {
	return &OccursCheckError{
		Name:      name,
		Var:       f.expected,
		Type:      f.actual,
		Where:     where,
		varLabel:  types.Label(in, f.expected),
		typeLabel: types.Label(in, f.actual),
	}
}

func (e *OccursCheckError) Error() string {
	return fmt.Sprintf("infinite type in `%s`: %s occurs in `%s`", e.Name, e.varLabel, e.typeLabel)
}

func (e *OccursCheckError) Span() source.Span { return e.Where }
func (e *OccursCheckError) Code() diag.Code   { return diag.SemaOccursCheck }

func (e *OccursCheckError) Diagnostic() *diag.Diagnostic {
	return diag.NewError(e.Code(), e.Where, e.Error())
}

// DuplicateDeclarationError: a name is declared twice under DuplicateError.
type DuplicateDeclarationError struct {
	Name  string
	Where source.Span
	First source.Span
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("duplicate declaration of `%s`", e.Name)
}

func (e *DuplicateDeclarationError) Span() source.Span { return e.Where }
func (e *DuplicateDeclarationError) Code() diag.Code   { return diag.SemaDuplicateSymbol }

func (e *DuplicateDeclarationError) Diagnostic() *diag.Diagnostic {
	return diag.NewError(e.Code(), e.Where, e.Error()).WithNote(e.First, "first declared here")
}

// UnresolvedTypeVarError: a variable is still unbound after the definition
// was unified with its declaration.
type UnresolvedTypeVarError struct {
	Name  string
	Var   types.TypeID
	Type  types.TypeID
	Where source.Span

	varLabel, typeLabel string
}

func (e *UnresolvedTypeVarError) Error() string {
	return fmt.Sprintf("cannot infer a concrete type for `%s`: %s is unconstrained in `%s`",
		e.Name, e.varLabel, e.typeLabel)
}

func (e *UnresolvedTypeVarError) Span() source.Span { return e.Where }
func (e *UnresolvedTypeVarError) Code() diag.Code   { return diag.SemaUnresolvedTypeVar }

func (e *UnresolvedTypeVarError) Diagnostic() *diag.Diagnostic {
	return diag.NewError(e.Code(), e.Where, e.Error()).
		WithNote(e.Where, "type variables are not generalised; declare a concrete type")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
