package ast

import (
	"ssc/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprIntLit
	ExprLambda
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprIntLit:
		return "IntLit"
	case ExprLambda:
		return "Lambda"
	default:
		return "Expr(?)"
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprIntLitData struct {
	Value int64
}

type ExprLambdaData struct {
	ParamsStart ParamID
	ParamsCount uint32
	Body        ExprID
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena   *Arena[Expr]
	Idents  *Arena[ExprIdentData]
	IntLits *Arena[ExprIntLitData]
	Lambdas *Arena[ExprLambdaData]
	Params  *Params
}

// NewExprs creates per-kind arenas. If capHint is 0, 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:   NewArena[Expr](capHint),
		Idents:  NewArena[ExprIdentData](capHint),
		IntLits: NewArena[ExprIntLitData](capHint),
		Lambdas: NewArena[ExprLambdaData](capHint),
		Params:  NewParams(capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewIntLit creates a new integer literal expression.
func (e *Exprs) NewIntLit(span source.Span, value int64) ExprID {
	payload := e.IntLits.Allocate(ExprIntLitData{Value: value})
	return e.new(ExprIntLit, span, PayloadID(payload))
}

func (e *Exprs) IntLit(id ExprID) (*ExprIntLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIntLit {
		return nil, false
	}
	return e.IntLits.Get(uint32(expr.Payload)), true
}

// NewLambda creates an anonymous procedure expression.
func (e *Exprs) NewLambda(span source.Span, params []Param, body ExprID) ExprID {
	start, count := e.Params.Push(params)
	payload := e.Lambdas.Allocate(ExprLambdaData{
		ParamsStart: start,
		ParamsCount: count,
		Body:        body,
	})
	return e.new(ExprLambda, span, PayloadID(payload))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLambda {
		return nil, false
	}
	return e.Lambdas.Get(uint32(expr.Payload)), true
}

// LambdaParams returns a copy of the lambda's parameters.
func (e *Exprs) LambdaParams(data *ExprLambdaData) []Param {
	if data == nil {
		return nil
	}
	return e.Params.Slice(data.ParamsStart, data.ParamsCount)
}
