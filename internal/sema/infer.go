package sema

import (
	"fmt"

	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/source"
	"ssc/internal/types"
)

// fresh allocates a type variable never handed out before in this run.
func (c *checker) fresh() types.TypeID {
	id := c.nextVar
	c.nextVar++
	return c.types.Var(id)
}

// infer computes the type of an expression under scope.
func (c *checker) infer(scope *Scope, id ast.ExprID) (types.TypeID, CheckError) {
	expr := c.builder.Exprs.Get(id)
	if expr == nil {
		panic(fmt.Sprintf("sema: unknown expression %d", id))
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := c.builder.Exprs.Ident(id)
		ty, ok := scope.Lookup(data.Name)
		if !ok {
			return types.NoTypeID, &IdentifierNotFoundError{
				Name:  c.builder.Name(data.Name),
				Where: expr.Span,
			}
		}
		return ty, nil

	case ast.ExprIntLit:
		return c.types.Builtins().I64, nil

	case ast.ExprLambda:
		data, _ := c.builder.Exprs.Lambda(id)
		return c.inferFn(scope, c.builder.Exprs.LambdaParams(data), data.Body)

	default:
		panic(fmt.Sprintf("sema: unexpected expression kind %v", expr.Kind))
	}
}

// inferFn types `(params) -> body`. Procedure definitions go through here
// too, so `f(x) = e` and `f = (x) -> e` infer identically.
func (c *checker) inferFn(scope *Scope, params []ast.Param, body ast.ExprID) (types.TypeID, CheckError) {
	bindings := make([]Binding, len(params))
	paramTypes := make([]types.TypeID, len(params))
	var seen map[source.StringID]source.Span
	for i, p := range params {
		if first, dup := seen[p.Name]; dup {
			c.warnDuplicateParam(p, first)
		}
		if seen == nil {
			seen = make(map[source.StringID]source.Span, len(params))
		}
		seen[p.Name] = p.Span

		paramTypes[i] = c.fresh()
		bindings[i] = Binding{Name: p.Name, Type: paramTypes[i]}
	}

	bodyType, err := c.infer(scope.Child(bindings), body)
	if err != nil {
		return types.NoTypeID, err
	}
	return c.types.RegisterFn(paramTypes, bodyType), nil
}

func (c *checker) warnDuplicateParam(p ast.Param, first source.Span) {
	if c.reporter == nil {
		return
	}
	name := c.builder.Name(p.Name)
	diag.NewReportBuilder(c.reporter, diag.SevWarning, diag.SemaDuplicateParam, p.Span,
		fmt.Sprintf("parameter `%s` is bound twice; the later one shadows the earlier", name)).
		WithNote(first, "first bound here").
		Emit()
}
