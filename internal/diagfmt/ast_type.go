package diagfmt

import (
	"fmt"
	"strings"

	"ssc/internal/ast"
)

// formatTypeExprInline renders a syntactic type on one line: names as is,
// arrows as `(A, B) -> R` and explicit free variables as `'N`.
func formatTypeExprInline(builder *ast.Builder, typeID ast.TypeID) string {
	if !typeID.IsValid() {
		return "<missing>"
	}
	typ := builder.Types.Get(typeID)
	if typ == nil {
		return "<invalid>"
	}

	switch typ.Kind {
	case ast.TypeExprName:
		name, ok := builder.Types.Name(typeID)
		if !ok {
			return "<invalid-name>"
		}
		return builder.Name(name.Name)
	case ast.TypeExprArrow:
		arrow, ok := builder.Types.Arrow(typeID)
		if !ok {
			return "<invalid-arrow>"
		}
		params := make([]string, 0, len(arrow.Params))
		for _, p := range arrow.Params {
			params = append(params, formatTypeExprInline(builder, p))
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), formatTypeExprInline(builder, arrow.Result))
	case ast.TypeExprFree:
		free, ok := builder.Types.Free(typeID)
		if !ok {
			return "<invalid-free>"
		}
		return fmt.Sprintf("'%d", free.Var)
	default:
		return "<unknown-type>"
	}
}

// formatExprInline renders an expression on one line.
func formatExprInline(builder *ast.Builder, exprID ast.ExprID) string {
	if !exprID.IsValid() {
		return "<missing>"
	}
	expr := builder.Exprs.Get(exprID)
	if expr == nil {
		return "<invalid>"
	}
	switch expr.Kind {
	case ast.ExprIdent:
		if id, ok := builder.Exprs.Ident(exprID); ok {
			return builder.Name(id.Name)
		}
	case ast.ExprIntLit:
		if lit, ok := builder.Exprs.IntLit(exprID); ok {
			return fmt.Sprintf("%d", lit.Value)
		}
	case ast.ExprLambda:
		if lam, ok := builder.Exprs.Lambda(exprID); ok {
			return fmt.Sprintf("(%s) -> %s",
				formatParams(builder, builder.Exprs.LambdaParams(lam)),
				formatExprInline(builder, lam.Body))
		}
	}
	return "<invalid>"
}

func formatParams(builder *ast.Builder, params []ast.Param) string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, builder.Name(p.Name))
	}
	return strings.Join(names, ", ")
}
