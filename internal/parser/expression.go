package parser

import (
	"strconv"

	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/token"
)

// parseExpr разбирает identifier | integer | '(' params ')' '->' expr.
// Скобки в выражении всегда открывают лямбду: группировки в языке нет.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	switch p.lx.Peek().Kind {
	case token.Ident:
		tok := p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true

	case token.IntLit:
		tok := p.advance()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal "+tok.Text+" does not fit in i64")
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewIntLit(tok.Span, value), true

	case token.LParen:
		start := p.lx.Peek().Span
		params, ok := p.parseParams()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.Arrow, diag.SynExpectArrow, "expected '->' after lambda parameters"); !ok {
			return ast.NoExprID, false
		}
		body, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewLambda(start.Cover(p.lastSpan), params, body), true

	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(p.lx.Peek()))
		return ast.NoExprID, false
	}
}
