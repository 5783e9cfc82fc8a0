package parser

import (
	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/token"
)

// parseType разбирает `name` или `(T, ...) -> T`.
// Стрелка правоассоциативна: результат снова parseType.
func (p *Parser) parseType() (ast.TypeID, bool) {
	switch p.lx.Peek().Kind {
	case token.Ident:
		tok := p.advance()
		return p.arenas.Types.NewName(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true

	case token.LParen:
		open := p.advance()
		var params []ast.TypeID
		if !p.at(token.RParen) {
			for {
				param, ok := p.parseType()
				if !ok {
					return ast.NoTypeID, false
				}
				params = append(params, param)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter types"); !ok {
			return ast.NoTypeID, false
		}
		if _, ok := p.expect(token.Arrow, diag.SynExpectArrow, "expected '->' after parameter types"); !ok {
			return ast.NoTypeID, false
		}
		result, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewArrow(open.Span.Cover(p.lastSpan), params, result), true

	default:
		p.err(diag.SynExpectType, "expected type, got "+describe(p.lx.Peek()))
		return ast.NoTypeID, false
	}
}
