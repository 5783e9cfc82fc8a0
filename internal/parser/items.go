package parser

import (
	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/token"
)

// parseItem разбирает один top-level item. Вид определяется токеном
// после имени: ':' - объявление типа, '(' - процедура, '=' - переменная.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	if !p.at(token.Ident) {
		p.err(diag.SynUnexpectedTopLevel, "expected item name at top level, got "+describe(p.lx.Peek()))
		return ast.NoItemID, false
	}
	nameTok := p.advance()
	name := p.arenas.StringsInterner.Intern(nameTok.Text)

	switch p.lx.Peek().Kind {
	case token.Colon:
		p.advance()
		typ, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		span := nameTok.Span.Cover(p.lastSpan)
		return p.arenas.Items.NewTypeDecl(span, name, nameTok.Span, typ), true

	case token.LParen:
		params, ok := p.parseParams()
		if !ok {
			return ast.NoItemID, false
		}
		if _, ok := p.expect(token.Assign, diag.SynExpectItemBody, "expected '=' after parameter list"); !ok {
			return ast.NoItemID, false
		}
		body, ok := p.parseExpr()
		if !ok {
			return ast.NoItemID, false
		}
		span := nameTok.Span.Cover(p.lastSpan)
		return p.arenas.Items.NewProc(span, name, nameTok.Span, params, body), true

	case token.Assign:
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoItemID, false
		}
		span := nameTok.Span.Cover(p.lastSpan)
		return p.arenas.Items.NewVar(span, name, nameTok.Span, value), true

	default:
		p.err(diag.SynExpectItemBody, "expected ':', '(' or '=' after '"+nameTok.Text+"', got "+describe(p.lx.Peek()))
		return ast.NoItemID, false
	}
}

// parseParams разбирает '(' [ident {',' ident}] ')'.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, false
	}
	var params []ast.Param
	if p.at(token.RParen) {
		p.advance()
		return params, true
	}
	for {
		name, span, ok := p.parseIdent("parameter name")
		if !ok {
			return nil, false
		}
		params = append(params, ast.Param{Name: name, Span: span})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	return params, true
}
