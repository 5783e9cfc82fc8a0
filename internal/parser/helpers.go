package parser

import (
	"ssc/internal/diag"
	"ssc/internal/source"
	"ssc/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan - возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg+", got "+describe(p.lx.Peek()))
	return token.Token{Kind: token.Invalid, Span: diagSpan}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
		if p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
			return false // достигли максимального количества ошибок
		}
	}
	// лексер уже отрепортил испорченный токен, второй раз не шумим
	if p.opts.Reporter == nil || p.at(token.Invalid) {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}
