package lexer

import (
	"strconv"

	"ssc/internal/diag"
	"ssc/internal/token"
)

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return token.Token{
			Kind: k,
			Span: lx.cursor.SpanFrom(start),
			Text: lx.cursor.TextFrom(start),
		}
	}

	if lx.cursor.EatPair('-', '>') {
		return emit(token.Arrow)
	}

	ch := lx.cursor.Peek()
	switch ch {
	case ':':
		lx.cursor.Bump()
		return emit(token.Colon)
	case '=':
		lx.cursor.Bump()
		return emit(token.Assign)
	case ',':
		lx.cursor.Bump()
		return emit(token.Comma)
	case ';':
		lx.cursor.Bump()
		return emit(token.Semicolon)
	case '(':
		lx.cursor.Bump()
		return emit(token.LParen)
	case ')':
		lx.cursor.Bump()
		return emit(token.RParen)
	}

	// неизвестный символ: съедаем руну целиком, чтобы не резать UTF-8
	r, _ := lx.cursor.PeekRune()
	lx.cursor.BumpRune()
	tok := emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+strconv.QuoteRune(r))
	return tok
}
