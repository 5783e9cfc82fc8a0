package lexer

import (
	"strconv"

	"ssc/internal/diag"
	"ssc/internal/token"
)

// scanNumber сканирует десятичный целый литерал. Значение должно
// помещаться в i64; буквы сразу после цифр делают литерал некорректным.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpWhile(isDec)

	// "12ab" - один плохой токен, а не два
	if lx.cursor.BumpWhile(isIdentContinueByte) > 0 {
		sp, text := lx.cursor.SpanFrom(start), lx.cursor.TextFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid digit in integer literal "+strconv.Quote(text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	sp, text := lx.cursor.SpanFrom(start), lx.cursor.TextFrom(start)
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		lx.errLex(diag.LexBadNumber, sp, "integer literal "+text+" does not fit in i64")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}
