package lexer

import (
	"golang.org/x/text/unicode/norm"

	"ssc/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdent сканирует идентификатор. Ключевых слов в языке нет.
// Не-ASCII идентификаторы приводятся к NFC, чтобы визуально одинаковые
// имена совпадали при поиске в окружении.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	ascii := true

	r, sz := lx.cursor.PeekRune()
	if r < utf8RuneSelf {
		lx.cursor.Bump()
	} else {
		if sz == 0 || !isIdentStartRune(r) {
			return lx.scanPunct()
		}
		ascii = false
		lx.cursor.BumpRune()
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.cursor.PeekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		ascii = false
		lx.cursor.BumpRune()
	}

	sp, text := lx.cursor.SpanFrom(start), lx.cursor.TextFrom(start)
	if !ascii {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
