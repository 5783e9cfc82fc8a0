package lexer

import (
	"ssc/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t' и '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch {
		case lx.cursor.BumpWhile(isSpace) > 0:
			lx.pushTrivia(token.TriviaSpace, start)
		case lx.cursor.BumpWhile(isNewline) > 0:
			lx.pushTrivia(token.TriviaNewline, start)
		case lx.cursor.AtPair('/', '/'):
			lx.cursor.SkipLine()
			lx.pushTrivia(token.TriviaLineComment, start)
		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	})
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

func isNewline(b byte) bool { return b == '\n' }
