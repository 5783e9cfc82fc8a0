package lexer

import (
	"fmt"

	"ssc/internal/diag"
	"ssc/internal/source"
	"ssc/internal/token"
)

// maxTokenLength bounds a single token; longer input is treated as garbage.
const maxTokenLength = 4096

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// Leading из hold не приклеиваем к EOF
	if lx.cursor.EOF() {
		lx.hold = nil
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok = lx.scanIdent()
	case isDec(ch):
		tok = lx.scanNumber()
	default:
		tok = lx.scanPunct()
	}

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span,
			fmt.Sprintf("token is longer than %d bytes", maxTokenLength))
		// дальше смысла лексить нет
		lx.cursor.Finish()
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer and returns every token including the final EOF.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
