package token

import (
	"ssc/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is an integer literal.
func (t Token) IsLiteral() bool { return t.Kind == IntLit }

// IsPunct reports whether the token is a punctuation token.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Colon, Assign, Arrow, Comma, Semicolon, LParen, RParen:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
