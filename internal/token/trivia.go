package token

import "ssc/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	}
	return "Trivia?"
}
