package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents a decimal integer literal.
	IntLit

	// Colon separates a name from its declared type.
	Colon // :
	// Assign introduces a definition body.
	Assign // =
	// Arrow separates parameters from a result.
	Arrow // ->
	// Comma separates parameters.
	Comma // ,
	// Semicolon optionally terminates an item.
	Semicolon // ;
	// LParen represents the left parenthesis.
	LParen // (
	// RParen represents the right parenthesis.
	RParen // )
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	Colon:     "Colon",
	Assign:    "Assign",
	Arrow:     "Arrow",
	Comma:     "Comma",
	Semicolon: "Semicolon",
	LParen:    "LParen",
	RParen:    "RParen",
}

var kindSpellings = [...]string{
	Colon:     ":",
	Assign:    "=",
	Arrow:     "->",
	Comma:     ",",
	Semicolon: ";",
	LParen:    "(",
	RParen:    ")",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Spelling returns the fixed source text of punctuation kinds, or a
// descriptive word for the others. Used in parser messages.
func (k Kind) Spelling() string {
	if int(k) < len(kindSpellings) && kindSpellings[k] != "" {
		return kindSpellings[k]
	}
	switch k {
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case EOF:
		return "end of file"
	default:
		return "invalid token"
	}
}
