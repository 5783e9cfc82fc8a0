package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo         Code = 1000
	LexUnknownChar  Code = 1001
	LexBadNumber    Code = 1004
	LexTokenTooLong Code = 1005

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedParen      Code = 2006
	SynUnexpectedTopLevel Code = 2101
	SynExpectIdentifier   Code = 2102
	SynExpectType         Code = 2202
	SynExpectExpression   Code = 2203
	SynExpectArrow        Code = 2208
	SynExpectItemBody     Code = 2209

	// Семантические
	SemaInfo               Code = 3000
	SemaDuplicateSymbol    Code = 3002
	SemaUnresolvedSymbol   Code = 3005
	SemaMissingDeclaration Code = 3006
	SemaTypeMismatch       Code = 3015
	SemaArityMismatch      Code = 3016
	SemaOccursCheck        Code = 3017
	SemaUnresolvedTypeVar  Code = 3018
	SemaDuplicateParam     Code = 3019

	// IO
	IOLoadFileError Code = 4001

	// Project
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		LexInfo:                "Lexical information",
		LexUnknownChar:         "Unknown character",
		LexBadNumber:           "Bad number literal",
		LexTokenTooLong:        "Token too long",
		SynInfo:                "Syntax information",
		SynUnexpectedToken:     "Unexpected token",
		SynUnclosedParen:       "Unclosed parenthesis",
		SynUnexpectedTopLevel:  "Unexpected top-level construct",
		SynExpectIdentifier:    "Expect identifier",
		SynExpectType:          "Expect type",
		SynExpectExpression:    "Expect expression",
		SynExpectArrow:         "Expect '->'",
		SynExpectItemBody:      "Expect ':', '(' or '=' after item name",
		SemaInfo:               "Semantic information",
		SemaDuplicateSymbol:    "Duplicate declaration",
		SemaUnresolvedSymbol:   "Identifier not found",
		SemaMissingDeclaration: "Definition without declaration",
		SemaTypeMismatch:       "Type mismatch",
		SemaArityMismatch:      "Arity mismatch",
		SemaOccursCheck:        "Infinite type",
		SemaUnresolvedTypeVar:  "Unresolved type variable",
		SemaDuplicateParam:     "Duplicate parameter",
		IOLoadFileError:        "Failed to load file",
		ProjInfo:               "Project information",
		ProjManifestInvalid:    "Invalid project manifest",
		ObsInfo:                "Observability information",
		ObsTimings:             "Timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
