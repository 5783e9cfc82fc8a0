package lexer_test

import (
	"testing"

	"ssc/internal/diag"
	"ssc/internal/lexer"
	"ssc/internal/source"
	"ssc/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ss", []byte(input)))
	bag := diag.NewBag(16)
	return lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}}), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexer_Items(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "declaration",
			input: "f : (i64) -> i64",
			want: []token.Kind{
				token.Ident, token.Colon, token.LParen, token.Ident, token.RParen,
				token.Arrow, token.Ident, token.EOF,
			},
		},
		{
			name:  "procedure",
			input: "f(x, y) = x;",
			want: []token.Kind{
				token.Ident, token.LParen, token.Ident, token.Comma, token.Ident,
				token.RParen, token.Assign, token.Ident, token.Semicolon, token.EOF,
			},
		},
		{
			name:  "lambda",
			input: "k(a)=(b)->a",
			want: []token.Kind{
				token.Ident, token.LParen, token.Ident, token.RParen, token.Assign,
				token.LParen, token.Ident, token.RParen, token.Arrow, token.Ident, token.EOF,
			},
		},
		{
			name:  "variable",
			input: "y = 5",
			want:  []token.Kind{token.Ident, token.Assign, token.IntLit, token.EOF},
		},
		{
			name:  "empty",
			input: "",
			want:  []token.Kind{token.EOF},
		},
		{
			name:  "only comments",
			input: "// nothing here\n  // still nothing",
			want:  []token.Kind{token.EOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			got := kinds(lx.All())
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestLexer_SpansAndText(t *testing.T) {
	lx, _ := makeTestLexer("  yy = 42")
	id := lx.Next()
	if id.Text != "yy" || id.Span.Start != 2 || id.Span.End != 4 {
		t.Fatalf("ident = %+v", id)
	}
	if len(id.Leading) != 1 || id.Leading[0].Kind != token.TriviaSpace {
		t.Fatalf("leading trivia = %+v", id.Leading)
	}
	lx.Next()
	lit := lx.Next()
	if lit.Kind != token.IntLit || lit.Text != "42" || lit.Span.Start != 7 {
		t.Fatalf("literal = %+v", lit)
	}
}

func TestLexer_CommentTrivia(t *testing.T) {
	lx, _ := makeTestLexer("// decl\nx")
	tok := lx.Next()
	if tok.Kind != token.Ident {
		t.Fatalf("expected ident, got %v", tok.Kind)
	}
	if len(tok.Leading) != 2 ||
		tok.Leading[0].Kind != token.TriviaLineComment ||
		tok.Leading[1].Kind != token.TriviaNewline {
		t.Fatalf("leading trivia = %+v", tok.Leading)
	}
	if tok.Leading[0].Text != "// decl" {
		t.Fatalf("comment text = %q", tok.Leading[0].Text)
	}
}

func TestLexer_UnicodeIdentifiersAreNFC(t *testing.T) {
	// "e" + combining acute accent must match precomposed "é"
	lx, bag := makeTestLexer("cafe\u0301 caf\u00e9 переменная")
	first, second, third := lx.Next(), lx.Next(), lx.Next()
	if first.Kind != token.Ident || second.Kind != token.Ident || third.Kind != token.Ident {
		t.Fatalf("kinds: %v %v %v", first.Kind, second.Kind, third.Kind)
	}
	if first.Text != second.Text {
		t.Fatalf("NFC mismatch: %q vs %q", first.Text, second.Text)
	}
	if third.Text != "переменная" {
		t.Fatalf("cyrillic ident = %q", third.Text)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"unknown char", "x = 1 + 2", diag.LexUnknownChar},
		{"unknown unicode char", "x = §", diag.LexUnknownChar},
		{"overflow", "x = 9223372036854775808", diag.LexBadNumber},
		{"letters after digits", "x = 12ab", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			toks := lx.All()
			if toks[len(toks)-1].Kind != token.EOF {
				t.Fatalf("lexing must always end with EOF")
			}
			if bag.Len() != 1 {
				t.Fatalf("expected one diagnostic, got %v", bag.Items())
			}
			if got := bag.Items()[0].Code; got != tt.code {
				t.Fatalf("code = %v, want %v", got.ID(), tt.code.ID())
			}
		})
	}
}

func TestLexer_MaxInt64Fits(t *testing.T) {
	lx, bag := makeTestLexer("9223372036854775807")
	if tok := lx.Next(); tok.Kind != token.IntLit {
		t.Fatalf("expected IntLit, got %v", tok.Kind)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexer_PeekBehavior(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1.Text != "a" || p2.Text != "a" {
		t.Fatalf("Peek must not consume: %q %q", p1.Text, p2.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
	for range 3 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("expected sticky EOF, got %v", n.Kind)
		}
	}
}
