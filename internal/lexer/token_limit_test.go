package lexer

import (
	"strings"
	"testing"

	"ssc/internal/diag"
	"ssc/internal/source"
	"ssc/internal/token"
)

func TestTokenTooLongTriggersDiagnosticAndStops(t *testing.T) {
	content := strings.Repeat("a", maxTokenLength+1) + " b"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.ss", []byte(content)))

	bag := diag.NewBag(4)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics for long token")
	}
	if code := bag.Items()[0].Code; code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong, got %v", code)
	}
	// Lexer should fast-forward to EOF after the error.
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("expected EOF after long token, got %v", next.Kind)
	}
}

func TestTokenAtLimitAllowed(t *testing.T) {
	content := strings.Repeat("b", maxTokenLength)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("limit.ss", []byte(content)))

	bag := diag.NewBag(1)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected ident token, got %v", tok.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("did not expect diagnostics, got %v", bag.Items())
	}
}
