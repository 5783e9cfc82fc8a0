package parser

import (
	"fmt"
	"strings"
	"testing"

	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/lexer"
	"ssc/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ss", []byte(input)))
	bag := diag.NewBag(32)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(fs, lx, b, Options{Reporter: rep, MaxErrors: 16})
	return b, res.File, bag
}

func mustParse(t *testing.T, input string) (*ast.Builder, ast.FileID) {
	t.Helper()
	b, file, bag := parseSource(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return b, file
}
