package testkit

import (
	"testing"

	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/lexer"
	"ssc/internal/parser"
	"ssc/internal/source"
)

func TestCheckSpanInvariants(t *testing.T) {
	sources := []string{
		"",
		"f : (i64) -> i64\nf(x) = x\n",
		"k : (i64) -> (f64) -> i64\nk(a) = (b) -> a\n",
		"id = (x) -> (y) -> x // comment\n",
	}
	for _, src := range sources {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("m.ss", []byte(src)))
		bag := diag.NewBag(16)
		reporter := &diag.BagReporter{Bag: bag}
		b := ast.NewBuilder(ast.Hints{}, nil)
		res := parser.ParseFile(fs, lexer.New(file, lexer.Options{Reporter: reporter}), b, parser.Options{Reporter: reporter, MaxErrors: 16})
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected parse errors", src)
		}
		if err := CheckSpanInvariants(b, res.File, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariantsDetectsEscapes(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("m.ss", []byte("y = 5\n")))
	b := ast.NewBuilder(ast.Hints{}, nil)
	fileID := b.NewFile(source.Span{File: file.ID, Start: 0, End: 5})
	name := b.StringsInterner.Intern("y")
	value := b.Exprs.NewIntLit(source.Span{File: file.ID, Start: 4, End: 6}, 5)
	b.PushItem(fileID, b.Items.NewVar(source.Span{File: file.ID, Start: 0, End: 5}, name, source.Span{}, value))

	if err := CheckSpanInvariants(b, fileID, file); err == nil {
		t.Fatal("literal outside its item must be reported")
	}
	if err := CheckSpanInvariants(nil, fileID, file); err == nil {
		t.Fatal("nil builder must be reported")
	}
}
