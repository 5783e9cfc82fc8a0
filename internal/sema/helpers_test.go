package sema

import (
	"fmt"
	"strings"
	"testing"

	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/lexer"
	"ssc/internal/parser"
	"ssc/internal/source"
	"ssc/internal/trace"
)

type checkRun struct {
	builder *ast.Builder
	file    ast.FileID
	fs      *source.FileSet
	bag     *diag.Bag
	result  Result
}

func parseModule(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("module.ss", []byte(src)))
	bag := diag.NewBag(16)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %s", summary(bag))
	}
	return b, res.File, fs
}

func checkSource(t *testing.T, src string, policy Policy) checkRun {
	t.Helper()
	b, file, fs := parseModule(t, src)
	return checkBuilt(b, file, fs, policy, nil)
}

func checkBuilt(b *ast.Builder, file ast.FileID, fs *source.FileSet, policy Policy, tracer trace.Tracer) checkRun {
	bag := diag.NewBag(16)
	res := Check(b, file, Options{
		Reporter: &diag.BagReporter{Bag: bag},
		Policy:   policy,
		Tracer:   tracer,
	})
	return checkRun{builder: b, file: file, fs: fs, bag: bag, result: res}
}

func summary(bag *diag.Bag) string {
	if bag.Len() == 0 {
		return "<none>"
	}
	parts := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		parts = append(parts, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(parts, "; ")
}

func (r checkRun) mustPass(t *testing.T) {
	t.Helper()
	if r.result.Err != nil {
		t.Fatalf("unexpected failure: %v (%s)", r.result.Err, summary(r.bag))
	}
	if r.bag.HasErrors() {
		t.Fatalf("unexpected error diagnostics: %s", summary(r.bag))
	}
}

// defType returns the label of the inferred type of the named definition.
func (r checkRun) defType(t *testing.T, name string) string {
	t.Helper()
	for id, ty := range r.result.DefTypes {
		n, _, _ := r.builder.Items.Name(id)
		if r.builder.Name(n) == name {
			return labelOf(r.result, ty)
		}
	}
	t.Fatalf("no inferred type for %q", name)
	return ""
}

// text returns the source text under span.
func (r checkRun) text(span source.Span) string {
	return r.fs.Text(span)
}
