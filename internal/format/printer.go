package format

import (
	"bytes"
	"errors"
	"fmt"

	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/lexer"
	"ssc/internal/parser"
	"ssc/internal/source"
)

type printer struct {
	builder *ast.Builder
	file    *ast.File
	writer  *Writer
}

// FormatFile reprints the parsed file sf. The AST must come from a parse
// without errors.
func FormatFile(sf *source.File, b *ast.Builder, fid ast.FileID) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("format: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}

	pr := printer{builder: b, file: file, writer: NewWriter(sf)}
	pr.printFile()
	return pr.writer.Bytes(), nil
}

func (p *printer) printFile() {
	contentLen := len(p.writer.sf.Content)
	prev := 0
	for _, itemID := range p.file.Items {
		item := p.builder.Items.Get(itemID)
		if item == nil {
			continue
		}
		start := clampToContent(int(item.Span.Start), contentLen)
		if prev < start {
			p.writer.CopyRange(prev, start)
		}
		p.printItem(itemID, item)
		prev = max(clampToContent(int(item.Span.End), contentLen), start)
	}
	if prev < contentLen {
		p.writer.CopyRange(prev, contentLen)
	}
}

func (p *printer) printItem(id ast.ItemID, item *ast.Item) {
	// комментарий внутри элемента переписать нельзя без потерь
	if bytes.Contains(p.writer.Source(item.Span), []byte("//")) {
		p.writer.CopySpan(item.Span)
		return
	}

	switch item.Kind {
	case ast.ItemTypeDecl:
		if decl, ok := p.builder.Items.TypeDecl(id); ok {
			p.writer.WriteString(p.builder.Name(decl.Name))
			p.writer.WriteString(" : ")
			p.printType(decl.Type)
			return
		}
	case ast.ItemProc:
		if proc, ok := p.builder.Items.Proc(id); ok {
			p.writer.WriteString(p.builder.Name(proc.Name))
			p.printParams(p.builder.Items.ProcParams(proc))
			p.writer.WriteString(" = ")
			p.printExpr(proc.Body)
			return
		}
	case ast.ItemVar:
		if v, ok := p.builder.Items.Var(id); ok {
			p.writer.WriteString(p.builder.Name(v.Name))
			p.writer.WriteString(" = ")
			p.printExpr(v.Value)
			return
		}
	}
	// fallback copy
	p.writer.CopySpan(item.Span)
}

func (p *printer) printParams(params []ast.Param) {
	p.writer.WriteString("(")
	for i, param := range params {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.writer.WriteString(p.builder.Name(param.Name))
	}
	p.writer.WriteString(")")
}

func (p *printer) printType(id ast.TypeID) {
	typ := p.builder.Types.Get(id)
	if typ == nil {
		return
	}
	switch typ.Kind {
	case ast.TypeExprName:
		if name, ok := p.builder.Types.Name(id); ok {
			p.writer.WriteString(p.builder.Name(name.Name))
			return
		}
	case ast.TypeExprArrow:
		if arrow, ok := p.builder.Types.Arrow(id); ok {
			p.writer.WriteString("(")
			for i, param := range arrow.Params {
				if i > 0 {
					p.writer.WriteString(", ")
				}
				p.printType(param)
			}
			p.writer.WriteString(") -> ")
			p.printType(arrow.Result)
			return
		}
	case ast.TypeExprFree:
		if free, ok := p.builder.Types.Free(id); ok {
			p.writer.WriteString(fmt.Sprintf("'%d", free.Var))
			return
		}
	}
	p.writer.CopySpan(typ.Span)
}

func (p *printer) printExpr(id ast.ExprID) {
	expr := p.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		if ident, ok := p.builder.Exprs.Ident(id); ok {
			p.writer.WriteString(p.builder.Name(ident.Name))
			return
		}
	case ast.ExprIntLit:
		if lit, ok := p.builder.Exprs.IntLit(id); ok {
			p.writer.WriteInt(lit.Value)
			return
		}
	case ast.ExprLambda:
		if lam, ok := p.builder.Exprs.Lambda(id); ok {
			p.printParams(p.builder.Exprs.LambdaParams(lam))
			p.writer.WriteString(" -> ")
			p.printExpr(lam.Body)
			return
		}
	}
	p.writer.CopySpan(expr.Span)
}

// Source parses content and formats it. Parse errors are returned in bag and
// leave out nil.
func Source(path string, content []byte, maxDiag int) (out []byte, bag *diag.Bag, err error) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual(path, content))
	bag = diag.NewBag(maxDiag)
	builder, fileID := parseOnce(fs, sf, bag)
	if bag.HasErrors() {
		return nil, bag, nil
	}
	out, err = FormatFile(sf, builder, fileID)
	return out, bag, err
}

// CheckRoundTrip formats sf, re-parses the result and verifies that the
// item kinds and names survive and that formatting is idempotent.
func CheckRoundTrip(sf *source.File, maxDiag int) (ok bool, msg string) {
	origBag := diag.NewBag(maxDiag)
	origBuilder, origFileID := parseOnce(source.NewFileSet(), sf, origBag)
	if origBag.HasErrors() {
		return false, "fmt-check: initial parse has errors"
	}
	formatted, err := FormatFile(sf, origBuilder, origFileID)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	again, bag, err := Source(sf.Path, formatted, maxDiag)
	if err != nil || bag.HasErrors() {
		return false, "fmt-check: reparse failed"
	}
	if !bytes.Equal(again, formatted) {
		return false, "fmt-check: formatting is not idempotent"
	}

	fs2 := source.NewFileSet()
	rebuilt := fs2.Get(fs2.AddVirtual(sf.Path, formatted))
	newBuilder, newFileID := parseOnce(fs2, rebuilt, diag.NewBag(maxDiag))
	if !sameTopItems(origBuilder, origFileID, newBuilder, newFileID) {
		return false, "fmt-check: top-level items differ after round-trip"
	}
	return true, "fmt-check: OK"
}

func parseOnce(fs *source.FileSet, sf *source.File, bag *diag.Bag) (*ast.Builder, ast.FileID) {
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(sf, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lx, builder, parser.Options{Reporter: reporter, MaxErrors: uint(max(bag.Cap(), 1))})
	return builder, res.File
}

func sameTopItems(b1 *ast.Builder, f1 ast.FileID, b2 *ast.Builder, f2 ast.FileID) bool {
	file1 := b1.Files.Get(f1)
	file2 := b2.Files.Get(f2)
	if file1 == nil || file2 == nil || len(file1.Items) != len(file2.Items) {
		return false
	}
	for i := range file1.Items {
		it1, it2 := b1.Items.Get(file1.Items[i]), b2.Items.Get(file2.Items[i])
		if it1 == nil || it2 == nil || it1.Kind != it2.Kind {
			return false
		}
		n1, _, _ := b1.Items.Name(file1.Items[i])
		n2, _, _ := b2.Items.Name(file2.Items[i])
		if b1.Name(n1) != b2.Name(n2) {
			return false
		}
	}
	return true
}
