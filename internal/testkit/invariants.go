package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ssc/internal/ast"
	"ssc/internal/source"
)

// CheckSpanInvariants runs the span invariants of a cleanly parsed file:
// 1) file.Span lies within the file content and points at sf
// 2) every item span is non-empty and contained in file.Span
// 3) every expression span is contained in its parent's span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}

	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if !within(sp, f.Span) {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		var body ast.ExprID
		if proc, ok := b.Items.Proc(it); ok {
			body = proc.Body
		} else if v, ok := b.Items.Var(it); ok {
			body = v.Value
		}
		if err := checkExpr(b, body, sp); err != nil {
			return err
		}
	}
	return nil
}

func checkExpr(b *ast.Builder, id ast.ExprID, parent source.Span) error {
	if !id.IsValid() {
		return nil
	}
	expr := b.Exprs.Get(id)
	if expr == nil {
		return fmt.Errorf("nil expr for id=%d", id)
	}
	if !within(expr.Span, parent) {
		return fmt.Errorf("%s span %v is outside parent span %v", expr.Kind, expr.Span, parent)
	}
	if lam, ok := b.Exprs.Lambda(id); ok {
		for _, p := range b.Exprs.LambdaParams(lam) {
			if !within(p.Span, expr.Span) {
				return fmt.Errorf("lambda param span %v is outside lambda span %v", p.Span, expr.Span)
			}
		}
		return checkExpr(b, lam.Body, expr.Span)
	}
	return nil
}

func within(inner, outer source.Span) bool {
	return inner.File == outer.File && inner.Start >= outer.Start && inner.End <= outer.End
}
