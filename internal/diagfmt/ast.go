package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"ssc/internal/ast"
	"ssc/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// FormatASTPretty prints the file's items as a tree.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}

	header := "File"
	if fs != nil && int(file.Span.File) < fs.Len() {
		header = fs.DisplayPath(fs.Get(file.Span.File), source.PathAuto)
	}
	fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(file.Span, fs))

	for i, itemID := range file.Items {
		isLast := i == len(file.Items)-1
		var prefix string
		if isLast {
			fmt.Fprintf(w, "└─ Item[%d]: ", i)
			prefix = "   "
		} else {
			fmt.Fprintf(w, "├─ Item[%d]: ", i)
			prefix = "│  "
		}
		formatItemPretty(w, builder, itemID, fs, prefix)
	}
	return nil
}

func formatItemPretty(w io.Writer, builder *ast.Builder, itemID ast.ItemID, fs *source.FileSet, prefix string) {
	item := builder.Items.Get(itemID)
	if item == nil {
		fmt.Fprintf(w, "nil item\n")
		return
	}
	fmt.Fprintf(w, "%s (span: %s)\n", item.Kind, formatSpan(item.Span, fs))

	var fields []string
	switch item.Kind {
	case ast.ItemTypeDecl:
		if decl, ok := builder.Items.TypeDecl(itemID); ok {
			fields = append(fields,
				"Name: "+builder.Name(decl.Name),
				"Type: "+formatTypeExprInline(builder, decl.Type))
		}
	case ast.ItemProc:
		if proc, ok := builder.Items.Proc(itemID); ok {
			fields = append(fields,
				"Name: "+builder.Name(proc.Name),
				"Params: ("+formatParams(builder, builder.Items.ProcParams(proc))+")",
				"Body: "+formatExprInline(builder, proc.Body))
		}
	case ast.ItemVar:
		if v, ok := builder.Items.Var(itemID); ok {
			fields = append(fields,
				"Name: "+builder.Name(v.Name),
				"Value: "+formatExprInline(builder, v.Value))
		}
	}

	for i, field := range fields {
		branch := "├─"
		if i == len(fields)-1 {
			branch = "└─"
		}
		fmt.Fprintf(w, "%s%s %s\n", prefix, branch, field)
	}
}

// FormatASTJSON writes the file's items as nested JSON nodes.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}

	children := make([]ASTNodeOutput, 0, len(file.Items))
	for _, itemID := range file.Items {
		itemNode, err := formatItemJSON(builder, itemID)
		if err != nil {
			return err
		}
		children = append(children, itemNode)
	}

	output := ASTNodeOutput{
		Type:     "File",
		Span:     file.Span,
		Children: children,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func formatItemJSON(builder *ast.Builder, itemID ast.ItemID) (ASTNodeOutput, error) {
	item := builder.Items.Get(itemID)
	if item == nil {
		return ASTNodeOutput{}, fmt.Errorf("item not found")
	}

	output := ASTNodeOutput{
		Type: "Item",
		Kind: item.Kind.String(),
		Span: item.Span,
	}

	switch item.Kind {
	case ast.ItemTypeDecl:
		if decl, ok := builder.Items.TypeDecl(itemID); ok {
			output.Fields = map[string]any{
				"name": builder.Name(decl.Name),
				"type": formatTypeExprInline(builder, decl.Type),
			}
		}
	case ast.ItemProc:
		if proc, ok := builder.Items.Proc(itemID); ok {
			params := builder.Items.ProcParams(proc)
			names := make([]string, 0, len(params))
			for _, p := range params {
				names = append(names, builder.Name(p.Name))
			}
			output.Fields = map[string]any{
				"name":   builder.Name(proc.Name),
				"params": names,
			}
			output.Children = append(output.Children, formatExprJSON(builder, proc.Body))
		}
	case ast.ItemVar:
		if v, ok := builder.Items.Var(itemID); ok {
			output.Fields = map[string]any{"name": builder.Name(v.Name)}
			output.Children = append(output.Children, formatExprJSON(builder, v.Value))
		}
	}

	return output, nil
}

func formatExprJSON(builder *ast.Builder, exprID ast.ExprID) ASTNodeOutput {
	expr := builder.Exprs.Get(exprID)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "Missing"}
	}
	node := ASTNodeOutput{
		Type: "Expr",
		Kind: expr.Kind.String(),
		Span: expr.Span,
		Text: formatExprInline(builder, exprID),
	}
	if lam, ok := builder.Exprs.Lambda(exprID); ok && expr.Kind == ast.ExprLambda {
		node.Children = append(node.Children, formatExprJSON(builder, lam.Body))
	}
	return node
}
