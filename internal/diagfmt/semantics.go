package diagfmt

import (
	"ssc/internal/ast"
	"ssc/internal/sema"
	"ssc/internal/source"
	"ssc/internal/types"
)

// Definition is a checked definition with its inferred type rendered.
type Definition struct {
	Name string
	Kind string
	Type string
	Span source.Span
}

// DefinitionsFromSema lists the definitions that passed, in source order.
func DefinitionsFromSema(builder *ast.Builder, fileID ast.FileID, res *sema.Result) []Definition {
	if builder == nil || res == nil {
		return nil
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return nil
	}
	defs := make([]Definition, 0, len(res.DefTypes))
	for _, id := range file.Items {
		ty, ok := res.DefTypes[id]
		if !ok {
			continue
		}
		item := builder.Items.Get(id)
		name, _, _ := builder.Items.Name(id)
		defs = append(defs, Definition{
			Name: builder.Name(name),
			Kind: item.Kind.String(),
			Type: types.Label(res.TypeInterner, ty),
			Span: item.Span,
		})
	}
	return defs
}

// SemanticsInput carries the data required to build a semantic dump.
type SemanticsInput struct {
	Definitions []Definition
}

// SemanticsOutput represents semantic data emitted alongside diagnostics.
type SemanticsOutput struct {
	Definitions []DefinitionJSON `json:"definitions"`
}

// DefinitionJSON is one checked definition with its inferred type.
type DefinitionJSON struct {
	Name     string       `json:"name"`
	Kind     string       `json:"kind"`
	Type     string       `json:"type"`
	Location LocationJSON `json:"location"`
}

// BuildSemanticsOutput converts definitions for JSON output.
func BuildSemanticsOutput(in *SemanticsInput, fs *source.FileSet, mode PathMode) *SemanticsOutput {
	if in == nil {
		return nil
	}
	out := &SemanticsOutput{Definitions: make([]DefinitionJSON, 0, len(in.Definitions))}
	for _, d := range in.Definitions {
		out.Definitions = append(out.Definitions, DefinitionJSON{
			Name:     d.Name,
			Kind:     d.Kind,
			Type:     d.Type,
			Location: makeLocation(d.Span, fs, mode, true),
		})
	}
	return out
}
