package driver

import (
	"fortio.org/safecast"

	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/lexer"
	"ssc/internal/parser"
	"ssc/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse loads path and builds its AST.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	builder, astFile, err := parseFile(fs, file, bag, nil)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  astFile,
		Bag:     bag,
	}, nil
}

// parseFile lexes and parses one file into a fresh builder. names may be
// nil, in which case the builder gets its own interner.
func parseFile(fs *source.FileSet, file *source.File, bag *diag.Bag, names *source.Interner) (*ast.Builder, ast.FileID, error) {
	maxErrors, err := safecast.Conv[uint](max(bag.Cap(), 0))
	if err != nil {
		return nil, ast.NoFileID, err
	}

	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, names)
	result := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	return builder, result.File, nil
}
