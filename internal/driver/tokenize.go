package driver

import (
	"ssc/internal/diag"
	"ssc/internal/lexer"
	"ssc/internal/source"
	"ssc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it to EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}
