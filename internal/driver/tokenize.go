package driver

import (
	"chearmyp/internal/diag"
	"chearmyp/internal/lexer"
	"chearmyp/internal/source"
	"chearmyp/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // EOF included
	Bag     *diag.Bag
}

// Tokenize loads one file and classifies all its lines.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporterAdapter.Reporter()})

	tokens := lexer.Collect(lx).Tokens()
	tokens = append(tokens, token.Token{Kind: token.EOF, Span: lx.EmptySpan()})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
