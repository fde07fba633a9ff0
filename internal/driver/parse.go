package driver

import (
	"fmt"

	"fortio.org/safecast"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/lexer"
	"salc/internal/parser"
	"salc/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Root    ast.StmtID
	Bag     *diag.Bag
}

func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	builder, root, err := parseFile(file, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		Root:    root,
		Bag:     bag,
	}, nil
}

// parseFile лексирует и разбирает файл; ошибки лексера и парсера попадают в bag.
func parseFile(file *source.File, bag *diag.Bag, maxDiagnostics int) (*ast.Builder, ast.StmtID, error) {
	// 0: без лимита для парсера
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, ast.NoStmtID, fmt.Errorf("max diagnostics: %w", err)
	}
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	result := parser.ParseFile(file, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	return builder, result.Root, nil
}
