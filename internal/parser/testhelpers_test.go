package parser

import (
	"fmt"
	"strings"
	"testing"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/lexer"
	"salc/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, Result) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sal", []byte(input))
	file := fs.Get(id)
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(file, lx, b, Options{Reporter: rep})
	return b, res
}

// mustParse падает при любой диагностике.
func mustParse(t *testing.T, input string) (*ast.Builder, []ast.StmtID) {
	t.Helper()
	b, res := parseSource(t, input)
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(res.Bag))
	}
	return b, b.Program()
}
