package sema

import (
	"testing"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/lexer"
	"salc/internal/parser"
	"salc/internal/source"
)

type checked struct {
	b    *ast.Builder
	root ast.StmtID
	res  *Result
	bag  *diag.Bag
}

func (c checked) prog() []ast.StmtID { return c.b.Program() }

func checkSource(t *testing.T, src string) (checked, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.sal", []byte(src)))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	pr := parser.ParseFile(file, lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		first, _ := bag.First()
		t.Fatalf("parse %q: %s", src, first.Message)
	}
	res, err := Check(b, pr.Root, Options{Reporter: rep, Files: fs})
	return checked{b: b, root: pr.Root, res: res, bag: bag}, err
}

func mustCheck(t *testing.T, src string) checked {
	t.Helper()
	c, err := checkSource(t, src)
	if err != nil {
		t.Fatalf("check %q: %v", src, err)
	}
	return c
}

func expectError(t *testing.T, src string, code diag.Code) *diag.Error {
	t.Helper()
	_, err := checkSource(t, src)
	if err == nil {
		t.Fatalf("check %q: expected %s, got success", src, code.ID())
	}
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("check %q: expected *diag.Error, got %T: %v", src, err, err)
	}
	if de.Code != code {
		t.Fatalf("check %q: got %s (%s), want %s", src, de.Code.ID(), de.Message, code.ID())
	}
	return de
}
