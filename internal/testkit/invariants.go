package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"salc/internal/ast"
	"salc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) the root span is non-empty and within file content bounds
// 2) every reachable node points into the same file
// 3) every node span is contained in the root span
func CheckSpanInvariants(b *ast.Builder, root ast.StmtID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	rootStmt := b.Stmts.Get(root)
	if rootStmt == nil {
		return fmt.Errorf("root statement not found")
	}
	rootSpan := rootStmt.Span
	if rootSpan.End <= rootSpan.Start {
		return fmt.Errorf("root span is empty: %v", rootSpan)
	}
	if rootSpan.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", rootSpan.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if rootSpan.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", rootSpan.End, lenContent)
	}

	var firstErr error
	b.Walk(ast.Node{Stmt: root}, func(n ast.Node) bool {
		if firstErr != nil {
			return false
		}
		var sp source.Span
		var what string
		if n.IsStmt() {
			st := b.Stmts.Get(n.Stmt)
			if st == nil {
				firstErr = fmt.Errorf("nil statement for id=%d", n.Stmt)
				return false
			}
			sp, what = st.Span, st.Kind.String()
		} else {
			ex := b.Exprs.Get(n.Expr)
			if ex == nil {
				firstErr = fmt.Errorf("nil expression for id=%d", n.Expr)
				return false
			}
			sp, what = ex.Span, ex.Kind.String()
		}
		switch {
		case sp.File != sf.ID:
			firstErr = fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		case sp.End < sp.Start:
			firstErr = fmt.Errorf("%s span is inverted: %v", what, sp)
		case sp.Start < rootSpan.Start || sp.End > rootSpan.End:
			firstErr = fmt.Errorf("%s span %v is outside root span %v", what, sp, rootSpan)
		}
		return firstErr == nil
	})
	return firstErr
}
