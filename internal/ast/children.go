package ast

// Node references either a statement or an expression; exactly one is set.
type Node struct {
	Stmt StmtID
	Expr ExprID
}

func (n Node) IsStmt() bool { return n.Stmt.IsValid() }

// ExprChildren lists direct sub-expressions in source order.
func (b *Builder) ExprChildren(id ExprID) []ExprID {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprBinary:
		data, _ := b.Exprs.Binary(id)
		return []ExprID{data.Left, data.Right}
	case ExprUnary:
		data, _ := b.Exprs.Unary(id)
		return []ExprID{data.Operand}
	case ExprAssign:
		data, _ := b.Exprs.Assign(id)
		return []ExprID{data.Target, data.Value}
	case ExprCall:
		data, _ := b.Exprs.Call(id)
		out := make([]ExprID, 0, len(data.Args)+1)
		out = append(out, data.Callee)
		return append(out, data.Args...)
	case ExprConvert:
		data, _ := b.Exprs.Convert(id)
		return []ExprID{data.Value}
	}
	return nil
}

// StmtChildren lists direct children of a statement in source order.
// Absent optional parts (else branch, for header pieces) are skipped.
func (b *Builder) StmtChildren(id StmtID) []Node {
	st := b.Stmts.Get(id)
	if st == nil {
		return nil
	}
	var out []Node
	addS := func(s StmtID) {
		if s.IsValid() {
			out = append(out, Node{Stmt: s})
		}
	}
	addE := func(e ExprID) {
		if e.IsValid() {
			out = append(out, Node{Expr: e})
		}
	}
	switch st.Kind {
	case StmtBlock:
		data, _ := b.Stmts.Block(id)
		for _, s := range data.Stmts {
			addS(s)
		}
	case StmtVarDecl:
		data, _ := b.Stmts.VarDecl(id)
		for _, e := range data.Vars {
			addE(e)
		}
	case StmtFuncDecl:
		data, _ := b.Stmts.FuncDecl(id)
		addE(data.Name)
		for _, p := range data.Params {
			addE(p.Name)
		}
		if data.HasResult {
			addE(data.Result.Name)
		}
		addS(data.Body)
	case StmtIf:
		data, _ := b.Stmts.If(id)
		addE(data.Cond)
		addS(data.Then)
		addS(data.Else)
	case StmtWhile:
		data, _ := b.Stmts.While(id)
		addE(data.Cond)
		addS(data.Body)
	case StmtDoWhile:
		data, _ := b.Stmts.DoWhile(id)
		addS(data.Body)
		addE(data.Cond)
	case StmtFor:
		data, _ := b.Stmts.For(id)
		addS(data.Init)
		addE(data.Cond)
		addS(data.Step)
		addS(data.Body)
	case StmtInput:
		data, _ := b.Stmts.Input(id)
		addE(data.Target)
	case StmtOutput:
		data, _ := b.Stmts.Output(id)
		for _, e := range data.Args {
			addE(e)
		}
	case StmtExpr:
		data, _ := b.Stmts.Expr(id)
		addE(data.Expr)
	}
	return out
}

// Walk visits the subtree rooted at n in pre-order. Returning false from
// visit skips the node's children.
func (b *Builder) Walk(n Node, visit func(Node) bool) {
	if !visit(n) {
		return
	}
	if n.IsStmt() {
		for _, c := range b.StmtChildren(n.Stmt) {
			b.Walk(c, visit)
		}
		return
	}
	for _, c := range b.ExprChildren(n.Expr) {
		b.Walk(Node{Expr: c}, visit)
	}
}
