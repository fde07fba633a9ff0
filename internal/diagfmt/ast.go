package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"salc/internal/ast"
	"salc/internal/sema"
	"salc/internal/source"
	"salc/internal/types"
)

// ASTOpts controls tree dumps. Sema, when set, annotates expressions with
// their checked type and identifiers with their storage slot.
type ASTOpts struct {
	Files *source.FileSet
	Sema  *sema.Result
}

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Pos      string          `json:"pos,omitempty"`
	Text     string          `json:"text,omitempty"`
	TypeName string          `json:"type_name,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty prints the subtree under root with ├─/└─ connectors.
func FormatASTPretty(w io.Writer, builder *ast.Builder, root ast.StmtID, opts ASTOpts) error {
	if builder.Stmts.Get(root) == nil {
		return fmt.Errorf("root statement %d not found", root)
	}
	fmt.Fprintln(w, nodeLabel(builder, ast.Node{Stmt: root}, opts))
	return formatChildren(w, builder, ast.Node{Stmt: root}, opts, "")
}

func formatChildren(w io.Writer, builder *ast.Builder, n ast.Node, opts ASTOpts, prefix string) error {
	children := nodeChildren(builder, n)
	for i, child := range children {
		connector, next := "├─ ", "│  "
		if i == len(children)-1 {
			connector, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, connector, nodeLabel(builder, child, opts)); err != nil {
			return err
		}
		if err := formatChildren(w, builder, child, opts, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// FormatASTJSON сериализует дерево целиком.
func FormatASTJSON(w io.Writer, builder *ast.Builder, root ast.StmtID, opts ASTOpts) error {
	if builder.Stmts.Get(root) == nil {
		return fmt.Errorf("root statement %d not found", root)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildNodeJSON(builder, ast.Node{Stmt: root}, opts))
}

func buildNodeJSON(builder *ast.Builder, n ast.Node, opts ASTOpts) ASTNodeOutput {
	var out ASTNodeOutput
	if n.IsStmt() {
		st := builder.Stmts.Get(n.Stmt)
		out = ASTNodeOutput{Type: "Stmt", Kind: st.Kind.String(), Span: st.Span, Text: stmtDetail(builder, n.Stmt)}
	} else {
		ex := builder.Exprs.Get(n.Expr)
		out = ASTNodeOutput{Type: "Expr", Kind: ex.Kind.String(), Span: ex.Span, Text: exprDetail(builder, n.Expr)}
		out.TypeName, out.Symbol = exprAnnotations(n.Expr, opts)
	}
	if opts.Files != nil {
		out.Pos = formatSpan(out.Span, opts.Files)
	}
	for _, child := range nodeChildren(builder, n) {
		out.Children = append(out.Children, buildNodeJSON(builder, child, opts))
	}
	return out
}

func nodeChildren(builder *ast.Builder, n ast.Node) []ast.Node {
	if n.IsStmt() {
		return builder.StmtChildren(n.Stmt)
	}
	ids := builder.ExprChildren(n.Expr)
	out := make([]ast.Node, len(ids))
	for i, id := range ids {
		out[i] = ast.Node{Expr: id}
	}
	return out
}

func nodeLabel(builder *ast.Builder, n ast.Node, opts ASTOpts) string {
	var sb strings.Builder
	var span source.Span
	if n.IsStmt() {
		st := builder.Stmts.Get(n.Stmt)
		span = st.Span
		sb.WriteString(st.Kind.String())
		if d := stmtDetail(builder, n.Stmt); d != "" {
			sb.WriteString(" ")
			sb.WriteString(d)
		}
	} else {
		ex := builder.Exprs.Get(n.Expr)
		span = ex.Span
		sb.WriteString(ex.Kind.String())
		if d := exprDetail(builder, n.Expr); d != "" {
			sb.WriteString(" ")
			sb.WriteString(d)
		}
		typeName, sym := exprAnnotations(n.Expr, opts)
		if typeName != "" {
			sb.WriteString(" : ")
			sb.WriteString(typeName)
		}
		if sym != "" {
			fmt.Fprintf(&sb, " [%s]", sym)
		}
	}
	if opts.Files != nil {
		fmt.Fprintf(&sb, " (%s)", formatSpan(span, opts.Files))
	}
	return sb.String()
}

func stmtDetail(builder *ast.Builder, id ast.StmtID) string {
	st := builder.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtBlock:
		if data, ok := builder.Stmts.Block(id); ok && data.Program {
			return "program"
		}
	case ast.StmtVarDecl:
		data, _ := builder.Stmts.VarDecl(id)
		return builder.Strings.MustLookup(data.Type.Name)
	case ast.StmtFuncDecl:
		data, _ := builder.Stmts.FuncDecl(id)
		params := make([]string, 0, len(data.Params)+1)
		for _, p := range data.Params {
			params = append(params, "арг "+builder.Strings.MustLookup(p.Type.Name)+" "+builder.Name(p.Name))
		}
		if data.HasResult {
			params = append(params, "рез "+builder.Strings.MustLookup(data.Result.Type.Name)+" "+builder.Name(data.Result.Name))
		}
		return fmt.Sprintf("%s(%s)", builder.Name(data.Name), strings.Join(params, ", "))
	}
	return ""
}

func exprDetail(builder *ast.Builder, id ast.ExprID) string {
	ex := builder.Exprs.Get(id)
	switch ex.Kind {
	case ast.ExprIdent:
		return builder.Name(id)
	case ast.ExprLit:
		lit, _ := builder.Exprs.Literal(id)
		if lit.Kind == ast.ExprLitString {
			return fmt.Sprintf("%s %q", lit.Kind, lit.Value)
		}
		return fmt.Sprintf("%s %s", lit.Kind, lit.Value)
	case ast.ExprBinary:
		data, _ := builder.Exprs.Binary(id)
		return data.Op.String()
	case ast.ExprUnary:
		data, _ := builder.Exprs.Unary(id)
		return data.Op.String()
	case ast.ExprCall:
		data, _ := builder.Exprs.Call(id)
		return builder.Name(data.Callee)
	}
	return ""
}

// exprAnnotations: тип выражения и описание идентификатора, если есть.
func exprAnnotations(id ast.ExprID, opts ASTOpts) (typeName, symbol string) {
	if opts.Sema == nil {
		return "", ""
	}
	if t, ok := opts.Sema.ExprTypes[id]; ok && t != types.NoTypeID {
		typeName = opts.Sema.Types.Name(t)
	}
	if sym, ok := opts.Sema.SymbolOf(id); ok && sym != nil {
		switch {
		case sym.IsBuiltin():
			symbol = "builtin"
		case sym.HasSlot():
			symbol = fmt.Sprintf("%s %d", sym.Storage, sym.Index)
		default:
			symbol = "function"
		}
	}
	return typeName, symbol
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && int(span.File) < fs.Len() {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
