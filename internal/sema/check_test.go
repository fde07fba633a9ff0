package sema

import (
	"strings"
	"testing"

	"salc/internal/ast"
	"salc/internal/diag"
	"salc/internal/symbols"
	"salc/internal/types"
)

func TestIntAssignmentNeedsNoConversion(t *testing.T) {
	c := mustCheck(t, "цел x := 5\nx := x + 1")
	ints := c.res.Types.Builtins().Int
	prog := c.prog()

	decl, _ := c.b.Stmts.VarDecl(prog[0])
	init, _ := c.b.Exprs.Assign(decl.Vars[0])
	if got := c.res.TypeOf(init.Target); got != ints {
		t.Fatalf("x typed %s", c.res.Types.Name(got))
	}
	st, _ := c.b.Stmts.Expr(prog[1])
	asg, _ := c.b.Exprs.Assign(st.Expr)
	if got := c.res.TypeOf(asg.Value); got != ints {
		t.Fatalf("x + 1 typed %s", c.res.Types.Name(got))
	}
	if n := c.b.Exprs.Converts.Len(); n != 0 {
		t.Fatalf("expected no conversion nodes, got %d", n)
	}
}

func TestIntLiteralIntoFloatIsWrapped(t *testing.T) {
	c := mustCheck(t, "вещ y := 5")
	floats := c.res.Types.Builtins().Float
	decl, _ := c.b.Stmts.VarDecl(c.prog()[0])
	asg, _ := c.b.Exprs.Assign(decl.Vars[0])
	conv, ok := c.b.Exprs.Convert(asg.Value)
	if !ok {
		t.Fatalf("initializer must be wrapped into a conversion")
	}
	if _, ok := c.b.Exprs.Literal(conv.Value); !ok {
		t.Fatalf("conversion must wrap the literal")
	}
	if got := c.res.TypeOf(asg.Value); got != floats {
		t.Fatalf("conversion typed %s", c.res.Types.Name(got))
	}
	if got := c.res.TypeOf(conv.Value); got != c.res.Types.Builtins().Int {
		t.Fatalf("literal typed %s", c.res.Types.Name(got))
	}
	if got := c.res.TypeOf(decl.Vars[0]); got != floats {
		t.Fatalf("assignment typed %s", c.res.Types.Name(got))
	}
	if n := c.b.Exprs.Converts.Len(); n != 1 {
		t.Fatalf("expected exactly one conversion, got %d", n)
	}
}

func TestDuplicateInSameBlock(t *testing.T) {
	de := expectError(t, "цел x\nцел x", diag.SemaDuplicateSymbol)
	if de.Row() != 2 || de.Col() != 5 {
		t.Fatalf("error at %d:%d, want 2:5", de.Row(), de.Col())
	}
	if de.Category() != diag.CatNameResolution {
		t.Fatalf("category = %s", de.Category())
	}
	if len(de.Notes) != 1 {
		t.Fatalf("expected a note pointing at the first declaration")
	}
}

func TestCallResolution(t *testing.T) {
	expectError(t, "Foo(1, 2)", diag.SemaUnresolvedSymbol)
	de := expectError(t, "алг Foo(арг цел a) нач кон\nFoo(1, 2)", diag.SemaArgumentCount)
	if !strings.Contains(de.Message, "expected 1, got 2") {
		t.Fatalf("message = %q", de.Message)
	}
	if de.Category() != diag.CatArity {
		t.Fatalf("category = %s", de.Category())
	}
}

func TestArgumentOrderMatters(t *testing.T) {
	c := mustCheck(t, "алг f(арг вещ a, лит s) нач кон\nf(1, \"x\")")
	st, _ := c.b.Stmts.Expr(c.prog()[1])
	call, _ := c.b.Exprs.Call(st.Expr)
	if _, ok := c.b.Exprs.Convert(call.Args[0]); !ok {
		t.Fatalf("first argument must be widened")
	}
	if _, ok := c.b.Exprs.Convert(call.Args[1]); ok {
		t.Fatalf("second argument must stay as is")
	}

	expectError(t, "алг g(арг вещ a, цел b) нач кон\ng(1, 2.5)", diag.SemaArgumentTypes)
	expectError(t, "алг h(арг цел a, вещ b) нач кон\nh(1.5, 2)", diag.SemaArgumentTypes)
	mustCheck(t, "алг k(арг цел a, вещ b) нач кон\nk(1, 2)")
}

func TestArgumentTypesErrorListsBothSignatures(t *testing.T) {
	de := expectError(t, "алг g(арг вещ a, цел b) нач кон\ng(1, 2.5)", diag.SemaArgumentTypes)
	want := `actual types (цел, вещ) of "g" do not match declared (вещ, цел)`
	if de.Message != want {
		t.Fatalf("message = %q, want %q", de.Message, want)
	}
	if de.Row() != 2 || de.Col() != 1 {
		t.Fatalf("error at %d:%d, want the call at 2:1", de.Row(), de.Col())
	}

	// неизвестное имя в последнем аргументе важнее несовпадения типов
	expectError(t, "алг g(арг вещ a, цел b) нач кон\ng(\"s\", q)", diag.SemaUnresolvedSymbol)
}

func TestVarDeclaredBeforeInitializer(t *testing.T) {
	de := expectError(t, "цел x\nцел x := y", diag.SemaDuplicateSymbol)
	if de.Row() != 2 || de.Col() != 5 {
		t.Fatalf("error at %d:%d, want 2:5", de.Row(), de.Col())
	}

	c := mustCheck(t, "цел x := x")
	decl, _ := c.b.Stmts.VarDecl(c.prog()[0])
	asg, _ := c.b.Exprs.Assign(decl.Vars[0])
	target, ok := c.res.ExprSymbols[asg.Target]
	if !ok || c.res.ExprSymbols[asg.Value] != target {
		t.Fatalf("initializer must read the variable being declared")
	}

	c = mustCheck(t, "цел x := 1\nалг f() нач цел x := x + 1 кон")
	fn, _ := c.b.Stmts.FuncDecl(c.prog()[1])
	body, _ := c.b.Stmts.Block(fn.Body)
	decl, _ = c.b.Stmts.VarDecl(body.Stmts[0])
	asg, _ = c.b.Exprs.Assign(decl.Vars[0])
	sum, _ := c.b.Exprs.Binary(asg.Value)
	sym, ok := c.res.SymbolOf(sum.Left)
	if !ok || sym.Storage != symbols.StorageLocal {
		t.Fatalf("x inside f must be the new local")
	}
}

func TestLocalMayShadowAlgorithm(t *testing.T) {
	mustCheck(t, "алг f() нач кон\nалг g() нач цел f кон")
	mustCheck(t, "алг g() нач цел длина := 1 кон")
	expectError(t, "алг f() нач кон\nцел f", diag.SemaDuplicateSymbol)
	expectError(t, "алг f() нач кон\nалг g() нач цел f\nf() кон", diag.SemaNotAFunction)
}

func TestInnerBlockNamesAreInvisibleOutside(t *testing.T) {
	expectError(t, "если да то цел t := 1 все\nвывод t", diag.SemaUnresolvedSymbol)
	expectError(t, "алг f() нач цел t кон\nвывод t", diag.SemaUnresolvedSymbol)
}

func TestFunctionLocalShadowsGlobal(t *testing.T) {
	c := mustCheck(t, "цел x := 1\nалг f() нач цел x := 2\nвывод x кон\nвывод x")
	prog := c.prog()
	fn, _ := c.b.Stmts.FuncDecl(prog[1])
	body, _ := c.b.Stmts.Block(fn.Body)
	out, _ := c.b.Stmts.Output(body.Stmts[1])
	sym, ok := c.res.SymbolOf(out.Args[0])
	if !ok || sym.Storage != symbols.StorageLocal {
		t.Fatalf("x inside f must be the local, got %+v", sym)
	}
	top, _ := c.b.Stmts.Output(prog[2])
	sym, _ = c.res.SymbolOf(top.Args[0])
	if sym.Storage != symbols.StorageGlobal {
		t.Fatalf("x outside f must be the global, got %s", sym.Storage)
	}
}

func TestSlotIndices(t *testing.T) {
	c := mustCheck(t, `
цел g
алг f(арг цел a, b, рез цел r)
нач
  цел c
  если да то цел d все
кон
если да то цел h все
`)
	fi := c.res.Funcs[0]
	tbl := c.res.Symbols
	for i, p := range fi.Params {
		sym := tbl.Symbols.Get(p)
		if sym.Storage != symbols.StorageParam || sym.Index != uint32(i) {
			t.Errorf("param %d: %s/%d", i, sym.Storage, sym.Index)
		}
	}
	if fi.Result != fi.Locals[0] {
		t.Fatalf("result must be the first local")
	}
	for i, l := range fi.Locals {
		sym := tbl.Symbols.Get(l)
		if sym.Storage != symbols.StorageLocal || sym.Index != uint32(i) {
			t.Errorf("local %s: %s/%d, want local/%d", tbl.Name(l), sym.Storage, sym.Index, i)
		}
	}
	if len(fi.Locals) != 3 {
		t.Fatalf("want 3 locals (r, c, d), got %d", len(fi.Locals))
	}
	if len(c.res.Globals) != 2 {
		t.Fatalf("want 2 global slots, got %d", len(c.res.Globals))
	}
	h := tbl.Symbols.Get(c.res.Globals[1])
	if h.Storage != symbols.StorageGlobalLocal || h.Index != 1 {
		t.Fatalf("h = %s/%d", h.Storage, h.Index)
	}
	if err := tbl.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestCallsSeeOnlyEarlierAlgorithms(t *testing.T) {
	expectError(t, "g()\nалг g() нач кон", diag.SemaUnresolvedSymbol)
	expectError(t, "алг f() нач g() кон\nалг g() нач кон", diag.SemaUnresolvedSymbol)
	mustCheck(t, "алг f(арг цел n, рез цел r) нач если n > 0 то r := f(n - 1) все кон")
}

func TestStructuralErrors(t *testing.T) {
	expectError(t, "алг f() нач алг g() нач кон кон", diag.SemaNestedFunction)
	expectError(t, "если да то алг g() нач кон все", diag.SemaNestedFunction)
	expectError(t, "алг f() нач кон\nалг f() нач кон", diag.SemaFunctionRedeclared)
}

func TestBuiltins(t *testing.T) {
	expectError(t, "цел длина", diag.SemaBuiltinRedeclared)
	expectError(t, "алг длина() нач кон", diag.SemaBuiltinRedeclared)

	c := mustCheck(t, "цел n := длина(\"abc\")")
	decl, _ := c.b.Stmts.VarDecl(c.prog()[0])
	asg, _ := c.b.Exprs.Assign(decl.Vars[0])
	call, _ := c.b.Exprs.Call(asg.Value)
	sym, ok := c.res.SymbolOf(call.Callee)
	if !ok || !sym.IsBuiltin() {
		t.Fatalf("длина must resolve to a built-in")
	}
}

func TestTypeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"operator", "лог b := да + 1", diag.SemaOperatorMismatch},
		{"and widens nothing", "лог b := 1 и да", diag.SemaOperatorMismatch},
		{"unary", "цел i := не 1", diag.SemaOperatorMismatch},
		{"narrowing", "цел i := 1.5", diag.SemaNotConvertible},
		{"assign", "цел i\ni := \"a\"", diag.SemaNotConvertible},
		{"condition", "если \"a\" то все", diag.SemaNotConvertible},
		{"unknown type", "целый x", diag.SemaUnknownType},
		{"void value", "алг p() нач кон\nвывод p()", diag.SemaVoidValue},
		{"void operand", "алг p() нач кон\nцел x := p() + 1", diag.SemaVoidValue},
		{"function value", "алг p() нач кон\nцел x := p", diag.SemaFunctionAsValue},
		{"input into function", "алг p() нач кон\nввод p", diag.SemaFunctionAsValue},
		{"not a function", "цел x\nx()", diag.SemaNotAFunction},
		{"unknown input", "ввод z", diag.SemaUnresolvedSymbol},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectError(t, tc.src, tc.code)
		})
	}
}

func TestConditionsCoerceToBool(t *testing.T) {
	c := mustCheck(t, "цел i := 3\nнц i := i - 1 кц_при i")
	loop, _ := c.b.Stmts.DoWhile(c.prog()[1])
	if got := c.res.TypeOf(loop.Cond); got != c.res.Types.Builtins().Bool {
		t.Fatalf("condition typed %s", c.res.Types.Name(got))
	}
	if _, ok := c.b.Exprs.Convert(loop.Cond); !ok {
		t.Fatalf("int condition must be converted")
	}
}

func TestForLoops(t *testing.T) {
	c := mustCheck(t, "цел i\nнц для i от 1 до 3 вывод i кц\nнц кц")
	prog := c.prog()
	counted, _ := c.b.Stmts.For(prog[1])
	if got := c.res.TypeOf(counted.Cond); got != c.res.Types.Builtins().Bool {
		t.Fatalf("for condition typed %s", c.res.Types.Name(got))
	}
	bare, _ := c.b.Stmts.For(prog[2])
	lit, ok := c.b.Exprs.Literal(bare.Cond)
	if !ok || lit.Kind != ast.ExprLitBool || lit.Value != "да" {
		t.Fatalf("missing condition must become да, got %+v", lit)
	}
	expectError(t, "нц для k от 1 до 3 кц", diag.SemaUnresolvedSymbol)
}

func TestOutputAndInput(t *testing.T) {
	c := mustCheck(t, "лит s\nввод s\nвывод s, 1, 2.5, 'c', да")
	out, _ := c.b.Stmts.Output(c.prog()[2])
	want := []types.Kind{types.KindString, types.KindInt, types.KindFloat, types.KindChar, types.KindBool}
	for i, arg := range out.Args {
		if k := c.res.Types.KindOf(c.res.TypeOf(arg)); k != want[i] {
			t.Errorf("arg %d: %s, want %s", i, k, want[i])
		}
	}
}

func TestConvertIsIdempotent(t *testing.T) {
	c := mustCheck(t, "вещ y := 5")
	ch := checker{b: c.b, types: c.res.Types, table: c.res.Symbols, res: c.res}
	decl, _ := c.b.Stmts.VarDecl(c.prog()[0])
	asg, _ := c.b.Exprs.Assign(decl.Vars[0])
	floats := c.res.Types.Builtins().Float
	if got := ch.convert(asg.Value, floats); got != asg.Value {
		t.Fatalf("converting a вещ value to вещ must be a no-op")
	}
	before := c.b.Exprs.Converts.Len()
	conv, _ := c.b.Exprs.Convert(asg.Value)
	if got := ch.convert(conv.Value, c.res.Types.Builtins().Int); got != conv.Value {
		t.Fatalf("converting a цел literal to цел must be a no-op")
	}
	if c.b.Exprs.Converts.Len() != before {
		t.Fatalf("no-op conversion allocated a node")
	}
}

func TestErrorIsReported(t *testing.T) {
	c, err := checkSource(t, "вывод q")
	if err == nil {
		t.Fatal("expected error")
	}
	if c.bag.Len() != 1 || c.bag.Items()[0].Code != diag.SemaUnresolvedSymbol {
		t.Fatalf("reporter must receive the same diagnostic, got %d items", c.bag.Len())
	}
	if !strings.Contains(err.Error(), "SEM3001") || !strings.Contains(err.Error(), "line 1, col 7") {
		t.Fatalf("error text = %q", err.Error())
	}
}

func TestPrelude(t *testing.T) {
	entries, err := Prelude()
	if err != nil {
		t.Fatalf("prelude: %v", err)
	}
	var found bool
	for _, e := range entries {
		if e.Name == "длина" {
			found = true
			if len(e.Params) != 1 || e.Params[0] != types.KindString || e.Result != types.KindInt {
				t.Fatalf("длина = %+v", e)
			}
		}
	}
	if !found {
		t.Fatal("длина missing from prelude")
	}
	again, _ := Prelude()
	if len(again) != len(entries) {
		t.Fatal("prelude must be frozen")
	}
}
