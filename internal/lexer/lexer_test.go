package lexer_test

import (
	"testing"

	"salc/internal/diag"
	"salc/internal/lexer"
	"salc/internal/source"
	"salc/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки и мешок для диагностик
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sal", []byte(input))
	bag := diag.NewBag(10)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	toks := lx.All()
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics: %+v", input, bag.Items())
	}
	return toks
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := expectKinds(t, "алг Функ(арг цел a, рез вещ r) нач кон",
		token.KwAlg, token.Ident, token.LParen, token.KwArg, token.Ident, token.Ident,
		token.Comma, token.KwRes, token.Ident, token.Ident, token.RParen, token.KwBegin, token.KwEnd)
	if toks[1].Text != "Функ" {
		t.Errorf("ident text = %q", toks[1].Text)
	}
	if toks[4].Text != "цел" {
		t.Errorf("type names are identifiers, got %q", toks[4].Text)
	}
}

func TestLoopKeywords(t *testing.T) {
	expectKinds(t, "нц i := i + 1 кц_при i < 10",
		token.KwLoop, token.Ident, token.ColonAssign, token.Ident, token.Plus, token.IntLit,
		token.KwUntil, token.Ident, token.Lt, token.IntLit)
	expectKinds(t, "нц для i от 1 до n кц",
		token.KwLoop, token.KwFor, token.Ident, token.KwFrom, token.IntLit, token.KwTo, token.Ident, token.KwEndLoop)
}

func TestOperators(t *testing.T) {
	expectKinds(t, "a<=b>=c<d>e=f:=g+h-i*j/k",
		token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.Lt, token.Ident,
		token.Gt, token.Ident, token.Eq, token.Ident, token.ColonAssign, token.Ident,
		token.Plus, token.Ident, token.Minus, token.Ident, token.Star, token.Ident, token.Slash, token.Ident)
}

func TestLiterals(t *testing.T) {
	toks := expectKinds(t, `12 3.25 "привет" 'ы' да нет`,
		token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.KwTrue, token.KwFalse)
	if toks[2].Text != `"привет"` {
		t.Errorf("string text = %q", toks[2].Text)
	}
	if toks[3].Text != "'ы'" {
		t.Errorf("char text = %q", toks[3].Text)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	expectKinds(t, "цел x // комментарий\n/* много\nстрок */ x := 1",
		token.Ident, token.Ident, token.Ident, token.ColonAssign, token.IntLit)
}

func TestSpansCoverText(t *testing.T) {
	lx, _ := makeTestLexer("вывод  x")
	out := lx.Next()
	if out.Span.Start != 0 || out.Span.End != 10 {
		t.Errorf("вывод span = %v", out.Span)
	}
	x := lx.Next()
	if x.Span.Start != 12 || x.Span.End != 13 {
		t.Errorf("x span = %v", x.Span)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("если то")
	if lx.Peek().Kind != token.KwIf {
		t.Fatal("peek must see если")
	}
	if lx.Next().Kind != token.KwIf || lx.Next().Kind != token.KwThen {
		t.Fatal("peeked token must be returned by Next")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("EOF must repeat")
	}
}

func TestIntLiteralRange(t *testing.T) {
	lx, bag := makeTestLexer("2147483647 0007")
	toks := lx.All()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	if toks[0].Kind != token.IntLit || toks[0].Text != "2147483647" {
		t.Fatalf("got %v %q", toks[0].Kind, toks[0].Text)
	}

	// литерал вне диапазона остаётся IntLit, чтобы парсер не сыпал лишних ошибок
	lx, bag = makeTestLexer("99999999999")
	toks = lx.All()
	if toks[0].Kind != token.IntLit {
		t.Fatalf("got %v", toks[0].Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("expected one %s", diag.LexBadNumber.ID())
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{`"abc`, diag.LexUnterminatedString},
		{"'ab'", diag.LexBadChar},
		{"'a", diag.LexUnterminatedChar},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"1.", diag.LexBadNumber},
		{"12ab", diag.LexBadNumber},
		{"99999999999", diag.LexBadNumber},
		{"2147483648", diag.LexBadNumber},
		{"x ? y", diag.LexUnknownChar},
		{"№", diag.LexUnknownChar},
	}
	for _, tc := range cases {
		lx, bag := makeTestLexer(tc.input)
		lx.All()
		if bag.Len() == 0 {
			t.Errorf("%q: expected %s", tc.input, tc.code.ID())
			continue
		}
		if got := bag.Items()[0].Code; got != tc.code {
			t.Errorf("%q: got %s, want %s", tc.input, got.ID(), tc.code.ID())
		}
	}
}
