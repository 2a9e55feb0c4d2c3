package lexer_test

import (
	"testing"

	"zephyr/internal/diag"
	"zephyr/internal/lexer"
	"zephyr/internal/source"
	"zephyr/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zph", []byte(src))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, bag := lexAll(t, src)
	if bag.Len() != 0 {
		t.Fatalf("%q: unexpected diagnostics: %v", src, bag.Items())
	}
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", src, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestTypeDeclarationTokens(t *testing.T) {
	expectKinds(t, "pub shared const max: int = 10;",
		token.KwPub, token.KwShared, token.KwConst, token.Ident, token.Colon,
		token.Ident, token.Assign, token.IntLit, token.Semicolon)

	expectKinds(t, "operator +(other: Point): Point {}",
		token.KwOperator, token.Plus, token.LParen, token.Ident, token.Colon,
		token.Ident, token.RParen, token.Colon, token.Ident, token.LBrace, token.RBrace)
}

func TestOperatorsAreGreedy(t *testing.T) {
	expectKinds(t, "a<<=b", token.Ident, token.Shl, token.Assign, token.Ident)
	expectKinds(t, "x += 1 && y != z || !w",
		token.Ident, token.PlusAssign, token.IntLit, token.AndAnd, token.Ident,
		token.BangEq, token.Ident, token.OrOr, token.Bang, token.Ident)
}

func TestNumbers(t *testing.T) {
	toks := expectKinds(t, "12 3.25 1e3 5.toString()",
		token.IntLit, token.FloatLit, token.FloatLit, token.IntLit, token.Dot,
		token.Ident, token.LParen, token.RParen)
	if toks[1].Text != "3.25" {
		t.Fatalf("float text = %q", toks[1].Text)
	}

	_, bag := lexAll(t, "12abc")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("expected LexBadNumber, got %v", bag.Items())
	}
}

func TestStringsAndChars(t *testing.T) {
	toks := expectKinds(t, `"a\n\"b" 'c' '\''`, token.StringLit, token.CharLit, token.CharLit)
	value, err := lexer.Unquote(toks[0].Text)
	if err != nil || value != "a\n\"b" {
		t.Fatalf("Unquote = %q, %v", value, err)
	}
	if v, _ := lexer.Unquote(toks[2].Text); v != "'" {
		t.Fatalf("escaped quote char = %q", v)
	}

	cases := []struct {
		src  string
		code diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{`'ab'`, diag.LexBadCharLiteral},
		{`'x`, diag.LexUnterminatedChar},
		{`"\q"`, diag.LexBadEscape},
		{`/* never closed`, diag.LexUnterminatedBlockComment},
		{`#`, diag.LexUnknownChar},
	}
	for _, tc := range cases {
		_, bag := lexAll(t, tc.src)
		if bag.Len() == 0 || bag.Items()[0].Code != tc.code {
			t.Errorf("%q: expected %s, got %v", tc.src, tc.code.ID(), bag.Items())
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	expectKinds(t, "// header\ntype /* inline */ A {}\n",
		token.KwType, token.Ident, token.LBrace, token.RBrace)
}

func TestUnicodeIdentifiersNormalized(t *testing.T) {
	// 'e' followed by a combining acute accent becomes the precomposed rune.
	toks := expectKinds(t, "cafe\u0301", token.Ident)
	if toks[0].Text != "caf\u00e9" {
		t.Fatalf("identifier not NFC-normalized: %q", toks[0].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("p.zph", []byte("while break"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if lx.Peek().Kind != token.KwWhile || lx.Next().Kind != token.KwWhile {
		t.Fatalf("Peek consumed the token")
	}
	if lx.Next().Kind != token.KwBreak || lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("unexpected tail")
	}
}
