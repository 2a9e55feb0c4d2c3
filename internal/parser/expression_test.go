package parser

import (
	"strings"
	"testing"

	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/token"
)

// render prints an expression fully parenthesized so precedence is visible.
func render(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.LiteralExpr:
		return x.Tok.Text
	case *ast.NameExpr:
		return x.Name.Name
	case *ast.ThisExpr:
		return "this"
	case *ast.ParenExpr:
		return render(x.Inner)
	case *ast.UnaryExpr:
		return "(" + x.Op.Text + render(x.Operand) + ")"
	case *ast.BinaryExpr:
		return "(" + render(x.Left) + " " + x.Op.Text + " " + render(x.Right) + ")"
	case *ast.ConditionalExpr:
		return "(" + render(x.Cond) + " ? " + render(x.Then) + " : " + render(x.Else) + ")"
	case *ast.AssignExpr:
		return "(" + render(x.Target) + " " + x.Op.Text + " " + render(x.Value) + ")"
	case *ast.TypeCheckExpr:
		return "(" + render(x.X) + " is " + x.Type.String() + ")"
	case *ast.MemberExpr:
		return render(x.Target) + "." + x.Name.Name
	case *ast.IndexExpr:
		return render(x.Target) + "[" + render(x.Index) + "]"
	case *ast.CallExpr:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = render(a)
		}
		return render(x.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ast.ArrayLiteralExpr:
		elems := make([]string, len(x.Elems))
		for i, a := range x.Elems {
			elems[i] = render(a)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	default:
		return "?"
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a - b - c", "((a - b) - c)"},
		{"a || b && c", "(a || (b && c))"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"a == b < c", "(a == (b < c))"},
		{"a < b << c", "(a < (b << c))"},
		{"a << b + c", "(a << (b + c))"},
		{"-a * !b", "((-a) * (!b))"},
		{"a = b = c", "(a = (b = c))"},
		{"a += 1", "(a += 1)"},
		{"c ? a : b ? d : e", "(c ? a : (b ? d : e))"},
		{"x is int && y", "((x is int) && y)"},
		{"x is int[] == true", "((x is int[]) == true)"},
		{"a.b.c(d, e)[0]", "a.b.c(d, e)[0]"},
		{"this.x = [1, 2]", "(this.x = [1, 2])"},
		{"(a + b) * c", "((a + b) * c)"},
		{"5.toString()", "5.toString()"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := render(exprOf(t, tt.src)); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseNewExpressions(t *testing.T) {
	ne, ok := exprOf(t, "new shapes.Box<int, string[]>(1, \"a\")").(*ast.NewExpr)
	if !ok {
		t.Fatal("expected NewExpr")
	}
	if ne.Type.String() != "shapes.Box" || !ne.HasGen || len(ne.Generics) != 2 || len(ne.Args) != 2 {
		t.Fatalf("unexpected new expression %+v", ne)
	}
	if ne.Generics[1].String() != "string[]" {
		t.Fatalf("second generic = %s", ne.Generics[1])
	}

	plain := exprOf(t, "new Point()").(*ast.NewExpr)
	if plain.HasGen || len(plain.Args) != 0 {
		t.Fatalf("unexpected plain new %+v", plain)
	}

	arr, ok := exprOf(t, "new int[3 : 0][4]").(*ast.ArrayCreationExpr)
	if !ok {
		t.Fatal("expected ArrayCreationExpr")
	}
	if len(arr.Sizes) != 2 || arr.Sizes[0].Init == nil || arr.Sizes[1].Init != nil {
		t.Fatalf("unexpected size clauses %+v", arr.Sizes)
	}

	bare := exprOf(t, "new int[]").(*ast.ArrayCreationExpr)
	if len(bare.Sizes) != 0 {
		t.Fatalf("empty brackets should carry no size, got %d", len(bare.Sizes))
	}
}

func TestParseCompoundAssignKeepsOperator(t *testing.T) {
	as := exprOf(t, "x *= 2").(*ast.AssignExpr)
	if as.Op.Kind != token.StarAssign {
		t.Fatalf("op = %v", as.Op.Kind)
	}
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		code diag.Code
	}{
		{"unclosed paren", "(a + b", diag.SynUnclosedParen},
		{"unclosed index", "a[1", diag.SynUnclosedBracket},
		{"unclosed call", "f(1, 2", diag.SynUnclosedParen},
		{"dangling operator", "a +", diag.SynExpectExpression},
		{"conditional without colon", "a ? b c", diag.SynExpectColon},
		{"new without args", "new Point", diag.SynUnexpectedToken},
		{"is without type", "a is 3", diag.SynExpectType},
		{"member without name", "a.", diag.SynExpectIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseSnippet(t, "type T { fn f() { "+tt.expr+"; } }")
			if !hasCode(tree.Bag, tt.code) {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(tree.Bag))
			}
		})
	}
}

func TestExpressionSpans(t *testing.T) {
	src := "type T { fn f() { a + bc; } }"
	file := parseClean(t, src)
	es := bodyOf(t, file)[0].(*ast.ExprStmt)
	sp := es.X.Span()
	if got := src[sp.Start:sp.End]; got != "a + bc" {
		t.Fatalf("span covers %q", got)
	}
}
