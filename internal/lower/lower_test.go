package lower

import (
	"strings"
	"testing"

	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

func variable(name string, typ *symbols.TypeSymbol) *bound.VariableExpr {
	return &bound.VariableExpr{Var: symbols.NewVariable(name, typ, false, source.Span{})}
}

func call(name string) bound.Stmt {
	fn := symbols.NewFunction(name, nil, builtin.Void, source.Span{})
	return &bound.ExpressionStmt{X: &bound.FunctionCallExpr{
		Target:   &bound.ThisExpr{Typ: builtin.Int},
		Function: fn,
		Typ:      builtin.Void,
	}}
}

func block(stmts ...bound.Stmt) *bound.BlockStmt {
	return &bound.BlockStmt{Stmts: stmts}
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func TestLowerShapes(t *testing.T) {
	cond := variable("c", builtin.Bool)
	tests := []struct {
		name     string
		body     *bound.BlockStmt
		epilogue bool
		want     string
	}{
		{
			name: "while",
			body: block(&bound.WhileStmt{Cond: cond, Body: block(call("a")), Break: "break$1", Continue: "continue$2"}),
			want: lines("{",
				"continue$2:",
				"  goto break$1 unless c",
				"  this.a()",
				"  goto continue$2",
				"break$1:",
				"}"),
		},
		{
			name: "do while",
			body: block(&bound.DoWhileStmt{Cond: cond, Body: block(call("a")), Break: "break$1", Continue: "continue$2"}),
			want: lines("{",
				"label$1:",
				"  this.a()",
				"continue$2:",
				"  goto label$1 if c",
				"break$1:",
				"}"),
		},
		{
			name: "for",
			body: block(&bound.ForStmt{
				Init:     call("init"),
				Cond:     cond,
				Step:     call("step").(*bound.ExpressionStmt).X,
				Body:     block(call("a")),
				Break:    "break$1",
				Continue: "continue$2",
			}),
			want: lines("{",
				"  this.init()",
				"label$1:",
				"  goto break$1 unless c",
				"  this.a()",
				"continue$2:",
				"  this.step()",
				"  goto label$1",
				"break$1:",
				"}"),
		},
		{
			name: "for without header",
			body: block(&bound.ForStmt{Body: block(&bound.GotoStmt{Target: "break$1"}), Break: "break$1", Continue: "continue$2"}),
			want: lines("{",
				"label$1:",
				"  goto break$1",
				"continue$2:",
				"  goto label$1",
				"break$1:",
				"}"),
		},
		{
			name: "if else",
			body: block(&bound.IfStmt{Cond: cond, Then: call("a"), Else: call("b")}),
			want: lines("{",
				"  goto label$2 unless c",
				"  this.a()",
				"  goto label$1",
				"label$2:",
				"  this.b()",
				"label$1:",
				"}"),
		},
		{
			name: "if without else",
			body: block(&bound.IfStmt{Cond: cond, Then: call("a")}),
			want: lines("{",
				"  goto label$1 unless c",
				"  this.a()",
				"label$1:",
				"}"),
		},
		{
			name:     "nested blocks flatten and epilogue",
			body:     block(call("a"), block(call("b"), block(call("c")))),
			epilogue: true,
			want: lines("{",
				"  this.a()",
				"  this.b()",
				"  this.c()",
				"  return",
				"}"),
		},
		{
			name:     "epilogue not duplicated",
			body:     block(call("a"), &bound.ReturnStmt{}),
			epilogue: true,
			want: lines("{",
				"  this.a()",
				"  return",
				"}"),
		},
		{
			name:     "empty body epilogue",
			body:     block(),
			epilogue: true,
			want:     lines("{", "  return", "}"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bound.String(Body(tt.body, &bound.LabelGen{}, tt.epilogue))
			if got != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestLoweredBodyHasNoStructuredFlow(t *testing.T) {
	cond := variable("c", builtin.Bool)
	inner := &bound.WhileStmt{Cond: cond, Body: block(&bound.IfStmt{Cond: cond, Then: call("a")}), Break: "break$3", Continue: "continue$4"}
	outer := &bound.ForStmt{Cond: cond, Body: block(inner), Break: "break$1", Continue: "continue$2"}
	labels := &bound.LabelGen{}
	_ = labels.Next("break")
	_ = labels.Next("continue")
	_ = labels.Next("break")
	_ = labels.Next("continue")

	out := Body(block(outer), labels, false)
	seen := map[bound.Label]bool{}
	for _, s := range out.Stmts {
		switch s := s.(type) {
		case *bound.IfStmt, *bound.WhileStmt, *bound.DoWhileStmt, *bound.ForStmt, *bound.BlockStmt:
			t.Fatalf("structured statement %T survived lowering", s)
		case *bound.LabelStmt:
			if seen[s.Label] {
				t.Fatalf("label %s emitted twice", s.Label)
			}
			seen[s.Label] = true
		}
	}
	for _, s := range out.Stmts {
		var target bound.Label
		switch s := s.(type) {
		case *bound.GotoStmt:
			target = s.Target
		case *bound.ConditionalGotoStmt:
			target = s.Target
		default:
			continue
		}
		if !seen[target] {
			t.Fatalf("goto %s has no label", target)
		}
	}
}
