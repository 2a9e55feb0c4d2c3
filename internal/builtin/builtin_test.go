package builtin

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"zephyr/internal/bound"
	"zephyr/internal/scope"
	"zephyr/internal/symbols"
)

func TestInstallDeclaresBuiltinsFirst(t *testing.T) {
	p := scope.NewProgram()
	Install(p)
	want := []string{"bool", "int", "double", "string", "char", "any", "void", "array"}
	types := p.Types()
	if len(types) != len(want) {
		t.Fatalf("expected %d builtins, got %d", len(want), len(types))
	}
	for i, name := range want {
		if types[i].Name() != name {
			t.Errorf("builtin %d = %s, want %s", i, types[i].Name(), name)
		}
		if types[i].State != symbols.StateDefined {
			t.Errorf("%s is %s, want defined", name, types[i].State)
		}
	}
	if err := p.DeclareType(symbols.NewType("int", Int.Decl())); err == nil {
		t.Fatal("redeclaring a builtin must fail")
	}
}

func TestEveryValueTypeHasToStringAndEquals(t *testing.T) {
	for _, h := range Types() {
		if h.Symbol().Equal(Void) {
			continue
		}
		ts, ok := h.Symbol().Function("toString")
		if !ok || len(ts.Params) != 0 || !ts.Return.Equal(String) || ts.Visibility != symbols.Public {
			t.Errorf("%s: bad toString", h.Symbol().Name())
		}
		eq, ok := h.Symbol().Function("equals")
		if !ok || len(eq.Params) != 1 || !eq.Params[0].Type.Equal(Any) || !eq.Return.Equal(Bool) {
			t.Errorf("%s: bad equals", h.Symbol().Name())
		}
	}
}

func TestMixedNumericOperators(t *testing.T) {
	Types()
	op, ok := Int.BinaryOperator("+", Double)
	if !ok || !op.Return.Equal(Double) {
		t.Fatal("int + double should yield double")
	}
	if op, ok := Double.BinaryOperator("<", Int); !ok || !op.Return.Equal(Bool) {
		t.Fatal("double < int should yield bool")
	}
	for _, right := range []*symbols.TypeSymbol{Int, Char, Bool} {
		if _, ok := String.BinaryOperator("+", right); ok {
			t.Fatalf("string + %s is handled by coercion, not an operator", right.Name())
		}
	}
	if _, ok := String.UnaryOperator("-"); ok {
		t.Fatal("string has no unary minus")
	}
}

func TestAssignableTo(t *testing.T) {
	Types()
	tests := []struct {
		from, to *symbols.TypeSymbol
		want     bool
	}{
		{Int, Int, true},
		{Int, Any, true},
		{symbols.ArrayOf(Char), Any, true},
		{Void, Any, false},
		{Int, Double, false},
		{Any, Int, false},
	}
	for _, tt := range tests {
		if got := AssignableTo(tt.from, tt.to); got != tt.want {
			t.Errorf("AssignableTo(%s, %s) = %v, want %v", tt.from.Name(), tt.to.Name(), got, tt.want)
		}
	}
}

func TestHostBodiesAreInternalCalls(t *testing.T) {
	h, _ := Lookup("int")
	neg, _ := Int.UnaryOperator("-")
	body, ok := h.Scope().Body(neg)
	if !ok {
		t.Fatal("unary minus has no body")
	}
	ret := body.Stmts[0].(*bound.ReturnStmt)
	call := ret.Value.(*bound.InternalCallExpr)
	if call.Op != OpIntNeg {
		t.Fatalf("unary minus maps to %v", call.Op)
	}

	arr, _ := Lookup("array")
	length, ok := Array.Field("length")
	if !ok || !length.ReadOnly {
		t.Fatal("array.length must be a read-only field")
	}
	init, _ := arr.Scope().Initializer(length)
	if init.(*bound.InternalCallExpr).Op != OpArrayLength {
		t.Fatal("array.length is not computed by the host")
	}
}

func TestNativeCatalog(t *testing.T) {
	console, ok := Native("Console")
	if !ok {
		t.Fatal("Console missing")
	}
	again, _ := Native("Console")
	if console != again {
		t.Fatal("native types must be singletons")
	}
	pl, ok := console.Symbol().Function("println")
	if !ok || !pl.Shared || !pl.Return.Equal(Void) {
		t.Fatal("Console.println should be a shared void function")
	}
	body, _ := console.Scope().Body(pl)
	if len(body.Stmts) != 2 {
		t.Fatalf("void host body should be call + return, got %d stmts", len(body.Stmts))
	}
	if _, ok := Native("Nope"); ok {
		t.Fatal("unknown native resolved")
	}
	if got := strings.Join(NativeNames(), ","); got != "Console,Math,Time" {
		t.Fatalf("catalog = %s", got)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		this any
		args []any
		want any
	}{
		{"int add", OpIntAdd, int64(2), []any{int64(3)}, int64(5)},
		{"int add double", OpIntAdd, int64(2), []any{0.5}, 2.5},
		{"int lt double", OpIntLt, int64(2), []any{2.5}, true},
		{"int shl", OpIntShl, int64(1), []any{int64(4)}, int64(16)},
		{"double div int", OpDoubleDiv, 3.0, []any{int64(2)}, 1.5},
		{"string concat char", OpStringConcat, "ab", []any{'c'}, "abc"},
		{"string length runes", OpStringLength, "héllo", nil, int64(5)},
		{"string indexOf runes", OpStringIndexOf, "héllo", []any{"llo"}, int64(2)},
		{"char add", OpCharAdd, 'a', []any{int64(2)}, 'c'},
		{"int toString", OpToString, int64(-7), nil, "-7"},
		{"double toString", OpToString, 2.0, nil, "2.0"},
		{"array toString", OpToString, []any{int64(1), "x"}, nil, "[1, x]"},
		{"array equals", OpEquals, []any{int64(1)}, []any{[]any{int64(1)}}, true},
		{"any ne", OpAnyNe, "a", []any{int64(1)}, true},
		{"array length", OpArrayLength, []any{1, 2, 3}, nil, int64(3)},
		{"bool not", OpBoolNot, true, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.op, tt.this, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if !ValuesEqual(got, tt.want) {
				t.Fatalf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	if _, err := Evaluate(OpIntDiv, int64(1), int64(0)); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := Evaluate(OpStringCharAt, "ab", int64(5)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestHostSideEffects(t *testing.T) {
	var out bytes.Buffer
	h := NewHost(&out, strings.NewReader("first line\nsecond\n"))
	var slept time.Duration
	h.Sleep = func(d time.Duration) { slept = d }
	h.Now = func() time.Time { return time.UnixMilli(42) }

	if _, err := h.Evaluate(OpConsolePrintln, nil, int64(7)); err != nil {
		t.Fatal(err)
	}
	if out.String() != "7\n" {
		t.Fatalf("println wrote %q", out.String())
	}
	line, _ := h.Evaluate(OpConsoleReadLine, nil)
	if line != "first line" {
		t.Fatalf("readLine = %q", line)
	}
	_, _ = h.Evaluate(OpTimeSleep, nil, int64(3))
	if slept != 3*time.Millisecond {
		t.Fatalf("slept %v", slept)
	}
	if now, _ := h.Evaluate(OpTimeNow, nil); now != int64(42) {
		t.Fatalf("now = %v", now)
	}
}

func TestEvaluateCoversEveryOp(t *testing.T) {
	for op := OpToString; op < opCount; op++ {
		func() {
			defer func() {
				if r := recover(); r != nil {
					var unhandled *UnhandledOpError
					if err, ok := r.(error); ok && errors.As(err, &unhandled) {
						t.Errorf("%s has no host implementation", op)
					}
				}
			}()
			h := NewHost(&bytes.Buffer{}, strings.NewReader(""))
			_, _ = h.Evaluate(op, nil)
		}()
	}
}

func TestEvaluateUnknownOpPanics(t *testing.T) {
	defer func() {
		if _, ok := recover().(*UnhandledOpError); !ok {
			t.Fatal("expected *UnhandledOpError panic")
		}
	}()
	_, _ = Evaluate(opCount, nil)
}
