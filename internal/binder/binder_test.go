package binder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zephyr/internal/ast"
	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/parser"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

// bindSnippet parses and binds src as a virtual file.
func bindSnippet(t *testing.T, src string) *Program {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zph", []byte(src))
	tree := parser.Parse(fs, id, 100)
	if tree.Bag.HasErrors() {
		t.Fatalf("snippet does not parse: %s", diagnosticsSummary(tree.Bag))
	}
	return Bind(context.Background(), tree, Options{FileSet: fs})
}

func bindClean(t *testing.T, src string) *Program {
	t.Helper()
	prog := bindSnippet(t, src)
	if prog.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(prog.Bag))
	}
	return prog
}

func lookupType(t *testing.T, prog *Program, name string) *symbols.TypeSymbol {
	t.Helper()
	typ, ok := prog.Scope.Type(name)
	if !ok {
		t.Fatalf("type %s not declared", name)
	}
	return typ
}

func bodyOf(t *testing.T, prog *Program, typeName, member string) *bound.BlockStmt {
	t.Helper()
	typ := lookupType(t, prog, typeName)
	ts, ok := prog.Scope.TypeScope(typ)
	if !ok {
		t.Fatalf("type %s has no scope", typeName)
	}
	m, ok := typ.Member(member)
	if !ok {
		t.Fatalf("%s has no member %s", typeName, member)
	}
	body, ok := ts.Body(m)
	if !ok {
		t.Fatalf("%s.%s has no body", typeName, member)
	}
	return body
}

func firstVarInit(t *testing.T, body *bound.BlockStmt) bound.Expr {
	t.Helper()
	for _, s := range body.Stmts {
		if v, ok := s.(*bound.VariableDeclaration); ok {
			return v.Init
		}
	}
	t.Fatal("no variable declaration in body")
	return nil
}

func TestBindDeclaresDefaults(t *testing.T) {
	prog := bindClean(t, `
type Point {
    pub var x: int;
    pub var y: int;
}
`)
	point := lookupType(t, prog, "Point")
	if point.State != symbols.StateDefined {
		t.Fatalf("expected Point to be defined, got %s", point.State)
	}
	for _, name := range []string{"toString", "equals"} {
		f, ok := point.Function(name)
		if !ok || !f.Generated || f.Visibility != symbols.Public || f.Shared {
			t.Fatalf("expected generated public %s, got %+v", name, f)
		}
	}
	ctor, ok := point.Constructor(0)
	if !ok || !ctor.Generated || ctor.Visibility != symbols.Public {
		t.Fatalf("expected generated public constructor, got %+v", ctor)
	}
	ts, _ := prog.Scope.TypeScope(point)
	ctorBody, ok := ts.Body(ctor)
	if !ok || len(ctorBody.Stmts) == 0 {
		t.Fatalf("generated constructor has no body: %+v", ctorBody)
	}
	if _, ok := ctorBody.Stmts[len(ctorBody.Stmts)-1].(*bound.ReturnStmt); !ok {
		t.Fatalf("generated constructor should end in return, got %s", bound.String(ctorBody))
	}

	got := bound.String(bodyOf(t, prog, "Point", "toString"))
	if !strings.Contains(got, `"Point"`) {
		t.Fatalf("toString should return the type name, got:\n%s", got)
	}
	ret := bodyOf(t, prog, "Point", "equals").Stmts[0].(*bound.ReturnStmt)
	if _, ok := ret.Value.(*bound.TypeEqualsExpr); !ok {
		t.Fatalf("equals should compare runtime types, got %T", ret.Value)
	}
}

func TestBindKeepsUserConstructors(t *testing.T) {
	prog := bindClean(t, `
type A {
    priv constructor(v: int) {}
    pub fn toString(): string { return "a"; }
}
`)
	a := lookupType(t, prog, "A")
	if _, ok := a.Constructor(0); ok {
		t.Fatal("a type with a constructor must not get the default one")
	}
	if f, _ := a.Function("toString"); f.Generated {
		t.Fatal("user toString must not be replaced")
	}
	if c, _ := a.Constructor(1); c.Visibility != symbols.Private {
		t.Fatalf("priv constructor should be private, got %s", c.Visibility)
	}
}

func TestBindDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"type redeclared", `type A {} type A {}`, diag.SemaTypeAlreadyDeclared},
		{"builtin redeclared", `type int {}`, diag.SemaTypeAlreadyDeclared},
		{"native redeclared", `type Console {} native type Console;`, diag.SemaTypeAlreadyDeclared},
		{"generic named like builtin", `type A<int> {}`, diag.SemaReservedTypeName},
		{"generic redeclared", `type A<T, T> {}`, diag.SemaGenericAlreadyDeclared},
		{"field redeclared", `type A { var x: int; var x: int; }`, diag.SemaFieldAlreadyDeclared},
		{"reserved field", `type A { var toString: int; }`, diag.SemaReservedFieldName},
		{"field after function", `type A { fn x() {} var x: int; }`, diag.SemaFunctionDeclaredButFieldExpected},
		{"function after field", `type A { var x: int; fn x() {} }`, diag.SemaFieldDeclaredButFunctionExpected},
		{"function redeclared", `type A { fn f() {} fn f() {} }`, diag.SemaFunctionAlreadyDeclared},
		{"parameter redeclared", `type A { fn f(a: int, a: int) {} }`, diag.SemaParameterAlreadyDeclared},
		{"constructor arity redeclared", `type A { constructor(a: int) {} constructor(b: int) {} }`, diag.SemaConstructorAlreadyDeclared},
		{"binary operator redeclared", `type A { operator +(o: A): A { return o; } operator +(p: A): A { return p; } }`, diag.SemaBinaryOperatorAlreadyDeclared},
		{"unary operator redeclared", `type A { operator -(): A { return this; } operator -(): A { return this; } }`, diag.SemaUnaryOperatorAlreadyDeclared},
		{"operator returns void", `type A { operator +(o: A): void {} }`, diag.SemaOperatorCannotReturnVoid},
		{"operator void parameter", `type A { operator +(o: void): A { return this; } }`, diag.SemaInvalidOperatorSignature},
		{"bad toString", `type A { pub fn toString(): int { return 1; } }`, diag.SemaInvalidToStringFunction},
		{"bad equals", `type A { pub fn equals(): bool { return true; } }`, diag.SemaInvalidEqualsFunction},
		{"export redeclared", `export A; export A; type A {}`, diag.SemaExportAlreadyDeclared},
		{"export undefined", `export Nope;`, diag.SemaUndefinedType},
		{"unknown native", `native type Nope;`, diag.SemaUnknownNativeType},
		{"undefined field type", `type A { var x: Nope; }`, diag.SemaUndefinedType},
		{"const field without value", `type A { const x: int; }`, diag.SemaConstFieldMustHaveInitializer},
		{"field initializer mismatch", `type A { var x: int = "s"; }`, diag.SemaCannotConvert},

		{"variable redeclared", `type A { fn f() { var a: int = 1; var a: int = 2; } }`, diag.SemaVariableAlreadyDeclared},
		{"const variable without value", `type A { fn f() { const a: int; } }`, diag.SemaConstVariableMustBeInitialized},
		{"undefined name", `type A { fn f() { y; } }`, diag.SemaUndefinedName},
		{"undefined member", `type A { fn f() { var s: string = "a"; s.nope; } }`, diag.SemaUndefinedMember},
		{"undefined binary operator", `type A { fn f() { var b: bool = true + 1; } }`, diag.SemaUndefinedBinaryOperator},
		{"undefined unary operator", `type A { fn f() { var s: string = -"a"; } }`, diag.SemaUndefinedUnaryOperator},
		{"undefined function", `type A { fn f() { g(); } }`, diag.SemaFunctionNotDeclared},
		{"undefined member function", `type A { fn f() { var s: string = "a"; s.nope(); } }`, diag.SemaFunctionNotDeclared},
		{"missing constructor", `type A { constructor(a: int) {} fn f() { new A(); } }`, diag.SemaConstructorNotDefined},
		{"this in shared function", `type A { shared fn f() { this; } }`, diag.SemaThisOutsideCallable},
		{"function used as value", `type A { fn g() {} fn f() { g; } }`, diag.SemaFunctionMustBeCalled},
		{"instance call from shared", `type A { fn g() {} shared fn f() { g(); } }`, diag.SemaStaticCallToInstanceFunction},
		{"instance call on type", `type A { fn g() {} shared fn f() { A.g(); } }`, diag.SemaStaticCallToInstanceFunction},
		{"shared call on instance", `type A { shared fn g() {} fn f() { this.g(); } }`, diag.SemaInstanceCallToSharedFunction},
		{"call this", `type A { fn f() { this(); } }`, diag.SemaCannotCallThis},
		{"call field", `type A { var x: int; fn f() { x(); } }`, diag.SemaNotCallable},
		{"instance field on type", `type A { var x: int; shared fn f(): int { return A.x; } }`, diag.SemaInstanceFieldOnType},
		{"instance field from shared", `type A { var x: int; shared fn f(): int { return x; } }`, diag.SemaInstanceFieldOnType},
		{"shared field on instance", `type A { shared var x: int; fn f(): int { return this.x; } }`, diag.SemaSharedFieldOnInstance},
		{"variable mismatch", `type A { fn f() { var a: int = "s"; } }`, diag.SemaCannotConvert},
		{"array literal mismatch", `type A { fn f() { var a: int[] = [1, "s"]; } }`, diag.SemaMismatchingTypes},
		{"condition not bool", `type A { fn f() { var a: int = 1 ? 2 : 3; } }`, diag.SemaInvalidConditionType},
		{"conditional branches differ", `type A { fn f() { var a: int = true ? 2 : "s"; } }`, diag.SemaMismatchingTypes},
		{"if condition not bool", `type A { fn f() { if (1) {} } }`, diag.SemaCannotConvert},
		{"argument count", `type A { fn g(a: int) {} fn f() { g(); } }`, diag.SemaFunctionParameterCountMismatch},
		{"argument type", `type A { fn g(a: int) {} fn f() { g("s"); } }`, diag.SemaMismatchingTypes},
		{"generic count", `type B<T> {} type A { fn f() { new B(); } }`, diag.SemaGenericParameterCountMismatch},
		{"generic argument undefined", `type B<T> {} type A { fn f() { new B<Nope>(); } }`, diag.SemaUndefinedType},
		{"number out of range", `type A { fn f() { var a: int = 99999999999999999999; } }`, diag.SemaInvalidNumberLiteral},
		{"index non array", `type A { fn f() { var a: int = 1; a[0]; } }`, diag.SemaCannotIndex},
		{"index not int", `type A { fn f() { var a: int[] = [1]; a["x"]; } }`, diag.SemaArrayIndexMustBeInt},
		{"array size not int", `type A { fn f() { var a: int[] = new int["x"]; } }`, diag.SemaArrayCreationSizeMustBeInt},
		{"array fill mismatch", `type A { fn f() { var a: int[] = new int[3 : "x"]; } }`, diag.SemaArrayCreationInitializerTypeMismatch},
		{"array without size", `type A { fn f() { var a: int[] = new int[]; } }`, diag.SemaArrayCreationMustHaveSize},
		{"assign parameter", `type A { fn f(a: int) { a = 1; } }`, diag.SemaCannotAssignReadOnly},
		{"assign const field", `type A { const x: int = 1; fn f() { this.x = 2; } }`, diag.SemaCannotAssignReadOnly},
		{"assign literal", `type A { fn f() { 1 = 2; } }`, diag.SemaInvalidAssignmentTarget},
		{"compound assignment", `type A { fn f() { var a: int = 1; a += 1; } }`, diag.FutNotSupported},
		{"impossible type check", `type A { fn f() { var b: bool = 1 is string; } }`, diag.SemaCannotCheckType},
		{"type check of void", `type A { fn g() {} fn f() { var b: bool = g() is int; } }`, diag.SemaCannotCheckTypeOfVoid},
		{"break outside loop", `type A { fn f() { break; } }`, diag.SemaInvalidBreakOrContinue},
		{"continue outside loop", `type A { fn f() { continue; } }`, diag.SemaInvalidBreakOrContinue},
		{"constructor returns value", `type A { constructor() { return 1; } }`, diag.SemaConstructorCannotReturnValue},
		{"operator bare return", `type A { operator -(): A { return; } }`, diag.SemaOperatorMustReturnValue},
		{"missing return value", `type A { fn f(): int { return; } }`, diag.SemaMissingReturnValue},
		{"void returns value", `type A { fn f() { return 1; } }`, diag.SemaVoidFunctionReturnsValue},
		{"return type mismatch", `type A { fn f(): int { return "s"; } }`, diag.SemaCannotConvert},
		{"return any is exact", `type A { fn f(): any { return 1; } }`, diag.SemaCannotConvert},
		{"explicit suffix import", `import "other.zph";`, diag.SemaImportError},
		{"std without library", `import "std:io";`, diag.SemaImportError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := bindSnippet(t, tt.src)
			if got := countCode(prog.Bag, tt.code); got != 1 {
				t.Fatalf("expected exactly one %s, got: %s", tt.code.ID(), diagnosticsSummary(prog.Bag))
			}
		})
	}
}

func TestRedundantTypeCheckIsWarning(t *testing.T) {
	prog := bindSnippet(t, `type A { fn f(x: any) { var a: bool = 1 is int; var b: bool = x is int; } }`)
	if prog.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(prog.Bag))
	}
	if countCode(prog.Bag, diag.SemaRedundantTypeCheck) != 1 {
		t.Fatalf("expected one redundant check warning, got: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestOverrideRulesReportedSeparately(t *testing.T) {
	prog := bindSnippet(t, `type A { shared fn equals(a: int, b: int): int { return 1; } }`)
	// arity, return type, visibility, shared
	if got := countCode(prog.Bag, diag.SemaInvalidEqualsFunction); got != 4 {
		t.Fatalf("expected 4 equals diagnostics, got: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestNominalTypeEquality(t *testing.T) {
	prog := bindSnippet(t, `
type A { pub var x: int; }
type B { pub var x: int; }
type C {
    fn f() {
        var a: A = new A();
        var b: B = a;
    }
}
`)
	if countCode(prog.Bag, diag.SemaCannotConvert) != 1 {
		t.Fatalf("structurally equal types must not convert: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestErrorsDoNotCascade(t *testing.T) {
	prog := bindSnippet(t, `
type A {
    fn f(): int {
        var x: int = missing + 1;
        var y: int = x * 2 + missing.length();
        return y;
    }
}
`)
	if got := prog.Bag.Len(); got != 2 || countCode(prog.Bag, diag.SemaUndefinedName) != 2 {
		t.Fatalf("expected only the two undefined names, got: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestVariableDeclaredDespiteBadInitializer(t *testing.T) {
	prog := bindSnippet(t, `type A { fn f(): int { var x: int = "s"; return x; } }`)
	if prog.Bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestVariableShadowingInNestedBlock(t *testing.T) {
	bindClean(t, `type A { fn f() { var x: int = 1; if (x > 0) { var x: string = "s"; } } }`)
}

func TestStringConcatenation(t *testing.T) {
	prog := bindClean(t, `
type A {
    fn num() { var s: string = "n" + 1; }
    fn chr() { var s: string = "c" + 'x'; }
    fn obj() { var s: string = "o" + new A(); }
    fn str() { var s: string = "a" + "b"; }
}
`)
	bin := firstVarInit(t, bodyOf(t, prog, "A", "num")).(*bound.BinaryExpr)
	call, ok := bin.Right.(*bound.FunctionCallExpr)
	if !ok || call.Function.Name() != "toString" {
		t.Fatalf("int operand should go through toString, got %s", bound.ExprString(bin.Right))
	}

	bin = firstVarInit(t, bodyOf(t, prog, "A", "chr")).(*bound.BinaryExpr)
	call, ok = bin.Right.(*bound.FunctionCallExpr)
	if !ok || call.Function.Name() != "toString" || !call.Target.Type().Equal(builtin.Char) {
		t.Fatalf("char operand should go through toString, got %s", bound.ExprString(bin.Right))
	}
	if !bin.Op.Right.Type.Equal(builtin.String) {
		t.Fatalf("coerced operand should select the (+, string) operator, got %s", bin.Op.Right.Type)
	}

	bin = firstVarInit(t, bodyOf(t, prog, "A", "str")).(*bound.BinaryExpr)
	if _, wrapped := bin.Right.(*bound.FunctionCallExpr); wrapped {
		t.Fatalf("string operand must not be wrapped, got %s", bound.ExprString(bin.Right))
	}

	bin = firstVarInit(t, bodyOf(t, prog, "A", "obj")).(*bound.BinaryExpr)
	call, ok = bin.Right.(*bound.FunctionCallExpr)
	if !ok || !call.Function.Owner.Equal(lookupType(t, prog, "A")) {
		t.Fatalf("user operand should call its own toString, got %s", bound.ExprString(bin.Right))
	}
}

func TestMixedNumericArithmetic(t *testing.T) {
	prog := bindClean(t, `type A { fn f() { var d: double = 1 + 2.5; var b: bool = 1 < 2.5; } }`)
	init := firstVarInit(t, bodyOf(t, prog, "A", "f"))
	if !init.Type().Equal(builtin.Double) {
		t.Fatalf("int + double should be double, got %s", init.Type())
	}
}

func TestLoopLabelsAreUnique(t *testing.T) {
	prog := bindClean(t, `
type A {
    fn f() {
        var i: int = 0;
        while (i < 3) {
            for (var j: int = 0; j < 2; j = j + 1) {
                if (j == 1) { continue; }
                break;
            }
            i = i + 1;
        }
        do { i = i - 1; } while (i > 0);
    }
    fn g() { while (true) { break; } }
}
`)
	seen := make(map[bound.Label]string)
	for _, fn := range []string{"f", "g"} {
		for _, s := range bodyOf(t, prog, "A", fn).Stmts {
			switch s := s.(type) {
			case *bound.LabelStmt:
				if prev, dup := seen[s.Label]; dup {
					t.Fatalf("label %s defined in %s and %s", s.Label, prev, fn)
				}
				seen[s.Label] = fn
			case *bound.WhileStmt, *bound.ForStmt, *bound.DoWhileStmt, *bound.IfStmt, *bound.BlockStmt:
				t.Fatalf("lowered body of %s still has %T", fn, s)
			}
		}
	}
	var breaks, continues int
	for l := range seen {
		switch {
		case strings.HasPrefix(string(l), "break$"):
			breaks++
		case strings.HasPrefix(string(l), "continue$"):
			continues++
		}
	}
	if breaks != 4 || continues != 4 {
		t.Fatalf("expected 4 break and 4 continue labels, got %d and %d (%v)", breaks, continues, seen)
	}
}

func TestBreakJumpsToInnermostLoop(t *testing.T) {
	prog := bindClean(t, `type A { fn f() { while (true) { while (false) { break; } } } }`)
	// outer loop takes break$1/continue$2, inner break$3/continue$4
	targets := make(map[bound.Label]int)
	for _, s := range bodyOf(t, prog, "A", "f").Stmts {
		if g, ok := s.(*bound.GotoStmt); ok {
			targets[g.Target]++
		}
	}
	if targets["break$3"] != 1 || targets["break$1"] != 0 {
		t.Fatalf("break should jump out of the inner loop only, got %v", targets)
	}
}

func TestVisibility(t *testing.T) {
	bindClean(t, `
type A {
    var secret: int;
    fn peek(other: A): int { return other.secret; }
}
`)
	prog := bindSnippet(t, `
type A { var secret: int; priv fn hidden() {} }
type B {
    fn f(a: A): int {
        a.hidden();
        return a.secret;
    }
}
`)
	if got := countCode(prog.Bag, diag.SemaCannotAccessPrivateMember); got != 2 {
		t.Fatalf("expected two private access errors, got: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestSharedMembers(t *testing.T) {
	bindClean(t, `
native type Math;
type Counter {
    shared var count: int = 0;
    shared fn next(): int {
        count = count + 1;
        return Counter.count;
    }
    fn twice(): double { return Math.sqrt(4.0) + next(); }
}
`)
}

func TestGenericSubstitution(t *testing.T) {
	prog := bindClean(t, `
type Box<T> {
    pub var value: T;
    constructor(v: T) { this.value = v; }
    pub fn get(): T { return this.value; }
    pub fn set(v: T) { this.value = v; }
}
type User {
    shared fn f(): int {
        var b: Box = new Box<int>(1);
        b.set(2);
        b.value = 3;
        var i: int = b.get();
        return i + b.value;
    }
}
`)
	init := firstVarInit(t, bodyOf(t, prog, "User", "f"))
	create, ok := init.(*bound.InstanceCreationExpr)
	if !ok || !create.Generics["T"].Equal(builtin.Int) {
		t.Fatalf("expected Box<int> creation, got %s", bound.ExprString(init))
	}

	prog = bindSnippet(t, `
type Box<T> { pub fn set(v: T) {} }
type User { shared fn f() { var b: Box = new Box<int>(); b.set("s"); } }
`)
	if countCode(prog.Bag, diag.SemaMismatchingTypes) != 1 {
		t.Fatalf("expected argument mismatch against int, got: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestEmptyArrayLiteralSpecialization(t *testing.T) {
	prog := bindClean(t, `
type A {
    var items: string[] = [];
    fn f() { var xs: int[] = []; xs = []; }
}
`)
	init := firstVarInit(t, bodyOf(t, prog, "A", "f"))
	if !init.Type().Equal(symbols.ArrayOf(builtin.Int)) {
		t.Fatalf("empty literal should take int[], got %s", init.Type())
	}
}

type bogusExpr struct{ ast.NameExpr }

func (*bogusExpr) ExprKind() ast.ExprKind { return ast.ExprKind(255) }

func TestBindPanicsOnUnknownExpression(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unknown expression kind")
		}
	}()
	b := &binder{}
	b.bindExpr(&bogusExpr{})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func bindFile(t *testing.T, path string, lib LibraryResolver) *Program {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return Bind(context.Background(), parser.Parse(fs, id, 100), Options{FileSet: fs, Library: lib})
}

func TestImportMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shapes.zph", `
export Square;
type Square { pub fn area(): int { return 4; } }
type Hidden {}
`)
	main := writeFile(t, dir, "main.zph", `
import "shapes";
import "shapes" as sh;
type Main {
    shared fn f(): int {
        var s: Square = new Square();
        var h: sh.Hidden = new sh.Hidden();
        return s.area();
    }
}
`)
	prog := bindFile(t, main, nil)
	if prog.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(prog.Bag))
	}
	if _, ok := prog.Scope.Type("Square"); ok {
		t.Fatal("imported types must not be flattened into the program")
	}
	if _, ok := prog.Scope.ImportedType("Square"); !ok {
		t.Fatal("exported Square should be visible by simple name")
	}
	if _, ok := prog.Scope.ImportedType("Hidden"); ok {
		t.Fatal("Hidden is not exported")
	}

	bad := writeFile(t, dir, "bad.zph", `
import "shapes";
type Main { fn f() { var h: Hidden = new Hidden(); } }
`)
	prog = bindFile(t, bad, nil)
	if countCode(prog.Bag, diag.SemaUndefinedType) != 2 {
		t.Fatalf("unexported type must not resolve by simple name: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestDuplicateImportWarns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.zph", `type L {}`)
	main := writeFile(t, dir, "main.zph", `import "lib"; import "lib";`)
	prog := bindFile(t, main, nil)
	if prog.HasErrors() || countCode(prog.Bag, diag.SemaDuplicateImport) != 1 {
		t.Fatalf("expected a duplicate import warning, got: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestImportFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.zph", `import "b"; type A {}`)
	writeFile(t, dir, "b.zph", `import "a"; type B {}`)
	writeFile(t, dir, "broken.zph", `type X { var y: Nope; }`)

	tests := []struct {
		name, src, want string
	}{
		{"missing", `import "nowhere";`, "does not exist"},
		{"cycle", `import "a";`, "cyclic import: a.zph -> b.zph -> a.zph"},
		{"errors", `import "broken";`, "has errors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main := writeFile(t, dir, "main_"+tt.name+".zph", tt.src)
			prog := bindFile(t, main, nil)
			found := false
			for _, d := range prog.Bag.Items() {
				if d.Code == diag.SemaImportError && strings.Contains(d.Message, tt.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected import error containing %q, got: %s", tt.want, diagnosticsSummary(prog.Bag))
			}
		})
	}

	main := writeFile(t, dir, "main_absorb.zph", `import "broken";`)
	prog := bindFile(t, main, nil)
	if countCode(prog.Bag, diag.SemaUndefinedType) != 1 {
		t.Fatalf("imported diagnostics should be absorbed: %s", diagnosticsSummary(prog.Bag))
	}
}

type mapLibrary map[string]string

func (m mapLibrary) Resolve(name string) (string, bool) {
	p, ok := m[name]
	return p, ok
}

func TestStandardLibraryImport(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, dir, "std/text.zph", `export Text; type Text { pub fn size(): int { return 0; } }`)
	main := writeFile(t, dir, "app/main.zph", `
import "std:text" as text;
type Main { shared fn f(): int { var t: text.Text = new text.Text(); return t.size(); } }
`)
	prog := bindFile(t, main, mapLibrary{"text": lib})
	if prog.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(prog.Bag))
	}

	prog = bindFile(t, main, mapLibrary{})
	if countCode(prog.Bag, diag.SemaImportError) != 1 {
		t.Fatalf("expected an unresolved std import, got: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestCustomLibraryPrefix(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, dir, "core/text.zph", `export Text; type Text {}`)
	main := writeFile(t, dir, "app/main.zph", `import "core:text"; type Main { var t: Text; }`)

	fs := source.NewFileSet()
	id, err := fs.Load(main)
	if err != nil {
		t.Fatal(err)
	}
	prog := Bind(context.Background(), parser.Parse(fs, id, 100), Options{
		FileSet:       fs,
		Library:       mapLibrary{"text": lib},
		LibraryPrefix: "core",
	})
	if prog.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(prog.Bag))
	}
}

func TestRedeclaredTypeNotesPrevious(t *testing.T) {
	prog := bindSnippet(t, "type A {}\ntype A {}\n")
	items := prog.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemaTypeAlreadyDeclared {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(prog.Bag))
	}
	notes := items[0].Notes
	if len(notes) != 1 || notes[0].Span.Start != 5 || notes[0].Span.End != 6 {
		t.Fatalf("expected a note at the first declaration, got %+v", notes)
	}

	builtinClash := bindSnippet(t, "type string {}")
	if got := builtinClash.Bag.Items(); len(got) != 1 || len(got[0].Notes) != 0 {
		t.Fatalf("builtin clash should carry no note: %+v", got)
	}
}
