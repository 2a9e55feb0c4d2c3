package parser

import (
	"testing"

	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/lexer"
	"zephyr/internal/source"
	"zephyr/internal/token"
)

func TestParseTopLevelDecls(t *testing.T) {
	file := parseClean(t, `
import "std:io.console";
import "shapes" as sh;
native type Console;
export Point;
type Point {}
`)
	if len(file.Decls) != 5 {
		t.Fatalf("expected 5 decls, got %d", len(file.Decls))
	}
	imp := file.Decls[0].(*ast.ImportDecl)
	if imp.Path != "std:io.console" || imp.Alias != nil {
		t.Fatalf("unexpected import %+v", imp)
	}
	aliased := file.Decls[1].(*ast.ImportDecl)
	if aliased.Alias == nil || aliased.Alias.Name != "sh" {
		t.Fatalf("expected alias sh, got %+v", aliased.Alias)
	}
	if got := file.Decls[2].(*ast.NativeTypeDecl).Name.Name; got != "Console" {
		t.Fatalf("native type name = %q", got)
	}
	if got := file.Decls[3].(*ast.ExportDecl).Name.String(); got != "Point" {
		t.Fatalf("export name = %q", got)
	}
	if got := file.Decls[4].DeclKind(); got != ast.DeclType {
		t.Fatalf("expected type decl, got %v", got)
	}
}

func TestParseTypeMembers(t *testing.T) {
	file := parseClean(t, `
type Box<T, U> {
    pub var value: T;
    priv shared const limit: int = 10;
    var grid: int[][];
    constructor(v: T) { this.value = v; }
    pub fn get(): T { return this.value; }
    fn reset() {}
    operator +(other: Box): Box { return this; }
    operator -(): Box { return this; }
}
`)
	td := file.Decls[0].(*ast.TypeDecl)
	if td.Name.Name != "Box" || len(td.Generics) != 2 || td.Generics[1].Name != "U" {
		t.Fatalf("unexpected type header %+v", td)
	}
	kinds := []ast.MemberKind{
		ast.MemberField, ast.MemberField, ast.MemberField, ast.MemberConstructor,
		ast.MemberFunction, ast.MemberFunction, ast.MemberBinaryOperator, ast.MemberUnaryOperator,
	}
	if len(td.Members) != len(kinds) {
		t.Fatalf("expected %d members, got %d", len(kinds), len(td.Members))
	}
	for i, k := range kinds {
		if td.Members[i].MemberKind() != k {
			t.Errorf("member %d: kind %v, want %v", i, td.Members[i].MemberKind(), k)
		}
	}

	value := td.Members[0].(*ast.FieldDecl)
	if value.Mods.Visibility != ast.VisPublic || value.Const || value.Type.String() != "T" {
		t.Errorf("unexpected field %+v", value)
	}
	limit := td.Members[1].(*ast.FieldDecl)
	if limit.Mods.Visibility != ast.VisPrivate || !limit.Mods.Shared || !limit.Const || limit.Init == nil {
		t.Errorf("unexpected const field %+v", limit)
	}
	if grid := td.Members[2].(*ast.FieldDecl); grid.Type.Rank != 2 || grid.Type.String() != "int[][]" {
		t.Errorf("grid type = %s", grid.Type)
	}
	if reset := td.Members[5].(*ast.FunctionDecl); reset.Return != nil {
		t.Errorf("reset should be void, got %s", reset.Return)
	}
	plus := td.Members[6].(*ast.BinaryOperatorDecl)
	if plus.Op.Kind != token.Plus || plus.Right.Name.Name != "other" {
		t.Errorf("unexpected binary operator %+v", plus)
	}
	if neg := td.Members[7].(*ast.UnaryOperatorDecl); neg.Op.Kind != token.Minus {
		t.Errorf("unexpected unary operator %v", neg.Op.Kind)
	}
}

func TestParseDeclErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing semicolon after import", `import "a"`, diag.SynExpectSemicolon},
		{"import without string", `import a;`, diag.SynExpectString},
		{"stray top level", `fn main() {}`, diag.SynUnexpectedTopLevel},
		{"native without type", `native Console;`, diag.SynUnexpectedToken},
		{"unclosed type body", `type A { var x: int;`, diag.SynUnclosedBrace},
		{"field without type", `type A { var x; }`, diag.SynExpectColon},
		{"duplicate shared", `type A { shared shared var x: int; }`, diag.SynDuplicateModifier},
		{"two visibilities", `type A { pub priv var x: int; }`, diag.SynDuplicateModifier},
		{"shared constructor", `type A { shared constructor() {} }`, diag.SynModifierNotAllowed},
		{"operator modifiers", `type A { pub operator +(o: A): A { return o; } }`, diag.SynModifierNotAllowed},
		{"non overloadable operator", `type A { operator =(o: A): A { return o; } }`, diag.SynInvalidOperator},
		{"too many operator params", `type A { operator +(a: A, b: A): A { return a; } }`, diag.SynInvalidOperator},
		{"unary-only operator with param", `type A { operator ~(a: A): A { return a; } }`, diag.SynInvalidOperator},
		{"garbage member", `type A { 42; }`, diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseSnippet(t, tt.src)
			if !hasCode(tree.Bag, tt.code) {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(tree.Bag))
			}
		})
	}
}

func TestParseRecoversAfterBrokenMember(t *testing.T) {
	tree := parseSnippet(t, `
type A {
    var x int;
    fn ok(): int { return 1; }
}
type B {}
`)
	if !tree.Bag.HasErrors() {
		t.Fatal("expected an error for the broken field")
	}
	if len(tree.Root.Decls) != 2 {
		t.Fatalf("expected both types to survive, got %d decls", len(tree.Root.Decls))
	}
	a := tree.Root.Decls[0].(*ast.TypeDecl)
	if len(a.Members) != 1 || a.Members[0].MemberKind() != ast.MemberFunction {
		t.Fatalf("expected only fn ok to survive in A, got %d members", len(a.Members))
	}
}

func TestParseMaxErrors(t *testing.T) {
	tree := parseSnippet(t, `1; 2; 3; 4;`)
	if tree.Bag.ErrorCount() != 4 {
		t.Fatalf("expected 4 errors, got %s", diagnosticsSummary(tree.Bag))
	}

	fs := source.NewFileSet()
	id := fs.AddVirtual("limit.zph", []byte(`1; 2; 3; 4;`))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	res := ParseFile(fs, id, lx, Options{MaxErrors: 2, Reporter: reporter})
	if res.Bag != bag {
		t.Fatal("result should carry the reporter bag")
	}
	if bag.ErrorCount() != 2 {
		t.Fatalf("expected the limit to stop at 2 errors, got %s", diagnosticsSummary(bag))
	}
}
