package parser

import (
	"fmt"
	"strings"
	"testing"

	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
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

// parseSnippet parses src as a virtual file and returns the tree.
func parseSnippet(t *testing.T, src string) ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zph", []byte(src))
	return Parse(fs, id, 100)
}

// parseClean parses src and fails the test on any diagnostic.
func parseClean(t *testing.T, src string) *ast.File {
	t.Helper()
	tree := parseSnippet(t, src)
	if tree.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(tree.Bag))
	}
	return tree.Root
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// bodyOf returns the statements of the first function of the first type.
func bodyOf(t *testing.T, file *ast.File) []ast.Stmt {
	t.Helper()
	for _, decl := range file.Decls {
		td, ok := decl.(*ast.TypeDecl)
		if !ok {
			continue
		}
		for _, m := range td.Members {
			if fn, ok := m.(*ast.FunctionDecl); ok {
				return fn.Body.Stmts
			}
		}
	}
	t.Fatal("no function found")
	return nil
}

// exprOf parses `expr;` inside a function body and returns the expression.
func exprOf(t *testing.T, expr string) ast.Expr {
	t.Helper()
	file := parseClean(t, "type T { fn f() { "+expr+"; } }")
	stmts := bodyOf(t, file)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", stmts[0])
	}
	return es.X
}
