package binder

import (
	"context"
	"fmt"

	"zephyr/internal/ast"
	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/lower"
	"zephyr/internal/scope"
	"zephyr/internal/symbols"
	"zephyr/internal/trace"
)

// defineAll is the second sweep. Only members queued by declareMembers and
// addDefaults get bodies or initializers.
func (b *binder) defineAll(ctx context.Context) {
	for _, te := range b.types {
		_, span := trace.Start(ctx, trace.ScopeNode, "type:"+te.sym.Name())
		restore := b.enterScope(te.scope)
		for _, p := range te.pending {
			b.defineMember(te, p)
		}
		restore()
		te.sym.State = symbols.StateDefined
		span.WithCount("members", len(te.pending)).End("")
	}
}

func (b *binder) defineMember(te *typeEntry, p pending) {
	switch sym := p.sym.(type) {
	case *symbols.FieldSymbol:
		b.defineField(te, p.syntax.(*ast.FieldDecl), sym)
	case *symbols.FunctionSymbol:
		if sym.Generated {
			te.scope.DefineFunction(sym, generatedBody(te.sym, sym))
			return
		}
		decl := p.syntax.(*ast.FunctionDecl)
		c := callable{kind: callFunction, sym: sym, shared: sym.Shared}
		te.scope.DefineFunction(sym, b.bindBody(c, sym.Params, decl.Body, sym.Return.Equal(builtin.Void)))
	case *symbols.ConstructorSymbol:
		if sym.Generated {
			te.scope.DefineConstructor(sym, lower.Body(&bound.BlockStmt{Loc: sym.Decl()}, b.labels, true))
			return
		}
		decl := p.syntax.(*ast.ConstructorDecl)
		c := callable{kind: callConstructor, sym: sym}
		te.scope.DefineConstructor(sym, b.bindBody(c, sym.Params, decl.Body, true))
	case *symbols.UnaryOperatorSymbol:
		decl := p.syntax.(*ast.UnaryOperatorDecl)
		c := callable{kind: callUnary, sym: sym}
		te.scope.DefineUnaryOperator(sym, b.bindBody(c, nil, decl.Body, false))
	case *symbols.BinaryOperatorSymbol:
		decl := p.syntax.(*ast.BinaryOperatorDecl)
		c := callable{kind: callBinary, sym: sym}
		te.scope.DefineBinaryOperator(sym, b.bindBody(c, sym.Parameters(), decl.Body, false))
	default:
		panic(fmt.Errorf("binder: unexpected member symbol %T", p.sym))
	}
}

func (b *binder) defineField(te *typeEntry, decl *ast.FieldDecl, f *symbols.FieldSymbol) {
	if decl.Init == nil {
		if f.ReadOnly {
			b.errorf(diag.SemaConstFieldMustHaveInitializer, decl.Name.Loc, "constant field %s must have an initializer", f.Name())
		}
		return
	}
	defer b.withCallable(callable{kind: callNone, shared: f.Shared})()
	init := b.bindExpr(decl.Init)
	te.scope.DefineField(f, b.coerce(init, f.Type, decl.Init.Span(), diag.SemaCannotConvert))
}

// bindBody binds a callable body in a fresh block holding the parameters and lowers
// it. epilogue requests a trailing return for constructors and void functions.
func (b *binder) bindBody(c callable, params []*symbols.ParameterSymbol, body *ast.BlockStmt, epilogue bool) *bound.BlockStmt {
	defer b.withCallable(c)()
	blk := scope.NewBlock(b.scope)
	defer b.enterScope(blk)()
	for _, p := range params {
		if err := blk.Declare(p); err != nil {
			panic(fmt.Errorf("binder: %w", err))
		}
	}
	if body == nil {
		return lower.Body(nil, b.labels, epilogue)
	}
	return lower.Body(b.bindStmts(body), b.labels, epilogue)
}

// generatedBody builds the body of a synthesized toString or equals.
func generatedBody(owner *symbols.TypeSymbol, f *symbols.FunctionSymbol) *bound.BlockStmt {
	at := f.Decl()
	var value bound.Expr
	switch f.Name() {
	case "toString":
		value = &bound.LiteralExpr{Value: owner.Name(), Typ: builtin.String, Loc: at}
	case "equals":
		value = &bound.TypeEqualsExpr{
			Left:  &bound.ThisExpr{Typ: owner, Loc: at},
			Right: &bound.VariableExpr{Var: f.Params[0], Loc: at},
			Typ:   builtin.Bool,
			Loc:   at,
		}
	default:
		panic(fmt.Errorf("binder: no generated body for %s", f.Name()))
	}
	return &bound.BlockStmt{Stmts: []bound.Stmt{&bound.ReturnStmt{Value: value, Loc: at}}, Loc: at}
}
