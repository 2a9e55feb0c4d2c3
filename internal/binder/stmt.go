package binder

import (
	"fmt"

	"zephyr/internal/ast"
	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/scope"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

func (b *binder) bindStmt(s ast.Stmt) bound.Stmt {
	switch s.StmtKind() {
	case ast.StmtBlock:
		return b.bindBlock(s.(*ast.BlockStmt))
	case ast.StmtVar:
		return b.bindVar(s.(*ast.VarStmt))
	case ast.StmtExpr:
		st := s.(*ast.ExprStmt)
		return &bound.ExpressionStmt{X: b.bindExpr(st.X), Loc: st.Loc}
	case ast.StmtIf:
		return b.bindIf(s.(*ast.IfStmt))
	case ast.StmtWhile:
		return b.bindWhile(s.(*ast.WhileStmt))
	case ast.StmtDoWhile:
		return b.bindDoWhile(s.(*ast.DoWhileStmt))
	case ast.StmtFor:
		return b.bindFor(s.(*ast.ForStmt))
	case ast.StmtBreak:
		return b.bindJump(s.Span(), "break", func(l loopLabels) bound.Label { return l.brk })
	case ast.StmtContinue:
		return b.bindJump(s.Span(), "continue", func(l loopLabels) bound.Label { return l.cont })
	case ast.StmtReturn:
		return b.bindReturn(s.(*ast.ReturnStmt))
	default:
		panic(fmt.Errorf("binder: unexpected statement %T", s))
	}
}

// bindStmts binds the statements of blk into the current scope.
func (b *binder) bindStmts(blk *ast.BlockStmt) *bound.BlockStmt {
	out := &bound.BlockStmt{Stmts: make([]bound.Stmt, 0, len(blk.Stmts)), Loc: blk.Loc}
	for _, s := range blk.Stmts {
		out.Stmts = append(out.Stmts, b.bindStmt(s))
	}
	return out
}

func (b *binder) bindBlock(blk *ast.BlockStmt) *bound.BlockStmt {
	defer b.enterScope(scope.NewBlock(b.scope))()
	return b.bindStmts(blk)
}

// bindVar declares the variable even when its type or initializer is wrong so later
// uses do not cascade into UndefinedName.
func (b *binder) bindVar(s *ast.VarStmt) bound.Stmt {
	blk := b.block()
	name := s.Name.Name

	typ := b.resolveType(s.Type)
	v := symbols.NewVariable(name, typ, s.Const, s.Name.Loc)

	var init bound.Expr
	if s.Init != nil {
		init = b.coerce(b.bindExpr(s.Init), typ, s.Init.Span(), diag.SemaCannotConvert)
		v.Generics = genericsOf(init)
	} else if s.Const {
		b.errorf(diag.SemaConstVariableMustBeInitialized, s.Name.Loc, "constant %s must be initialized", name)
	}

	if blk.IsVariableDeclared(name) {
		b.errorf(diag.SemaVariableAlreadyDeclared, s.Name.Loc, "variable %s is already declared in this block", name)
	} else if err := blk.Declare(v); err != nil {
		panic(fmt.Errorf("binder: %w", err))
	}
	return &bound.VariableDeclaration{Var: v, Init: init, Loc: s.Loc}
}

// bindCondition requires a bool condition.
func (b *binder) bindCondition(e ast.Expr) bound.Expr {
	cond := b.bindExpr(e)
	return b.coerce(cond, builtin.Bool, e.Span(), diag.SemaCannotConvert)
}

func (b *binder) bindIf(s *ast.IfStmt) bound.Stmt {
	out := &bound.IfStmt{Cond: b.bindCondition(s.Cond), Loc: s.Loc}
	out.Then = b.bindNested(s.Then)
	if s.Else != nil {
		out.Else = b.bindNested(s.Else)
	}
	return out
}

// bindNested binds a branch or loop body in its own block scope.
func (b *binder) bindNested(s ast.Stmt) bound.Stmt {
	defer b.enterScope(scope.NewBlock(b.scope))()
	return b.bindStmt(s)
}

func (b *binder) pushLoop() loopLabels {
	l := loopLabels{brk: b.labels.Next("break"), cont: b.labels.Next("continue")}
	b.loops = append(b.loops, l)
	return l
}

func (b *binder) popLoop() {
	b.loops = b.loops[:len(b.loops)-1]
}

func (b *binder) bindWhile(s *ast.WhileStmt) bound.Stmt {
	cond := b.bindCondition(s.Cond)
	l := b.pushLoop()
	body := b.bindNested(s.Body)
	b.popLoop()
	return &bound.WhileStmt{Cond: cond, Body: body, Break: l.brk, Continue: l.cont, Loc: s.Loc}
}

func (b *binder) bindDoWhile(s *ast.DoWhileStmt) bound.Stmt {
	l := b.pushLoop()
	body := b.bindNested(s.Body)
	b.popLoop()
	cond := b.bindCondition(s.Cond)
	return &bound.DoWhileStmt{Body: body, Cond: cond, Break: l.brk, Continue: l.cont, Loc: s.Loc}
}

func (b *binder) bindFor(s *ast.ForStmt) bound.Stmt {
	defer b.enterScope(scope.NewBlock(b.scope))()
	out := &bound.ForStmt{Loc: s.Loc}
	if s.Init != nil {
		out.Init = b.bindStmt(s.Init)
	}
	if s.Cond != nil {
		out.Cond = b.bindCondition(s.Cond)
	}
	if s.Step != nil {
		out.Step = b.bindExpr(s.Step)
	}
	l := b.pushLoop()
	out.Body = b.bindNested(s.Body)
	b.popLoop()
	out.Break, out.Continue = l.brk, l.cont
	return out
}

func (b *binder) bindJump(sp source.Span, what string, target func(loopLabels) bound.Label) bound.Stmt {
	if len(b.loops) == 0 {
		b.errorf(diag.SemaInvalidBreakOrContinue, sp, "%s outside of a loop", what)
		return &bound.ExpressionStmt{X: errorExpr(sp), Loc: sp}
	}
	return &bound.GotoStmt{Target: target(b.loops[len(b.loops)-1]), Loc: sp}
}

func (b *binder) bindReturn(s *ast.ReturnStmt) bound.Stmt {
	out := &bound.ReturnStmt{Loc: s.Loc}
	var value bound.Expr
	if s.Value != nil {
		value = b.bindExpr(s.Value)
	}

	switch b.fn.kind {
	case callConstructor:
		if value != nil {
			b.errorf(diag.SemaConstructorCannotReturnValue, s.Value.Span(), "constructors cannot return a value")
		}
	case callUnary, callBinary:
		if value == nil {
			b.errorf(diag.SemaOperatorMustReturnValue, s.Loc, "operator %s must return a value", b.fn.sym.Name())
			break
		}
		out.Value = b.coerce(value, b.fn.returnType(), s.Value.Span(), diag.SemaCannotConvert)
	case callFunction:
		ret := b.fn.returnType()
		switch {
		case ret.Equal(builtin.Void) && value != nil:
			b.errorf(diag.SemaVoidFunctionReturnsValue, s.Value.Span(), "function %s returns void and cannot return a value", b.fn.sym.Name())
		case !ret.Equal(builtin.Void) && value == nil:
			b.errorf(diag.SemaMissingReturnValue, s.Loc, "function %s must return a value of type %s", b.fn.sym.Name(), ret.Name())
		case value != nil:
			out.Value = b.coerceExact(value, ret, s.Value.Span())
		}
	default:
		panic(fmt.Errorf("binder: return outside of a callable body"))
	}
	return out
}
