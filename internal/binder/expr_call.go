package binder

import (
	"zephyr/internal/ast"
	"zephyr/internal/bound"
	"zephyr/internal/diag"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

func (b *binder) bindExprs(es []ast.Expr) []bound.Expr {
	out := make([]bound.Expr, len(es))
	for i, e := range es {
		out[i] = b.bindExpr(e)
	}
	return out
}

func (b *binder) bindCall(e *ast.CallExpr) bound.Expr {
	switch callee := e.Callee.(type) {
	case *ast.MemberExpr:
		if t, ok := b.namespaceType(callee); ok {
			b.bindExprs(e.Args)
			if !bound.IsError(t) {
				b.errorf(diag.SemaNotCallable, callee.Loc, "type %s is not callable", t.Type().Name())
			}
			return errorExpr(e.Loc)
		}
		target := b.bindExpr(callee.Target)
		args := b.bindExprs(e.Args)
		if bound.IsError(target) {
			return errorExpr(e.Loc)
		}
		return b.memberCall(target, callee.Name, args, e)
	case *ast.NameExpr:
		return b.bareCall(callee, b.bindExprs(e.Args), e)
	case *ast.ThisExpr:
		b.bindExprs(e.Args)
		b.errorf(diag.SemaCannotCallThis, callee.Loc, "this cannot be called")
		return errorExpr(e.Loc)
	default:
		target := b.bindExpr(e.Callee)
		b.bindExprs(e.Args)
		if !bound.IsError(target) {
			b.errorf(diag.SemaNotCallable, e.Callee.Span(), "expression of type %s is not callable", target.Type().Name())
		}
		return errorExpr(e.Loc)
	}
}

// memberCall binds `target.name(args)`; target is a TypeExpr for shared calls.
func (b *binder) memberCall(target bound.Expr, name ast.Ident, args []bound.Expr, call *ast.CallExpr) bound.Expr {
	static := target.Kind() == bound.KindTypeExpression
	owner := memberType(target.Type())

	m, ok := owner.Member(name.Name)
	if !ok {
		b.errorf(diag.SemaFunctionNotDeclared, name.Loc, "function %s is not declared in %s", name.Name, target.Type().Name())
		return errorExpr(call.Loc)
	}
	f, ok := m.(*symbols.FunctionSymbol)
	if !ok {
		b.errorf(diag.SemaNotCallable, name.Loc, "%s %s is not callable", m.Kind(), name.Name)
		return errorExpr(call.Loc)
	}
	switch {
	case static && !f.Shared:
		b.errorf(diag.SemaStaticCallToInstanceFunction, name.Loc, "instance function %s cannot be called on type %s", f.Name(), owner.Name())
		return errorExpr(call.Loc)
	case !static && f.Shared:
		b.errorf(diag.SemaInstanceCallToSharedFunction, name.Loc, "shared function %s must be called on type %s", f.Name(), owner.Name())
		return errorExpr(call.Loc)
	}
	if !b.canAccess(f.Visibility, f.Owner) {
		b.errorf(diag.SemaCannotAccessPrivateMember, name.Loc, "function %s of %s is private", f.Name(), f.Owner.Name())
		return errorExpr(call.Loc)
	}
	return b.finishCall(target, f, args, call)
}

// bareCall binds `name(args)` inside a type: an instance function through an
// implicit this, a shared one through the owning type.
func (b *binder) bareCall(callee *ast.NameExpr, args []bound.Expr, call *ast.CallExpr) bound.Expr {
	name := callee.Name.Name
	sp := callee.Name.Loc
	sym, ok := b.scope.Lookup(name)
	if !ok {
		b.errorf(diag.SemaFunctionNotDeclared, sp, "function %s is not declared", name)
		return errorExpr(call.Loc)
	}
	f, ok := sym.(*symbols.FunctionSymbol)
	if !ok {
		b.errorf(diag.SemaNotCallable, sp, "%s %s is not callable", sym.Kind(), name)
		return errorExpr(call.Loc)
	}
	var target bound.Expr
	switch {
	case f.Shared:
		target = &bound.TypeExpr{Typ: f.Owner, Loc: sp}
	case b.fn.hasThis():
		target = &bound.ThisExpr{Typ: b.currentType(), Loc: sp}
	default:
		b.errorf(diag.SemaStaticCallToInstanceFunction, sp, "instance function %s cannot be called without an instance", name)
		return errorExpr(call.Loc)
	}
	return b.finishCall(target, f, args, call)
}

func (b *binder) finishCall(target bound.Expr, f *symbols.FunctionSymbol, args []bound.Expr, call *ast.CallExpr) bound.Expr {
	generics := genericsOf(target)
	checked, ok := b.checkArgs(f.Name(), f.Params, args, call.Args, generics, call.Loc)
	if !ok {
		return errorExpr(call.Loc)
	}
	out := &bound.FunctionCallExpr{Target: target, Function: f, Args: checked, Typ: f.Return, Loc: call.Loc}
	return specialize(out, f.Return, generics)
}

// checkArgs matches bound arguments against params. Placeholder parameters take the
// type the generics map assigns them, or any value when the mapping is unknown, and
// the argument is converted back to the placeholder.
func (b *binder) checkArgs(what string, params []*symbols.ParameterSymbol, args []bound.Expr, syntax []ast.Expr,
	generics map[string]*symbols.TypeSymbol, sp source.Span) ([]bound.Expr, bool) {
	if len(args) != len(params) {
		b.errorf(diag.SemaFunctionParameterCountMismatch, sp, "%s expects %s, found %d", what, plural(len(params), "argument"), len(args))
		return nil, false
	}
	out := make([]bound.Expr, len(args))
	ok := true
	for i, arg := range args {
		if bound.IsError(arg) {
			ok = false
			continue
		}
		declared := params[i].Type
		if declared.Base().Placeholder {
			want, subst := substitute(declared, generics)
			if subst {
				arg = b.coerce(arg, want, syntax[i].Span(), diag.SemaMismatchingTypes)
			}
			if !bound.IsError(arg) && !arg.Type().Equal(declared) {
				arg = &bound.ConversionExpr{X: arg, Typ: declared, Loc: arg.Span()}
			}
		} else {
			arg = b.coerce(arg, declared, syntax[i].Span(), diag.SemaMismatchingTypes)
		}
		if bound.IsError(arg) {
			ok = false
		}
		out[i] = arg
	}
	return out, ok
}
