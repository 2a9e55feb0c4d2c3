package binder

import (
	"zephyr/internal/ast"
	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/symbols"
)

func (b *binder) bindMember(e *ast.MemberExpr) bound.Expr {
	if t, ok := b.namespaceType(e); ok {
		return t
	}
	target := b.bindExpr(e.Target)
	if bound.IsError(target) {
		return errorExpr(e.Loc)
	}
	return b.memberAccess(target, e.Name, e)
}

// namespaceType binds `ns.Type` where ns names an import namespace and is not
// shadowed by a local name.
func (b *binder) namespaceType(e *ast.MemberExpr) (bound.Expr, bool) {
	n, ok := e.Target.(*ast.NameExpr)
	if !ok {
		return nil, false
	}
	if _, shadowed := b.scope.Lookup(n.Name.Name); shadowed {
		return nil, false
	}
	if _, ok := b.prog.Imported(n.Name.Name); !ok {
		return nil, false
	}
	t, ok := b.prog.QualifiedType(n.Name.Name, e.Name.Name)
	if !ok {
		b.errorf(diag.SemaUndefinedType, e.Loc, "type %s.%s is not defined", n.Name.Name, e.Name.Name)
		return errorExpr(e.Loc), true
	}
	return &bound.TypeExpr{Typ: t, Loc: e.Loc}, true
}

// canAccess reports whether a member with vis declared in owner is visible from the
// type currently being bound.
func (b *binder) canAccess(vis symbols.Visibility, owner *symbols.TypeSymbol) bool {
	return vis == symbols.Public || owner.Equal(b.currentType())
}

func (b *binder) memberAccess(target bound.Expr, name ast.Ident, at ast.Node) bound.Expr {
	sp := at.Span()
	static := target.Kind() == bound.KindTypeExpression
	owner := memberType(target.Type())

	m, ok := owner.Member(name.Name)
	if !ok {
		b.errorf(diag.SemaUndefinedMember, name.Loc, "%s has no member %s", target.Type().Name(), name.Name)
		return errorExpr(sp)
	}
	f, ok := m.(*symbols.FieldSymbol)
	if !ok {
		b.errorf(diag.SemaFunctionMustBeCalled, name.Loc, "function %s must be called", name.Name)
		return errorExpr(sp)
	}
	if !b.canAccess(f.Visibility, f.Owner) {
		b.errorf(diag.SemaCannotAccessPrivateMember, name.Loc, "field %s of %s is private", f.Name(), f.Owner.Name())
		return errorExpr(sp)
	}
	switch {
	case static && !f.Shared:
		b.errorf(diag.SemaInstanceFieldOnType, name.Loc, "instance field %s cannot be accessed on type %s", f.Name(), owner.Name())
		return errorExpr(sp)
	case !static && f.Shared:
		b.errorf(diag.SemaSharedFieldOnInstance, name.Loc, "shared field %s must be accessed through type %s", f.Name(), owner.Name())
		return errorExpr(sp)
	}
	access := &bound.FieldAccessExpr{Target: target, Field: f, Typ: f.Type, Loc: sp}
	return specialize(access, f.Type, genericsOf(target))
}

func (b *binder) bindIndex(e *ast.IndexExpr) bound.Expr {
	target := b.bindExpr(e.Target)
	index := b.bindExpr(e.Index)
	if bound.IsError(target) || bound.IsError(index) {
		return errorExpr(e.Loc)
	}
	if !target.Type().IsArray() {
		b.errorf(diag.SemaCannotIndex, e.Target.Span(), "cannot index a value of type %s", target.Type().Name())
		return errorExpr(e.Loc)
	}
	if !index.Type().Equal(builtin.Int) {
		b.errorf(diag.SemaArrayIndexMustBeInt, e.Index.Span(), "array index must be int, found %s", index.Type().Name())
		return errorExpr(e.Loc)
	}
	return &bound.ArrayAccessExpr{Target: target, Index: index, Typ: target.Type().Elem, Loc: e.Loc}
}
