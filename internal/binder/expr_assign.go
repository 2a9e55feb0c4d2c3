package binder

import (
	"zephyr/internal/ast"
	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/symbols"
	"zephyr/internal/token"
)

func (b *binder) bindAssign(e *ast.AssignExpr) bound.Expr {
	target := b.bindExpr(e.Target)
	value := b.bindExpr(e.Value)
	if e.Op.Kind != token.Assign {
		b.errorf(diag.FutNotSupported, e.Op.Span, "compound assignment %s is not supported yet", e.Op.Text)
		return errorExpr(e.Loc)
	}
	if bound.IsError(target) {
		return errorExpr(e.Loc)
	}

	// a specialized generic field is stored through its placeholder type
	var unwrap *bound.ConversionExpr
	if conv, ok := target.(*bound.ConversionExpr); ok {
		if _, ok := conv.X.(*bound.FieldAccessExpr); ok {
			unwrap = conv
			target = conv.X
		}
	}

	switch t := target.(type) {
	case *bound.VariableExpr:
		if t.Var.IsReadOnly() {
			b.errorf(diag.SemaCannotAssignReadOnly, e.Target.Span(), "cannot assign to read-only %s %s", t.Var.Kind(), t.Var.Name())
			return errorExpr(e.Loc)
		}
	case *bound.FieldAccessExpr:
		if t.Field.ReadOnly {
			b.errorf(diag.SemaCannotAssignReadOnly, e.Target.Span(), "cannot assign to read-only field %s", t.Field.Name())
			return errorExpr(e.Loc)
		}
	case *bound.ArrayAccessExpr:
	default:
		b.errorf(diag.SemaInvalidAssignmentTarget, e.Target.Span(), "cannot assign to this expression")
		return errorExpr(e.Loc)
	}

	if unwrap != nil {
		value = b.coerce(value, unwrap.Typ, e.Value.Span(), diag.SemaCannotConvert)
		if !bound.IsError(value) {
			value = &bound.ConversionExpr{X: value, Typ: target.Type(), Loc: value.Span()}
		}
	} else {
		value = b.coerce(value, target.Type(), e.Value.Span(), diag.SemaCannotConvert)
	}
	if bound.IsError(value) {
		return errorExpr(e.Loc)
	}
	return &bound.AssignmentExpr{Target: target, Value: value, Loc: e.Loc}
}

// bindTypeCheck binds `x is T`. Only checks that can go either way at run time are
// accepted: from any or a placeholder, or towards a placeholder.
func (b *binder) bindTypeCheck(e *ast.TypeCheckExpr) bound.Expr {
	x := b.bindExpr(e.X)
	target := b.resolveType(e.Type)
	if bound.IsError(x) || symbols.IsError(target) {
		return errorExpr(e.Loc)
	}
	xt := x.Type()
	check := &bound.TypeCheckExpr{X: x, Target: target, Typ: builtin.Bool, Loc: e.Loc}
	switch {
	case xt.Equal(builtin.Void) || target.Equal(builtin.Void):
		b.errorf(diag.SemaCannotCheckTypeOfVoid, e.Loc, "cannot check the type of void")
		return errorExpr(e.Loc)
	case xt.Equal(target) || target.Equal(builtin.Any):
		b.warnf(diag.SemaRedundantTypeCheck, e.Loc, "%s is always %s", xt.Name(), target.Name())
		return check
	case xt.Equal(builtin.Any) || xt.Base().Placeholder || target.Base().Placeholder:
		return check
	default:
		b.errorf(diag.SemaCannotCheckType, e.Loc, "a value of type %s can never be %s", xt.Name(), target.Name())
		return errorExpr(e.Loc)
	}
}
