package binder

import (
	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

// coerce checks that e may flow into a slot of type to. Equal types pass, `any`
// accepts every value, an empty array literal takes the slot's array type and a
// value of an unresolved placeholder type is converted at run time. Anything else is
// reported with code and replaced by an error expression.
func (b *binder) coerce(e bound.Expr, to *symbols.TypeSymbol, sp source.Span, code diag.Code) bound.Expr {
	return b.convert(e, to, sp, code, true)
}

// coerceExact is coerce without the `any` widening; return values must match the
// declared type.
func (b *binder) coerceExact(e bound.Expr, to *symbols.TypeSymbol, sp source.Span) bound.Expr {
	return b.convert(e, to, sp, diag.SemaCannotConvert, false)
}

func (b *binder) convert(e bound.Expr, to *symbols.TypeSymbol, sp source.Span, code diag.Code, widen bool) bound.Expr {
	if bound.IsError(e) || symbols.IsError(to) {
		return e
	}
	from := e.Type()
	switch {
	case from.Equal(to):
		return e
	case isEmptyArrayLiteral(e) && to.IsArray():
		return &bound.ConversionExpr{X: e, Typ: to, Loc: e.Span()}
	case widen && builtin.AssignableTo(from, to):
		return &bound.ConversionExpr{X: e, Typ: to, Loc: e.Span()}
	case from.Base().Placeholder && from.Rank() <= to.Rank() && !to.Equal(builtin.Void):
		return &bound.ConversionExpr{X: e, Typ: to, Loc: e.Span()}
	}
	b.errorf(code, sp, "cannot convert %s to %s", from.Name(), to.Name())
	return errorExpr(sp)
}

func isEmptyArrayLiteral(e bound.Expr) bool {
	lit, ok := e.(*bound.ArrayLiteralExpr)
	return ok && len(lit.Elems) == 0
}

// genericsOf returns the generic arguments a value was created with: those of a
// `new T<...>` expression or of a variable initialized from one.
func genericsOf(e bound.Expr) map[string]*symbols.TypeSymbol {
	switch e := e.(type) {
	case *bound.InstanceCreationExpr:
		return e.Generics
	case *bound.VariableExpr:
		if v, ok := e.Var.(*symbols.VariableSymbol); ok {
			return v.Generics
		}
	}
	return nil
}

// substitute replaces a placeholder element type by its argument, keeping the rank.
func substitute(t *symbols.TypeSymbol, generics map[string]*symbols.TypeSymbol) (*symbols.TypeSymbol, bool) {
	if t == nil || len(generics) == 0 {
		return t, false
	}
	base := t.Base()
	if !base.Placeholder {
		return t, false
	}
	arg, ok := generics[base.Name()]
	if !ok {
		return t, false
	}
	return symbols.ArrayOfRank(arg, t.Rank()), true
}

// specialize wraps e in a conversion to the type its placeholder stands for.
func specialize(e bound.Expr, declared *symbols.TypeSymbol, generics map[string]*symbols.TypeSymbol) bound.Expr {
	if t, ok := substitute(declared, generics); ok {
		return &bound.ConversionExpr{X: e, Typ: t, Loc: e.Span()}
	}
	return e
}
