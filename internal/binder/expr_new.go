package binder

import (
	"zephyr/internal/ast"
	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/symbols"
)

// bindNew binds `new T<G...>(args)`. Every generic argument must resolve and the
// constructor is chosen by arity.
func (b *binder) bindNew(e *ast.NewExpr) bound.Expr {
	args := b.bindExprs(e.Args)
	typ, ok := b.lookupType(e.Type)
	if !ok {
		b.errorf(diag.SemaUndefinedType, e.Type.Loc, "type %s is not defined", e.Type.String())
		return errorExpr(e.Loc)
	}

	params := typ.Generics()
	if len(e.Generics) != len(params) {
		b.errorf(diag.SemaGenericParameterCountMismatch, e.Type.Loc, "type %s expects %s, found %d",
			typ.Name(), plural(len(params), "generic argument"), len(e.Generics))
		return errorExpr(e.Loc)
	}
	var generics map[string]*symbols.TypeSymbol
	if len(params) > 0 {
		generics = make(map[string]*symbols.TypeSymbol, len(params))
		for i, ref := range e.Generics {
			arg := b.resolveType(ref)
			if symbols.IsError(arg) {
				return errorExpr(e.Loc)
			}
			generics[params[i]] = arg
		}
	}

	ctor, ok := typ.Constructor(len(args))
	if !ok {
		b.errorf(diag.SemaConstructorNotDefined, e.Type.Loc, "type %s has no constructor with %s", typ.Name(), plural(len(args), "parameter"))
		return errorExpr(e.Loc)
	}
	if !b.canAccess(ctor.Visibility, ctor.Owner) {
		b.errorf(diag.SemaCannotAccessPrivateMember, e.Type.Loc, "constructor %s is private", ctor)
		return errorExpr(e.Loc)
	}
	checked, ok := b.checkArgs(typ.Name(), ctor.Params, args, e.Args, generics, e.Loc)
	if !ok {
		return errorExpr(e.Loc)
	}
	return &bound.InstanceCreationExpr{Typ: typ, Constructor: ctor, Args: checked, Generics: generics, Loc: e.Loc}
}

// bindArrayCreation binds `new T[n : init][m]...`; each size clause adds one rank and
// a fill value must have the element type.
func (b *binder) bindArrayCreation(e *ast.ArrayCreationExpr) bound.Expr {
	elem, ok := b.lookupType(e.Elem)
	if !ok {
		b.errorf(diag.SemaUndefinedType, e.Elem.Loc, "type %s is not defined", e.Elem.String())
		return errorExpr(e.Loc)
	}
	if len(e.Sizes) == 0 {
		b.errorf(diag.SemaArrayCreationMustHaveSize, e.Loc, "array creation must specify at least one size")
		return errorExpr(e.Loc)
	}

	failed := false
	sizes := make([]bound.ArraySize, len(e.Sizes))
	for i, s := range e.Sizes {
		size := b.bindExpr(s.Size)
		switch {
		case bound.IsError(size):
			failed = true
		case !size.Type().Equal(builtin.Int):
			b.errorf(diag.SemaArrayCreationSizeMustBeInt, s.Size.Span(), "array size must be int, found %s", size.Type().Name())
			failed = true
		}
		sizes[i].Size = size
		if s.Init == nil {
			continue
		}
		init := b.bindExpr(s.Init)
		switch {
		case bound.IsError(init):
			failed = true
		case !init.Type().Equal(elem):
			b.errorf(diag.SemaArrayCreationInitializerTypeMismatch, s.Init.Span(), "array initializer must be %s, found %s",
				elem.Name(), init.Type().Name())
			failed = true
		}
		sizes[i].Init = init
	}
	if failed {
		return errorExpr(e.Loc)
	}
	return &bound.ArrayCreationExpr{Elem: elem, Sizes: sizes, Typ: symbols.ArrayOfRank(elem, len(sizes)), Loc: e.Loc}
}

// bindArrayLiteral types `[a, b]` by its first element. An empty literal is
// `<unknown>[]` until a declaration or assignment specializes it.
func (b *binder) bindArrayLiteral(e *ast.ArrayLiteralExpr) bound.Expr {
	elems := b.bindExprs(e.Elems)
	if len(elems) == 0 {
		return &bound.ArrayLiteralExpr{Typ: symbols.ArrayOf(symbols.Unknown), Loc: e.Loc}
	}
	for _, el := range elems {
		if bound.IsError(el) {
			return errorExpr(e.Loc)
		}
	}
	first := elems[0].Type()
	for i, el := range elems[1:] {
		if !el.Type().Equal(first) {
			b.errorf(diag.SemaMismatchingTypes, e.Elems[i+1].Span(), "array element must be %s, found %s", first.Name(), el.Type().Name())
			return errorExpr(e.Loc)
		}
	}
	return &bound.ArrayLiteralExpr{Elems: elems, Typ: symbols.ArrayOf(first), Loc: e.Loc}
}
