package binder

import (
	"fmt"

	"zephyr/internal/ast"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/symbols"
)

// declareMembers declares every member of te in source order and queues the ones
// that succeeded for definition.
func (b *binder) declareMembers(te *typeEntry) {
	defer b.enterScope(te.scope)()

	for _, m := range te.decl.Members {
		var sym symbols.Symbol
		switch m.MemberKind() {
		case ast.MemberField:
			sym = b.declareField(te, m.(*ast.FieldDecl))
		case ast.MemberFunction:
			sym = b.declareFunction(te, m.(*ast.FunctionDecl))
		case ast.MemberConstructor:
			sym = b.declareConstructor(te, m.(*ast.ConstructorDecl))
		case ast.MemberUnaryOperator:
			sym = b.declareUnaryOperator(te, m.(*ast.UnaryOperatorDecl))
		case ast.MemberBinaryOperator:
			sym = b.declareBinaryOperator(te, m.(*ast.BinaryOperatorDecl))
		default:
			panic(fmt.Errorf("binder: unexpected member %T", m))
		}
		if sym != nil {
			te.pending = append(te.pending, pending{syntax: m, sym: sym})
		}
	}
}

func visibility(mods ast.Modifiers, def symbols.Visibility) symbols.Visibility {
	switch mods.Visibility {
	case ast.VisPublic:
		return symbols.Public
	case ast.VisPrivate:
		return symbols.Private
	default:
		return def
	}
}

func isReservedMember(name string) bool {
	return name == "toString" || name == "equals"
}

func (b *binder) declareField(te *typeEntry, decl *ast.FieldDecl) symbols.Symbol {
	name := decl.Name.Name
	if isReservedMember(name) {
		b.errorf(diag.SemaReservedFieldName, decl.Name.Loc, "%s cannot be used as a field name", name)
		return nil
	}
	if existing, ok := te.sym.Member(name); ok {
		if existing.Kind() == symbols.KindFunction {
			b.errorf(diag.SemaFunctionDeclaredButFieldExpected, decl.Name.Loc, "%s is already declared as a function in %s", name, te.sym.Name())
		} else {
			b.errorf(diag.SemaFieldAlreadyDeclared, decl.Name.Loc, "field %s is already declared in %s", name, te.sym.Name())
		}
		return nil
	}

	f := symbols.NewField(name, b.resolveType(decl.Type), decl.Name.Loc)
	f.ReadOnly = decl.Const
	f.Shared = decl.Mods.Shared
	f.Visibility = visibility(decl.Mods, symbols.Private)
	if err := te.scope.DeclareField(f); err != nil {
		panic(fmt.Errorf("binder: %w", err))
	}
	return f
}

// declareParams resolves a parameter list. Duplicate names are reported and left
// out of the signature.
func (b *binder) declareParams(params []*ast.Param) []*symbols.ParameterSymbol {
	out := make([]*symbols.ParameterSymbol, 0, len(params))
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, dup := seen[p.Name.Name]; dup {
			b.errorf(diag.SemaParameterAlreadyDeclared, p.Name.Loc, "parameter %s is already declared", p.Name.Name)
			continue
		}
		seen[p.Name.Name] = struct{}{}
		ps := symbols.NewParameter(p.Name.Name, b.resolveType(p.Type), p.Name.Loc)
		ps.ReadOnly = true
		out = append(out, ps)
	}
	return out
}

func (b *binder) declareFunction(te *typeEntry, decl *ast.FunctionDecl) symbols.Symbol {
	name := decl.Name.Name
	if existing, ok := te.sym.Member(name); ok {
		if existing.Kind() == symbols.KindField {
			b.errorf(diag.SemaFieldDeclaredButFunctionExpected, decl.Name.Loc, "%s is already declared as a field in %s", name, te.sym.Name())
		} else {
			b.errorf(diag.SemaFunctionAlreadyDeclared, decl.Name.Loc, "function %s is already declared in %s", name, te.sym.Name())
		}
		return nil
	}

	f := symbols.NewFunction(name, b.declareParams(decl.Params), b.resolveType(decl.Return), decl.Name.Loc)
	f.Shared = decl.Mods.Shared
	f.Visibility = visibility(decl.Mods, symbols.Private)
	if err := te.scope.DeclareFunction(f); err != nil {
		panic(fmt.Errorf("binder: %w", err))
	}
	return f
}

func (b *binder) declareConstructor(te *typeEntry, decl *ast.ConstructorDecl) symbols.Symbol {
	c := symbols.NewConstructor(te.sym, b.declareParams(decl.Params), decl.Keyword)
	c.Visibility = visibility(decl.Mods, symbols.Public)
	if err := te.scope.DeclareConstructor(c); err != nil {
		b.errorf(diag.SemaConstructorAlreadyDeclared, decl.Keyword, "%s already has a constructor with %d parameters", te.sym.Name(), len(c.Params))
		return nil
	}
	return c
}

// operatorReturn resolves an operator's return clause; operators always produce a value.
func (b *binder) operatorReturn(op string, ref *ast.TypeRef, at ast.Node) (*symbols.TypeSymbol, bool) {
	ret := b.resolveType(ref)
	if ret.Equal(builtin.Void) {
		b.errorf(diag.SemaOperatorCannotReturnVoid, at.Span(), "operator %s cannot return void", op)
		return nil, false
	}
	return ret, true
}

func (b *binder) declareUnaryOperator(te *typeEntry, decl *ast.UnaryOperatorDecl) symbols.Symbol {
	op := decl.Op.Text
	ret, ok := b.operatorReturn(op, decl.Return, decl)
	if !ok {
		return nil
	}
	u := symbols.NewUnaryOperator(op, ret, decl.Op.Span)
	if err := te.scope.DeclareUnaryOperator(u); err != nil {
		b.errorf(diag.SemaUnaryOperatorAlreadyDeclared, decl.Op.Span, "unary operator %s is already declared in %s", op, te.sym.Name())
		return nil
	}
	return u
}

func (b *binder) declareBinaryOperator(te *typeEntry, decl *ast.BinaryOperatorDecl) symbols.Symbol {
	op := decl.Op.Text
	ret, ok := b.operatorReturn(op, decl.Return, decl)
	if !ok {
		return nil
	}
	if decl.Right == nil {
		b.errorf(diag.SemaInvalidOperatorSignature, decl.Op.Span, "binary operator %s takes exactly one parameter", op)
		return nil
	}
	right := symbols.NewParameter(decl.Right.Name.Name, b.resolveType(decl.Right.Type), decl.Right.Name.Loc)
	right.ReadOnly = true
	if right.Type.Equal(builtin.Void) {
		b.errorf(diag.SemaInvalidOperatorSignature, decl.Right.Loc, "parameter of binary operator %s cannot be void", op)
		return nil
	}
	bo := symbols.NewBinaryOperator(op, right, ret, decl.Op.Span)
	if err := te.scope.DeclareBinaryOperator(bo); err != nil {
		b.errorf(diag.SemaBinaryOperatorAlreadyDeclared, decl.Op.Span, "binary operator %s(%s) is already declared in %s", op, right.Type.Name(), te.sym.Name())
		return nil
	}
	return bo
}
