package binder

import (
	"zephyr/internal/ast"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/scope"
	"zephyr/internal/symbols"
)

// resolveType turns a type clause into a symbol. A missing clause is void; an
// unknown name is reported and yields the error type.
func (b *binder) resolveType(ref *ast.TypeRef) *symbols.TypeSymbol {
	if ref == nil {
		return builtin.Void
	}
	base, ok := b.lookupType(ref.Name)
	if !ok {
		b.errorf(diag.SemaUndefinedType, ref.Name.Loc, "type %s is not defined", ref.Name.String())
		return symbols.Error
	}
	return symbols.ArrayOfRank(base, ref.Rank)
}

// lookupType finds a type by simple or namespace-qualified name. Simple names see
// the generics of enclosing types, then program types, then exported imports.
func (b *binder) lookupType(name ast.QualifiedName) (*symbols.TypeSymbol, bool) {
	if len(name.Parts) > 1 {
		return b.prog.QualifiedType(name.Qualifier(), name.Last().Name)
	}
	simple := name.Last().Name
	for s := b.scope; s != nil; s = s.Parent() {
		switch s := s.(type) {
		case *scope.Type:
			if g, ok := s.Generic(simple); ok {
				return g, true
			}
		case *scope.Program:
			if t, ok := s.Type(simple); ok {
				return t, true
			}
			return s.ImportedType(simple)
		}
	}
	return nil, false
}

// memberType is the type whose members apply to values of t: the shared array
// builtin for every array type.
func memberType(t *symbols.TypeSymbol) *symbols.TypeSymbol {
	if t.IsArray() {
		return builtin.Array
	}
	return t
}
