package scope

import (
	"fmt"

	"zephyr/internal/bound"
	"zephyr/internal/symbols"
)

// Type owns one type's generics, member signatures and bound bodies. Member
// signatures are stored on the TypeSymbol itself; bodies and initializers stay here.
type Type struct {
	parent       Scope
	typ          *symbols.TypeSymbol
	generics     map[string]*symbols.TypeSymbol
	bodies       map[symbols.Symbol]*bound.BlockStmt
	initializers map[*symbols.FieldSymbol]bound.Expr
}

// NewType opens the scope of typ. parent is the program for user types and nil
// for host types shared between programs.
func NewType(parent Scope, typ *symbols.TypeSymbol) *Type {
	return &Type{
		parent:       parent,
		typ:          typ,
		generics:     make(map[string]*symbols.TypeSymbol),
		bodies:       make(map[symbols.Symbol]*bound.BlockStmt),
		initializers: make(map[*symbols.FieldSymbol]bound.Expr),
	}
}

func (*Type) Kind() Kind                        { return KindType }
func (s *Type) Parent() Scope                   { return s.parent }
func (s *Type) TypeSymbol() *symbols.TypeSymbol { return s.typ }

// Lookup resolves generics, then fields and functions, then the parent chain.
func (s *Type) Lookup(name string) (symbols.Symbol, bool) {
	if g, ok := s.generics[name]; ok {
		return g, true
	}
	if m, ok := s.typ.Member(name); ok {
		return m, true
	}
	if s.parent == nil {
		return nil, false
	}
	return s.parent.Lookup(name)
}

// DeclareGeneric adds a placeholder type named name.
func (s *Type) DeclareGeneric(g *symbols.TypeSymbol) error {
	if _, exists := s.generics[g.Name()]; exists {
		return fmt.Errorf("generic %s: %w", g.Name(), ErrAlreadyDeclared)
	}
	s.generics[g.Name()] = g
	return nil
}

func (s *Type) Generic(name string) (*symbols.TypeSymbol, bool) {
	g, ok := s.generics[name]
	return g, ok
}

func (s *Type) DeclareField(f *symbols.FieldSymbol) error {
	f.Owner = s.typ
	if !s.typ.AddMember(f) {
		return fmt.Errorf("field %s: %w", f.Name(), ErrAlreadyDeclared)
	}
	return nil
}

func (s *Type) DeclareFunction(f *symbols.FunctionSymbol) error {
	f.Owner = s.typ
	if !s.typ.AddMember(f) {
		return fmt.Errorf("function %s: %w", f.Name(), ErrAlreadyDeclared)
	}
	return nil
}

func (s *Type) DeclareConstructor(c *symbols.ConstructorSymbol) error {
	c.Owner = s.typ
	if !s.typ.AddConstructor(c) {
		return fmt.Errorf("constructor with %d parameters: %w", len(c.Params), ErrAlreadyDeclared)
	}
	return nil
}

func (s *Type) DeclareUnaryOperator(u *symbols.UnaryOperatorSymbol) error {
	u.Owner = s.typ
	if !s.typ.AddUnaryOperator(u) {
		return fmt.Errorf("unary operator %s: %w", u.Name(), ErrAlreadyDeclared)
	}
	return nil
}

func (s *Type) DeclareBinaryOperator(b *symbols.BinaryOperatorSymbol) error {
	b.Owner = s.typ
	if !s.typ.AddBinaryOperator(b) {
		return fmt.Errorf("binary operator %s(%s): %w", b.Name(), b.Right.Type.Name(), ErrAlreadyDeclared)
	}
	return nil
}

func (s *Type) DefineField(f *symbols.FieldSymbol, init bound.Expr) {
	if init != nil {
		s.initializers[f] = init
	}
}

func (s *Type) DefineFunction(f *symbols.FunctionSymbol, body *bound.BlockStmt) {
	s.bodies[f] = body
}

func (s *Type) DefineConstructor(c *symbols.ConstructorSymbol, body *bound.BlockStmt) {
	s.bodies[c] = body
}

func (s *Type) DefineUnaryOperator(u *symbols.UnaryOperatorSymbol, body *bound.BlockStmt) {
	s.bodies[u] = body
}

func (s *Type) DefineBinaryOperator(b *symbols.BinaryOperatorSymbol, body *bound.BlockStmt) {
	s.bodies[b] = body
}

// Body returns the bound body of a function, constructor or operator.
func (s *Type) Body(sym symbols.Symbol) (*bound.BlockStmt, bool) {
	b, ok := s.bodies[sym]
	return b, ok
}

// Initializer returns the bound initializer of a field.
func (s *Type) Initializer(f *symbols.FieldSymbol) (bound.Expr, bool) {
	e, ok := s.initializers[f]
	return e, ok
}
