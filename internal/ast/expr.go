package ast

import (
	"zephyr/internal/source"
	"zephyr/internal/token"
)

type ExprKind uint8

const (
	ExprParen ExprKind = iota
	ExprLiteral
	ExprUnary
	ExprBinary
	ExprConditional
	ExprName
	ExprThis
	ExprMember
	ExprIndex
	ExprArrayCreation
	ExprArrayLiteral
	ExprNew
	ExprCall
	ExprAssign
	ExprTypeCheck
)

type Expr interface {
	Node
	ExprKind() ExprKind
}

type ParenExpr struct {
	Inner Expr
	Loc   source.Span
}

// LiteralExpr keeps the literal token; the binder decodes its value.
type LiteralExpr struct {
	Tok token.Token
}

type UnaryExpr struct {
	Op      token.Token
	Operand Expr
	Loc     source.Span
}

type BinaryExpr struct {
	Op    token.Token
	Left  Expr
	Right Expr
	Loc   source.Span
}

type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Loc  source.Span
}

type NameExpr struct {
	Name Ident
}

type ThisExpr struct {
	Loc source.Span
}

// MemberExpr is `target.name`.
type MemberExpr struct {
	Target Expr
	Name   Ident
	Loc    source.Span
}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	Target Expr
	Index  Expr
	Loc    source.Span
}

// ArraySize is one `[size (: init)?]` clause of an array creation.
type ArraySize struct {
	Size Expr
	Init Expr
	Loc  source.Span
}

// ArrayCreationExpr is `new T[n : init][m]...`; len(Sizes) is the rank.
type ArrayCreationExpr struct {
	Elem  QualifiedName
	Sizes []*ArraySize
	Loc   source.Span
}

// ArrayLiteralExpr is `[a, b, c]`.
type ArrayLiteralExpr struct {
	Elems []Expr
	Loc   source.Span
}

// NewExpr is `new T<G1, G2>(args)`.
type NewExpr struct {
	Type     QualifiedName
	Generics []*TypeRef
	HasGen   bool
	Args     []Expr
	Loc      source.Span
}

type CallExpr struct {
	Callee Expr
	Args   []Expr
	Loc    source.Span
}

// AssignExpr is `target op value` where op is '=' or a compound form.
type AssignExpr struct {
	Op     token.Token
	Target Expr
	Value  Expr
	Loc    source.Span
}

// TypeCheckExpr is `x is T`.
type TypeCheckExpr struct {
	X    Expr
	Type *TypeRef
	Loc  source.Span
}

func (e *ParenExpr) Span() source.Span         { return e.Loc }
func (e *LiteralExpr) Span() source.Span       { return e.Tok.Span }
func (e *UnaryExpr) Span() source.Span         { return e.Loc }
func (e *BinaryExpr) Span() source.Span        { return e.Loc }
func (e *ConditionalExpr) Span() source.Span   { return e.Loc }
func (e *NameExpr) Span() source.Span          { return e.Name.Loc }
func (e *ThisExpr) Span() source.Span          { return e.Loc }
func (e *MemberExpr) Span() source.Span        { return e.Loc }
func (e *IndexExpr) Span() source.Span         { return e.Loc }
func (e *ArrayCreationExpr) Span() source.Span { return e.Loc }
func (e *ArrayLiteralExpr) Span() source.Span  { return e.Loc }
func (e *NewExpr) Span() source.Span           { return e.Loc }
func (e *CallExpr) Span() source.Span          { return e.Loc }
func (e *AssignExpr) Span() source.Span        { return e.Loc }
func (e *TypeCheckExpr) Span() source.Span     { return e.Loc }

func (*ParenExpr) ExprKind() ExprKind         { return ExprParen }
func (*LiteralExpr) ExprKind() ExprKind       { return ExprLiteral }
func (*UnaryExpr) ExprKind() ExprKind         { return ExprUnary }
func (*BinaryExpr) ExprKind() ExprKind        { return ExprBinary }
func (*ConditionalExpr) ExprKind() ExprKind   { return ExprConditional }
func (*NameExpr) ExprKind() ExprKind          { return ExprName }
func (*ThisExpr) ExprKind() ExprKind          { return ExprThis }
func (*MemberExpr) ExprKind() ExprKind        { return ExprMember }
func (*IndexExpr) ExprKind() ExprKind         { return ExprIndex }
func (*ArrayCreationExpr) ExprKind() ExprKind { return ExprArrayCreation }
func (*ArrayLiteralExpr) ExprKind() ExprKind  { return ExprArrayLiteral }
func (*NewExpr) ExprKind() ExprKind           { return ExprNew }
func (*CallExpr) ExprKind() ExprKind          { return ExprCall }
func (*AssignExpr) ExprKind() ExprKind        { return ExprAssign }
func (*TypeCheckExpr) ExprKind() ExprKind     { return ExprTypeCheck }
