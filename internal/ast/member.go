package ast

import (
	"zephyr/internal/source"
	"zephyr/internal/token"
)

type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberFunction
	MemberConstructor
	MemberBinaryOperator
	MemberUnaryOperator
)

// Member is a declaration inside a type body.
type Member interface {
	Node
	MemberKind() MemberKind
}

// Visibility as written in source; VisDefault means no modifier was given.
type Visibility uint8

const (
	VisDefault Visibility = iota
	VisPublic
	VisPrivate
)

// Modifiers collects the prefix keywords of a member.
type Modifiers struct {
	Visibility Visibility
	Shared     bool
	Loc        source.Span
}

// FieldDecl is `mods (var|const) name: Type (= init)?;`.
type FieldDecl struct {
	Mods  Modifiers
	Const bool
	Name  Ident
	Type  *TypeRef
	Init  Expr
	Loc   source.Span
}

// Param is `name: Type`.
type Param struct {
	Name Ident
	Type *TypeRef
	Loc  source.Span
}

// FunctionDecl is `mods fn name(params) (: Type)? block`. Return is nil for void.
type FunctionDecl struct {
	Mods   Modifiers
	Name   Ident
	Params []*Param
	Return *TypeRef
	Body   *BlockStmt
	Loc    source.Span
}

// ConstructorDecl is `mods constructor(params) block`.
type ConstructorDecl struct {
	Mods    Modifiers
	Keyword source.Span
	Params  []*Param
	Body    *BlockStmt
	Loc     source.Span
}

// BinaryOperatorDecl is `operator OP(other: Type): Type block`.
type BinaryOperatorDecl struct {
	Mods   Modifiers
	Op     token.Token
	Right  *Param
	Return *TypeRef
	Body   *BlockStmt
	Loc    source.Span
}

// UnaryOperatorDecl is `operator OP(): Type block`.
type UnaryOperatorDecl struct {
	Mods   Modifiers
	Op     token.Token
	Return *TypeRef
	Body   *BlockStmt
	Loc    source.Span
}

func (m *FieldDecl) Span() source.Span          { return m.Loc }
func (m *FunctionDecl) Span() source.Span       { return m.Loc }
func (m *ConstructorDecl) Span() source.Span    { return m.Loc }
func (m *BinaryOperatorDecl) Span() source.Span { return m.Loc }
func (m *UnaryOperatorDecl) Span() source.Span  { return m.Loc }
func (p *Param) Span() source.Span              { return p.Loc }

func (*FieldDecl) MemberKind() MemberKind          { return MemberField }
func (*FunctionDecl) MemberKind() MemberKind       { return MemberFunction }
func (*ConstructorDecl) MemberKind() MemberKind    { return MemberConstructor }
func (*BinaryOperatorDecl) MemberKind() MemberKind { return MemberBinaryOperator }
func (*UnaryOperatorDecl) MemberKind() MemberKind  { return MemberUnaryOperator }
