package ast

import (
	"zephyr/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtVar
	StmtExpr
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtBreak
	StmtContinue
	StmtReturn
)

type Stmt interface {
	Node
	StmtKind() StmtKind
}

type BlockStmt struct {
	Stmts []Stmt
	Loc   source.Span
}

// VarStmt is `(var|const) name: Type (= init)?;`.
type VarStmt struct {
	Const bool
	Name  Ident
	Type  *TypeRef
	Init  Expr
	Loc   source.Span
}

type ExprStmt struct {
	X   Expr
	Loc source.Span
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil without else
	Loc  source.Span
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
	Loc  source.Span
}

type DoWhileStmt struct {
	Body Stmt
	Cond Expr
	Loc  source.Span
}

// ForStmt is `for (init; cond; step) body`. Each header part may be nil.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Step Expr
	Body Stmt
	Loc  source.Span
}

type BreakStmt struct{ Loc source.Span }

type ContinueStmt struct{ Loc source.Span }

type ReturnStmt struct {
	Value Expr // nil for a bare return
	Loc   source.Span
}

func (s *BlockStmt) Span() source.Span    { return s.Loc }
func (s *VarStmt) Span() source.Span      { return s.Loc }
func (s *ExprStmt) Span() source.Span     { return s.Loc }
func (s *IfStmt) Span() source.Span       { return s.Loc }
func (s *WhileStmt) Span() source.Span    { return s.Loc }
func (s *DoWhileStmt) Span() source.Span  { return s.Loc }
func (s *ForStmt) Span() source.Span      { return s.Loc }
func (s *BreakStmt) Span() source.Span    { return s.Loc }
func (s *ContinueStmt) Span() source.Span { return s.Loc }
func (s *ReturnStmt) Span() source.Span   { return s.Loc }

func (*BlockStmt) StmtKind() StmtKind    { return StmtBlock }
func (*VarStmt) StmtKind() StmtKind      { return StmtVar }
func (*ExprStmt) StmtKind() StmtKind     { return StmtExpr }
func (*IfStmt) StmtKind() StmtKind       { return StmtIf }
func (*WhileStmt) StmtKind() StmtKind    { return StmtWhile }
func (*DoWhileStmt) StmtKind() StmtKind  { return StmtDoWhile }
func (*ForStmt) StmtKind() StmtKind      { return StmtFor }
func (*BreakStmt) StmtKind() StmtKind    { return StmtBreak }
func (*ContinueStmt) StmtKind() StmtKind { return StmtContinue }
func (*ReturnStmt) StmtKind() StmtKind   { return StmtReturn }
