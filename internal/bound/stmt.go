package bound

import (
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

type BlockStmt struct {
	Stmts []Stmt
	Loc   source.Span
}

type VariableDeclaration struct {
	Var  *symbols.VariableSymbol
	Init Expr // nil when declared without initializer
	Loc  source.Span
}

type ExpressionStmt struct {
	X   Expr
	Loc source.Span
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil without else
	Loc  source.Span
}

// WhileStmt carries the labels break and continue statements of its body jump to.
type WhileStmt struct {
	Cond     Expr
	Body     Stmt
	Break    Label
	Continue Label
	Loc      source.Span
}

type DoWhileStmt struct {
	Body     Stmt
	Cond     Expr
	Break    Label
	Continue Label
	Loc      source.Span
}

// ForStmt keeps its header parts; Init, Cond and Step may be nil.
type ForStmt struct {
	Init     Stmt
	Cond     Expr
	Step     Expr
	Body     Stmt
	Break    Label
	Continue Label
	Loc      source.Span
}

type GotoStmt struct {
	Target Label
	Loc    source.Span
}

// ConditionalGotoStmt jumps when Cond evaluates to JumpIfTrue.
type ConditionalGotoStmt struct {
	Target     Label
	Cond       Expr
	JumpIfTrue bool
	Loc        source.Span
}

type LabelStmt struct {
	Label Label
	Loc   source.Span
}

type ReturnStmt struct {
	Value Expr // nil for a bare return
	Loc   source.Span
}

func (s *BlockStmt) Span() source.Span           { return s.Loc }
func (s *VariableDeclaration) Span() source.Span { return s.Loc }
func (s *ExpressionStmt) Span() source.Span      { return s.Loc }
func (s *IfStmt) Span() source.Span              { return s.Loc }
func (s *WhileStmt) Span() source.Span           { return s.Loc }
func (s *DoWhileStmt) Span() source.Span         { return s.Loc }
func (s *ForStmt) Span() source.Span             { return s.Loc }
func (s *GotoStmt) Span() source.Span            { return s.Loc }
func (s *ConditionalGotoStmt) Span() source.Span { return s.Loc }
func (s *LabelStmt) Span() source.Span           { return s.Loc }
func (s *ReturnStmt) Span() source.Span          { return s.Loc }

func (*BlockStmt) Kind() Kind           { return KindBlock }
func (*VariableDeclaration) Kind() Kind { return KindVariableDeclaration }
func (*ExpressionStmt) Kind() Kind      { return KindExpressionStatement }
func (*IfStmt) Kind() Kind              { return KindIf }
func (*WhileStmt) Kind() Kind           { return KindWhile }
func (*DoWhileStmt) Kind() Kind         { return KindDoWhile }
func (*ForStmt) Kind() Kind             { return KindFor }
func (*GotoStmt) Kind() Kind            { return KindGoto }
func (*ConditionalGotoStmt) Kind() Kind { return KindConditionalGoto }
func (*LabelStmt) Kind() Kind           { return KindLabel }
func (*ReturnStmt) Kind() Kind          { return KindReturn }

func (*BlockStmt) stmtNode()           {}
func (*VariableDeclaration) stmtNode() {}
func (*ExpressionStmt) stmtNode()      {}
func (*IfStmt) stmtNode()              {}
func (*WhileStmt) stmtNode()           {}
func (*DoWhileStmt) stmtNode()         {}
func (*ForStmt) stmtNode()             {}
func (*GotoStmt) stmtNode()            {}
func (*ConditionalGotoStmt) stmtNode() {}
func (*LabelStmt) stmtNode()           {}
func (*ReturnStmt) stmtNode()          {}
