// Package lower rewrites bound bodies into a flat list of statements where all
// structured control flow is expressed with labels and gotos.
package lower

import (
	"fmt"

	"zephyr/internal/bound"
)

type lowerer struct {
	labels *bound.LabelGen
	out    []bound.Stmt
}

// Body lowers body using labels for every label it creates. With epilogue set a
// bare return is appended unless the lowered body already ends with one;
// constructors and void functions are lowered that way.
func Body(body *bound.BlockStmt, labels *bound.LabelGen, epilogue bool) *bound.BlockStmt {
	if labels == nil {
		labels = &bound.LabelGen{}
	}
	if body == nil {
		body = &bound.BlockStmt{}
	}
	l := &lowerer{labels: labels}
	l.block(body)
	if epilogue && !endsWithReturn(l.out) {
		l.emit(&bound.ReturnStmt{Loc: body.Loc.AtEnd()})
	}
	return &bound.BlockStmt{Stmts: l.out, Loc: body.Loc}
}

func endsWithReturn(stmts []bound.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*bound.ReturnStmt)
	return ok
}

func (l *lowerer) emit(s bound.Stmt) {
	l.out = append(l.out, s)
}

func (l *lowerer) block(b *bound.BlockStmt) {
	for _, s := range b.Stmts {
		l.stmt(s)
	}
}

func (l *lowerer) stmt(s bound.Stmt) {
	switch s := s.(type) {
	case *bound.BlockStmt:
		l.block(s)
	case *bound.VariableDeclaration, *bound.ExpressionStmt, *bound.ReturnStmt,
		*bound.GotoStmt, *bound.ConditionalGotoStmt, *bound.LabelStmt:
		l.emit(s)
	case *bound.IfStmt:
		l.ifStmt(s)
	case *bound.WhileStmt:
		l.whileStmt(s)
	case *bound.DoWhileStmt:
		l.doWhileStmt(s)
	case *bound.ForStmt:
		l.forStmt(s)
	default:
		panic(fmt.Errorf("lower: unexpected statement %T", s))
	}
}

// if:  gotoFalse cond else; then; goto end; else: else-branch; end:
func (l *lowerer) ifStmt(s *bound.IfStmt) {
	end := l.labels.Next("label")
	if s.Else == nil {
		l.emit(&bound.ConditionalGotoStmt{Target: end, Cond: s.Cond, Loc: s.Loc})
		l.stmt(s.Then)
		l.emit(&bound.LabelStmt{Label: end, Loc: s.Loc})
		return
	}
	elseLabel := l.labels.Next("label")
	l.emit(&bound.ConditionalGotoStmt{Target: elseLabel, Cond: s.Cond, Loc: s.Loc})
	l.stmt(s.Then)
	l.emit(&bound.GotoStmt{Target: end, Loc: s.Loc})
	l.emit(&bound.LabelStmt{Label: elseLabel, Loc: s.Else.Span()})
	l.stmt(s.Else)
	l.emit(&bound.LabelStmt{Label: end, Loc: s.Loc})
}

// while:  continue: gotoFalse cond break; body; goto continue; break:
func (l *lowerer) whileStmt(s *bound.WhileStmt) {
	l.emit(&bound.LabelStmt{Label: s.Continue, Loc: s.Loc})
	l.emit(&bound.ConditionalGotoStmt{Target: s.Break, Cond: s.Cond, Loc: s.Cond.Span()})
	l.stmt(s.Body)
	l.emit(&bound.GotoStmt{Target: s.Continue, Loc: s.Loc})
	l.emit(&bound.LabelStmt{Label: s.Break, Loc: s.Loc})
}

// do-while:  body: body; continue: gotoTrue cond body; break:
func (l *lowerer) doWhileStmt(s *bound.DoWhileStmt) {
	top := l.labels.Next("label")
	l.emit(&bound.LabelStmt{Label: top, Loc: s.Loc})
	l.stmt(s.Body)
	l.emit(&bound.LabelStmt{Label: s.Continue, Loc: s.Cond.Span()})
	l.emit(&bound.ConditionalGotoStmt{Target: top, Cond: s.Cond, JumpIfTrue: true, Loc: s.Cond.Span()})
	l.emit(&bound.LabelStmt{Label: s.Break, Loc: s.Loc})
}

// for:  init; check: gotoFalse cond break; body; continue: step; goto check; break:
// A missing condition loops until a break.
func (l *lowerer) forStmt(s *bound.ForStmt) {
	if s.Init != nil {
		l.stmt(s.Init)
	}
	check := l.labels.Next("label")
	l.emit(&bound.LabelStmt{Label: check, Loc: s.Loc})
	if s.Cond != nil {
		l.emit(&bound.ConditionalGotoStmt{Target: s.Break, Cond: s.Cond, Loc: s.Cond.Span()})
	}
	l.stmt(s.Body)
	l.emit(&bound.LabelStmt{Label: s.Continue, Loc: s.Loc})
	if s.Step != nil {
		l.emit(&bound.ExpressionStmt{X: s.Step, Loc: s.Step.Span()})
	}
	l.emit(&bound.GotoStmt{Target: check, Loc: s.Loc})
	l.emit(&bound.LabelStmt{Label: s.Break, Loc: s.Loc})
}
