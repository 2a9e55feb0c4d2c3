package bound

import (
	"fmt"

	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

// Node is implemented by every bound statement and expression.
type Node interface {
	Kind() Kind
	Span() source.Span
}

// Stmt is a bound statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a bound expression. Type is never nil; failed bindings use symbols.Error.
type Expr interface {
	Node
	Type() *symbols.TypeSymbol
}

// Label names a jump target inside one lowered body.
type Label string

// LabelGen hands out unique labels such as `break$3`. One generator is shared by a
// binder and the lowering of every body it binds.
type LabelGen struct {
	n int
}

// Next returns prefix$N with N strictly increasing.
func (g *LabelGen) Next(prefix string) Label {
	g.n++
	return Label(fmt.Sprintf("%s$%d", prefix, g.n))
}
