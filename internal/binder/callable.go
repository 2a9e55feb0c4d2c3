package binder

import "zephyr/internal/symbols"

type callKind uint8

const (
	callNone callKind = iota
	callFunction
	callConstructor
	callUnary
	callBinary
)

// callable describes the body being bound. It is replaced as a whole on entry to
// a member and restored on exit.
type callable struct {
	kind   callKind
	sym    symbols.Callable
	shared bool
}

// hasThis reports whether `this` and implicit instance access are available.
func (c callable) hasThis() bool {
	return c.kind != callNone && !c.shared
}

func (c callable) returnType() *symbols.TypeSymbol {
	if c.sym == nil {
		return nil
	}
	return c.sym.ReturnType()
}

// withCallable swaps in c and returns a func restoring the previous callable.
func (b *binder) withCallable(c callable) func() {
	prev := b.fn
	b.fn = c
	return func() { b.fn = prev }
}
