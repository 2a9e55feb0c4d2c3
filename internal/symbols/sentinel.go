package symbols

import "zephyr/internal/source"

// Error is the type of anything that failed to bind. Operations on it are silent so
// one mistake yields one diagnostic.
var Error = sentinel("<error>")

// Unknown is the element type of an empty array literal until the declaration or
// assignment it flows into specializes it.
var Unknown = sentinel("<unknown>")

func sentinel(name string) *TypeSymbol {
	t := NewType(name, source.Span{})
	t.Host = true
	t.State = StateDefined
	return t
}

// IsError reports whether t is the error type or an array of it.
func IsError(t *TypeSymbol) bool {
	return t == nil || t.Base().Equal(Error)
}
