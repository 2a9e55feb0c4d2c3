// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the Zephyr front end (source -> lexer -> parser -> binder) and
// fail on panics, hangs and broken span invariants.
package fuzztests
