// Package builtin holds the host-provided types: the primitive value types,
// the shared array members and the native catalog (Console, Math, Time).
// Member bodies are InternalCall nodes that Evaluate interprets.
package builtin
