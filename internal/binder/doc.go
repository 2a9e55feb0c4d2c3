// Package binder turns a parsed Zephyr file into a bound program.
//
// Binding runs two sweeps over the file. The declare sweep resolves imports,
// declares every type with its generics and member signatures, and adds the default
// toString, equals and constructor members. The define sweep binds field
// initializers and callable bodies against the scopes built by the first sweep and
// lowers every body to labels and jumps.
//
// Rule violations become diagnostics in the program bag and binding continues with
// error-typed placeholders. Unknown syntax kinds are internal faults and panic.
package binder
