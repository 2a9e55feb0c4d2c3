package ast

import (
	"strings"

	"zephyr/internal/diag"
	"zephyr/internal/source"
)

// Node is implemented by every syntax node.
type Node interface {
	Span() source.Span
}

// File is the root of one parsed source file.
type File struct {
	ID    source.FileID
	Path  string
	Decls []Decl
	Loc   source.Span
}

func (f *File) Span() source.Span { return f.Loc }

// Tree is what the parser hands to the binder: the syntax plus the diagnostics
// collected while lexing and parsing it.
type Tree struct {
	Root *File
	Bag  *diag.Bag
}

// Ident is a single identifier occurrence.
type Ident struct {
	Name string
	Loc  source.Span
}

func (id Ident) Span() source.Span { return id.Loc }

// QualifiedName is a dotted name such as `shapes.Circle`.
type QualifiedName struct {
	Parts []Ident
	Loc   source.Span
}

func (q QualifiedName) Span() source.Span { return q.Loc }

func (q QualifiedName) String() string {
	if len(q.Parts) == 1 {
		return q.Parts[0].Name
	}
	names := make([]string, len(q.Parts))
	for i, p := range q.Parts {
		names[i] = p.Name
	}
	return strings.Join(names, ".")
}

// Qualifier returns everything before the last part, or "" for a simple name.
func (q QualifiedName) Qualifier() string {
	if len(q.Parts) < 2 {
		return ""
	}
	return QualifiedName{Parts: q.Parts[:len(q.Parts)-1]}.String()
}

// Last returns the final identifier of the name.
func (q QualifiedName) Last() Ident {
	return q.Parts[len(q.Parts)-1]
}

// TypeRef is a type clause: a name followed by Rank pairs of brackets.
type TypeRef struct {
	Name QualifiedName
	Rank int
	Loc  source.Span
}

func (t *TypeRef) Span() source.Span { return t.Loc }

func (t *TypeRef) String() string {
	return t.Name.String() + strings.Repeat("[]", t.Rank)
}
