package ast

import (
	"zephyr/internal/source"
)

type DeclKind uint8

const (
	DeclImport DeclKind = iota
	DeclExport
	DeclNativeType
	DeclType
)

// Decl is a top-level statement.
type Decl interface {
	Node
	DeclKind() DeclKind
}

// ImportDecl is `import "path" (as alias)?;`. Path holds the decoded string.
type ImportDecl struct {
	Path     string
	PathSpan source.Span
	Alias    *Ident
	Loc      source.Span
}

// ExportDecl is `export Name;`.
type ExportDecl struct {
	Name QualifiedName
	Loc  source.Span
}

// NativeTypeDecl is `native type Name;`.
type NativeTypeDecl struct {
	Name Ident
	Loc  source.Span
}

// TypeDecl is a user type with its generic placeholders and members.
type TypeDecl struct {
	Name     Ident
	Generics []Ident
	Members  []Member
	Loc      source.Span
}

func (d *ImportDecl) Span() source.Span     { return d.Loc }
func (d *ExportDecl) Span() source.Span     { return d.Loc }
func (d *NativeTypeDecl) Span() source.Span { return d.Loc }
func (d *TypeDecl) Span() source.Span       { return d.Loc }

func (*ImportDecl) DeclKind() DeclKind     { return DeclImport }
func (*ExportDecl) DeclKind() DeclKind     { return DeclExport }
func (*NativeTypeDecl) DeclKind() DeclKind { return DeclNativeType }
func (*TypeDecl) DeclKind() DeclKind       { return DeclType }
