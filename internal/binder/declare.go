package binder

import (
	"context"
	"errors"
	"fmt"

	"zephyr/internal/ast"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/scope"
	"zephyr/internal/symbols"
	"zephyr/internal/trace"
)

// declareAll is the first sweep: imports, types and natives in source order, then
// members of every user type, then exports.
func (b *binder) declareAll(ctx context.Context) {
	var exports []*ast.ExportDecl
	for _, decl := range b.file.Decls {
		switch decl.DeclKind() {
		case ast.DeclImport:
			b.bindImport(ctx, decl.(*ast.ImportDecl))
		case ast.DeclType:
			b.declareType(decl.(*ast.TypeDecl))
		case ast.DeclNativeType:
			b.declareNative(decl.(*ast.NativeTypeDecl))
		case ast.DeclExport:
			exports = append(exports, decl.(*ast.ExportDecl))
		default:
			panic(fmt.Errorf("binder: unexpected declaration %T", decl))
		}
	}

	for _, te := range b.types {
		_, span := trace.Start(ctx, trace.ScopeNode, "type:"+te.sym.Name())
		b.declareMembers(te)
		b.addDefaults(te)
		te.sym.State = symbols.StateMembersDeclared
		span.End("")
	}

	for _, exp := range exports {
		b.declareExport(exp)
	}
}

func (b *binder) declareType(decl *ast.TypeDecl) {
	name := decl.Name.Name
	switch {
	case builtin.IsReservedName(name):
		b.errorf(diag.SemaTypeAlreadyDeclared, decl.Name.Loc, "type %s is a builtin type", name)
		return
	case b.prog.IsTypeDeclared(name):
		prev, _ := b.prog.Type(name)
		b.redeclared(diag.SemaTypeAlreadyDeclared, decl.Name.Loc, prev, "type %s is already declared", name)
		return
	}

	sym := symbols.NewType(name, decl.Name.Loc)
	if err := b.prog.DeclareType(sym); err != nil {
		panic(fmt.Errorf("binder: %w", err))
	}
	ts := scope.NewType(b.prog, sym)
	b.prog.DefineType(sym, ts)

	generics := make([]string, 0, len(decl.Generics))
	for _, g := range decl.Generics {
		if builtin.IsReservedName(g.Name) {
			b.errorf(diag.SemaReservedTypeName, g.Loc, "generic parameter %s uses a reserved type name", g.Name)
			continue
		}
		if err := ts.DeclareGeneric(symbols.NewPlaceholder(g.Name, g.Loc)); err != nil {
			b.errorf(diag.SemaGenericAlreadyDeclared, g.Loc, "generic parameter %s is already declared", g.Name)
			continue
		}
		generics = append(generics, g.Name)
	}
	sym.SetGenerics(generics)

	b.types = append(b.types, &typeEntry{decl: decl, sym: sym, scope: ts})
}

func (b *binder) declareNative(decl *ast.NativeTypeDecl) {
	name := decl.Name.Name
	host, ok := builtin.Native(name)
	if !ok {
		b.errorf(diag.SemaUnknownNativeType, decl.Name.Loc, "unknown native type %s", name)
		return
	}
	if b.prog.IsTypeDeclared(name) {
		prev, _ := b.prog.Type(name)
		b.redeclared(diag.SemaTypeAlreadyDeclared, decl.Name.Loc, prev, "type %s is already declared", name)
		return
	}
	if err := b.prog.DeclareType(host.Symbol()); err != nil {
		panic(fmt.Errorf("binder: %w", err))
	}
	b.prog.DefineType(host.Symbol(), host.Scope())
}

func (b *binder) declareExport(decl *ast.ExportDecl) {
	name := decl.Name.String()
	sym, ok := b.prog.Lookup(name)
	if !ok || len(decl.Name.Parts) != 1 {
		b.errorf(diag.SemaUndefinedType, decl.Name.Loc, "cannot export undefined type %s", name)
		return
	}
	if err := b.prog.DeclareExport(symbols.NewExport(sym.Name(), decl.Name.Loc)); err != nil {
		if errors.Is(err, scope.ErrAlreadyDeclared) {
			b.errorf(diag.SemaExportAlreadyDeclared, decl.Name.Loc, "type %s is already exported", name)
			return
		}
		panic(fmt.Errorf("binder: %w", err))
	}
}
