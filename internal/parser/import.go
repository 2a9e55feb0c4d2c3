package parser

import (
	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/lexer"
	"zephyr/internal/token"
)

// parseImport parses `import "path" (as alias)?;`.
func (p *Parser) parseImport() (ast.Decl, bool) {
	kw := p.advance()
	pathTok, ok := p.expect(token.StringLit, diag.SynExpectString, "expected module path string after 'import'")
	if !ok {
		return nil, false
	}
	path, err := lexer.Unquote(pathTok.Text)
	if err != nil {
		p.report(diag.LexBadEscape, diag.SevError, pathTok.Span, "invalid import path: "+err.Error())
		return nil, false
	}
	decl := &ast.ImportDecl{Path: path, PathSpan: pathTok.Span}
	if p.at(token.KwAs) {
		p.advance()
		alias, ok := p.parseIdent("import alias")
		if !ok {
			return nil, false
		}
		decl.Alias = &alias
	}
	if !p.expectSemicolon("import") {
		return nil, false
	}
	decl.Loc = p.spanFrom(kw.Span)
	return decl, true
}

// parseExport parses `export Name;`.
func (p *Parser) parseExport() (ast.Decl, bool) {
	kw := p.advance()
	name, ok := p.parseQualifiedName("type name after 'export'")
	if !ok {
		return nil, false
	}
	if !p.expectSemicolon("export") {
		return nil, false
	}
	return &ast.ExportDecl{Name: name, Loc: p.spanFrom(kw.Span)}, true
}

// parseNativeType parses `native type Name;`.
func (p *Parser) parseNativeType() (ast.Decl, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.KwType, diag.SynUnexpectedToken, "expected 'type' after 'native'"); !ok {
		return nil, false
	}
	name, ok := p.parseIdent("native type name")
	if !ok {
		return nil, false
	}
	if !p.expectSemicolon("native type declaration") {
		return nil, false
	}
	return &ast.NativeTypeDecl{Name: name, Loc: p.spanFrom(kw.Span)}, true
}
