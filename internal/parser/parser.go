package parser

import (
	"slices"

	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/lexer"
	"zephyr/internal/source"
	"zephyr/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	file     *ast.File
	opts     Options
	lastSpan source.Span // span of the last consumed token, for "expected X" positions
}

// ParseFile parses the tokens of lx into a File. Diagnostics go to opts.Reporter;
// when it is a BagReporter the bag is returned in Result.
func ParseFile(fs *source.FileSet, id source.FileID, lx *lexer.Lexer, opts Options) Result {
	f := fs.Get(id)
	p := Parser{
		lx:   lx,
		fs:   fs,
		opts: opts,
		file: &ast.File{ID: id, Path: f.Path},
	}
	p.lastSpan = source.Span{File: id}

	p.parseDecls()

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = r.Bag
	case *diag.BagReporter:
		bag = r.Bag
	}
	return Result{File: p.file, Bag: bag}
}

// Parse lexes and parses one file of fs into a tree carrying its own bag.
func Parse(fs *source.FileSet, id source.FileID, maxErrors uint) ast.Tree {
	bag := diag.NewBag(int(maxErrors)) // #nosec G115 -- limit comes from CLI flags
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	res := ParseFile(fs, id, lx, Options{MaxErrors: maxErrors, Reporter: reporter})
	return ast.Tree{Root: res.File, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseDecls is the top-level loop: until EOF, parse one declaration or resync.
func (p *Parser) parseDecls() {
	start := p.lx.Peek().Span
	for !p.at(token.EOF) {
		decl, ok := p.parseDecl()
		if !ok {
			p.resyncTop()
			continue
		}
		p.file.Decls = append(p.file.Decls, decl)
	}
	p.file.Loc = start.Cover(p.lx.Peek().Span)
}

func (p *Parser) parseDecl() (ast.Decl, bool) {
	switch p.lx.Peek().Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwExport:
		return p.parseExport()
	case token.KwNative:
		return p.parseNativeType()
	case token.KwType:
		return p.parseTypeDecl()
	default:
		tok := p.advance()
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, tok.Span,
			"expected import, export, native type or type declaration, got '"+tok.Text+"'")
		return nil, false
	}
}

// resyncTop skips to the next top-level starter, eating a ';' if it stops on one.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.KwImport, token.KwExport, token.KwNative, token.KwType)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// resyncUntil skips tokens until one of stops (or EOF), stepping over balanced braces.
func (p *Parser) resyncUntil(stops ...token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if depth == 0 && slices.Contains(stops, k) {
			return
		}
		switch k {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}
