package binder

import (
	"context"
	"fmt"
	"path/filepath"

	"zephyr/internal/ast"
	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/scope"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
	"zephyr/internal/trace"
)

// LibraryResolver maps a standard library module name, the part of an import after
// `std:`, to a file on disk.
type LibraryResolver interface {
	Resolve(name string) (path string, ok bool)
}

// Options configure one binding run.
type Options struct {
	// FileSet owns the bound file; imported files are loaded into it as well.
	FileSet *source.FileSet
	// Library resolves `std:` imports. Without one every std import fails.
	Library LibraryResolver
	// LibraryPrefix replaces "std" as the scheme of library imports.
	LibraryPrefix string
	// MaxDiagnostics caps the program bag; zero means unlimited.
	MaxDiagnostics int

	// chain holds the absolute paths of the files currently being bound, outermost first.
	chain []string
}

// Program is the result of binding one file: the program scope with every type,
// member signature and lowered body, plus all diagnostics.
type Program struct {
	Path  string
	Scope *scope.Program
	Bag   *diag.Bag
}

// HasErrors reports whether the program may be executed.
func (p *Program) HasErrors() bool {
	return p == nil || p.Bag.HasErrors()
}

// Bind declares and defines everything in tree. The tree's syntax diagnostics are
// copied into the returned bag first.
func Bind(ctx context.Context, tree ast.Tree, opts Options) *Program {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.FileSet == nil {
		opts.FileSet = source.NewFileSet()
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Merge(tree.Bag)

	prog := scope.NewProgram()
	builtin.Install(prog)

	path := ""
	if tree.Root != nil {
		path = tree.Root.Path
	}
	res := &Program{Path: path, Scope: prog, Bag: bag}
	if tree.Root == nil {
		return res
	}

	ctx, span := trace.Start(ctx, trace.ScopeFile, "bind:"+filepath.Base(path))
	defer span.End("")

	b := &binder{
		ctx:    ctx,
		opts:   opts,
		file:   tree.Root,
		prog:   prog,
		bag:    bag,
		rep:    diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		labels: &bound.LabelGen{},
		scope:  prog,
	}
	if abs, err := filepath.Abs(path); err == nil && len(opts.chain) == 0 {
		b.opts.chain = []string{abs}
	}
	b.run()
	span.WithCount("types", len(b.types)).WithCount("diagnostics", bag.Len())
	return res
}

// typeEntry is a user type declared by this file.
type typeEntry struct {
	decl    *ast.TypeDecl
	sym     *symbols.TypeSymbol
	scope   *scope.Type
	pending []pending
}

// pending is a successfully declared member waiting for the define sweep. Generated
// members carry no syntax.
type pending struct {
	syntax ast.Member
	sym    symbols.Symbol
}

type loopLabels struct {
	brk, cont bound.Label
}

type binder struct {
	ctx    context.Context
	opts   Options
	file   *ast.File
	prog   *scope.Program
	bag    *diag.Bag
	rep    diag.Reporter
	labels *bound.LabelGen

	scope scope.Scope
	fn    callable
	loops []loopLabels
	types []*typeEntry
}

func (b *binder) run() {
	ctx, span := trace.Start(b.ctx, trace.ScopePass, "declare")
	b.declareAll(ctx)
	span.End("")

	ctx, span = trace.Start(b.ctx, trace.ScopePass, "define")
	b.defineAll(ctx)
	span.End("")

	if b.scope != scope.Scope(b.prog) || len(b.loops) != 0 {
		panic(fmt.Errorf("binder: %s finished inside a %s scope", b.file.Path, b.scope.Kind()))
	}
}

func (b *binder) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(b.rep, code, sp, fmt.Sprintf(format, args...)).Emit()
}

// redeclared reports a clash with prev, noting where prev was declared when it
// comes from source.
func (b *binder) redeclared(code diag.Code, sp source.Span, prev *symbols.TypeSymbol, format string, args ...any) {
	rb := diag.ReportError(b.rep, code, sp, fmt.Sprintf(format, args...))
	if prev != nil && !prev.Decl().Empty() {
		rb = rb.WithNote(prev.Decl(), "previously declared here")
	}
	rb.Emit()
}

func (b *binder) warnf(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportWarning(b.rep, code, sp, fmt.Sprintf(format, args...)).Emit()
}

// enterScope makes s current and returns a func restoring the previous scope.
func (b *binder) enterScope(s scope.Scope) func() {
	prev := b.scope
	b.scope = s
	return func() { b.scope = prev }
}

// block returns the innermost block scope; statements are only bound inside one.
func (b *binder) block() *scope.Block {
	blk, ok := b.scope.(*scope.Block)
	if !ok {
		panic(fmt.Errorf("binder: statement bound in a %s scope", b.scope.Kind()))
	}
	return blk
}

// currentType is the type whose members are being bound, nil at program level.
func (b *binder) currentType() *symbols.TypeSymbol {
	if ts, ok := scope.EnclosingType(b.scope); ok {
		return ts.TypeSymbol()
	}
	return nil
}

func errorExpr(sp source.Span) bound.Expr {
	return &bound.ErrorExpr{Loc: sp}
}
