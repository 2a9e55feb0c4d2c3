package binder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"

	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/parser"
	"zephyr/internal/trace"
)

const (
	defaultLibraryPrefix = "std"
	fileExt              = ".zph"
)

// bindImport parses and binds the imported file with a fresh binder and merges its
// program scope as a namespace. Every failure is a single ImportError.
func (b *binder) bindImport(ctx context.Context, decl *ast.ImportDecl) {
	path, err := b.importPath(decl.Path)
	if err != nil {
		b.errorf(diag.SemaImportError, decl.PathSpan, "%v", err)
		return
	}
	if i := slices.Index(b.opts.chain, path); i >= 0 {
		b.errorf(diag.SemaImportError, decl.PathSpan, "cyclic import: %s", cycleString(b.opts.chain[i:], path))
		return
	}
	trace.Mark(ctx, trace.ScopeFile, "import:"+decl.Path, path)

	id, err := b.opts.FileSet.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.errorf(diag.SemaImportError, decl.PathSpan, "file %s does not exist", path)
		} else {
			b.errorf(diag.SemaImportError, decl.PathSpan, "cannot read %s: %v", path, err)
		}
		return
	}

	maxErrors, err := safecast.Conv[uint](b.opts.MaxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	tree := parser.Parse(b.opts.FileSet, id, maxErrors)

	opts := b.opts
	opts.chain = append(slices.Clone(b.opts.chain), path)
	imported := Bind(ctx, tree, opts)
	if imported.HasErrors() {
		b.errorf(diag.SemaImportError, decl.PathSpan, "imported program %s has errors", decl.Path)
		b.bag.Merge(imported.Bag)
		return
	}

	ns := decl.Path
	if decl.Alias != nil {
		ns = decl.Alias.Name
	}
	if err := b.prog.Import(ns, imported.Scope); err != nil {
		b.warnf(diag.SemaDuplicateImport, decl.Loc, "namespace %s is already imported", ns)
	}
}

// importPath maps an import string to an absolute file path.
func (b *binder) importPath(name string) (string, error) {
	prefix := b.opts.LibraryPrefix
	if prefix == "" {
		prefix = defaultLibraryPrefix
	}
	if lib, ok := strings.CutPrefix(name, prefix+":"); ok {
		if b.opts.Library == nil {
			return "", fmt.Errorf("no standard library configured for %s", name)
		}
		path, ok := b.opts.Library.Resolve(lib)
		if !ok {
			return "", fmt.Errorf("standard library module %s not found", lib)
		}
		return filepath.Abs(path)
	}
	if strings.HasSuffix(name, fileExt) {
		return "", errors.New("importing files with an explicit .zph suffix is not supported yet")
	}
	dir := b.opts.FileSet.Dir(b.file.ID)
	return filepath.Abs(filepath.Join(dir, filepath.FromSlash(name)+fileExt))
}

func cycleString(chain []string, back string) string {
	names := make([]string, 0, len(chain)+1)
	for _, p := range chain {
		names = append(names, filepath.Base(p))
	}
	names = append(names, filepath.Base(back))
	return strings.Join(names, " -> ")
}
