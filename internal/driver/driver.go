// Package driver runs the front end (load, lex, parse, bind) over files and
// directories and collects the results for the CLI and the language server.
package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fortio.org/safecast"

	"zephyr/internal/ast"
	"zephyr/internal/binder"
	"zephyr/internal/diag"
	"zephyr/internal/library"
	"zephyr/internal/observ"
	"zephyr/internal/parser"
	"zephyr/internal/source"
	"zephyr/internal/trace"
)

type Options struct {
	// MaxDiagnostics caps each file's bag; zero means unlimited.
	MaxDiagnostics int
	// Until stops the pipeline after the given stage; empty means StageBind.
	Until Stage
	// Library resolves standard-library imports. Nil leaves them unresolved.
	Library *library.Index
	// Timer, when set, accumulates per-stage durations across all files.
	Timer *observ.Timer
	// Progress receives per-file stage events.
	Progress ProgressSink
}

// Result is the outcome of analyzing one root file. Program is nil when the
// pipeline stopped before binding.
type Result struct {
	Path    string
	FileID  source.FileID
	Tree    *ast.File
	Program *binder.Program
	Bag     *diag.Bag
}

func (r *Result) HasErrors() bool {
	return r == nil || r.Bag.HasErrors()
}

// Analyze loads path into a fresh FileSet and runs the pipeline on it.
func Analyze(ctx context.Context, path string, opts Options) (*source.FileSet, *Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fset := source.NewFileSetWithBase(filepath.Dir(abs))
	res, err := analyzePath(ctx, fset, abs, opts)
	if err != nil {
		return fset, nil, err
	}
	return fset, res, nil
}

// AnalyzeSource runs the pipeline on in-memory content registered as name in
// fset. Relative imports resolve against the directory of name.
func AnalyzeSource(ctx context.Context, fset *source.FileSet, name string, content []byte, opts Options) *Result {
	id := fset.AddVirtual(name, content)
	return analyzeFile(ctx, fset, id, opts)
}

func analyzePath(ctx context.Context, fset *source.FileSet, path string, opts Options) (*Result, error) {
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	stop := opts.Timer.Begin(string(StageLoad))
	id, err := fset.Load(path)
	stop()
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	res := analyzeFile(ctx, fset, id, opts)
	res.Path = path
	return res, nil
}

func analyzeFile(ctx context.Context, fset *source.FileSet, id source.FileID, opts Options) *Result {
	if ctx == nil {
		ctx = context.Background()
	}
	file := fset.Get(id)
	res := &Result{Path: file.Path, FileID: id}
	start := time.Now()

	emit(opts.Progress, Event{File: res.Path, Stage: StageParse, Status: StatusWorking})
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	_, parseSpan := trace.Start(ctx, trace.ScopePass, "parse")
	stop := opts.Timer.Begin(string(StageParse))
	tree := parser.Parse(fset, id, maxErrors)
	stop()
	parseSpan.WithExtra("file", file.Path).End(fmt.Sprintf("diags=%d", tree.Bag.Len()))
	res.Tree = tree.Root

	if opts.Until == StageParse || opts.Until == StageLoad {
		res.Bag = tree.Bag
		finish(opts.Progress, res, start)
		return res
	}

	emit(opts.Progress, Event{File: res.Path, Stage: StageBind, Status: StatusWorking})
	stop = opts.Timer.Begin(string(StageBind))
	bopts := binder.Options{FileSet: fset, MaxDiagnostics: opts.MaxDiagnostics}
	if opts.Library != nil {
		bopts.Library = opts.Library
		bopts.LibraryPrefix = opts.Library.Prefix
	}
	res.Program = binder.Bind(ctx, tree, bopts)
	stop()
	res.Bag = res.Program.Bag
	finish(opts.Progress, res, start)
	return res
}

func finish(sink ProgressSink, res *Result, start time.Time) {
	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(sink, Event{File: res.Path, Status: status, Elapsed: time.Since(start)})
}
