package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"zephyr/internal/diag"
	"zephyr/internal/source"
	"zephyr/internal/trace"
)

// ListSources returns every .zph file under dir, sorted. Hidden directories
// are skipped.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == source.Extension {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every source file under dir as an independent root,
// at most jobs at a time (GOMAXPROCS when jobs <= 0). All files share one
// FileSet. Results are in ListSources order; a file that cannot be read gets a
// result carrying an IOLoadFileError instead of failing the run.
func AnalyzeDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	files, err := ListSources(abs)
	if err != nil {
		return nil, nil, err
	}
	fset := source.NewFileSetWithBase(abs)
	if len(files) == 0 {
		return fset, nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "analyze_dir")
	defer span.WithCount("files", len(files)).End("")

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := analyzePath(gctx, fset, path, opts)
			if err != nil {
				results[i] = loadFailure(fset, path, opts.MaxDiagnostics, err)
				return nil
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fset, results, err
	}
	return fset, results, nil
}

// loadFailure registers an empty placeholder for path so the diagnostic has
// a file to point at.
func loadFailure(fset *source.FileSet, path string, maxDiagnostics int, err error) Result {
	id := fset.AddVirtual(path, nil)
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	return Result{Path: path, FileID: id, Bag: bag}
}

// Summary counts files and diagnostics across a directory run.
type Summary struct {
	Files       int
	FilesFailed int
	Errors      int
	Warnings    int
	Elapsed     time.Duration
}

func Summarize(results []Result) Summary {
	var s Summary
	s.Files = len(results)
	for i := range results {
		bag := results[i].Bag
		if bag.HasErrors() {
			s.FilesFailed++
		}
		for _, d := range bag.Items() {
			switch d.Severity {
			case diag.SevError:
				s.Errors++
			case diag.SevWarning:
				s.Warnings++
			}
		}
	}
	return s
}
