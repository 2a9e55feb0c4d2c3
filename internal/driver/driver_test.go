package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"zephyr/internal/diag"
	"zephyr/internal/library"
	"zephyr/internal/observ"
	"zephyr/internal/source"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

const cleanProgram = `type Point {
    pub var x: int = 0;
    pub fn sum(other: Point): int { return x + other.x; }
}
`

func TestAnalyzeBindsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "point.zph", cleanProgram)

	fset, res, err := Analyze(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if res.Program == nil || res.Program.Scope == nil {
		t.Fatal("expected a bound program")
	}
	if _, ok := res.Program.Scope.Type("Point"); !ok {
		t.Fatal("Point was not declared")
	}
	if fset.Get(res.FileID) == nil {
		t.Fatal("file missing from the file set")
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, _, err := Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.zph"), Options{})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestAnalyzeStopsAfterParse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.zph", `type A { var x: Missing; }`)

	_, res, err := Analyze(context.Background(), path, Options{Until: StageParse})
	if err != nil {
		t.Fatal(err)
	}
	if res.Program != nil || res.Tree == nil {
		t.Fatalf("expected a parse-only result, got program=%v tree=%v", res.Program, res.Tree)
	}
	if res.HasErrors() {
		t.Fatal("binding errors reported without binding")
	}

	_, res, err = Analyze(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hasCode(res.Bag, diag.SemaUndefinedType) {
		t.Fatalf("expected an undefined type, got %+v", res.Bag.Items())
	}
}

func TestAnalyzeSourceResolvesRelativeImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shapes.zph", "export Square;\ntype Square {}\n")
	fset := source.NewFileSetWithBase(dir)
	res := AnalyzeSource(context.Background(), fset, filepath.Join(dir, "main.zph"),
		[]byte(`import "shapes"; type Main { var s: Square; }`), Options{})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
}

func TestAnalyzeWithLibrary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib/text.zph", "export Text;\ntype Text {}\n")
	path := writeFile(t, dir, "app/main.zph", `import "std:text" as text; type Main { var t: text.Text; }`)
	ix, err := library.Open(context.Background(), filepath.Join(dir, "lib"), library.Options{NoCache: true})
	if err != nil {
		t.Fatal(err)
	}

	_, res, err := Analyze(context.Background(), path, Options{Library: ix})
	if err != nil {
		t.Fatal(err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}

	_, res, err = Analyze(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hasCode(res.Bag, diag.SemaImportError) {
		t.Fatal("std import resolved without a library")
	}
}

func TestAnalyzeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.zph", cleanProgram)
	writeFile(t, dir, "nested/b.zph", `type B { fn f(): int { return missing; } }`)
	writeFile(t, dir, ".hidden/c.zph", `garbage`)
	writeFile(t, dir, "notes.txt", `ignored`)

	var (
		mu     sync.Mutex
		events []Event
	)
	timer := observ.NewTimer()
	opts := Options{
		Timer: timer,
		Progress: SinkFunc(func(e Event) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		}),
	}
	fset, results, err := AnalyzeDir(context.Background(), dir, opts, 2)
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if filepath.Base(results[0].Path) != "a.zph" || filepath.Base(results[1].Path) != "b.zph" {
		t.Fatalf("unexpected order: %s, %s", results[0].Path, results[1].Path)
	}
	if results[0].HasErrors() || !results[1].HasErrors() {
		t.Fatalf("unexpected error state: a=%v b=%v", results[0].HasErrors(), results[1].HasErrors())
	}
	if f := fset.Get(results[1].FileID); f == nil || f.Flags&source.FileVirtual != 0 {
		t.Fatal("expected b.zph loaded from disk")
	}

	sum := Summarize(results)
	if sum.Files != 2 || sum.FilesFailed != 1 || sum.Errors != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	var queued, finished int
	for _, e := range events {
		switch e.Status {
		case StatusQueued:
			queued++
		case StatusDone, StatusError:
			finished++
		}
	}
	if queued != 2 || finished != 2 {
		t.Fatalf("expected 2 queued and 2 finished events, got %d and %d", queued, finished)
	}

	report := timer.Report()
	names := map[string]int{}
	for _, p := range report.Phases {
		names[p.Name] = p.Count
	}
	if names["parse"] != 2 || names["bind"] != 2 {
		t.Fatalf("unexpected timer phases: %+v", report.Phases)
	}
}

func TestAnalyzeDirEmpty(t *testing.T) {
	fset, results, err := AnalyzeDir(context.Background(), t.TempDir(), Options{}, 0)
	if err != nil || fset == nil || len(results) != 0 {
		t.Fatalf("unexpected result: fset=%v results=%d err=%v", fset, len(results), err)
	}
}

func TestAnalyzeDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.zph", cleanProgram)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := AnalyzeDir(ctx, dir, Options{}, 1); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "x", Status: StatusDone})
	if got := <-ch; got.File != "x" {
		t.Fatalf("unexpected event %+v", got)
	}
	ChannelSink{}.OnEvent(Event{})
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.zph", "type A {}\n")
	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) != 5 {
		t.Fatalf("expected 5 tokens (type A { } EOF), got %d", len(res.Tokens))
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected lexer diagnostics: %+v", res.Bag.Items())
	}
}
