package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"zephyr/internal/source"
)

// GoldenOptions controls FormatGolden.
type GoldenOptions struct {
	// Notes emits each note as its own "note" line after its diagnostic.
	Notes bool
	// LibraryDir hides entries located under the standard library root.
	LibraryDir string
}

type goldenLine struct {
	sev     string
	code    string
	path    string
	line    uint32
	col     uint32
	message string
}

// FormatGolden renders diagnostics one per line, sorted by location, in the
// form "severity CODE path:line:col message". Paths are relative to the
// FileSet base directory so the output is stable across machines.
func FormatGolden(diags []Diagnostic, fs *source.FileSet, opts GoldenOptions) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	libRoot := ""
	if opts.LibraryDir != "" {
		if abs, err := filepath.Abs(opts.LibraryDir); err == nil {
			libRoot = filepath.ToSlash(abs) + "/"
		}
	}
	g := goldenWriter{fs: fs, libRoot: libRoot}
	for i := range diags {
		d := &diags[i]
		g.add(severityWord(d.Severity), d.Code, d.Primary, d.Message)
		if opts.Notes {
			for _, n := range d.Notes {
				g.add("note", d.Code, n.Span, n.Msg)
			}
		}
	}

	slices.SortStableFunc(g.lines, func(a, b goldenLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.message, b.message),
		)
	})

	out := make([]string, len(g.lines))
	for i, l := range g.lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.message)
	}
	return strings.Join(out, "\n")
}

type goldenWriter struct {
	fs      *source.FileSet
	libRoot string
	lines   []goldenLine
}

func (g *goldenWriter) add(sev string, code Code, sp source.Span, msg string) {
	file := g.fs.Get(sp.File)
	if file == nil {
		return
	}
	if g.libRoot != "" {
		if abs, err := filepath.Abs(file.Path); err == nil && strings.HasPrefix(filepath.ToSlash(abs), g.libRoot) {
			return
		}
	}
	start, _ := g.fs.Resolve(sp)
	path := filepath.ToSlash(file.FormatPath("relative", g.fs.BaseDir()))
	g.lines = append(g.lines, goldenLine{
		sev:     sev,
		code:    code.ID(),
		path:    strings.TrimPrefix(path, "./"),
		line:    start.Line,
		col:     start.Col,
		message: strings.Join(strings.Fields(msg), " "),
	})
}

func severityWord(sev Severity) string {
	return strings.ToLower(sev.String())
}
