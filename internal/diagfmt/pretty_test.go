package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"zephyr/internal/diag"
	"zephyr/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("var x: string = \"unterminated;\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.zph", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 16, End: 30}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.zph:1:17"},
		{"relative", PathModeRelative, "src/test.zph:1:17"},
		{"basename", PathModeBasename, "test.zph:1:17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			for _, want := range []string{tt.contains, "ERROR", "LEX1002", "Unterminated string literal"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()
	tests := []struct {
		path     string
		expected string
	}{
		{"test.zph", "test.zph"},
		{"/very/long/absolute/path/to/some/nested/directory/file.zph", "file.zph:"},
	}
	for _, tt := range tests {
		fileID := fs.AddVirtual(tt.path, []byte("var x = 42\n"))
		bag := diag.NewBag(1)
		bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 10}, "w"))

		var buf bytes.Buffer
		Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
		out := buf.String()
		if !strings.HasPrefix(out, tt.expected) {
			t.Errorf("expected output to start with %q, got:\n%s", tt.expected, out)
		}
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	src := "type A {\n\tvar x: Missing;\n}\n"
	fileID := fs.AddVirtual("a.zph", []byte(src))
	start := uint32(strings.Index(src, "Missing"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaUndefinedType, source.Span{File: fileID, Start: start, End: start + 7}, "undefined type Missing"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	lines := strings.Split(buf.String(), "\n")
	want := []string{
		"a.zph:2:9: ERROR SEM3100: undefined type Missing",
		"1 | type A {",
		"2 |     var x: Missing;",
		"  |            ^~~~~~~",
		"3 | }",
	}
	if len(lines) < len(want) {
		t.Fatalf("short output:\n%s", buf.String())
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestPrettyEmptySpanAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("n.zph", []byte("type A { fn f() {} }\n"))
	d := diag.NewError(diag.SynExpectSemicolon, source.Span{File: fileID, Start: 6, End: 6}, "expected ';'")
	d = d.WithNote(source.Span{File: fileID, Start: 9, End: 11}, "declared here")
	bag := diag.NewBag(1)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()
	if !strings.Contains(out, "  |       ^\n") {
		t.Errorf("expected a lone caret under column 7, got:\n%s", out)
	}
	if !strings.Contains(out, "note: n.zph:1:10: declared here") {
		t.Errorf("expected note with location, got:\n%s", out)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.zph", []byte("x\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "bad"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatal("escape codes without Color")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatal("no escape codes with Color")
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("s.zph", []byte("a\nbb\n"))
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 3, End: 4}, "odd"))

	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeBasename)
	if got, want := buf.String(), "s.zph:2:2: WARNING LEX1001: odd\n"; got != want {
		t.Fatalf("Short = %q, want %q", got, want)
	}
}

func TestClip(t *testing.T) {
	if got := clip("abcdefgh", 6); got != "abc..." {
		t.Fatalf("clip = %q", got)
	}
	if got := clip("abc", 0); got != "abc" {
		t.Fatalf("clip with no width = %q", got)
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "abs": PathModeAbsolute, "Relative": PathModeRelative, "basename": PathModeBasename} {
		got, err := ParsePathMode(in)
		if err != nil || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePathMode("weird"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
