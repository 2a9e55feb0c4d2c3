package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16
	maxSeedBytes = 64 << 10
)

var languageSeeds = []string{
	"",
	"type A {}",
	"native type Console;",
	"export Point;\ntype Point { pub var x: int; pub var y: int; }\n",
	"type Box<T> { pub var value: T; constructor(v: T) { value = v; } }",
	"type A { shared fn main() { var xs: int[] = new int[3 : 0]; xs[1] = 2; } }",
	"type A { fn f(): int { if (true) { return 1; } else { return 2; } } }",
	"type A { fn f() { var i: int = 0; while (i < 10) { i += 1; } } }",
	"type A { fn f() { for (var i: int = 0; i < 3; i += 1) { continue; } } }",
	"type A { operator +(o: A): A { return o; } operator -(): A { return this; } }",
	"type A { fn f(): string { return \"n=\" + 1 + 'c'; } }",
	"type A { const k: int = 1; fn f(): bool { return k == 1 ? true : false; } }",
	"import \"shapes\";\nimport \"std:text\" as text;\n",
	"// comment\n/* block */ type A { var s: string = \"esc \\\" \\n\"; }",
}

var malformedSeeds = []string{
	"type",
	"type A {",
	"type A { var x: int = ; }",
	"type A { fn f( { }",
	"type A { fn f() { { { { } } } } }",
	"import \"unterminated",
	"type A { var c: char = ''; }",
	"}}}} type A {}",
	"export ;",
	"type A<T, { }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	for _, s := range malformedSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every .zph file under the repository testdata tree,
// when one exists.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".zph" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if len(src) > maxSeedBytes {
			src = src[:maxSeedBytes]
		}
		f.Add(bytes.Clone(src))
		return nil
	})
	if err != nil {
		f.Logf("walk testdata: %v", err)
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return bytes.Clone(input)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(bytes.Clone(input[:maxLen]), "..."...)
}
