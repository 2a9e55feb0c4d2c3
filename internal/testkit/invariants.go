// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"zephyr/internal/ast"
	"zephyr/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Loc points into sf and stays within its content
// 2) every declaration span is non-empty and contained in file.Loc
// 3) declarations appear in source order
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	if f.ID != sf.ID {
		return fmt.Errorf("file id mismatch: got=%d want=%d", f.ID, sf.ID)
	}
	loc := f.Loc
	if loc.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", loc.File, sf.ID)
	}
	if loc.End < loc.Start {
		return fmt.Errorf("file span is inverted: %v", loc)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if loc.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", loc.End, lenContent)
	}

	var prevStart uint32
	for i, decl := range f.Decls {
		if decl == nil {
			return fmt.Errorf("nil declaration at index %d", i)
		}
		sp := decl.Span()
		if sp.End <= sp.Start {
			return fmt.Errorf("empty declaration span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("declaration span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !loc.Contains(sp) {
			return fmt.Errorf("declaration span %v is outside file span %v", sp, loc)
		}
		if i > 0 && sp.Start < prevStart {
			return fmt.Errorf("declaration %d starts at %d before previous start %d", i, sp.Start, prevStart)
		}
		prevStart = sp.Start
	}
	return nil
}
