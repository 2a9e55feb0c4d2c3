package lsp

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// document is one open editor buffer. mu serializes rebinds of the document
// so that diagnostics for version n are never published after version n+1.
type document struct {
	mu      sync.Mutex
	uri     string
	path    string
	version int
	text    string
	// published is the set of URIs the last rebind sent diagnostics for.
	published map[string]struct{}
}

// applyChanges folds content changes into text. A change without a range
// replaces the whole buffer; ranged edits are honored for clients that
// ignore the advertised full sync.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := max(offsetForPosition(text, change.Range.End), start)
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition maps a 0-based line and UTF-16 character to a byte
// offset, clamped to the line end and the text length.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	i := 0
	for line := 0; line < pos.Line; line++ {
		nl := strings.IndexByte(text[i:], '\n')
		if nl < 0 {
			return len(text)
		}
		i += nl + 1
	}
	units := 0
	for i < len(text) && text[i] != '\n' {
		r, size := utf8.DecodeRuneInString(text[i:])
		need := utf16Len(r)
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}
