package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"

	"zephyr/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// positionForOffset converts a byte offset into a 0-based line and UTF-16
// character position within file.
func positionForOffset(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	offset = min(offset, safeUint32(len(file.Content)))
	lineIdx := file.LineIdx
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	var lineStart uint32
	if line > 0 {
		lineStart = min(lineIdx[line-1]+1, offset)
	}
	units := 0
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		units += utf16Len(r)
		off += safeUint32(size)
	}
	return position{Line: line, Character: units}
}

func rangeForSpan(file *source.File, span source.Span) lspRange {
	if file == nil {
		return lspRange{}
	}
	end := span.End
	if end < span.Start {
		end = span.Start
	}
	return lspRange{
		Start: positionForOffset(file, span.Start),
		End:   positionForOffset(file, end),
	}
}
