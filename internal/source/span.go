package source

import "strconv"

// Span is a half-open byte range [Start, End) inside one file. Diagnostics,
// tokens and every syntax and bound node carry one.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.Start == s.End }
func (s Span) Len() uint32 { return s.End - s.Start }

// AtEnd collapses s to an empty span at its end, where "expected X"
// diagnostics point.
func (s Span) AtEnd() Span { return Span{File: s.File, Start: s.End, End: s.End} }

// Contains reports whether inner lies within s in the same file.
func (s Span) Contains(inner Span) bool {
	return s.File == inner.File && s.Start <= inner.Start && inner.End <= s.End
}

// Cover widens s to include other. A span from another file leaves s as is.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

func (s Span) String() string {
	return strconv.FormatUint(uint64(s.File), 10) + ":" +
		strconv.FormatUint(uint64(s.Start), 10) + "-" +
		strconv.FormatUint(uint64(s.End), 10)
}
