package gss

import "fmt"

// Position is a point in a source text. Line and Column are 1-based,
// Offset is the 0-based byte offset from the start of the text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Location is a span within a named source text. The zero value is the
// "unknown" location used for nodes synthesized by passes.
type Location struct {
	File  string
	Begin Position
	End   Position
}

// IsUnknown reports whether the location refers to no real source span.
func (l Location) IsUnknown() bool {
	return l.Begin.Line == 0
}

func (l Location) String() string {
	if l.IsUnknown() {
		return "unknown location"
	}
	return fmt.Sprintf("%s line %d column %d", l.File, l.Begin.Line, l.Begin.Column)
}

// span merges two locations into one covering both. Unknown inputs are
// ignored so synthesized children do not poison a parent span.
func span(a, b Location) Location {
	if a.IsUnknown() {
		return b
	}
	if b.IsUnknown() {
		return a
	}
	out := a
	if b.End.Offset > a.End.Offset {
		out.End = b.End
	}
	return out
}
