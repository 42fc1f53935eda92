// Package source provides source-location values attached to tokens,
// symbols and diagnostics. The rest of the compiler treats a Location as
// opaque; only the diagnostics emitter interprets its fields.
package source

import "fmt"

// Location identifies a span of source text.
type Location struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Length int // span length in bytes; clamped to at least 1 by users
}

// New creates a Location for a span starting at line/column.
func New(line, column, length int) *Location {
	return &Location{Line: line, Column: column, Length: length}
}

func (l *Location) String() string {
	if l == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}
