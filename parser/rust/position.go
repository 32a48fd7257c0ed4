package rust

// Position is a location in source text: 1-based line, 1-based column,
// 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// positionTracker keeps line/column/offset state while the lexer consumes
// source text.
type positionTracker struct {
	src    string
	line   int
	column int
	offset int
}

func newPositionTracker(src string) *positionTracker {
	return &positionTracker{src: src, line: 1, column: 1}
}

// advance consumes n bytes, counting newlines.
func (pt *positionTracker) advance(n int) {
	for i := 0; i < n && pt.offset < len(pt.src); i++ {
		c := pt.src[pt.offset]
		if c == '\n' {
			pt.line++
			pt.column = 1
		} else if c < 0x80 || c >= 0xC0 {
			// count runes, not UTF-8 continuation bytes
			pt.column++
		}
		pt.offset++
	}
}

func (pt *positionTracker) mark() Position {
	return Position{Line: pt.line, Column: pt.column, Offset: pt.offset}
}
