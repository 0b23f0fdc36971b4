package parser

import (
	"fmt"
	"unicode/utf8"
)

// SyntaxError is returned when the source is not valid JavaScript or JSX. Parsing stops
// at the first error.
type SyntaxError struct {
	// Line and Column are 1-based; Column counts runes.
	Line   int
	Column int
	Offset int
	Msg    string
}

var _ error = (*SyntaxError)(nil)

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (%d:%d)", e.Msg, e.Line, e.Column)
}

// bailout carries a SyntaxError out of the recursive descent.
type bailout struct {
	err *SyntaxError
}

func newSyntaxError(src []byte, offset int, msg string) *SyntaxError {
	offset = max(0, min(offset, len(src)))
	line, col := 1, 1
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(src[i:])
		switch {
		case r == '\n':
			line++
			col = 1
		case r == '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			line++
			col = 1
		default:
			col++
		}
		i += size
	}
	return &SyntaxError{Line: line, Column: col, Offset: offset, Msg: msg}
}
