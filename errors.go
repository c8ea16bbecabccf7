package jprune

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("invalid relaxed JSON")
	// ErrNotArray matches every *NotAnArrayError.
	ErrNotArray = errors.New("expected an array")
)

// ParseError reports text that does not conform to the relaxed JSON grammar.
// Line and Column are 1-based and refer to the input text.
type ParseError struct {
	Offset int
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return "parse error: " + e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// NotAnArrayError reports input that parsed but whose top-level value is not
// an array. Kind names what was found instead.
type NotAnArrayError struct {
	Kind string
}

func (e *NotAnArrayError) Error() string {
	return fmt.Sprintf("expected an array, got %s", e.Kind)
}

func (e *NotAnArrayError) Is(target error) bool { return target == ErrNotArray }

func newParseError(src []byte, offset int, msg string, err error) *ParseError {
	line, col := position(src, offset)
	return &ParseError{Offset: offset, Line: line, Column: col, Msg: msg, Err: err}
}

// position converts a byte offset into a 1-based line and rune column. CRLF
// counts as one line break.
func position(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		switch c := src[i]; {
		case c == '\n':
			line++
			col = 1
		case c == '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				continue
			}
			line++
			col = 1
		case c&0xC0 != 0x80:
			col++
		}
	}
	return line, col
}
