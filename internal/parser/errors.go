package parser

import (
	"errors"
	"fmt"
)

// ErrNestingTooDeep is wrapped by a SyntaxError when the input nests deeper
// than the parser's limit.
var ErrNestingTooDeep = errors.New("expression nesting too deep")

// Pos is a position in filter source. Line and Column are 1-based; Column
// counts runes. The zero Pos means "no position".
type Pos struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether p carries a position.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SyntaxError reports source that is not a supported arrow function.
type SyntaxError struct {
	Pos     Pos
	Message string
	Err     error // Underlying cause (optional)
}

func (e *SyntaxError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func errorf(pos Pos, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
