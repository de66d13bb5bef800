package rql

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes translation errors.
type ErrorCode string

const (
	// ErrCodeParse indicates the filter or dependency source is not a
	// well-formed single-expression arrow function.
	ErrCodeParse ErrorCode = "PARSE_ERROR"

	// ErrCodeUnsupportedOperator indicates a construct outside the
	// translatable subset: an unknown method, a unary operator other than
	// "!", or an expression kind RQL has no form for.
	ErrCodeUnsupportedOperator ErrorCode = "UNSUPPORTED_OPERATOR"

	// ErrCodeUndefinedArgument indicates an identifier with no bound value.
	ErrCodeUndefinedArgument ErrorCode = "UNDEFINED_ARGUMENT"

	// ErrCodeTooComplex indicates the input nests deeper than the
	// configured limit.
	ErrCodeTooComplex ErrorCode = "TOO_COMPLEX"

	// ErrCodeInvalidArgument indicates a dependency value that cannot be
	// used as an RQL operand.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Error is returned for every translation failure.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Expr is the offending expression rendered as source, if any.
	Expr string

	// Name is the identifier involved (undefined or invalid arguments).
	Name string

	// Err is the underlying cause, e.g. a *parser.SyntaxError.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("%s: %s (expr=%s)", e.Code, e.Message, e.Expr)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there
// is none.
func CodeOf(err error) ErrorCode {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsParseError reports whether err is a PARSE_ERROR.
func IsParseError(err error) bool {
	return CodeOf(err) == ErrCodeParse
}

// IsUnsupportedOperator reports whether err is an UNSUPPORTED_OPERATOR error.
func IsUnsupportedOperator(err error) bool {
	return CodeOf(err) == ErrCodeUnsupportedOperator
}

// IsUndefinedArgument reports whether err is an UNDEFINED_ARGUMENT error.
func IsUndefinedArgument(err error) bool {
	return CodeOf(err) == ErrCodeUndefinedArgument
}

// IsTooComplex reports whether err is a TOO_COMPLEX error.
func IsTooComplex(err error) bool {
	return CodeOf(err) == ErrCodeTooComplex
}

// IsInvalidArgument reports whether err is an INVALID_ARGUMENT error.
func IsInvalidArgument(err error) bool {
	return CodeOf(err) == ErrCodeInvalidArgument
}

func unsupported(expr string, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeUnsupportedOperator,
		Message: fmt.Sprintf(format, args...),
		Expr:    expr,
	}
}
