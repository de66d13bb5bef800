package filterql

import (
	"github.com/roach88/filterql/internal/rql"
)

// ValuesFunc supplies dependency values in declaration order.
type ValuesFunc = rql.ValuesFunc

// Option configures translation.
type Option = rql.Option

// Translator converts filters with a fixed set of options.
type Translator = rql.Translator

// Error is the error type returned for every translation failure.
type Error = rql.Error

// ErrorCode categorizes an Error.
type ErrorCode = rql.ErrorCode

// Error codes.
const (
	ErrCodeParse               = rql.ErrCodeParse
	ErrCodeUnsupportedOperator = rql.ErrCodeUnsupportedOperator
	ErrCodeUndefinedArgument   = rql.ErrCodeUndefinedArgument
	ErrCodeTooComplex          = rql.ErrCodeTooComplex
	ErrCodeInvalidArgument     = rql.ErrCodeInvalidArgument
)

// DefaultMaxDepth is the expression depth limit used when WithMaxDepth is
// not given.
const DefaultMaxDepth = rql.DefaultMaxDepth

var (
	// WithMaxDepth sets the expression depth limit.
	WithMaxDepth = rql.WithMaxDepth

	// WithNestedPaths emits full member chains instead of the last two
	// segments.
	WithNestedPaths = rql.WithNestedPaths

	// WithLogger enables per-node debug tracing.
	WithLogger = rql.WithLogger
)

// New creates a reusable Translator.
func New(opts ...Option) *Translator {
	return rql.New(opts...)
}

// ParseFilter translates filter, an arrow function source such as
// `x => x.age > 30`, to RQL.
//
// deps optionally names the identifiers the filter uses, as the source of an
// arrow function returning an array (`() => [threshold]`); values supplies
// their values in the same order.
func ParseFilter(filter, deps string, values ValuesFunc, opts ...Option) (string, error) {
	return rql.ParseFilter(filter, deps, values, opts...)
}

// CodeOf returns the ErrorCode of err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	return rql.CodeOf(err)
}

// IsParseError reports whether err is a PARSE_ERROR.
func IsParseError(err error) bool { return rql.IsParseError(err) }

// IsUnsupportedOperator reports whether err is an UNSUPPORTED_OPERATOR error.
func IsUnsupportedOperator(err error) bool { return rql.IsUnsupportedOperator(err) }

// IsUndefinedArgument reports whether err is an UNDEFINED_ARGUMENT error.
func IsUndefinedArgument(err error) bool { return rql.IsUndefinedArgument(err) }

// IsTooComplex reports whether err is a TOO_COMPLEX error.
func IsTooComplex(err error) bool { return rql.IsTooComplex(err) }

// IsInvalidArgument reports whether err is an INVALID_ARGUMENT error.
func IsInvalidArgument(err error) bool { return rql.IsInvalidArgument(err) }
