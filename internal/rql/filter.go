package rql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/filterql/internal/parser"
)

// ValuesFunc supplies the runtime values for a dependency list, in the
// list's order.
type ValuesFunc func() []any

// ParseFilter translates filter source to RQL with a Translator built from
// opts. See (*Translator).ParseFilter.
func ParseFilter(filter, deps string, values ValuesFunc, opts ...Option) (string, error) {
	return New(opts...).ParseFilter(filter, deps, values)
}

// ParseFilter translates filter source to RQL.
//
// deps is the source of a dependency list such as `() => [threshold]`, or ""
// for none. values is called once, only when deps is non-empty; a nil values
// leaves every dependency unbound.
func (t *Translator) ParseFilter(filter, deps string, values ValuesFunc) (string, error) {
	env, err := t.Bind(deps, values)
	if err != nil {
		return "", err
	}

	fn, err := parser.ParseArrow(filter, parser.WithMaxNesting(t.maxDepth))
	if err != nil {
		return "", parseError("filter", err)
	}

	out, err := t.Translate(fn.Body, env)
	if err != nil {
		return "", err
	}

	t.logger.Debug("translated filter", "filter", filter, "rql", out)
	return out, nil
}

// Bind parses a dependency list and binds values to it.
func (t *Translator) Bind(deps string, values ValuesFunc) (*Env, error) {
	if strings.TrimSpace(deps) == "" {
		return EmptyEnv(), nil
	}

	names, err := parser.ParseDependencies(deps, parser.WithMaxNesting(t.maxDepth))
	if err != nil {
		return nil, parseError("dependencies", err)
	}

	var vals []any
	if values != nil {
		vals = values()
	}
	if len(vals) != len(names) {
		t.logger.Debug("dependency count mismatch", "names", len(names), "values", len(vals))
	}

	return BindArgs(names, vals)
}

func parseError(what string, err error) *Error {
	if errors.Is(err, parser.ErrNestingTooDeep) {
		return &Error{
			Code:    ErrCodeTooComplex,
			Message: fmt.Sprintf("%s: %v", what, err),
			Err:     err,
		}
	}
	return &Error{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf("%s: %v", what, err),
		Err:     err,
	}
}
